package auth

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials indicates a failed username/password lookup.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store is the read-only notary account table. Accounts are seeded at
// construction and never change afterwards, so lookups need no locking.
type Store struct {
	byUsername map[string]NotaryAccount
}

// SeedAccount is a plaintext account definition used only at startup.
type SeedAccount struct {
	ID       int
	Username string
	Password string
	Name     string
}

// DefaultSeedAccounts returns the demo notary roster.
func DefaultSeedAccounts() []SeedAccount {
	return []SeedAccount{
		{ID: 1, Username: "notary1", Password: "password123", Name: "User 1"},
		{ID: 2, Username: "notary2", Password: "password456", Name: "User 2"},
	}
}

// NewStore hashes the seed passwords and builds the account table.
func NewStore(seeds []SeedAccount) (*Store, error) {
	s := &Store{byUsername: make(map[string]NotaryAccount, len(seeds))}
	for _, seed := range seeds {
		if seed.Username == "" {
			return nil, errors.New("account username is required")
		}
		if _, exists := s.byUsername[seed.Username]; exists {
			return nil, fmt.Errorf("duplicate username %q", seed.Username)
		}
		hash, err := HashPassword(seed.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", seed.Username, err)
		}
		s.byUsername[seed.Username] = NotaryAccount{
			ID:           seed.ID,
			Username:     seed.Username,
			PasswordHash: hash,
			Name:         seed.Name,
		}
	}
	return s, nil
}

// Authenticate verifies a username/password pair against the table.
func (s *Store) Authenticate(username, password string) (NotaryAccount, error) {
	account, ok := s.byUsername[username]
	if !ok {
		return NotaryAccount{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(account.PasswordHash, password); err != nil {
		return NotaryAccount{}, ErrInvalidCredentials
	}
	return account, nil
}
