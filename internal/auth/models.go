package auth

// NotaryAccount is a single entry in the static credential table. Passwords
// are stored as bcrypt hashes, never plaintext.
type NotaryAccount struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}

// Identity is the authenticated notary attached to a request after token
// verification.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Identity strips the credential material from an account.
func (a NotaryAccount) Identity() Identity {
	return Identity{ID: a.ID, Username: a.Username, Name: a.Name}
}
