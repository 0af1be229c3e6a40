package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	store, err := NewStore(DefaultSeedAccounts())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantID   int
		wantErr  bool
	}{
		{name: "first notary", username: "notary1", password: "password123", wantID: 1},
		{name: "second notary", username: "notary2", password: "password456", wantID: 2},
		{name: "wrong password", username: "notary1", password: "password456", wantErr: true},
		{name: "unknown user", username: "notary3", password: "password123", wantErr: true},
		{name: "empty credentials", username: "", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := store.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, account.ID)
			assert.Equal(t, tt.username, account.Username)
		})
	}
}

func TestNewStoreRejectsDuplicateUsernames(t *testing.T) {
	_, err := NewStore([]SeedAccount{
		{ID: 1, Username: "notary1", Password: "a", Name: "A"},
		{ID: 2, Username: "notary1", Password: "b", Name: "B"},
	})
	assert.Error(t, err)
}

func TestPasswordsAreNotStoredInPlaintext(t *testing.T) {
	store, err := NewStore([]SeedAccount{{ID: 1, Username: "n", Password: "secret", Name: "N"}})
	require.NoError(t, err)

	account, err := store.Authenticate("n", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", account.PasswordHash)
	assert.NoError(t, VerifyPassword(account.PasswordHash, "secret"))
}
