package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := NewStore(DefaultSeedAccounts())
	require.NoError(t, err)
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	NewHandler(store, issuer, zap.NewNop()).RegisterRoutes(router)

	router.GET("/api/protected", RequireAuth(issuer), func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, identity)
	})

	return router, issuer
}

func postLogin(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	router, issuer := newTestRouter(t)

	w := postLogin(t, router, "notary1", "password123")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token  string   `json:"token"`
		Notary Identity `json:"notary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, Identity{ID: 1, Username: "notary1", Name: "User 1"}, resp.Notary)

	// The returned token decodes back to the same account.
	identity, err := issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Notary, identity)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, creds := range [][2]string{
		{"notary1", "wrong"},
		{"nobody", "password123"},
		{"", ""},
	} {
		w := postLogin(t, router, creds[0], creds[1])
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid credentials", resp["error"])
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthPassesIdentity(t *testing.T) {
	router, issuer := newTestRouter(t)

	token, err := issuer.Issue(NotaryAccount{ID: 2, Username: "notary2", Name: "User 2"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var identity Identity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &identity))
	assert.Equal(t, Identity{ID: 2, Username: "notary2", Name: "User 2"}, identity)
}
