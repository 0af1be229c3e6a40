package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store  *Store
	issuer *TokenIssuer
	logger *zap.Logger
}

func NewHandler(store *Store, issuer *TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{store: store, issuer: issuer, logger: logger}
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	account, err := h.store.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.issuer.Issue(account)
	if err != nil {
		h.logger.Error("failed to issue token", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	h.logger.Info("notary logged in", zap.Int("id", account.ID), zap.String("username", account.Username))

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"notary": account.Identity(),
	})
}
