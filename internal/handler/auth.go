package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tagtrack/internal/audit"
	"tagtrack/internal/auth"
	"tagtrack/internal/user"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Register creates a staff account and returns a token pair.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if errors.Is(err, user.ErrUsernameTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.record(c, audit.ActionUserRegister, "user", fmt.Sprintf("%d", u.ID), "registered "+u.Username)
	h.issueTokens(c, u, http.StatusCreated)
}

// Login authenticates and returns a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, user.ErrInvalidCredentials) || errors.Is(err, user.ErrInactive) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.record(c, audit.ActionUserLogin, "user", fmt.Sprintf("%d", u.ID), u.Username+" logged in")
	h.issueTokens(c, u, http.StatusOK)
}

func (h *Handler) issueTokens(c *gin.Context, u *user.User, status int) {
	tokens, err := auth.Issue(u.ID, u.Role, h.tokens.Issuer, h.tokens.SigningKey, h.tokens.AccessTTL, h.tokens.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(status, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
		"user_id":       u.ID,
		"user_role":     u.Role,
	})
}
