package handlers

import (
	"errors"
	"net/http"

	"feedify/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
	tokenTTL    int64
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService, tokenTTLSeconds int64) *AuthHandler {
	return &AuthHandler{db: db, authService: authService, tokenTTL: tokenTTLSeconds}
}

type tokenInput struct {
	Email string `json:"email" binding:"required,email"`
}

// Token exchanges a known email for a signed bearer token carrying the
// user's id. Requests can then use Authorization: Bearer instead of the
// x-user-id header.
func (h *AuthHandler) Token(c *gin.Context) {
	var input tokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	token, user, err := h.authService.IssueToken(h.db, input.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   h.tokenTTL,
		"user":         user,
	})
}
