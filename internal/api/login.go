package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oshmenu/menu-service/internal/auth"
	"github.com/oshmenu/menu-service/internal/logging"
)

const tokenTTL = 12 * time.Hour

// Login handles POST /api/auth/login. Credentials are checked through the
// configured verifier; a valid pair yields an admin bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if err := h.verifier.Verify(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logging.LogKV("warn", "admin login rejected", map[string]interface{}{
				"username":  req.Username,
				"client_ip": c.ClientIP(),
			})
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}

	token, err := auth.IssueToken(os.Getenv("JWT_SECRET"), req.Username, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
	})
}
