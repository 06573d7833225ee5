package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oshmenu/menu-service/internal/auth"
	"github.com/oshmenu/menu-service/internal/db"
)

// Handler holds the database connection and the credential verifier and
// provides the HTTP handlers.
type Handler struct {
	db       *db.Database
	verifier auth.Verifier
}

// NewHandler creates a new handler instance
func NewHandler(database *db.Database, verifier auth.Verifier) *Handler {
	return &Handler{db: database, verifier: verifier}
}

// requestContext bounds a handler's database work with the standard timeout.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}

// requireDB aborts with 503 when the database never came up. The process is
// allowed to start without it so /live keeps serving.
func (h *Handler) requireDB(c *gin.Context) bool {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not available"})
		return false
	}
	return true
}

// Health handles GET /health and GET /ready
func (h *Handler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
