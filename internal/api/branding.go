package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBranding handles GET /api/branding
func (h *Handler) GetBranding(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	settings, err := h.db.GetBranding(ctx)
	if err != nil {
		log.Printf("Failed to fetch branding: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branding"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", settings)
}

// UpdateBranding handles PUT /api/branding. The body is a partial settings
// object merged into the singleton row; unknown keys are kept as-is. A key
// is cleared by submitting it with an empty value, never by omitting it.
func (h *Handler) UpdateBranding(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	settings, err := h.db.UpdateBranding(ctx, body)
	if err != nil {
		log.Printf("Failed to update branding: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branding"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", settings)
}
