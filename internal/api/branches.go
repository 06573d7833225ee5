package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oshmenu/menu-service/internal/models"
)

// GetBranches handles GET /api/branches
func (h *Handler) GetBranches(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	branches, err := h.db.ListBranches(ctx)
	if err != nil {
		log.Printf("Failed to list branches: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branches"})
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}

	c.JSON(http.StatusOK, branches)
}

// CreateBranch handles POST /api/branches
func (h *Handler) CreateBranch(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var newBranch models.Branch
	if err := c.ShouldBindJSON(&newBranch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if newBranch.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch name is required"})
		return
	}

	created, err := h.db.CreateBranch(ctx, newBranch)
	if err != nil {
		log.Printf("Failed to create branch in DB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateBranch handles PUT /api/branches/:id
func (h *Handler) UpdateBranch(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	branchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	var updatedBranch models.Branch
	if err := c.ShouldBindJSON(&updatedBranch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	stored, err := h.db.UpdateBranch(ctx, branchID, updatedBranch)
	if err != nil {
		log.Printf("Failed to update branch %d: %v", branchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branch"})
		return
	}

	c.JSON(http.StatusOK, stored)
}

// DeleteBranch handles DELETE /api/branches/:id
func (h *Handler) DeleteBranch(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	branchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	if err := h.db.DeleteBranch(ctx, branchID); err != nil {
		log.Printf("Failed to delete branch %d: %v", branchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch"})
		return
	}

	c.Status(http.StatusNoContent)
}
