package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oshmenu/menu-service/internal/db"
	"github.com/oshmenu/menu-service/internal/models"
)

// GetCategories handles GET /api/categories
func (h *Handler) GetCategories(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := h.db.ListCategories(ctx)
	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var newCategory models.Category
	if err := c.ShouldBindJSON(&newCategory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if newCategory.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}
	if newCategory.ViewType != "" && newCategory.ViewType != models.ViewTypeGrid && newCategory.ViewType != models.ViewTypeList {
		c.JSON(http.StatusBadRequest, gin.H{"error": "View type must be 'grid' or 'list'"})
		return
	}

	created, err := h.db.CreateCategory(ctx, newCategory)
	if err != nil {
		log.Printf("Failed to create category in DB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var updatedCategory models.Category
	if err := c.ShouldBindJSON(&updatedCategory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	stored, err := h.db.UpdateCategory(ctx, categoryID, updatedCategory)
	if err != nil {
		log.Printf("Failed to update category %d: %v", categoryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, stored)
}

// DeleteCategory handles DELETE /api/categories/:id. Deleting a category
// deletes every product referencing it in the same transaction.
func (h *Handler) DeleteCategory(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.db.DeleteCategory(ctx, categoryID); err != nil {
		log.Printf("Failed to delete category %d: %v", categoryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderCategories handles PUT /api/categories/reorder. The batch applies
// in a single transaction so a partial failure cannot leave a mixed order.
func (h *Handler) ReorderCategories(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var reorderRequest struct {
		Categories []struct {
			ID        int `json:"id"`
			SortOrder int `json:"sort_order"`
		} `json:"categories"`
	}
	if err := c.ShouldBindJSON(&reorderRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := make([]db.SortOrderUpdate, len(reorderRequest.Categories))
	for i, item := range reorderRequest.Categories {
		updates[i] = db.SortOrderUpdate{ID: item.ID, SortOrder: item.SortOrder}
	}

	if err := h.db.ReorderCategories(ctx, updates); err != nil {
		log.Printf("Failed to reorder categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Categories reordered successfully"})
}
