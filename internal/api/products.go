package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oshmenu/menu-service/internal/db"
	"github.com/oshmenu/menu-service/internal/models"
)

// GetProducts handles GET /api/products. Optional query filters:
// category_id, branch_id and active=true. Branch filtering applies the
// allowlist predicate (empty allowlist = visible everywhere).
func (h *Handler) GetProducts(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var filter db.ProductFilter
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		filter.CategoryID = id
	}
	filter.ActiveOnly = c.Query("active") == "true"

	products, err := h.db.ListProducts(ctx, filter)
	if err != nil {
		log.Printf("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	if v := c.Query("branch_id"); v != "" {
		branchID, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
			return
		}
		visible := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.VisibleAtBranch(branchID) {
				visible = append(visible, p)
			}
		}
		products = visible
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.db.GetProduct(ctx, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/products. The server derives the price
// from the variants when any are present and assigns the sort order by
// appending to the end of the product's category.
func (h *Handler) CreateProduct(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var newProduct models.Product
	if err := c.ShouldBindJSON(&newProduct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if newProduct.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return
	}
	if newProduct.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id is required"})
		return
	}

	created, err := h.db.CreateProduct(ctx, newProduct)
	if err != nil {
		log.Printf("Failed to create product in DB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles PUT /api/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var updatedProduct models.Product
	if err := c.ShouldBindJSON(&updatedProduct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	stored, err := h.db.UpdateProduct(ctx, productID, updatedProduct)
	if err != nil {
		log.Printf("Failed to update product %d: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, stored)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.db.DeleteProduct(ctx, productID); err != nil {
		log.Printf("Failed to delete product %d: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderProducts handles PUT /api/products/reorder. The batch applies in a
// single transaction.
func (h *Handler) ReorderProducts(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var reorderRequest struct {
		Products []struct {
			ID        int `json:"id"`
			SortOrder int `json:"sort_order"`
		} `json:"products"`
	}
	if err := c.ShouldBindJSON(&reorderRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := make([]db.SortOrderUpdate, len(reorderRequest.Products))
	for i, item := range reorderRequest.Products {
		updates[i] = db.SortOrderUpdate{ID: item.ID, SortOrder: item.SortOrder}
	}

	if err := h.db.ReorderProducts(ctx, updates); err != nil {
		log.Printf("Failed to reorder products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Products reordered successfully"})
}
