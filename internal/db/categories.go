package db

import (
	"context"
	"fmt"

	"github.com/oshmenu/menu-service/internal/models"
)

// SortOrderUpdate is one row of a reorder batch.
type SortOrderUpdate struct {
	ID        int
	SortOrder int
}

// ListCategories returns all categories in display order. Ties on
// sort_order fall back to id order.
func (db *Database) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, name, sort_order, view_type
        FROM categories
        ORDER BY sort_order, id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.SortOrder, &cat.ViewType); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// CreateCategory inserts a category. A zero sort order means append: one
// past the current maximum across the category list.
func (db *Database) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	if cat.ViewType == "" {
		cat.ViewType = models.ViewTypeGrid
	}

	var query string
	var err error
	if cat.SortOrder > 0 {
		query = `
            INSERT INTO categories (name, sort_order, view_type)
            VALUES ($1, $2, $3)
            RETURNING id, sort_order
        `
		err = db.Pool.QueryRow(ctx, query, cat.Name, cat.SortOrder, cat.ViewType).
			Scan(&cat.ID, &cat.SortOrder)
	} else {
		query = `
            INSERT INTO categories (name, sort_order, view_type)
            VALUES ($1, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM categories), $2)
            RETURNING id, sort_order
        `
		err = db.Pool.QueryRow(ctx, query, cat.Name, cat.ViewType).
			Scan(&cat.ID, &cat.SortOrder)
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return cat, nil
}

// UpdateCategory updates a category and returns the stored row.
func (db *Database) UpdateCategory(ctx context.Context, id int, cat models.Category) (models.Category, error) {
	query := `
        UPDATE categories
        SET name = $2, sort_order = $3, view_type = $4
        WHERE id = $1
        RETURNING id, name, sort_order, view_type
    `
	err := db.Pool.QueryRow(ctx, query, id, cat.Name, cat.SortOrder, cat.ViewType).
		Scan(&cat.ID, &cat.Name, &cat.SortOrder, &cat.ViewType)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to update category %d: %w", id, err)
	}

	return cat, nil
}

// DeleteCategory removes a category and every product referencing it in one
// transaction. No product may be left with a dangling category_id.
func (db *Database) DeleteCategory(ctx context.Context, id int) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM products WHERE category_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete category products: %w", err)
	}

	result, err := tx.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category with ID %d not found", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReorderCategories persists a reorder batch atomically: either every
// category gets its submitted sort_order or none does.
func (db *Database) ReorderCategories(ctx context.Context, updates []SortOrderUpdate) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, u := range updates {
		result, err := tx.Exec(ctx,
			"UPDATE categories SET sort_order = $2 WHERE id = $1", u.ID, u.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to update category %d order: %w", u.ID, err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("category with ID %d not found", u.ID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
