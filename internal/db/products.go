package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oshmenu/menu-service/internal/models"
)

// ProductFilter narrows ListProducts. Zero values mean no filtering.
type ProductFilter struct {
	CategoryID int
	ActiveOnly bool
}

const productColumns = `
    id, name, description, price::text, image_url, category_id, sort_order,
    is_active, is_featured, variants::text, badges::text, available_branch_ids::text
`

// ListProducts returns products in display order: sort_order ascending with
// id as tie-break, scoped per category by the ordering contract.
func (db *Database) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var args []interface{}

	where := ""
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		where = fmt.Sprintf(" WHERE category_id = $%d", len(args))
	}
	if filter.ActiveOnly {
		if where == "" {
			where = " WHERE is_active = true"
		} else {
			where += " AND is_active = true"
		}
	}
	query += where + " ORDER BY category_id, sort_order, id"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetProduct returns a single product by id.
func (db *Database) GetProduct(ctx context.Context, id int) (models.Product, error) {
	row := db.Pool.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	product, err := scanProduct(row.Scan)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

// CreateProduct inserts a product and returns the stored row. The persisted
// price is derived from the variants when any are present, and a zero sort
// order means append to the end of the product's category.
func (db *Database) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	product.Price = product.EffectivePrice()

	variants, badges, branchIDs, err := marshalProductJSON(product)
	if err != nil {
		return models.Product{}, err
	}

	var query string
	args := []interface{}{
		product.Name,
		product.Description,
		product.Price.String(),
		product.ImageURL,
		product.CategoryID,
		product.IsActive,
		product.IsFeatured,
		variants,
		badges,
		branchIDs,
	}
	if product.SortOrder > 0 {
		query = `
            INSERT INTO products
                (name, description, price, image_url, category_id, is_active, is_featured, variants, badges, available_branch_ids, sort_order)
            VALUES
                ($1, $2, $3::numeric, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10::jsonb, $11)
            RETURNING id, sort_order
        `
		args = append(args, product.SortOrder)
	} else {
		query = `
            INSERT INTO products
                (name, description, price, image_url, category_id, is_active, is_featured, variants, badges, available_branch_ids, sort_order)
            VALUES
                ($1, $2, $3::numeric, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10::jsonb,
                 (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM products WHERE category_id = $5))
            RETURNING id, sort_order
        `
	}

	if err := db.Pool.QueryRow(ctx, query, args...).Scan(&product.ID, &product.SortOrder); err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// UpdateProduct updates a product and returns the stored row. The persisted
// price is re-derived from the variants when any are present.
func (db *Database) UpdateProduct(ctx context.Context, id int, product models.Product) (models.Product, error) {
	product.Price = product.EffectivePrice()

	variants, badges, branchIDs, err := marshalProductJSON(product)
	if err != nil {
		return models.Product{}, err
	}

	query := `
        UPDATE products
        SET
            name = $2,
            description = $3,
            price = $4::numeric,
            image_url = $5,
            category_id = $6,
            sort_order = $7,
            is_active = $8,
            is_featured = $9,
            variants = $10::jsonb,
            badges = $11::jsonb,
            available_branch_ids = $12::jsonb
        WHERE id = $1
    `
	result, err := db.Pool.Exec(ctx, query,
		id,
		product.Name,
		product.Description,
		product.Price.String(),
		product.ImageURL,
		product.CategoryID,
		product.SortOrder,
		product.IsActive,
		product.IsFeatured,
		variants,
		badges,
		branchIDs,
	)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.Product{}, fmt.Errorf("product with ID %d not found", id)
	}

	product.ID = id
	return product, nil
}

// DeleteProduct permanently removes a product.
func (db *Database) DeleteProduct(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("product with ID %d not found", id)
	}
	return nil
}

// ReorderProducts persists a reorder batch atomically. Sort orders are only
// meaningful within one category, but the batch itself may span categories.
func (db *Database) ReorderProducts(ctx context.Context, updates []SortOrderUpdate) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, u := range updates {
		result, err := tx.Exec(ctx,
			"UPDATE products SET sort_order = $2 WHERE id = $1", u.ID, u.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to update product %d order: %w", u.ID, err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("product with ID %d not found", u.ID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// marshalProductJSON encodes the JSONB columns. Empty slices persist as
// NULL so an absent allowlist and an empty one read back the same way.
func marshalProductJSON(product models.Product) (variants, badges, branchIDs interface{}, err error) {
	if len(product.Variants) > 0 {
		b, err := json.Marshal(product.Variants)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal variants: %w", err)
		}
		variants = string(b)
	}
	if len(product.Badges) > 0 {
		b, err := json.Marshal(product.Badges)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal badges: %w", err)
		}
		badges = string(b)
	}
	if len(product.AvailableBranchIDs) > 0 {
		b, err := json.Marshal(product.AvailableBranchIDs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal branch allowlist: %w", err)
		}
		branchIDs = string(b)
	}
	return variants, badges, branchIDs, nil
}

// scanProduct reads one product row, decoding the text-cast NUMERIC and
// JSONB columns.
func scanProduct(scan func(...interface{}) error) (models.Product, error) {
	var (
		product   models.Product
		priceText string
		variants  *string
		badges    *string
		branchIDs *string
	)

	err := scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&priceText,
		&product.ImageURL,
		&product.CategoryID,
		&product.SortOrder,
		&product.IsActive,
		&product.IsFeatured,
		&variants,
		&badges,
		&branchIDs,
	)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}

	product.Price, err = decimal.NewFromString(priceText)
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid price %q: %w", priceText, err)
	}
	if variants != nil {
		if err := json.Unmarshal([]byte(*variants), &product.Variants); err != nil {
			return models.Product{}, fmt.Errorf("failed to decode variants: %w", err)
		}
	}
	if badges != nil {
		if err := json.Unmarshal([]byte(*badges), &product.Badges); err != nil {
			return models.Product{}, fmt.Errorf("failed to decode badges: %w", err)
		}
	}
	if branchIDs != nil {
		if err := json.Unmarshal([]byte(*branchIDs), &product.AvailableBranchIDs); err != nil {
			return models.Product{}, fmt.Errorf("failed to decode branch allowlist: %w", err)
		}
	}

	return product, nil
}
