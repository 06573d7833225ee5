package db

import (
	"context"
	"fmt"

	"github.com/oshmenu/menu-service/internal/models"
)

// ListBranches returns all branches ordered by id.
func (db *Database) ListBranches(ctx context.Context) ([]models.Branch, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, name, address, phone, custom_color, logo_url
        FROM branches
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var branches []models.Branch
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.CustomColor, &b.LogoURL); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branches: %w", err)
	}

	return branches, nil
}

// CreateBranch inserts a branch and returns the stored row.
func (db *Database) CreateBranch(ctx context.Context, b models.Branch) (models.Branch, error) {
	query := `
        INSERT INTO branches (name, address, phone, custom_color, logo_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := db.Pool.QueryRow(ctx, query, b.Name, b.Address, b.Phone, b.CustomColor, b.LogoURL).
		Scan(&b.ID)
	if err != nil {
		return models.Branch{}, fmt.Errorf("failed to insert branch: %w", err)
	}

	return b, nil
}

// UpdateBranch updates a branch and returns the stored row.
func (db *Database) UpdateBranch(ctx context.Context, id int, b models.Branch) (models.Branch, error) {
	query := `
        UPDATE branches
        SET name = $2, address = $3, phone = $4, custom_color = $5, logo_url = $6
        WHERE id = $1
    `
	result, err := db.Pool.Exec(ctx, query, id, b.Name, b.Address, b.Phone, b.CustomColor, b.LogoURL)
	if err != nil {
		return models.Branch{}, fmt.Errorf("failed to update branch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.Branch{}, fmt.Errorf("branch with ID %d not found", id)
	}

	b.ID = id
	return b, nil
}

// DeleteBranch removes a branch. Product allowlists are left untouched: a
// stale branch id in an allowlist simply never matches again.
func (db *Database) DeleteBranch(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, "DELETE FROM branches WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("branch with ID %d not found", id)
	}
	return nil
}
