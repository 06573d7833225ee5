package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetBranding returns the settings blob of the branding singleton row.
func (db *Database) GetBranding(ctx context.Context) (json.RawMessage, error) {
	var settings string
	err := db.Pool.QueryRow(ctx, "SELECT settings::text FROM branding WHERE id = 1").Scan(&settings)
	if err != nil {
		return nil, fmt.Errorf("failed to query branding: %w", err)
	}
	return json.RawMessage(settings), nil
}

// UpdateBranding merges a partial settings object into the singleton row
// and returns the merged result. Last write wins; there is no history.
func (db *Database) UpdateBranding(ctx context.Context, partial json.RawMessage) (json.RawMessage, error) {
	var settings string
	err := db.Pool.QueryRow(ctx, `
        UPDATE branding
        SET settings = settings || $1::jsonb
        WHERE id = 1
        RETURNING settings::text
    `, string(partial)).Scan(&settings)
	if err != nil {
		return nil, fmt.Errorf("failed to update branding: %w", err)
	}
	return json.RawMessage(settings), nil
}
