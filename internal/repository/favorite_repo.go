package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fujical/internal/models"
)

type FavoriteSQLite struct {
	db *sql.DB
}

func NewFavoriteSQLite(db *sql.DB) *FavoriteSQLite { return &FavoriteSQLite{db: db} }

var _ FavoriteRepo = (*FavoriteSQLite)(nil)

const (
	insertFavoriteSQL = `INSERT OR IGNORE INTO favorite_locations (user_id, location_id) VALUES (?, ?)`
	deleteFavoriteSQL = `DELETE FROM favorite_locations WHERE user_id = ? AND location_id = ?`

	selectFavoritesSQL = `
		SELECT l.id, l.name, l.prefecture, l.latitude, l.longitude, l.elevation, l.fuji_azimuth, l.fuji_distance_km
		FROM favorite_locations f
		JOIN locations l ON l.id = f.location_id
		WHERE f.user_id = ?
		ORDER BY f.created_at ASC`
)

// Add marks a location as a favorite. Adding twice is a no-op.
func (r *FavoriteSQLite) Add(ctx context.Context, userID, locationID int) error {
	if _, err := r.db.ExecContext(ctx, insertFavoriteSQL, userID, locationID); err != nil {
		return fmt.Errorf("add favorite %d for user %d: %w", locationID, userID, err)
	}
	return nil
}

// Remove deletes a favorite; removing an absent favorite is a no-op.
func (r *FavoriteSQLite) Remove(ctx context.Context, userID, locationID int) error {
	if _, err := r.db.ExecContext(ctx, deleteFavoriteSQL, userID, locationID); err != nil {
		return fmt.Errorf("remove favorite %d for user %d: %w", locationID, userID, err)
	}
	return nil
}

// ListByUser returns the user's favorite locations in the order they were added.
func (r *FavoriteSQLite) ListByUser(ctx context.Context, userID int) ([]models.Location, error) {
	rows, err := r.db.QueryContext(ctx, selectFavoritesSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Location, 0, 8)
	for rows.Next() {
		var loc models.Location
		if err := scanLocation(rows.Scan, &loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
