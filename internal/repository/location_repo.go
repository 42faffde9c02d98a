package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fujical/internal/models"
)

type LocationSQLite struct {
	db *sql.DB
}

func NewLocationSQLite(db *sql.DB) *LocationSQLite { return &LocationSQLite{db: db} }

var _ LocationRepo = (*LocationSQLite)(nil)

const (
	locationColumns = `id, name, prefecture, latitude, longitude, elevation, fuji_azimuth, fuji_distance_km`

	selectLocationsSQL    = `SELECT ` + locationColumns + ` FROM locations ORDER BY id ASC`
	selectLocationByIDSQL = `SELECT ` + locationColumns + ` FROM locations WHERE id = ?`
)

func (r *LocationSQLite) List(ctx context.Context) ([]models.Location, error) {
	rows, err := r.db.QueryContext(ctx, selectLocationsSQL)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
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

// GetByID fetches one location. Returns (nil, nil) when it does not exist.
func (r *LocationSQLite) GetByID(ctx context.Context, id int) (*models.Location, error) {
	var loc models.Location
	row := r.db.QueryRowContext(ctx, selectLocationByIDSQL, id)
	if err := scanLocation(row.Scan, &loc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select location %d: %w", id, err)
	}
	return &loc, nil
}

func scanLocation(scan func(dest ...any) error, loc *models.Location) error {
	return scan(
		&loc.ID,
		&loc.Name,
		&loc.Prefecture,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Elevation,
		&loc.FujiAzimuth,
		&loc.FujiDistanceKm,
	)
}
