package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fujical/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const (
	eventColumns = `id, location_id, event_date, event_time, event_type, sub_type,
		azimuth, altitude, quality_score, moon_phase, moon_illumination, accuracy, calculation_year`

	// INSERT OR IGNORE makes recalculation idempotent: the unique key on
	// (location_id, event_date, event_time, event_type) swallows duplicates.
	insertEventSQL = `
		INSERT OR IGNORE INTO location_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	sqliteTimeLayout = "2006-01-02 15:04:05"
	dateLayout       = "2006-01-02"
)

// Insert appends one computed event. Empty ID and Date are filled in.
func (r *EventSQLite) Insert(ctx context.Context, e models.FujiEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date == "" {
		e.Date = e.Time.Format(dateLayout)
	}

	var accuracy *string
	if e.Accuracy != "" {
		accuracy = &e.Accuracy
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.ID,
		e.LocationID,
		e.Date,
		e.Time.UTC().Format(sqliteTimeLayout),
		e.Type,
		e.SubType,
		e.Azimuth,
		e.Altitude,
		e.QualityScore,
		e.MoonPhase,
		e.MoonIllumination,
		accuracy,
		e.CalculationYear,
	)
	if err != nil {
		return fmt.Errorf("insert event %s/%s: %w", e.Date, e.Type, err)
	}
	return nil
}

// ListMonth returns every event whose date falls in (year, month),
// ordered by date then time. Uses the (location_id, event_date) and
// plain event_date indexes via a half-open date range.
func (r *EventSQLite) ListMonth(ctx context.Context, year, month int) ([]models.FujiEvent, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	q := `SELECT ` + eventColumns + ` FROM location_events
		WHERE event_date >= ? AND event_date < ?
		ORDER BY event_date ASC, event_time ASC`

	return r.queryEvents(ctx, q, first.Format(dateLayout), next.Format(dateLayout))
}

// ListDay returns all events on a single YYYY-MM-DD date.
func (r *EventSQLite) ListDay(ctx context.Context, date string) ([]models.FujiEvent, error) {
	q := `SELECT ` + eventColumns + ` FROM location_events
		WHERE event_date = ?
		ORDER BY event_time ASC`

	return r.queryEvents(ctx, q, date)
}

// ListUpcoming returns the best events in [from, from+days), ordered by
// quality score descending.
func (r *EventSQLite) ListUpcoming(ctx context.Context, from string, days, limit int) ([]models.FujiEvent, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("parse from date %q: %w", from, err)
	}
	end := start.AddDate(0, 0, days)

	q := `SELECT ` + eventColumns + ` FROM location_events
		WHERE event_date >= ? AND event_date < ?
		ORDER BY quality_score DESC, event_date ASC, event_time ASC
		LIMIT ?`

	return r.queryEvents(ctx, q, from, end.Format(dateLayout), limit)
}

// LatestCalculationYear reports the newest calculation_year present for a
// location, 0 when the location has no events yet.
func (r *EventSQLite) LatestCalculationYear(ctx context.Context, locationID int) (int, error) {
	var year int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(calculation_year), 0) FROM location_events WHERE location_id = ?`,
		locationID,
	).Scan(&year)
	if err != nil {
		return 0, fmt.Errorf("latest calculation year for location %d: %w", locationID, err)
	}
	return year, nil
}

func (r *EventSQLite) queryEvents(ctx context.Context, q string, args ...any) ([]models.FujiEvent, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.FujiEvent, 0, 32)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (models.FujiEvent, error) {
	var (
		ev       models.FujiEvent
		phase    sql.NullFloat64
		illum    sql.NullFloat64
		accuracy sql.NullString
	)
	if err := rows.Scan(
		&ev.ID,
		&ev.LocationID,
		&ev.Date,
		&ev.Time,
		&ev.Type,
		&ev.SubType,
		&ev.Azimuth,
		&ev.Altitude,
		&ev.QualityScore,
		&phase,
		&illum,
		&accuracy,
		&ev.CalculationYear,
	); err != nil {
		return models.FujiEvent{}, err
	}
	ev.Time = ev.Time.UTC()
	if phase.Valid {
		ev.MoonPhase = &phase.Float64
	}
	if illum.Valid {
		ev.MoonIllumination = &illum.Float64
	}
	if accuracy.Valid {
		ev.Accuracy = accuracy.String
	}
	return ev, nil
}
