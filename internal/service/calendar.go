package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fujical/internal/logger"
	"fujical/internal/models"
	"fujical/internal/repository"
)

// Calendars are computed years ahead, never further back than this.
const (
	minCalendarYear = 2000
	maxCalendarYear = 2100

	defaultUpcomingDays  = 30
	maxUpcomingDays      = 90
	defaultUpcomingLimit = 20
	maxUpcomingLimit     = 100
)

// Validation errors surfaced to the HTTP layer as 400s.
var (
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidMonth = errors.New("invalid month: must be between 1 and 12")
	ErrInvalidDate  = errors.New("invalid date: expected YYYY-MM-DD")
)

type CalendarService struct {
	events repository.EventRepo
	log    *logger.Logger
}

func NewCalendarService(events repository.EventRepo, log *logger.Logger) *CalendarService {
	return &CalendarService{events: events, log: log}
}

func validateYearMonth(year, month int) error {
	if year < minCalendarYear || year > maxCalendarYear {
		return fmt.Errorf("%w: %d must be between %d and %d", ErrInvalidYear, year, minCalendarYear, maxCalendarYear)
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// normalizeDate validates and canonicalizes a YYYY-MM-DD string.
func normalizeDate(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format("2006-01-02"), nil
}

func (s *CalendarService) GetMonthlyCalendar(ctx context.Context, year, month int) (*models.CalendarResponse, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	events, err := s.events.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return &models.CalendarResponse{Year: year, Month: month, Events: events}, nil
}

func (s *CalendarService) GetDayEvents(ctx context.Context, date string) ([]models.FujiEvent, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	return s.events.ListDay(ctx, normalized)
}

// GetUpcoming returns the best-scored events starting today. Out-of-range
// or zero parameters fall back to defaults.
func (s *CalendarService) GetUpcoming(ctx context.Context, days, limit int) ([]models.FujiEvent, error) {
	if days <= 0 || days > maxUpcomingDays {
		days = defaultUpcomingDays
	}
	if limit <= 0 || limit > maxUpcomingLimit {
		limit = defaultUpcomingLimit
	}
	from := time.Now().Format("2006-01-02")
	return s.events.ListUpcoming(ctx, from, days, limit)
}
