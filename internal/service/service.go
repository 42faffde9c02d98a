package service

import (
	"context"
	"time"

	"fujical/internal/logger"
	"fujical/internal/models"
	"fujical/internal/repository"
	"fujical/internal/weather"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Calendar exposes read access to computed alignment events.
type Calendar interface {
	GetMonthlyCalendar(ctx context.Context, year, month int) (*models.CalendarResponse, error)
	GetDayEvents(ctx context.Context, date string) ([]models.FujiEvent, error)
	GetUpcoming(ctx context.Context, days, limit int) ([]models.FujiEvent, error)
}

// Weather looks up the forecast for a calendar date at the Fuji view area.
type Weather interface {
	GetByDate(ctx context.Context, date string) (*models.WeatherInfo, error)
}

type Locations interface {
	List(ctx context.Context) ([]models.Location, error)
	Get(ctx context.Context, id int) (*models.Location, error)
}

type Favorites interface {
	Add(ctx context.Context, userID, locationID int) error
	Remove(ctx context.Context, userID, locationID int) error
	List(ctx context.Context, userID int) ([]models.Location, error)
}

// Calculator runs the background loop that keeps event coverage ahead of
// the calendar. Stop via context cancellation in main().
type Calculator interface {
	Run(ctx context.Context, tick time.Duration)
}

// AuthConfig carries the token parameters main reads from configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

type Service struct {
	Calendar
	Weather
	Locations
	Favorites
	Calculator
	Authorization
}

func NewService(repos *repository.Repository, provider weather.Provider, auth AuthConfig, log *logger.Logger) *Service {
	return &Service{
		Calendar:      NewCalendarService(repos.Events, log),
		Weather:       NewWeatherService(provider, log),
		Locations:     NewLocationService(repos.Locations),
		Favorites:     NewFavoritesService(repos.Favorites, repos.Locations),
		Calculator:    NewCalculatorService(repos.Events, repos.Locations, log),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
