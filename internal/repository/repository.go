package repository

import (
	"context"
	"database/sql"

	"fujical/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// EventRepo is the append-friendly store of computed alignment events.
type EventRepo interface {
	Insert(ctx context.Context, e models.FujiEvent) error
	ListMonth(ctx context.Context, year, month int) ([]models.FujiEvent, error)
	ListDay(ctx context.Context, date string) ([]models.FujiEvent, error)
	ListUpcoming(ctx context.Context, from string, days, limit int) ([]models.FujiEvent, error)
	LatestCalculationYear(ctx context.Context, locationID int) (int, error)
}

type LocationRepo interface {
	List(ctx context.Context) ([]models.Location, error)
	GetByID(ctx context.Context, id int) (*models.Location, error)
}

type FavoriteRepo interface {
	Add(ctx context.Context, userID, locationID int) error
	Remove(ctx context.Context, userID, locationID int) error
	ListByUser(ctx context.Context, userID int) ([]models.Location, error)
}

type Repository struct {
	Events    EventRepo
	Locations LocationRepo
	Favorites FavoriteRepo
	Auth      Authorization
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Events:    NewEventSQLite(conn),
		Locations: NewLocationSQLite(conn),
		Favorites: NewFavoriteSQLite(conn),
		Auth:      NewUserRepository(conn),
	}
}
