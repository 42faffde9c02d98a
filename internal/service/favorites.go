package service

import (
	"context"
	"errors"

	"fujical/internal/models"
	"fujical/internal/repository"
)

var ErrLocationNotFound = errors.New("location not found")

type FavoritesService struct {
	favorites repository.FavoriteRepo
	locations repository.LocationRepo
}

func NewFavoritesService(favorites repository.FavoriteRepo, locations repository.LocationRepo) *FavoritesService {
	return &FavoritesService{favorites: favorites, locations: locations}
}

// Add validates the location before writing the favorite row; the FK would
// reject an unknown id anyway, but this keeps the error specific.
func (s *FavoritesService) Add(ctx context.Context, userID, locationID int) error {
	loc, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return ErrLocationNotFound
	}
	return s.favorites.Add(ctx, userID, locationID)
}

func (s *FavoritesService) Remove(ctx context.Context, userID, locationID int) error {
	return s.favorites.Remove(ctx, userID, locationID)
}

func (s *FavoritesService) List(ctx context.Context, userID int) ([]models.Location, error) {
	return s.favorites.ListByUser(ctx, userID)
}
