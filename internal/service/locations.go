package service

import (
	"context"

	"fujical/internal/models"
	"fujical/internal/repository"
)

type LocationService struct {
	locations repository.LocationRepo
}

func NewLocationService(locations repository.LocationRepo) *LocationService {
	return &LocationService{locations: locations}
}

func (s *LocationService) List(ctx context.Context) ([]models.Location, error) {
	return s.locations.List(ctx)
}

// Get returns (nil, nil) when the location does not exist; the handler
// turns that into a 404.
func (s *LocationService) Get(ctx context.Context, id int) (*models.Location, error) {
	return s.locations.GetByID(ctx, id)
}
