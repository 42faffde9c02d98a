package service

import (
	"context"
	"errors"
	"testing"

	"fujical/internal/models"
)

type fakeFavoriteRepo struct {
	added   [][2]int
	removed [][2]int
	list    []models.Location
	err     error
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, locationID int) error {
	f.added = append(f.added, [2]int{userID, locationID})
	return f.err
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, locationID int) error {
	f.removed = append(f.removed, [2]int{userID, locationID})
	return f.err
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID int) ([]models.Location, error) {
	return f.list, f.err
}

func TestFavoritesAdd_UnknownLocationRejected(t *testing.T) {
	t.Parallel()

	fav := &fakeFavoriteRepo{}
	locs := &fakeLocationRepo{locs: []models.Location{{ID: 1}}}
	svc := NewFavoritesService(fav, locs)

	if err := svc.Add(context.Background(), 7, 99); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("want ErrLocationNotFound, got %v", err)
	}
	if len(fav.added) != 0 {
		t.Fatalf("favorite written despite missing location")
	}
}

func TestFavoritesAdd_KnownLocation(t *testing.T) {
	t.Parallel()

	fav := &fakeFavoriteRepo{}
	locs := &fakeLocationRepo{locs: []models.Location{{ID: 2}}}
	svc := NewFavoritesService(fav, locs)

	if err := svc.Add(context.Background(), 7, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(fav.added) != 1 || fav.added[0] != [2]int{7, 2} {
		t.Fatalf("unexpected add calls: %v", fav.added)
	}
}

func TestFavoritesRemoveAndList_PassThrough(t *testing.T) {
	t.Parallel()

	fav := &fakeFavoriteRepo{list: []models.Location{{ID: 1}, {ID: 2}}}
	svc := NewFavoritesService(fav, &fakeLocationRepo{})

	if err := svc.Remove(context.Background(), 7, 2); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(fav.removed) != 1 {
		t.Fatalf("remove not forwarded")
	}

	got, err := svc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 favorites, got %d", len(got))
	}
}
