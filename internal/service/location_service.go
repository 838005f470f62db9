package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stagecrew/propshelf/internal/domain"
)

// locationRepository is the subset of store.LocationStore that
// LocationService requires.
type locationRepository interface {
	Create(ctx context.Context, name string) (*domain.Location, error)
	List(ctx context.Context) ([]*domain.Location, error)
}

type LocationService struct {
	locations locationRepository
	logger    *slog.Logger
}

func NewLocationService(locations locationRepository, logger *slog.Logger) *LocationService {
	return &LocationService{locations: locations, logger: logger}
}

// CreateLocation trims and stores a new location name. Empty names are
// rejected; duplicates surface as domain.ErrLocationExists.
func (s *LocationService) CreateLocation(ctx context.Context, name string) (*domain.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	loc, err := s.locations.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("location created", "id", loc.ID, "name", loc.Name)
	return loc, nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locations.List(ctx)
}
