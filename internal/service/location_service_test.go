package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecrew/propshelf/internal/domain"
)

type fakeLocationRepo struct {
	nextID int64
	byName map[string]*domain.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byName: make(map[string]*domain.Location)}
}

func (r *fakeLocationRepo) Create(_ context.Context, name string) (*domain.Location, error) {
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrLocationExists, name)
	}
	r.nextID++
	loc := &domain.Location{ID: r.nextID, Name: name}
	r.byName[name] = loc
	return loc, nil
}

func (r *fakeLocationRepo) List(_ context.Context) ([]*domain.Location, error) {
	locs := make([]*domain.Location, 0, len(r.byName))
	for _, loc := range r.byName {
		locs = append(locs, loc)
	}
	return locs, nil
}

func TestCreateLocationTrimsName(t *testing.T) {
	svc := NewLocationService(newFakeLocationRepo(), discardLogger())

	loc, err := svc.CreateLocation(context.Background(), "  Backstage  ")
	require.NoError(t, err)
	assert.Equal(t, "Backstage", loc.Name)
}

func TestCreateLocationRejectsBlank(t *testing.T) {
	svc := NewLocationService(newFakeLocationRepo(), discardLogger())

	_, err := svc.CreateLocation(context.Background(), "   ")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreateLocationDuplicate(t *testing.T) {
	svc := NewLocationService(newFakeLocationRepo(), discardLogger())
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, "Loft")
	require.NoError(t, err)

	_, err = svc.CreateLocation(ctx, "Loft")
	assert.ErrorIs(t, err, domain.ErrLocationExists)
}
