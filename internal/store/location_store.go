package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sqlite "modernc.org/sqlite"

	"github.com/stagecrew/propshelf/internal/domain"
)

type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

// Create inserts a new uniquely-named location. A name that already exists
// (exact, case-sensitive match) fails with domain.ErrLocationExists.
func (s *LocationStore) Create(ctx context.Context, name string) (*domain.Location, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (name) VALUES (?)
	`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", domain.ErrLocationExists, name)
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &domain.Location{ID: id, Name: name}, nil
}

func (s *LocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM locations ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var locations []*domain.Location
	for rows.Next() {
		loc := &domain.Location{}
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// SQLite extended result codes for unique-constraint violations.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
}
