package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stagecrew/propshelf/internal/domain"
)

type PropStore struct {
	db *sql.DB
}

func NewPropStore(db *sql.DB) *PropStore {
	return &PropStore{db: db}
}

func (s *PropStore) Create(ctx context.Context, p *domain.Prop) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO props (location, storage_id, description, keywords, category, status, quantity, photo_files, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Location, p.StorageID, p.Description, p.Keywords, p.Category, p.Status, p.Quantity, marshalFiles(p.PhotoFiles), p.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to create prop: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	p.ID = id
	return id, nil
}

func (s *PropStore) GetByID(ctx context.Context, id int64) (*domain.Prop, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+propColumns+` FROM props WHERE id = ?
	`, id)

	prop, err := scanProp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prop %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prop: %w", err)
	}
	return prop, nil
}

// List returns props ordered by their caller-supplied timestamp string,
// newest first. A non-empty search term filters to props whose storage id,
// description, keywords, category, or location contains it, ignoring case.
func (s *PropStore) List(ctx context.Context, search string) ([]*domain.Prop, error) {
	query, args := listQuery(search)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list props: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var props []*domain.Prop
	for rows.Next() {
		prop, err := scanProp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prop: %w", err)
		}
		props = append(props, prop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating props: %w", err)
	}

	return props, nil
}

// Update replaces every mutable field of the prop row matching p.ID. The
// photo filename list and timestamp are fixed at creation and not touched.
func (s *PropStore) Update(ctx context.Context, p *domain.Prop) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE props SET location = ?, storage_id = ?, description = ?, keywords = ?, category = ?, status = ?, quantity = ?
		WHERE id = ?
	`, p.Location, p.StorageID, p.Description, p.Keywords, p.Category, p.Status, p.Quantity, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update prop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("prop %d: %w", p.ID, domain.ErrNotFound)
	}

	return nil
}

func (s *PropStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM props WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("prop %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProp(row scanner) (*domain.Prop, error) {
	prop := &domain.Prop{}
	var rawFiles string
	err := row.Scan(&prop.ID, &prop.Location, &prop.StorageID, &prop.Description,
		&prop.Keywords, &prop.Category, &prop.Status, &prop.Quantity, &rawFiles, &prop.Timestamp)
	if err != nil {
		return nil, err
	}
	prop.PhotoFiles = unmarshalFiles(rawFiles)
	return prop, nil
}

// marshalFiles serializes the filename list; a nil list is stored as [].
func marshalFiles(files []string) string {
	if files == nil {
		files = []string{}
	}
	data, err := json.Marshal(files)
	if err != nil {
		// A []string cannot fail to marshal; keep the row consistent anyway.
		return "[]"
	}
	return string(data)
}

// unmarshalFiles parses the stored filename list. An unparseable value is
// treated as an empty list so one bad row cannot break listing.
func unmarshalFiles(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var files []string
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		slog.Error("failed to parse stored photo list", "raw", raw, "error", err)
		return []string{}
	}
	if files == nil {
		return []string{}
	}
	return files
}
