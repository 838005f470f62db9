package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stagecrew/propshelf/internal/dataurl"
	"github.com/stagecrew/propshelf/internal/domain"
	"github.com/stagecrew/propshelf/internal/photostore"
	"github.com/stagecrew/propshelf/internal/vision"
)

// propRepository is the subset of store.PropStore that PropService requires.
type propRepository interface {
	Create(ctx context.Context, p *domain.Prop) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Prop, error)
	List(ctx context.Context, search string) ([]*domain.Prop, error)
	Update(ctx context.Context, p *domain.Prop) error
	Delete(ctx context.Context, id int64) error
}

type PropService struct {
	props  propRepository
	photos photostore.PhotoStore
	tagger vision.Tagger // nil disables photo tagging
	logger *slog.Logger
}

func NewPropService(props propRepository, photos photostore.PhotoStore, tagger vision.Tagger, logger *slog.Logger) *PropService {
	return &PropService{
		props:  props,
		photos: photos,
		tagger: tagger,
		logger: logger,
	}
}

// SkippedPhoto reports one photo payload dropped during creation.
type SkippedPhoto struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// CreateResult is the outcome of a creation: the committed record plus any
// photos that could not be decoded or stored.
type CreateResult struct {
	Prop    *domain.Prop
	Skipped []SkippedPhoto
}

// CreateProp validates the submission, stores each decodable photo, and
// inserts the record referencing the stored filenames. A photo that fails
// to decode or store is skipped and reported, never fatal; every name in
// the committed record references a file confirmed on disk.
func (s *PropService) CreateProp(ctx context.Context, sub *PropSubmission) (*CreateResult, error) {
	prop, payloads, err := validateSubmission(sub)
	if err != nil {
		return nil, err
	}

	saved := make([]string, 0, len(payloads))
	skipped := make([]SkippedPhoto, 0)
	var firstData []byte
	var firstExt string

	for i, payload := range payloads {
		data, ext, err := dataurl.Decode(payload)
		if err != nil {
			s.logger.Error("failed to decode photo", "index", i, "error", err)
			skipped = append(skipped, SkippedPhoto{Index: i, Reason: err.Error()})
			continue
		}

		name, err := s.photos.Save(ctx, ext, data)
		if err != nil {
			s.logger.Error("failed to store photo", "index", i, "error", err)
			skipped = append(skipped, SkippedPhoto{Index: i, Reason: "failed to store photo"})
			continue
		}

		if firstData == nil {
			firstData, firstExt = data, ext
		}
		saved = append(saved, name)
	}
	prop.PhotoFiles = saved

	s.suggestTags(ctx, prop, firstData, firstExt)

	if _, err := s.props.Create(ctx, prop); err != nil {
		// Files already written stay on disk; only a success response
		// guarantees the row exists.
		s.logger.Error("prop insert failed, photo files left on disk", "files", saved, "error", err)
		return nil, fmt.Errorf("failed to create prop: %w", err)
	}

	s.logger.Info("prop created", "id", prop.ID, "photos", len(saved), "skipped", len(skipped))
	return &CreateResult{Prop: prop, Skipped: skipped}, nil
}

// suggestTags backfills empty keywords (and category) from the first stored
// photo when a tagging backend is configured. Failures only log; tagging
// never blocks a create.
func (s *PropService) suggestTags(ctx context.Context, prop *domain.Prop, data []byte, ext string) {
	if s.tagger == nil || data == nil || prop.Keywords != "" {
		return
	}

	sug, err := s.tagger.SuggestTags(ctx, bytes.NewReader(data), vision.MIMEForExt(ext))
	if err != nil {
		s.logger.Error("photo tagging failed", "error", err)
		return
	}

	if len(sug.Keywords) > 0 {
		prop.Keywords = strings.Join(sug.Keywords, ", ")
		s.logger.Info("photo tagging suggested keywords", "keywords", prop.Keywords)
	}
	if prop.Category == "" && sug.Category != "" {
		prop.Category = sug.Category
	}
}

func (s *PropService) ListProps(ctx context.Context, search string) ([]*domain.Prop, error) {
	return s.props.List(ctx, search)
}

func (s *PropService) GetProp(ctx context.Context, id int64) (*domain.Prop, error) {
	return s.props.GetByID(ctx, id)
}

// UpdateProp merges the supplied fields into the stored record. Fields
// omitted from the update keep their current values.
func (s *PropService) UpdateProp(ctx context.Context, id int64, upd *PropUpdate) (*domain.Prop, error) {
	current, err := s.props.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(current, upd); err != nil {
		return nil, err
	}

	if err := s.props.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteProp removes the record and its photo files. File removal is
// best-effort: an undeletable file is logged and the row is removed anyway.
func (s *PropService) DeleteProp(ctx context.Context, id int64) error {
	prop, err := s.props.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, name := range prop.PhotoFiles {
		if err := s.photos.Delete(ctx, name); err != nil {
			s.logger.Error("failed to delete photo file", "prop_id", id, "file", name, "error", err)
		}
	}

	if err := s.props.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("prop deleted", "id", id, "photos", len(prop.PhotoFiles))
	return nil
}
