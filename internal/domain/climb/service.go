package climb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tmorrell/cruxlog/internal/repository"
)

// ImageUpload is an incoming photo attachment.
type ImageUpload struct {
	ContentType string
	Data        []byte
}

// Service handles climb-log business logic.
type Service struct {
	logs   LogRepository
	images ImageRepository
	stats  StatsRepository
	logger *slog.Logger
}

// NewService creates a new climb-log service.
func NewService(logs LogRepository, images ImageRepository, stats StatsRepository, logger *slog.Logger) *Service {
	return &Service{
		logs:   logs,
		images: images,
		stats:  stats,
		logger: logger,
	}
}

// Create validates the input and stores a new log entry, assigning its id.
// An attached image is stored with the entry; the request is all-or-nothing.
func (s *Service) Create(ctx context.Context, in Input, img *ImageUpload) (*Log, error) {
	in = in.trimmed()
	errs := Validate(in)
	if img != nil {
		for field, msg := range ValidateImage(img.ContentType, int64(len(img.Data))) {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	log := &Log{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Environment: Environment(in.Environment),
		Location:    in.Location,
		RouteName:   in.RouteName,
		ClimbType:   ClimbType(in.ClimbType),
		GradeSystem: GradeSystem(in.GradeSystem),
		Grade:       in.Grade,
		Progress:    Progress(in.Progress),
		CreatedAt:   time.Now(),
	}

	if err := s.logs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("creating log: %w", err)
	}

	if img != nil {
		if err := s.images.Put(ctx, &Image{
			LogID:       log.ID,
			ContentType: img.ContentType,
			Size:        int64(len(img.Data)),
			Data:        img.Data,
		}); err != nil {
			return nil, fmt.Errorf("storing image: %w", err)
		}
		log.HasImage = true
	}

	if s.logger != nil {
		s.logger.Info("created climb log", "id", log.ID, "route", log.RouteName)
	}

	return log, nil
}

// Get returns a single log entry by id.
func (s *Service) Get(ctx context.Context, id string) (*Log, error) {
	log, err := s.logs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading log: %w", err)
	}
	return log, nil
}

// Update replaces all fields of an existing entry. A new image always wins
// over a pending removal request; otherwise removeImage clears the current
// image. Last writer wins.
func (s *Service) Update(ctx context.Context, id string, in Input, img *ImageUpload, removeImage bool) (*Log, error) {
	in = in.trimmed()
	errs := Validate(in)
	if img != nil {
		for field, msg := range ValidateImage(img.ContentType, int64(len(img.Data))) {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	current, err := s.logs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading log: %w", err)
	}

	updated := &Log{
		ID:          current.ID,
		Date:        in.Date,
		Environment: Environment(in.Environment),
		Location:    in.Location,
		RouteName:   in.RouteName,
		ClimbType:   ClimbType(in.ClimbType),
		GradeSystem: GradeSystem(in.GradeSystem),
		Grade:       in.Grade,
		Progress:    Progress(in.Progress),
		HasImage:    current.HasImage,
		CreatedAt:   current.CreatedAt,
	}

	if err := s.logs.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating log: %w", err)
	}

	switch {
	case img != nil:
		if err := s.images.Put(ctx, &Image{
			LogID:       updated.ID,
			ContentType: img.ContentType,
			Size:        int64(len(img.Data)),
			Data:        img.Data,
		}); err != nil {
			return nil, fmt.Errorf("storing image: %w", err)
		}
		updated.HasImage = true
	case removeImage:
		if err := s.images.Delete(ctx, updated.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("removing image: %w", err)
		}
		updated.HasImage = false
	}

	if s.logger != nil {
		s.logger.Info("updated climb log", "id", updated.ID)
	}

	return updated, nil
}

// Delete removes an entry and its image.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.logs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting log: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("deleted climb log", "id", id)
	}
	return nil
}

// List returns one page of logs. The repository is authoritative for the
// resulting page: a requested page past the end comes back clamped.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	result, err := s.logs.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	return result, nil
}

// Stats returns aggregate statistics over the whole collection.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.stats.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}
	return stats, nil
}

// Image returns the photo attached to an entry.
func (s *Service) Image(ctx context.Context, id string) (*Image, error) {
	img, err := s.images.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoImage
		}
		return nil, fmt.Errorf("loading image: %w", err)
	}
	return img, nil
}
