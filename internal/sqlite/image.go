package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/repository"
)

// ImageRepository implements climb.ImageRepository for SQLite
type ImageRepository struct {
	db *DB
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Put stores or replaces the photo for a log entry.
func (r *ImageRepository) Put(ctx context.Context, img *climb.Image) error {
	query := `
		INSERT INTO climb_images (log_id, content_type, size, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(log_id) DO UPDATE SET
			content_type = excluded.content_type,
			size = excluded.size,
			data = excluded.data
	`

	_, err := r.db.ExecContext(ctx, query, img.LogID, img.ContentType, img.Size, img.Data)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to store image: %w", err)
	}

	return nil
}

// Get retrieves the photo for a log entry.
func (r *ImageRepository) Get(ctx context.Context, logID string) (*climb.Image, error) {
	query := `SELECT log_id, content_type, size, data FROM climb_images WHERE log_id = ?`

	var img climb.Image
	err := r.db.QueryRowContext(ctx, query, logID).Scan(
		&img.LogID,
		&img.ContentType,
		&img.Size,
		&img.Data,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &img, nil
}

// Delete removes the photo for a log entry.
func (r *ImageRepository) Delete(ctx context.Context, logID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM climb_images WHERE log_id = ?`, logID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
