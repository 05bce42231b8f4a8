package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/repository"
)

func TestImageRepository_PutGetReplace(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	logs := NewLogRepository(db)
	images := NewImageRepository(db)

	require.NoError(t, logs.Create(ctx, newLog("l1", "2025-05-03", climb.TypeBoulder, "V4", climb.ProgressComplete)))

	require.NoError(t, images.Put(ctx, &climb.Image{
		LogID:       "l1",
		ContentType: "image/png",
		Size:        3,
		Data:        []byte{1, 2, 3},
	}))

	img, err := images.Get(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "image/png", img.ContentType)
	require.Equal(t, []byte{1, 2, 3}, img.Data)

	// Put again replaces in place.
	require.NoError(t, images.Put(ctx, &climb.Image{
		LogID:       "l1",
		ContentType: "image/jpeg",
		Size:        2,
		Data:        []byte{9, 8},
	}))

	img, err = images.Get(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", img.ContentType)
	require.Equal(t, []byte{9, 8}, img.Data)

	// Log now reports an attached image.
	log, err := logs.Get(ctx, "l1")
	require.NoError(t, err)
	require.True(t, log.HasImage)
}

func TestImageRepository_PutForMissingLog(t *testing.T) {
	db := NewTestDB(t)
	images := NewImageRepository(db)

	err := images.Put(context.Background(), &climb.Image{
		LogID:       "missing",
		ContentType: "image/png",
		Size:        1,
		Data:        []byte{1},
	})
	require.Equal(t, repository.ErrForeignKeyViolation, err)
}

func TestImageRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	logs := NewLogRepository(db)
	images := NewImageRepository(db)

	require.NoError(t, logs.Create(ctx, newLog("l1", "2025-05-03", climb.TypeBoulder, "V4", climb.ProgressComplete)))
	require.NoError(t, images.Put(ctx, &climb.Image{
		LogID:       "l1",
		ContentType: "image/png",
		Size:        1,
		Data:        []byte{1},
	}))

	require.NoError(t, images.Delete(ctx, "l1"))
	_, err := images.Get(ctx, "l1")
	require.Equal(t, repository.ErrNotFound, err)
	require.Equal(t, repository.ErrNotFound, images.Delete(ctx, "l1"))
}
