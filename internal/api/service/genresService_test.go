package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

func TestGenreLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewGenreService(repository.NewGenreRepo(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateGenreDTO{Name: "Sci-Fi", Slug: "sci-fi"})
	require.NoError(t, err)

	t.Run("SlugConflict", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateGenreDTO{Name: "Science Fiction", Slug: "sci-fi"})
		assert.ErrorIs(t, err, ErrSlugInUse)
	})

	t.Run("GetBySlug", func(t *testing.T) {
		resp, err := svc.GetBySlug(ctx, "sci-fi")
		require.NoError(t, err)
		assert.Equal(t, "Sci-Fi", resp.Name)
	})

	t.Run("UpdateRekeysSlug", func(t *testing.T) {
		resp, err := svc.Update(ctx, "sci-fi", dto.UpdateGenreDTO{Slug: ptr("scifi")})
		require.NoError(t, err)
		assert.Equal(t, "scifi", resp.Slug)

		_, err = svc.GetBySlug(ctx, "sci-fi")
		assert.ErrorIs(t, err, ErrGenreNotFound)

		_, err = svc.Update(ctx, "scifi", dto.UpdateGenreDTO{Slug: ptr("sci-fi")})
		require.NoError(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "sci-fi"))
		assert.ErrorIs(t, svc.Delete(ctx, "sci-fi"), ErrGenreNotFound)
	})
}

func TestGenreDeleteKeepsTitles(t *testing.T) {
	db := newTestDB(t)
	svc := NewGenreService(repository.NewGenreRepo(db))
	ctx := context.Background()

	scifi := seedGenre(t, db, "Sci-Fi", "sci-fi")
	title := seedTitle(t, db, "Dune", 2021, nil, *scifi)

	require.NoError(t, svc.Delete(ctx, "sci-fi"))

	// the title survives, only the genre link goes away
	var reloaded models.Title
	require.NoError(t, db.Preload("Genres").First(&reloaded, title.ID).Error)
	assert.Empty(t, reloaded.Genres)
}
