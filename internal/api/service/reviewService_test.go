package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

func newReviewServiceTest(t *testing.T) (*gorm.DB, ReviewService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewTitleRepo(db),
	)
	return db, svc
}

func TestReviewCreate(t *testing.T) {
	db, svc := newReviewServiceTest(t)
	ctx := context.Background()

	title := seedTitle(t, db, "Dune", 2021, nil)
	bob := seedUser(t, db, "bob", "user")
	alice := seedUser(t, db, "alice", "user")

	t.Run("BindsAuthorFromCaller", func(t *testing.T) {
		resp, err := svc.Create(ctx, claimsFor(bob), title.ID, dto.CreateReviewDTO{
			Text:  "great",
			Score: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", resp.Author)
		assert.Equal(t, 7, resp.Score)
		assert.False(t, resp.PubDate.IsZero())
	})

	t.Run("SecondReviewSameTitle", func(t *testing.T) {
		_, err := svc.Create(ctx, claimsFor(bob), title.ID, dto.CreateReviewDTO{
			Text:  "changed my mind",
			Score: 3,
		})
		assert.ErrorIs(t, err, ErrReviewExists)
	})

	t.Run("OtherAuthorSameTitle", func(t *testing.T) {
		_, err := svc.Create(ctx, claimsFor(alice), title.ID, dto.CreateReviewDTO{
			Text:  "also great",
			Score: 9,
		})
		assert.NoError(t, err)
	})

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		for _, score := range []int{0, 11} {
			_, err := svc.Create(ctx, claimsFor(alice), title.ID, dto.CreateReviewDTO{
				Text:  "bad score",
				Score: score,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("UnknownTitle", func(t *testing.T) {
		_, err := svc.Create(ctx, claimsFor(bob), 9999, dto.CreateReviewDTO{
			Text:  "where",
			Score: 5,
		})
		assert.ErrorIs(t, err, ErrTitleNotFound)
	})
}

func TestReviewWritePolicy(t *testing.T) {
	db, svc := newReviewServiceTest(t)
	ctx := context.Background()

	title := seedTitle(t, db, "Dune", 2021, nil)
	author := seedUser(t, db, "author", "user")
	other := seedUser(t, db, "other", "user")
	moderator := seedUser(t, db, "mod", "moderator")
	admin := seedUser(t, db, "root", "admin")
	review := seedReview(t, db, title, author, 5)

	t.Run("AuthorCanUpdate", func(t *testing.T) {
		resp, err := svc.Update(ctx, claimsFor(author), title.ID, review.ID, dto.UpdateReviewDTO{
			Score: ptr(8),
		})
		require.NoError(t, err)
		assert.Equal(t, 8, resp.Score)
		assert.Equal(t, "seed review", resp.Text)
	})

	t.Run("OtherUserForbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, claimsFor(other), title.ID, review.ID, dto.UpdateReviewDTO{
			Text: ptr("hijack"),
		})
		assert.ErrorIs(t, err, ErrForbidden)

		err = svc.Delete(ctx, claimsFor(other), title.ID, review.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("ModeratorCanUpdate", func(t *testing.T) {
		_, err := svc.Update(ctx, claimsFor(moderator), title.ID, review.ID, dto.UpdateReviewDTO{
			Text: ptr("moderated"),
		})
		assert.NoError(t, err)
	})

	t.Run("AdminCanDelete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, claimsFor(admin), title.ID, review.ID))

		_, err := svc.GetByID(ctx, title.ID, review.ID)
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestReviewListNewestFirst(t *testing.T) {
	db, svc := newReviewServiceTest(t)
	ctx := context.Background()

	title := seedTitle(t, db, "Dune", 2021, nil)
	bob := seedUser(t, db, "bob", "user")
	alice := seedUser(t, db, "alice", "user")

	older := seedReview(t, db, title, bob, 5)
	newer := seedReview(t, db, title, alice, 9)
	base := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(older).Update("pub_date", base).Error)
	require.NoError(t, db.Model(newer).Update("pub_date", base.Add(time.Minute)).Error)

	resp, err := svc.ListByTitle(ctx, title.ID, dto.Pagination{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, newer.ID, resp.Data[0].ID)
	assert.Equal(t, older.ID, resp.Data[1].ID)
	assert.EqualValues(t, 2, resp.Total)
}

func TestReviewScopedToTitle(t *testing.T) {
	db, svc := newReviewServiceTest(t)
	ctx := context.Background()

	dune := seedTitle(t, db, "Dune", 2021, nil)
	solaris := seedTitle(t, db, "Solaris", 1972, nil)
	bob := seedUser(t, db, "bob", "user")
	review := seedReview(t, db, dune, bob, 7)

	// the review exists, but not under this title
	_, err := svc.GetByID(ctx, solaris.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
