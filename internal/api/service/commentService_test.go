package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/repository"
)

func newCommentServiceTest(t *testing.T) (*gorm.DB, CommentService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewReviewRepository(db),
	)
	return db, svc
}

func TestCommentCreate(t *testing.T) {
	db, svc := newCommentServiceTest(t)
	ctx := context.Background()

	title := seedTitle(t, db, "Dune", 2021, nil)
	bob := seedUser(t, db, "bob", "user")
	review := seedReview(t, db, title, bob, 7)

	t.Run("UnderReview", func(t *testing.T) {
		resp, err := svc.Create(ctx, claimsFor(bob), title.ID, review.ID, dto.CreateCommentDTO{
			Text: "agreed",
		})
		require.NoError(t, err)
		assert.Equal(t, "agreed", resp.Text)
		assert.Equal(t, "bob", resp.Author)
	})

	t.Run("UnknownReview", func(t *testing.T) {
		_, err := svc.Create(ctx, claimsFor(bob), title.ID, 9999, dto.CreateCommentDTO{
			Text: "lost",
		})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("ReviewUnderWrongTitle", func(t *testing.T) {
		solaris := seedTitle(t, db, "Solaris", 1972, nil)
		_, err := svc.Create(ctx, claimsFor(bob), solaris.ID, review.ID, dto.CreateCommentDTO{
			Text: "misfiled",
		})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestCommentWritePolicy(t *testing.T) {
	db, svc := newCommentServiceTest(t)
	ctx := context.Background()

	title := seedTitle(t, db, "Dune", 2021, nil)
	author := seedUser(t, db, "author", "user")
	other := seedUser(t, db, "other", "user")
	moderator := seedUser(t, db, "mod", "moderator")
	review := seedReview(t, db, title, author, 7)
	comment := seedComment(t, db, review, author)

	t.Run("AuthorCanUpdate", func(t *testing.T) {
		resp, err := svc.Update(ctx, claimsFor(author), title.ID, review.ID, comment.ID, dto.UpdateCommentDTO{
			Text: "edited",
		})
		require.NoError(t, err)
		assert.Equal(t, "edited", resp.Text)
	})

	t.Run("OtherUserForbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, claimsFor(other), title.ID, review.ID, comment.ID, dto.UpdateCommentDTO{
			Text: "hijack",
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("ModeratorCanDelete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, claimsFor(moderator), title.ID, review.ID, comment.ID))

		_, err := svc.GetByID(ctx, title.ID, review.ID, comment.ID)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestCommentList(t *testing.T) {
	db, svc := newCommentServiceTest(t)
	ctx := context.Background()

	title := seedTitle(t, db, "Dune", 2021, nil)
	bob := seedUser(t, db, "bob", "user")
	review := seedReview(t, db, title, bob, 7)
	seedComment(t, db, review, bob)
	seedComment(t, db, review, bob)

	resp, err := svc.ListByReview(ctx, title.ID, review.ID, dto.Pagination{})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.EqualValues(t, 2, resp.Total)
}
