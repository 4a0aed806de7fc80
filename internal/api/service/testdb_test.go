package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reviewhub/database"
	"reviewhub/internal/api/models"
)

// newTestDB opens a private in-memory sqlite database with foreign keys
// enabled, so the FK cascades behave like postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedGenre(t *testing.T, db *gorm.DB, name, slug string) *models.Genre {
	t.Helper()
	genre := &models.Genre{Name: name, Slug: slug}
	require.NoError(t, db.Create(genre).Error)
	return genre
}

func seedTitle(t *testing.T, db *gorm.DB, name string, year int, category *models.Category, genres ...models.Genre) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: year, Genres: genres}
	if category != nil {
		title.CategoryID = &category.ID
	}
	require.NoError(t, db.Create(title).Error)
	return title
}

func seedReview(t *testing.T, db *gorm.DB, title *models.Title, author *models.User, score int) *models.Review {
	t.Helper()
	review := &models.Review{
		TitleID:  title.ID,
		AuthorID: author.ID,
		Text:     "seed review",
		Score:    score,
	}
	require.NoError(t, db.Create(review).Error)
	return review
}

func seedComment(t *testing.T, db *gorm.DB, review *models.Review, author *models.User) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		ReviewID: review.ID,
		AuthorID: author.ID,
		Text:     "seed comment",
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func claimsFor(user *models.User) *Claims {
	return &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
