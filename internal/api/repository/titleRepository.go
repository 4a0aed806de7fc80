package repository

import (
	"context"
	"database/sql"
	"fmt"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TitleRepo struct {
	db *gorm.DB
}

func NewTitleRepo(db *gorm.DB) *TitleRepo {
	return &TitleRepo{db: db}
}

// List applies the supported filters: exact category slug, exact genre slug,
// name substring and exact year.
func (r *TitleRepo) List(ctx context.Context, filters dto.TitleFilters, limit, offset int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	// fresh statement per query, count and find must not share state
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Title{})
		if filters.Category != "" {
			q = q.Joins("JOIN categories ON categories.id = titles.category_id").
				Where("categories.slug = ?", filters.Category)
		}
		if filters.Genre != "" {
			q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
				Joins("JOIN genres ON genres.id = title_genres.genre_id").
				Where("genres.slug = ?", filters.Genre)
		}
		if filters.Name != "" {
			q = q.Where("titles.name LIKE ?", "%"+filters.Name+"%")
		}
		if filters.Year != nil {
			q = q.Where("titles.year = ?", *filters.Year)
		}
		return q
	}

	if err := base().Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := base().
		Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *TitleRepo) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).Preload("Category").Preload("Genres").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TitleRepo) Create(ctx context.Context, t *models.Title) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

// Update writes the title row only; genre links change through ReplaceGenres.
func (r *TitleRepo) Update(ctx context.Context, t *models.Title) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

// ReplaceGenres swaps the full genre association set.
func (r *TitleRepo) ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(t).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	t.Genres = genres
	return nil
}

// Delete removes the title; reviews and their comments go with it through
// the FK cascades.
func (r *TitleRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AverageScore computes the derived rating at read time. Returns nil when the
// title has no reviews: no opinions is not the same as a low score.
func (r *TitleRepo) AverageScore(ctx context.Context, titleID int64) (*float64, error) {
	var avg sql.NullFloat64
	row := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// AverageScores is the batched variant for list views, one grouped query for
// the whole page. Titles without reviews are absent from the map.
func (r *TitleRepo) AverageScores(ctx context.Context, titleIDs []int64) (map[int64]float64, error) {
	ratings := make(map[int64]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return ratings, nil
	}

	var rows []struct {
		TitleID int64
		Avg     float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, AVG(score) as avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		ratings[row.TitleID] = row.Avg
	}
	return ratings, nil
}
