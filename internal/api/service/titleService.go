package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
)

type TitleService interface {
	List(ctx context.Context, filters dto.TitleFilters, p dto.Pagination) (*dto.PaginatedTitleResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    *repository.TitleRepo
	categoryRepo *repository.CategoryRepo
	genreRepo    *repository.GenreRepo
}

func NewTitleService(titleRepo *repository.TitleRepo, categoryRepo *repository.CategoryRepo, genreRepo *repository.GenreRepo) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filters dto.TitleFilters, p dto.Pagination) (*dto.PaginatedTitleResponse, error) {
	p = p.Normalize()
	titles, total, err := s.titleRepo.List(ctx, filters, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	ratings, err := s.titleRepo.AverageScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *float64
		if avg, ok := ratings[titles[i].ID]; ok {
			rating = &avg
		}
		responses = append(responses, dto.TitleFromModel(&titles[i], rating))
	}
	resp := dto.NewPaginatedTitleResponse(responses, p.Page, p.PageSize, total)
	return &resp, nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	rating, err := s.titleRepo.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.TitleFromModel(title, rating)
	return &resp, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := validation.Year(req.Year); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	title.Category = category

	// fresh title, no reviews yet
	resp := dto.TitleFromModel(title, nil)
	return &resp, nil
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validation.Year(*req.Year); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	rating, err := s.titleRepo.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.TitleFromModel(title, rating)
	return &resp, nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(uniqueStrings(slugs)) {
		return nil, fmt.Errorf("%w: unknown genre in %v", ErrInvalidInput, slugs)
	}
	return genres, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
