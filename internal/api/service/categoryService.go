package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, p dto.Pagination) (*dto.PaginatedCategoryResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Update(ctx context.Context, slug string, req dto.UpdateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo *repository.CategoryRepo
}

func NewCategoryService(categoryRepo *repository.CategoryRepo) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, p dto.Pagination) (*dto.PaginatedCategoryResponse, error) {
	p = p.Normalize()
	categories, total, err := s.categoryRepo.GetAll(ctx, search, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, dto.CategoryFromModel(c))
	}
	resp := dto.NewPaginatedCategoryResponse(responses, p.Page, p.PageSize, total)
	return &resp, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, slug string, req dto.UpdateCategoryDTO) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
