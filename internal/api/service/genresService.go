package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

type GenreService interface {
	List(ctx context.Context, search string, p dto.Pagination) (*dto.PaginatedGenreResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.GenreResponse, error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Update(ctx context.Context, slug string, req dto.UpdateGenreDTO) (*dto.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo *repository.GenreRepo
}

func NewGenreService(genreRepo *repository.GenreRepo) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, p dto.Pagination) (*dto.PaginatedGenreResponse, error) {
	p = p.Normalize()
	genres, total, err := s.genreRepo.GetAll(ctx, search, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		responses = append(responses, dto.GenreFromModel(g))
	}
	resp := dto.NewPaginatedGenreResponse(responses, p.Page, p.PageSize, total)
	return &resp, nil
}

func (s *genreService) GetBySlug(ctx context.Context, slug string) (*dto.GenreResponse, error) {
	genre, err := s.genreRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	genre := &models.Genre{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) Update(ctx context.Context, slug string, req dto.UpdateGenreDTO) (*dto.GenreResponse, error) {
	genre, err := s.genreRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		genre.Name = *req.Name
	}
	if req.Slug != nil {
		genre.Slug = *req.Slug
	}

	if err := s.genreRepo.Update(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
