package dto

import "reviewhub/internal/api/models"

// CreateGenreDTO for POST /api/v1/genres
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,slug"`
}

// UpdateGenreDTO for PATCH /api/v1/genres/:slug
type UpdateGenreDTO struct {
	Name *string `json:"name" binding:"omitempty,max=256"`
	Slug *string `json:"slug" binding:"omitempty,slug"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		Name: g.Name,
		Slug: g.Slug,
	}
}

type PaginatedGenreResponse struct {
	Data       []GenreResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedGenreResponse(data []GenreResponse, page, pageSize int, total int64) PaginatedGenreResponse {
	return PaginatedGenreResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}
