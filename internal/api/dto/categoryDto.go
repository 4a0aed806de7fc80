package dto

import "reviewhub/internal/api/models"

// CreateCategoryDTO for POST /api/v1/categories
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,slug"`
}

// UpdateCategoryDTO for PATCH /api/v1/categories/:slug. A new slug re-keys the
// category.
type UpdateCategoryDTO struct {
	Name *string `json:"name" binding:"omitempty,max=256"`
	Slug *string `json:"slug" binding:"omitempty,slug"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{
		Name: c.Name,
		Slug: c.Slug,
	}
}

type PaginatedCategoryResponse struct {
	Data       []CategoryResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
}

func NewPaginatedCategoryResponse(data []CategoryResponse, page, pageSize int, total int64) PaginatedCategoryResponse {
	return PaginatedCategoryResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}
