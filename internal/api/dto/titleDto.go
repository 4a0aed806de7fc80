package dto

import "reviewhub/internal/api/models"

// CreateTitleDTO is the write projection: category and genres arrive as slugs.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required,slug"`
	Genre       []string `json:"genre" binding:"omitempty,dive,slug"`
}

// UpdateTitleDTO for PATCH /api/v1/titles/:title_id, every field optional.
// A non-nil Genre replaces the whole genre set.
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" binding:"omitempty,slug"`
	Genre       *[]string `json:"genre" binding:"omitempty,dive,slug"`
}

// TitleResponse is the read projection: embedded category/genres and the
// derived rating, nil while the title has no reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func TitleFromModel(t *models.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	return resp
}

// TitleFilters for GET /api/v1/titles query params.
type TitleFilters struct {
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Name     string `form:"name"`
	Year     *int   `form:"year"`
}

type PaginatedTitleResponse struct {
	Data       []TitleResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedTitleResponse(data []TitleResponse, page, pageSize int, total int64) PaginatedTitleResponse {
	return PaginatedTitleResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}
