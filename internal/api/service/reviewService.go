package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, p dto.Pagination) (*dto.PaginatedReviewResponse, error)
	GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, caller *Claims, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, caller *Claims, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, caller *Claims, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  *repository.TitleRepo
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo *repository.TitleRepo) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, p dto.Pagination) (*dto.PaginatedReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	p = p.Normalize()
	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, dto.ReviewFromModel(&reviews[i]))
	}
	resp := dto.NewPaginatedReviewResponse(responses, p.Page, p.PageSize, total)
	return &resp, nil
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

// Create binds author and title server-side: the author is the caller, the
// title comes from the URL path. The second review by the same author for
// the same title dies on the unique index, not on a lookup.
func (s *reviewService) Create(ctx context.Context, caller *Claims, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := validation.Score(req.Score); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: caller.UserID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// reload for the author association
	review, err := s.reviewRepo.GetByID(ctx, titleID, review.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, caller *Claims, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.loadForWrite(ctx, caller, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Score != nil {
		if err := validation.Score(*req.Score); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, caller *Claims, titleID, reviewID int64) error {
	if _, err := s.loadForWrite(ctx, caller, titleID, reviewID); err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

// loadForWrite fetches the review and runs the object-level policy check:
// author, moderator or admin.
func (s *reviewService) loadForWrite(ctx context.Context, caller *Claims, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if !policy.CanModifyAuthored(policy.ParseRole(caller.Role), caller.UserID, review.AuthorID) {
		return nil, ErrForbidden
	}
	return review, nil
}

func (s *reviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}
