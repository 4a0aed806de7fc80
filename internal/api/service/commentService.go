package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/repository"
)

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, p dto.Pagination) (*dto.PaginatedCommentResponse, error)
	GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, caller *Claims, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, caller *Claims, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, caller *Claims, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, p dto.Pagination) (*dto.PaginatedCommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	p = p.Normalize()
	comments, total, err := s.commentRepo.GetByReview(ctx, reviewID, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.CommentFromModel(&comments[i]))
	}
	resp := dto.NewPaginatedCommentResponse(responses, p.Page, p.PageSize, total)
	return &resp, nil
}

func (s *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	resp := dto.CommentFromModel(comment)
	return &resp, nil
}

// Create binds the author from the token and the parent review from the URL
// path. The review must belong to the title in the path, anything else 404s.
func (s *commentService) Create(ctx context.Context, caller *Claims, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: caller.UserID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, reviewID, comment.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.CommentFromModel(comment)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, caller *Claims, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.loadForWrite(ctx, caller, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Text = req.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	resp := dto.CommentFromModel(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, caller *Claims, titleID, reviewID, commentID int64) error {
	if _, err := s.loadForWrite(ctx, caller, titleID, reviewID, commentID); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, reviewID, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) loadForWrite(ctx context.Context, caller *Claims, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if !policy.CanModifyAuthored(policy.ParseRole(caller.Role), caller.UserID, comment.AuthorID) {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *commentService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
