package service

import "errors"

// Sentinels shared across the resource services. Handlers own the mapping to
// HTTP statuses, services never see a gin.Context.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")

	ErrNameInUse    = errors.New("username already in use")
	ErrEmailInUse   = errors.New("email already in use")
	ErrSlugInUse    = errors.New("slug already in use")
	ErrInvalidCode  = errors.New("invalid confirmation code")
	ErrInvalidToken = errors.New("invalid token")

	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrReviewExists = errors.New("review for this title already exists")
)
