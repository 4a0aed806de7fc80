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

type UserService interface {
	List(ctx context.Context, search string, p dto.Pagination) (*dto.PaginatedUserResponse, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserDTO) (*dto.UserResponse, error)
	Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, p dto.Pagination) (*dto.PaginatedUserResponse, error) {
	p = p.Normalize()
	users, total, err := s.userRepo.List(ctx, search, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.UserFromModel(&users[i]))
	}
	resp := dto.NewPaginatedUserResponse(responses, p.Page, p.PageSize, total)
	return &resp, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.UserFromModel(user)
	return &resp, nil
}

// Create is the admin path: the user is provisioned directly, role included,
// no confirmation-code exchange involved.
func (s *userService) Create(ctx context.Context, req dto.CreateUserDTO) (*dto.UserResponse, error) {
	if err := validation.Username(req.Username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}
	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	resp := dto.UserFromModel(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	applyProfileFields(user, req.Email, req.FirstName, req.LastName, req.Bio)
	if req.Role != nil {
		if !policy.Valid(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *req.Role)
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	resp := dto.UserFromModel(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.UserFromModel(user)
	return &resp, nil
}

// UpdateProfile is the /users/me path. The DTO carries no role field, so a
// caller can never change their own role here.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	applyProfileFields(user, req.Email, req.FirstName, req.LastName, req.Bio)

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	resp := dto.UserFromModel(user)
	return &resp, nil
}

func applyProfileFields(user *models.User, email, firstName, lastName, bio *string) {
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}
