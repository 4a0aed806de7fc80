package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"reviewhub/internal/api/auth"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
)

// Claims is the payload of an access token: identity plus role, enough for
// the policy checks without a user lookup per request.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	mailer    mailer.Mailer
	logger    *slog.Logger
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, m mailer.Mailer, logger *slog.Logger, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		mailer:    m,
		logger:    logger,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// Signup registers a user (or reuses the row when the same username+email
// pair signs up again), stores a fresh confirmation-code hash and emails the
// plaintext code. Every attempt invalidates the previous code.
func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if err := validation.Username(username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	code := auth.NewConfirmationCode()
	codeHash, err := auth.HashConfirmationCode(code)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, ErrNameInUse
		}
		// same pair again: regenerate and resend
		user.ConfirmationCode = codeHash
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, ErrEmailInUse
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &models.User{
			Username:         username,
			Email:            email,
			Role:             "user",
			ConfirmationCode: codeHash,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			// lost a concurrent signup race on username or email
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrNameInUse
			}
			return nil, err
		}
	default:
		return nil, err
	}

	// fire-and-forget: a failed send must not undo the signup, re-signup
	// with the same pair issues a new code
	go func() {
		body := fmt.Sprintf("Hello %s,\n\nYour confirmation code: %s\n", user.Username, code)
		if err := s.mailer.Send(user.Email, "Your reviewhub confirmation code", body); err != nil {
			s.logger.Error("failed to send confirmation email", "username", user.Username, "error", err)
		}
	}()

	return user, nil
}

// IssueToken exchanges a confirmation code for a signed access token. The
// code stays valid until the next signup regenerates it.
func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := auth.VerifyConfirmationCode(user.ConfirmationCode, confirmationCode); err != nil {
		return "", ErrInvalidCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
