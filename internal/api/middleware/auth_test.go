package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	args := m.Called(ctx, username, confirmationCode)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func authedRouter(authService service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(authService)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("MissingHeader", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		w := get(authedRouter(mockAuth), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockAuth.AssertNotCalled(t, "ValidateToken")
	})

	t.Run("BadFormat", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		w := get(authedRouter(mockAuth), "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockAuth.AssertNotCalled(t, "ValidateToken")
	})

	t.Run("InvalidToken", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("ValidateToken", "bad-token").Return(nil, service.ErrInvalidToken)

		w := get(authedRouter(mockAuth), "Bearer bad-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockAuth.AssertExpectations(t)
	})

	t.Run("ValidToken", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		claims := &service.Claims{UserID: "user-123", Username: "bob", Role: "user"}
		mockAuth.On("ValidateToken", "good-token").Return(claims, nil)

		w := get(authedRouter(mockAuth), "Bearer good-token")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "bob")
		mockAuth.AssertExpectations(t)
	})
}

func TestRequireAdmin(t *testing.T) {
	token := func(role string) (*MockAuthService, string) {
		mockAuth := new(MockAuthService)
		claims := &service.Claims{UserID: "user-123", Username: "someone", Role: role}
		mockAuth.On("ValidateToken", "token").Return(claims, nil)
		return mockAuth, "Bearer token"
	}

	t.Run("UserForbidden", func(t *testing.T) {
		mockAuth, header := token("user")
		w := get(authedRouter(mockAuth, RequireAdmin()), header)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ModeratorForbidden", func(t *testing.T) {
		mockAuth, header := token("moderator")
		w := get(authedRouter(mockAuth, RequireAdmin()), header)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		mockAuth, header := token("admin")
		w := get(authedRouter(mockAuth, RequireAdmin()), header)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
