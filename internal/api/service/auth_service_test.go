package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"
)

// captureMailer hands each message body to the test over a channel, so the
// test can wait for the fire-and-forget send from Signup.
type captureMailer struct {
	bodies chan string
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.bodies <- body
	return nil
}

// waitForCode blocks until the signup goroutine delivered the email and
// returns the plaintext confirmation code from the body.
func (m *captureMailer) waitForCode(t *testing.T) string {
	t.Helper()
	select {
	case body := <-m.bodies:
		idx := strings.LastIndex(body, ": ")
		require.Greater(t, idx, 0, "no code in body %q", body)
		return strings.TrimSpace(body[idx+2:])
	case <-time.After(5 * time.Second):
		t.Fatal("confirmation email was never sent")
		return ""
	}
}

func newAuthService(t *testing.T) (AuthService, *captureMailer) {
	t.Helper()
	db := newTestDB(t)
	m := &captureMailer{bodies: make(chan string, 4)}
	cfg := &config.Config{
		JWTSecret: strings.Repeat("s", 32),
		JWTExpiry: time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(repository.NewUserRepository(db), m, logger, cfg), m
}

func TestSignupAndTokenExchange(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "user", user.Role)

	code := m.waitForCode(t)
	token, err := svc.IssueToken(ctx, "bob", code)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "user", claims.Role)
}

func TestIssueTokenWrongCode(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	m.waitForCode(t)

	_, err = svc.IssueToken(ctx, "bob", "not-the-code")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.IssueToken(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignupConflicts(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	m.waitForCode(t)

	t.Run("UsernameTaken", func(t *testing.T) {
		_, err := svc.Signup(ctx, "bob", "other@example.com")
		assert.ErrorIs(t, err, ErrNameInUse)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		_, err := svc.Signup(ctx, "robert", "bob@example.com")
		assert.ErrorIs(t, err, ErrEmailInUse)
	})
}

func TestSignupReservedUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), "me", "me@example.com")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResignupRegeneratesCode(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	first := m.waitForCode(t)

	// same username+email pair signs up again
	_, err = svc.Signup(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	second := m.waitForCode(t)
	require.NotEqual(t, first, second)

	_, err = svc.IssueToken(ctx, "bob", first)
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = svc.IssueToken(ctx, "bob", second)
	assert.NoError(t, err)
}

func TestCodeSurvivesTokenExchange(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	code := m.waitForCode(t)

	_, err = svc.IssueToken(ctx, "bob", code)
	require.NoError(t, err)

	// the code is only rotated by the next signup, not by use
	_, err = svc.IssueToken(ctx, "bob", code)
	assert.NoError(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
