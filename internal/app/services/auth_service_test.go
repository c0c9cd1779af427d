package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/auth"
)

func authFixture(t *testing.T) (*AuthService, *fakeTokenStore) {
	t.Helper()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	admins := &fakeAdminStore{admins: []*models.Admin{
		{ID: 1, Username: "root", Password: hash, Role: models.RoleAdmin},
	}}
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "notestack-test",
	})
	return NewAuthService(admins, tokens, jwtService), tokens
}

func TestLogin(t *testing.T) {
	svc, tokens := authFixture(t)

	resp, refresh, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "root", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.Role)
	assert.NotEmpty(t, refresh)

	// The refresh token must be persisted for later rotation.
	adminID, _, err := tokens.GetTokenByValue(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adminID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := authFixture(t)

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "root", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := authFixture(t)

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "ghost", Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, tokens := authFixture(t)

	_, refresh, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "root", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	resp, newRefresh, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, refresh, newRefresh)

	// The old token is revoked and cannot be replayed.
	_, _, err = tokens.GetTokenByValue(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, _, err = svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshReplayRevokesAllSessions(t *testing.T) {
	svc, tokens := authFixture(t)

	_, refresh, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "root", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, newRefresh, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	// Replaying the rotated token kills the whole session family,
	// including the token issued by the legitimate rotation.
	_, _, err = svc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, _, err = tokens.GetTokenByValue(context.Background(), newRefresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _ := authFixture(t)

	_, _, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogout(t *testing.T) {
	svc, tokens := authFixture(t)

	_, refresh, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "root", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), refresh))
	_, _, err = tokens.GetTokenByValue(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// Logging out twice, or with no cookie at all, is fine.
	require.NoError(t, svc.Logout(context.Background(), refresh))
	require.NoError(t, svc.Logout(context.Background(), ""))
}
