package services

import (
	"context"
	"errors"
	"time"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/auth"
	"github.com/nucesstack/notestack/internal/pkg/logger"
)

// AdminStore is the account lookup surface authentication needs.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
}

// RefreshTokenStore persists refresh tokens across restarts.
type RefreshTokenStore interface {
	CreateToken(ctx context.Context, token string, adminID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllAdminTokens(ctx context.Context, adminID int64) error
}

// AuthService handles panel login, token refresh and logout.
type AuthService struct {
	adminRepo  AdminStore
	tokenRepo  RefreshTokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo AdminStore, tokenRepo RefreshTokenStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. The refresh
// token is returned separately so the controller can set it as a
// cookie rather than a body field.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, string, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			// Same failure as a wrong password; do not leak which one.
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(admin.Password, req.Password) {
		logger.Warn().Str("username", req.Username).Msg("Failed login attempt")
		return nil, "", apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, admin)
}

// Refresh rotates a refresh token: the presented token is revoked and
// a fresh pair is issued. A revoked or expired token yields nothing.
// Replaying an already rotated token revokes every active session of
// the account, since the token family has leaked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, string, error) {
	adminID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenRevoked) && adminID != 0 {
			logger.Warn().Int64("adminID", adminID).Msg("Revoked refresh token replayed, revoking all sessions")
			if revokeErr := s.tokenRepo.RevokeAllAdminTokens(ctx, adminID); revokeErr != nil {
				logger.Error().Err(revokeErr).Int64("adminID", adminID).Msg("Failed to revoke sessions after token replay")
			}
		}
		return nil, "", err
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, "", err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, "", err
	}

	return s.issueTokens(ctx, admin)
}

// Logout revokes the presented refresh token. An unknown token is not
// an error; the session is gone either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, admin *models.Admin) (*dto.TokenResponse, string, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(admin)
	if err != nil {
		logger.Error().Err(err).Int64("adminID", admin.ID).Msg("Failed to generate token pair")
		return nil, "", err
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, admin.ID, expiry); err != nil {
		return nil, "", err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn),
		Role:        string(admin.Role),
		Username:    admin.Username,
	}, refreshToken, nil
}
