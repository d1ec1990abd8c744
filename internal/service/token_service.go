package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pingboard/backend/internal/models"
	"github.com/pingboard/backend/internal/repository"
	"github.com/pingboard/backend/internal/tokenstore"
	"github.com/pingboard/backend/internal/utils"
	"github.com/pingboard/backend/pkg/logger"
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// TokenService issues JWT pairs and refreshes access tokens. Refresh tokens
// are tracked by jti in the store so they stay revocable until expiry.
type TokenService struct {
	userRepo      *repository.UserRepository
	store         tokenstore.Store
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenService(
	userRepo *repository.UserRepository,
	store tokenstore.Store,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) *TokenService {
	return &TokenService{
		userRepo:      userRepo,
		store:         store,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// IssueTokens returns a fresh access/refresh pair for user.
func (s *TokenService) IssueTokens(ctx context.Context, user *models.User) (access, refresh string, err error) {
	access, err = utils.GenerateAccessToken(user, s.jwtSecret, s.accessExpiry)
	if err != nil {
		return "", "", err
	}

	refresh, jti, err := utils.GenerateRefreshToken(user, s.jwtSecret, s.refreshExpiry)
	if err != nil {
		return "", "", err
	}

	if err := s.store.Save(ctx, jti, user.ID, s.refreshExpiry); err != nil {
		logger.Log.Error("Failed to record refresh token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", "", err
	}

	logger.Log.Debug("Issued token pair",
		zap.String("user_id", user.ID.String()),
		zap.String("jti", jti),
	)

	return access, refresh, nil
}

// Refresh validates a refresh token and mints a new access token. The refresh
// token itself stays valid until its TTL or an explicit revoke.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret, utils.TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	known, err := s.store.Exists(ctx, claims.ID)
	if err != nil {
		logger.Log.Error("Refresh token lookup failed", zap.Error(err))
		return "", err
	}
	if !known {
		logger.Log.Warn("Refresh rejected: token revoked or expired",
			zap.String("user_id", claims.UserID.String()),
			zap.String("jti", claims.ID),
		)
		return "", ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", ErrInvalidRefreshToken
	}

	return utils.GenerateAccessToken(user, s.jwtSecret, s.accessExpiry)
}

// Revoke invalidates a refresh token ahead of its TTL.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret, utils.TokenTypeRefresh)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	if err := s.store.Revoke(ctx, claims.ID); err != nil {
		return err
	}

	logger.Log.Info("Refresh token revoked",
		zap.String("user_id", claims.UserID.String()),
		zap.String("jti", claims.ID),
	)
	return nil
}
