package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/repositories"
	"sisdna-portal/pkg/config"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, payload dto.RefreshDTO) error
	CurrentUser(ctx context.Context, userID uint64) (*dto.SessionUserDTO, error)
}

type AuthService struct {
	userRepository  repositories.UserRepositoryInterface
	cacheRepository repositories.CacheRepositoryInterface
	jwtService      service.JWTService
	cfg             *config.AuthConfig
	logger          *zap.Logger
}

func NewAuthService(
	userRepository repositories.UserRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepository:  userRepository,
		cacheRepository: cacheRepository,
		jwtService:      jwtService,
		cfg:             cfg,
		logger:          logger,
	}
}

// Login verifies credentials and issues a token pair. Failed attempts are
// counted in redis per email; reaching the limit locks the account for the
// configured window. A wrong email and a wrong password return the same
// error.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", payload.Email)
	attemptsStr, _ := s.cacheRepository.Get(ctx, attemptsKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		return nil, apperrors.ErrAccountLocked
	}

	user, err := s.userRepository.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, attemptsKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.registerFailedAttempt(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.Email)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, err
	}

	if err := s.cacheRepository.Del(ctx, attemptsKey); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.String("email", payload.Email), zap.Error(err))
	}

	s.logger.Info("user logged in", zap.Uint64("userId", user.ID))
	return &dto.LoginResponseDTO{
		User: dto.SessionUserDTO{Email: user.Email, Nombre: user.Nombre},
		Tokens: dto.TokenPairDTO{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		},
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	if revoked, _ := s.cacheRepository.Get(ctx, revokedTokenKey(payload.RefreshToken)); revoked != "" {
		return nil, apperrors.ErrUnauthorized
	}

	// The account may have been removed since the token was issued.
	user, err := s.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.Email)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, err
	}
	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}

// Logout revokes a refresh token. The access token stays valid until it
// expires; what matters is that the long-lived credential can no longer be
// exchanged.
func (s *AuthService) Logout(ctx context.Context, payload dto.RefreshDTO) error {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil || !claims.IsRefreshToken {
		// Already unusable; nothing to revoke.
		return nil
	}

	key := revokedTokenKey(payload.RefreshToken)
	if err := s.cacheRepository.Set(ctx, key, "1", s.jwtService.GetRefreshTokenTTL()); err != nil {
		s.logger.Error("failed to revoke refresh token", zap.Error(err))
		return err
	}
	s.logger.Info("user logged out", zap.Uint64("userId", claims.UserID))
	return nil
}

func revokedTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked_refresh:" + hex.EncodeToString(sum[:])
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint64) (*dto.SessionUserDTO, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionUserDTO{Email: user.Email, Nombre: user.Nombre}, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, attemptsKey string) {
	if _, err := s.cacheRepository.Incr(ctx, attemptsKey); err != nil {
		s.logger.Warn("failed to count login attempt", zap.Error(err))
		return
	}
	if _, err := s.cacheRepository.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
		s.logger.Warn("failed to set lockout expiry", zap.Error(err))
	}
}
