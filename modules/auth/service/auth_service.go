package service

import (
	"context"
	"strconv"
	"time"

	"dingdong-api/core/cache"
	"dingdong-api/core/config"
	"dingdong-api/core/constants"
	"dingdong-api/core/errors"
	"dingdong-api/core/utils"
	"dingdong-api/core/worker"
	"dingdong-api/modules/auth/dto"
)

// AuthService handles token issuance and email verification
type AuthService struct {
	cache  cache.CacheInterface
	worker worker.ClientInterface
}

// AuthServiceInterface defines the service contract
type AuthServiceInterface interface {
	CreateTokenPair(ctx context.Context, userID int64, isAdmin bool) (*dto.TokenResponse, *errors.AppError)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, *errors.AppError)
	SendVerificationEmail(ctx context.Context, email string) *errors.AppError
	VerifyEmail(ctx context.Context, email string, code string) *errors.AppError
}

// NewAuthService creates a new auth service
func NewAuthService(c cache.CacheInterface, w worker.ClientInterface) AuthServiceInterface {
	return &AuthService{cache: c, worker: w}
}

// CreateTokenPair issues an access and refresh token. The refresh token's
// random sub is stored in redis for its lifetime, so only the most recently
// issued refresh token is accepted.
func (s *AuthService) CreateTokenPair(ctx context.Context, userID int64, isAdmin bool) (*dto.TokenResponse, *errors.AppError) {
	cfg := config.Get()

	sub, err := utils.GenerateID()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate token sub", err)
	}

	accessTTL := time.Duration(cfg.JWT.AccessTokenTTL) * time.Second
	refreshTTL := time.Duration(cfg.JWT.RefreshTokenTTL) * time.Second

	accessToken, err := utils.GenerateToken(userID, isAdmin, constants.ScopeTokenAccess, "", accessTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to sign access token", err)
	}
	refreshToken, err := utils.GenerateToken(userID, isAdmin, constants.ScopeTokenRefresh, sub, refreshTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to sign refresh token", err)
	}

	key := s.cache.Key(constants.CacheDomainUser, strconv.FormatInt(userID, 10))
	if err := s.cache.Set(ctx, key, sub, refreshTTL); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to store refresh token", err)
	}

	return &dto.TokenResponse{Token: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	claims, err := utils.ValidateAndParseToken(req.RefreshToken)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "Refresh token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrDecodeToken, "Failed to decode refresh token", err)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrInvalidToken, "Wrong token scope", nil)
	}

	key := s.cache.Key(constants.CacheDomainUser, strconv.FormatInt(claims.UserID, 10))
	storedSub, cacheErr := s.cache.Get(ctx, key)
	if cacheErr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read refresh token", cacheErr)
	}
	if storedSub == "" || storedSub != claims.Sub {
		return nil, errors.NewAppError(errors.ErrInvalidToken, "Refresh token revoked", nil)
	}

	return s.CreateTokenPair(ctx, claims.UserID, claims.IsAdmin)
}

func (s *AuthService) SendVerificationEmail(ctx context.Context, email string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to generate verification code", err)
	}

	key := s.cache.Key(constants.CacheDomainEmail, email)
	if err := s.cache.Set(ctx, key, code, constants.VerificationCodeTTL); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to store verification code", err)
	}

	if err := s.worker.EnqueueVerificationEmail(email, code); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to queue verification email", err)
	}
	return nil
}

// VerifyEmail consumes the stored code on success; a second attempt with the
// same code fails.
func (s *AuthService) VerifyEmail(ctx context.Context, email string, code string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	key := s.cache.Key(constants.CacheDomainEmail, email)
	stored, err := s.cache.Get(ctx, key)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to read verification code", err)
	}
	if stored == "" || stored != code {
		return errors.NewAppError(errors.ErrEmailVerify, "Verification code does not match", nil)
	}

	if err := s.cache.Del(ctx, key); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to clear verification code", err)
	}
	return nil
}
