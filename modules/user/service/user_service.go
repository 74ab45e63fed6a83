package service

import (
	"context"
	"math/rand"
	"strings"

	"dingdong-api/core/constants"
	"dingdong-api/core/database"
	"dingdong-api/core/errors"
	"dingdong-api/core/params"
	"dingdong-api/core/utils"
	authservice "dingdong-api/modules/auth/service"
	"dingdong-api/modules/user/dto"
	"dingdong-api/modules/user/entity"
	"dingdong-api/modules/user/mapper"
	"dingdong-api/modules/user/repository"
)

const oauthProviderGoogle = "google"

// UserService handles account business logic
type UserService struct {
	repo   repository.UserRepositoryInterface
	auth   authservice.AuthServiceInterface
	google GoogleProfileFetcher
}

// UserServiceInterface defines the service contract
type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	GetUserList(ctx context.Context, qp params.QueryParams) (*dto.UserListResponse, *errors.AppError)
	OauthLogin(ctx context.Context, req *dto.OauthLoginRequest) (*dto.LoginResponse, *errors.AppError)
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, auth authservice.AuthServiceInterface, google GoogleProfileFetcher) UserServiceInterface {
	return &UserService{repo: repo, auth: auth, google: google}
}

func pickProfileColor() string {
	return constants.ProfileColors[rand.Intn(len(constants.ProfileColors))]
}

func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	email := strings.TrimSpace(strings.ToLower(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || !strings.Contains(email, "@") || username == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Email and username are required", nil)
	}
	if req.Password1 == "" || req.Password1 != req.Password2 {
		return nil, errors.NewAppError(errors.ErrUserPasswordMismatch, "Passwords do not match", nil)
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check email", err)
	} else if existing != nil {
		return nil, errors.NewAppError(errors.ErrUserDuplicate, "Email already registered", nil)
	}
	if existing, err := s.repo.GetByUsername(ctx, username); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check username", err)
	} else if existing != nil {
		return nil, errors.NewAppError(errors.ErrUserDuplicate, "Username already taken", nil)
	}

	hash, err := utils.HashPassword(req.Password1)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	created, err := s.repo.Create(ctx, &entity.User{
		Email:        email,
		Password:     hash,
		Username:     username,
		ProfileColor: pickProfileColor(),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrUserDuplicate, "Email or username already taken", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create user", err)
	}

	return mapper.ToUserResponse(created), nil
}

func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load user", err)
	}
	if user == nil || user.Password == "" || !utils.ComparePassword(user.Password, req.Password) {
		return nil, errors.NewAppError(errors.ErrUserNotFound, "No user matches the given credentials", nil)
	}

	tokens, appErr := s.auth.CreateTokenPair(ctx, user.ID, user.IsAdmin)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.LoginResponse{Token: tokens.Token, RefreshToken: tokens.RefreshToken}, nil
}

func (s *UserService) GetUserList(ctx context.Context, qp params.QueryParams) (*dto.UserListResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	users, total, err := s.repo.GetUsers(ctx, qp.PageSize, qp.Offset())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list users", err)
	}

	return &dto.UserListResponse{
		Users: mapper.ToUserResponseList(users),
		Total: total,
		Page:  qp.PageNumber,
		Size:  qp.PageSize,
	}, nil
}

// OauthLogin links or creates the local account matching the Google profile
// and issues a token pair for it.
func (s *UserService) OauthLogin(ctx context.Context, req *dto.OauthLoginRequest) (*dto.LoginResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	profile, err := s.google.Fetch(ctx, req.Code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Google login failed", err)
	}
	if profile.Email == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Google account has no email", nil)
	}

	user, appErr := s.resolveOauthUser(ctx, profile)
	if appErr != nil {
		return nil, appErr
	}

	tokens, appErr := s.auth.CreateTokenPair(ctx, user.ID, user.IsAdmin)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.LoginResponse{Token: tokens.Token, RefreshToken: tokens.RefreshToken}, nil
}

func (s *UserService) resolveOauthUser(ctx context.Context, profile *GoogleProfile) (*entity.User, *errors.AppError) {
	link, err := s.repo.GetOauth(ctx, oauthProviderGoogle, profile.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load oauth link", err)
	}
	if link != nil {
		user, err := s.repo.GetByID(ctx, link.UserID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load user", err)
		}
		if user == nil {
			return nil, errors.NewAppError(errors.ErrUserNotFound, "Linked user no longer exists", nil)
		}
		return user, nil
	}

	email := strings.ToLower(profile.Email)
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load user", err)
	}
	if user == nil {
		username := profile.Name
		if username == "" {
			username = strings.Split(email, "@")[0]
		}
		user, err = s.repo.Create(ctx, &entity.User{
			Email:        email,
			Username:     username,
			ProfileColor: pickProfileColor(),
		})
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create user", err)
		}
	}

	if err := s.repo.CreateOauth(ctx, &entity.UserOauth{
		UserID:            user.ID,
		Provider:          oauthProviderGoogle,
		ProviderAccountID: profile.ID,
	}); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to link oauth account", err)
	}
	return user, nil
}
