package repository

import (
	"context"
	"database/sql"

	"dingdong-api/core/database"
	"dingdong-api/core/logger"
	"dingdong-api/modules/user/entity"
)

// UserRepository handles user database operations
type UserRepository struct {
	DB database.Database
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{DB: db}
}

// UserRepositoryInterface defines the repository contract
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUsers(ctx context.Context, limit int, offset int) ([]entity.User, int, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetOauth(ctx context.Context, provider string, accountID string) (*entity.UserOauth, error)
	CreateOauth(ctx context.Context, oauth *entity.UserOauth) error
}

const userColumns = `id, email, password, username, phone_num, profile_color, is_admin, is_deleted, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND NOT is_deleted`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND NOT is_deleted`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByEmail", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND NOT is_deleted`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByUsername", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, limit int, offset int) ([]entity.User, int, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT is_deleted
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	var users []entity.User
	if err := r.DB.SelectContext(ctx, &users, query, limit, offset); err != nil {
		logger.Error("UserRepository:GetUsers", err)
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE NOT is_deleted`
	if err := r.DB.GetContext(ctx, &total, countQuery); err != nil {
		logger.Error("UserRepository:GetUsers", err)
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, password, username, profile_color, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `
	`

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Email, user.Password, user.Username, user.ProfileColor, user.IsAdmin)
	if err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("UserRepository:Create", err)
		}
		return nil, err
	}
	return &created, nil
}

func (r *UserRepository) GetOauth(ctx context.Context, provider string, accountID string) (*entity.UserOauth, error) {
	query := `
		SELECT id, user_id, provider, provider_account_id, created_at, updated_at
		FROM user_oauth
		WHERE provider = $1 AND provider_account_id = $2
	`

	var oauth entity.UserOauth
	err := r.DB.GetContext(ctx, &oauth, query, provider, accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetOauth", err)
		return nil, err
	}
	return &oauth, nil
}

func (r *UserRepository) CreateOauth(ctx context.Context, oauth *entity.UserOauth) error {
	query := `
		INSERT INTO user_oauth (user_id, provider, provider_account_id)
		VALUES ($1, $2, $3)
	`
	if err := r.DB.ExecContext(ctx, query, oauth.UserID, oauth.Provider, oauth.ProviderAccountID); err != nil {
		logger.Error("UserRepository:CreateOauth", err)
		return err
	}
	return nil
}
