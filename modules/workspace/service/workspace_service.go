package service

import (
	"context"
	"database/sql"
	"strings"

	"dingdong-api/core/constants"
	"dingdong-api/core/errors"
	"dingdong-api/modules/workspace/dto"
	"dingdong-api/modules/workspace/entity"
	"dingdong-api/modules/workspace/mapper"
	"dingdong-api/modules/workspace/repository"
)

// WorkspaceService handles workspace business logic
type WorkspaceService struct {
	repo repository.WorkspaceRepositoryInterface
}

// WorkspaceServiceInterface defines the service contract
type WorkspaceServiceInterface interface {
	GetWorkspaces(ctx context.Context, userID int64) ([]dto.WorkspaceResponse, *errors.AppError)
	CreateWorkspace(ctx context.Context, userID int64, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, *errors.AppError)
	UpdateWorkspace(ctx context.Context, userID int64, workspaceID int64, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, *errors.AppError)
	DeleteWorkspace(ctx context.Context, userID int64, workspaceID int64) *errors.AppError
	GetOwnedWorkspace(ctx context.Context, userID int64, workspaceID int64) (*entity.Workspace, *errors.AppError)
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(repo repository.WorkspaceRepositoryInterface) WorkspaceServiceInterface {
	return &WorkspaceService{repo: repo}
}

func (s *WorkspaceService) GetWorkspaces(ctx context.Context, userID int64) ([]dto.WorkspaceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	workspaces, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list workspaces", err)
	}
	return mapper.ToWorkspaceResponseList(workspaces), nil
}

func (s *WorkspaceService) CreateWorkspace(ctx context.Context, userID int64, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	title := strings.TrimSpace(req.Title)
	if title == "" || len([]rune(title)) > constants.MaxWorkspaceTitleLen {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Workspace title must be 1 to 20 characters", nil)
	}

	created, err := s.repo.Create(ctx, userID, title)
	if err != nil {
		if err == repository.ErrWorkspaceLimit {
			return nil, errors.NewAppError(errors.ErrTooManyWorkspaces, "Workspace limit reached", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create workspace", err)
	}
	return mapper.ToWorkspaceResponse(created), nil
}

// UpdateWorkspace applies a partial update. A present order_no moves the
// workspace and shifts the siblings between the old and new positions by one,
// so the owner's ordering stays dense. The repository performs the whole
// update under row locks, with every input validated before anything is
// written, so an invalid order_no leaves the title untouched.
func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, userID int64, workspaceID int64, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	workspace, appErr := s.GetOwnedWorkspace(ctx, userID, workspaceID)
	if appErr != nil {
		return nil, appErr
	}

	var title *string
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" || len([]rune(trimmed)) > constants.MaxWorkspaceTitleLen {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Workspace title must be 1 to 20 characters", nil)
		}
		title = &trimmed
	}

	if title == nil && req.OrderNo == nil {
		return mapper.ToWorkspaceResponse(workspace), nil
	}

	updated, err := s.repo.Update(ctx, userID, workspaceID, title, req.OrderNo)
	if err != nil {
		switch err {
		case repository.ErrOrderOutOfRange:
			return nil, errors.NewAppError(errors.ErrWrongOrderNo, "Order number out of range", nil)
		case sql.ErrNoRows:
			return nil, errors.NewAppError(errors.ErrWorkspaceNotFound, "Workspace not found", nil)
		default:
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update workspace", err)
		}
	}
	return mapper.ToWorkspaceResponse(updated), nil
}

func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, userID int64, workspaceID int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.GetOwnedWorkspace(ctx, userID, workspaceID); appErr != nil {
		return appErr
	}

	if err := s.repo.SoftDelete(ctx, userID, workspaceID); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewAppError(errors.ErrWorkspaceNotFound, "Workspace not found", nil)
		}
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete workspace", err)
	}
	return nil
}

// GetOwnedWorkspace loads the workspace and rejects callers who do not own it.
func (s *WorkspaceService) GetOwnedWorkspace(ctx context.Context, userID int64, workspaceID int64) (*entity.Workspace, *errors.AppError) {
	workspace, err := s.repo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load workspace", err)
	}
	if workspace == nil {
		return nil, errors.NewAppError(errors.ErrWorkspaceNotFound, "Workspace not found", nil)
	}
	if workspace.UserID != userID {
		return nil, errors.NewAppError(errors.ErrWorkspaceAccessDenied, "Workspace belongs to another user", nil)
	}
	return workspace, nil
}
