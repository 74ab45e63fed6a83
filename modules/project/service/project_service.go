package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"dingdong-api/core/constants"
	"dingdong-api/core/database"
	"dingdong-api/core/errors"
	"dingdong-api/core/params"
	"dingdong-api/core/storage"
	"dingdong-api/core/utils"
	"dingdong-api/modules/project/dto"
	"dingdong-api/modules/project/entity"
	"dingdong-api/modules/project/mapper"
	"dingdong-api/modules/project/repository"
	workspaceservice "dingdong-api/modules/workspace/service"
)

const dateLayout = "2006-01-02"

// ProjectService handles experiment project business logic
type ProjectService struct {
	repo      repository.ProjectRepositoryInterface
	workspace workspaceservice.WorkspaceServiceInterface
	storage   storage.StorageInterface
}

// ProjectServiceInterface defines the service contract
type ProjectServiceInterface interface {
	GetProjects(ctx context.Context, userID int64, projectType string, workspaceID int64, qp params.QueryParams) ([]dto.ProjectListItemResponse, *errors.AppError)
	GetProject(ctx context.Context, userID int64, projectType string, projectID int64) (*dto.ProjectResponse, *errors.AppError)
	CreateProject(ctx context.Context, userID int64, projectType string, workspaceID int64, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, *errors.AppError)
	UpdateProject(ctx context.Context, userID int64, projectType string, projectID int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, *errors.AppError)
	DeleteProject(ctx context.Context, userID int64, projectType string, projectID int64) *errors.AppError
	GetParticipants(ctx context.Context, userID int64, projectType string, projectID int64, qp params.QueryParams) ([]dto.ParticipantResponse, *errors.AppError)
	UpdateAttendance(ctx context.Context, userID int64, projectType string, projectID int64, participantID int64, status string) *errors.AppError
	DeleteParticipant(ctx context.Context, userID int64, projectType string, projectID int64, participantID int64) *errors.AppError
	JoinProject(ctx context.Context, userID int64, req *dto.JoinProjectRequest) *errors.AppError
	ExportParticipants(ctx context.Context, userID int64, projectType string, projectID int64) (*dto.ExportParticipantsResponse, *errors.AppError)
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepositoryInterface, workspace workspaceservice.WorkspaceServiceInterface, store storage.StorageInterface) ProjectServiceInterface {
	return &ProjectService{repo: repo, workspace: workspace, storage: store}
}

// checkProjectType accepts only the experiment type. The survey type exists
// in the API surface but has no implementation behind it, so it is rejected
// explicitly instead of returning empty results.
func checkProjectType(projectType string) *errors.AppError {
	switch entity.ProjectType(projectType) {
	case entity.ProjectTypeExperiment:
		return nil
	case entity.ProjectTypeSurvey:
		return errors.NewAppError(errors.ErrProjectTypeNotSupported, "Survey projects are not supported yet", nil)
	default:
		return errors.NewAppError(errors.ErrInvalidInput, "Unknown project type", nil)
	}
}

// getOwnedProject loads the project and verifies the caller owns its parent
// workspace.
func (s *ProjectService) getOwnedProject(ctx context.Context, userID int64, projectID int64) (*entity.ExperimentProject, *errors.AppError) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load project", err)
	}
	if project == nil {
		return nil, errors.NewAppError(errors.ErrProjectNotFound, "Project not found", nil)
	}

	if _, appErr := s.workspace.GetOwnedWorkspace(ctx, userID, project.WorkspaceID); appErr != nil {
		if appErr.Code == errors.ErrWorkspaceAccessDenied {
			return nil, errors.NewAppError(errors.ErrProjectAccessDenied, "Project belongs to another user", nil)
		}
		return nil, appErr
	}
	return project, nil
}

func (s *ProjectService) GetProjects(ctx context.Context, userID int64, projectType string, workspaceID int64, qp params.QueryParams) ([]dto.ProjectListItemResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return nil, appErr
	}
	if _, appErr := s.workspace.GetOwnedWorkspace(ctx, userID, workspaceID); appErr != nil {
		return nil, appErr
	}

	projects, _, err := s.repo.GetProjects(ctx, workspaceID, qp.Search, qp.PageSize, qp.Offset())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list projects", err)
	}
	return mapper.ToProjectListResponse(projects), nil
}

func (s *ProjectService) GetProject(ctx context.Context, userID int64, projectType string, projectID int64) (*dto.ProjectResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return nil, appErr
	}

	project, appErr := s.getOwnedProject(ctx, userID, projectID)
	if appErr != nil {
		return nil, appErr
	}

	slots, err := s.repo.GetTimeslots(ctx, projectID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load timeslots", err)
	}
	return mapper.ToProjectResponse(project, slots), nil
}

func (s *ProjectService) CreateProject(ctx context.Context, userID int64, projectType string, workspaceID int64, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return nil, appErr
	}
	if _, appErr := s.workspace.GetOwnedWorkspace(ctx, userID, workspaceID); appErr != nil {
		return nil, appErr
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || len([]rune(title)) > constants.MaxProjectTitleLen {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Project title must be 1 to 20 characters", nil)
	}

	code, err := utils.GenerateParticipantCode()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate participant code", err)
	}

	created, err := s.repo.CreateProject(ctx, workspaceID, title, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create project", err)
	}
	return &dto.CreateProjectResponse{ID: created.ID}, nil
}

// UpdateProject applies a partial update. Absent fields keep their values.
// Timeslot entries without an id are created; entries with an id must resolve
// to a timeslot of this project, whose start/end/capacity are overwritten.
func (s *ProjectService) UpdateProject(ctx context.Context, userID int64, projectType string, projectID int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return nil, appErr
	}

	project, appErr := s.getOwnedProject(ctx, userID, projectID)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := applyProjectPatch(project, req); appErr != nil {
		return nil, appErr
	}

	patches := make([]repository.TimeslotPatch, 0, len(req.Timeslots))
	for _, ts := range req.Timeslots {
		patches = append(patches, repository.TimeslotPatch{
			ID:              ts.ID,
			StartTime:       ts.StartTime,
			EndTime:         ts.EndTime,
			MaxParticipants: ts.MaxParticipants,
		})
	}

	if err := s.repo.UpdateProject(ctx, project, patches); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return nil, errors.NewAppError(errors.ErrTimeslotNotFound, "Timeslot not found", nil)
		case database.IsUniqueViolation(err):
			return nil, errors.NewAppError(errors.ErrTimeslotAlreadyExists, "A timeslot with this time range already exists", err)
		default:
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update project", err)
		}
	}

	slots, err := s.repo.GetTimeslots(ctx, projectID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load timeslots", err)
	}
	return mapper.ToProjectResponse(project, slots), nil
}

func applyProjectPatch(project *entity.ExperimentProject, req *dto.UpdateProjectRequest) *errors.AppError {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len([]rune(title)) > constants.MaxProjectTitleLen {
			return errors.NewAppError(errors.ErrInvalidInput, "Project title must be 1 to 20 characters", nil)
		}
		project.Title = title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.IsPublic != nil {
		project.IsPublic = *req.IsPublic
	}
	if req.StartDate != nil {
		parsed, appErr := parseDate(*req.StartDate)
		if appErr != nil {
			return appErr
		}
		project.StartDate = parsed
	}
	if req.EndDate != nil {
		parsed, appErr := parseDate(*req.EndDate)
		if appErr != nil {
			return appErr
		}
		project.EndDate = parsed
	}
	if req.ExcludedDates != nil {
		for _, d := range *req.ExcludedDates {
			if _, appErr := parseDate(d); appErr != nil {
				return appErr
			}
		}
		project.ExcludedDates = entity.ExcludedDates(*req.ExcludedDates)
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 0 {
			return errors.NewAppError(errors.ErrInvalidInput, "max_participants must not be negative", nil)
		}
		project.MaxParticipants = *req.MaxParticipants
	}
	if req.ExperimentType != nil {
		switch entity.ExperimentType(*req.ExperimentType) {
		case entity.ExperimentTypeOnline, entity.ExperimentTypeOffline:
			project.ExperimentType = entity.ExperimentType(*req.ExperimentType)
		default:
			return errors.NewAppError(errors.ErrInvalidInput, "experiment_type must be online or offline", nil)
		}
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	return nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, userID int64, projectType string, projectID int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := checkProjectType(projectType); appErr != nil {
		return appErr
	}
	if _, appErr := s.getOwnedProject(ctx, userID, projectID); appErr != nil {
		return appErr
	}

	if err := s.repo.SoftDeleteProject(ctx, projectID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete project", err)
	}
	return nil
}

func parseDate(value string) (*time.Time, *errors.AppError) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Dates must use the YYYY-MM-DD format", err)
	}
	return &parsed, nil
}
