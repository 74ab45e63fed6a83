package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"dingdong-api/core/constants"
	"dingdong-api/core/controller"
	"dingdong-api/core/errors"
	"dingdong-api/core/params"
	"dingdong-api/core/utils"
	"dingdong-api/modules/project/dto"
	"dingdong-api/modules/project/service"
)

// ProjectController handles experiment project HTTP requests
type ProjectController struct {
	controller.BaseController
	ProjectService service.ProjectServiceInterface
}

// NewProjectController creates a new controller
func NewProjectController(svc service.ProjectServiceInterface) *ProjectController {
	return &ProjectController{
		BaseController: controller.NewBaseController(),
		ProjectService: svc,
	}
}

func (c *ProjectController) getUserIDFromContext(ctx echo.Context) (int64, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return 0, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims.UserID, nil
}

func pathID(ctx echo.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}

// GetProjects handles GET /workspaces/:workspace_id/projects
func (c *ProjectController) GetProjects(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	workspaceID, err := pathID(ctx, "workspace_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid workspace id")
	}

	projects, appErr := c.ProjectService.GetProjects(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), workspaceID, params.Parse(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, projects, "Projects retrieved")
}

// CreateProject handles POST /workspaces/:workspace_id/projects
func (c *ProjectController) CreateProject(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	workspaceID, err := pathID(ctx, "workspace_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid workspace id")
	}

	var req dto.CreateProjectRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	created, appErr := c.ProjectService.CreateProject(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), workspaceID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, created, "Project created")
}

// GetProject handles GET /projects/:project_id
func (c *ProjectController) GetProject(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	projectID, err := pathID(ctx, "project_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid project id")
	}

	project, appErr := c.ProjectService.GetProject(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), projectID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, project, "Project retrieved")
}

// UpdateProject handles PUT /projects/:project_id
func (c *ProjectController) UpdateProject(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	projectID, err := pathID(ctx, "project_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid project id")
	}

	var req dto.UpdateProjectRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	project, appErr := c.ProjectService.UpdateProject(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), projectID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, project, "Project updated")
}

// DeleteProject handles DELETE /projects/:project_id
func (c *ProjectController) DeleteProject(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	projectID, err := pathID(ctx, "project_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid project id")
	}

	if appErr := c.ProjectService.DeleteProject(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), projectID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Project deleted")
}

// GetParticipants handles GET /projects/:project_id/participants
func (c *ProjectController) GetParticipants(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	projectID, err := pathID(ctx, "project_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid project id")
	}

	participants, appErr := c.ProjectService.GetParticipants(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), projectID, params.Parse(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, participants, "Participants retrieved")
}

// UpdateAttendance handles PATCH /projects/:project_id/participants/:participant_id/attendance
func (c *ProjectController) UpdateAttendance(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	projectID, err := pathID(ctx, "project_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid project id")
	}
	participantID, err := pathID(ctx, "participant_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant id")
	}

	var req dto.UpdateAttendanceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.ProjectService.UpdateAttendance(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), projectID, participantID, req.AttendanceStatus); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Attendance updated")
}

// DeleteParticipant handles DELETE /projects/:project_id/participants/:participant_id
func (c *ProjectController) DeleteParticipant(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	projectID, err := pathID(ctx, "project_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid project id")
	}
	participantID, err := pathID(ctx, "participant_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant id")
	}

	if appErr := c.ProjectService.DeleteParticipant(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), projectID, participantID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Participant deleted")
}

// JoinProject handles POST /projects/join
func (c *ProjectController) JoinProject(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.JoinProjectRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.ParticipantCode == "" || req.TimeslotID == 0 || req.ExperimentDate == "" {
		return c.BadRequest(errors.ErrInvalidInput, "participant_code, timeslot_id and experiment_date are required")
	}

	if appErr := c.ProjectService.JoinProject(ctx.Request().Context(), userID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Joined project")
}

// ExportParticipants handles POST /projects/:project_id/participants/export
func (c *ProjectController) ExportParticipants(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	projectID, err := pathID(ctx, "project_id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid project id")
	}

	export, appErr := c.ProjectService.ExportParticipants(ctx.Request().Context(), userID,
		ctx.QueryParam("project_type"), projectID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, export, "Export ready")
}
