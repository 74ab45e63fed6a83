package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"dingdong-api/core/constants"
	"dingdong-api/core/controller"
	"dingdong-api/core/errors"
	"dingdong-api/core/utils"
	"dingdong-api/modules/workspace/dto"
	"dingdong-api/modules/workspace/service"
)

// WorkspaceController handles workspace HTTP requests
type WorkspaceController struct {
	controller.BaseController
	WorkspaceService service.WorkspaceServiceInterface
}

// NewWorkspaceController creates a new controller
func NewWorkspaceController(svc service.WorkspaceServiceInterface) *WorkspaceController {
	return &WorkspaceController{
		BaseController:   controller.NewBaseController(),
		WorkspaceService: svc,
	}
}

func (c *WorkspaceController) getUserIDFromContext(ctx echo.Context) (int64, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return 0, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims.UserID, nil
}

// GetWorkspaces handles GET /workspaces
func (c *WorkspaceController) GetWorkspaces(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	workspaces, appErr := c.WorkspaceService.GetWorkspaces(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, workspaces, "Workspaces retrieved")
}

// CreateWorkspace handles POST /workspaces
func (c *WorkspaceController) CreateWorkspace(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateWorkspaceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	workspace, appErr := c.WorkspaceService.CreateWorkspace(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, workspace, "Workspace created")
}

// UpdateWorkspace handles PATCH /workspaces/:workspace_id
func (c *WorkspaceController) UpdateWorkspace(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	workspaceID, err := strconv.ParseInt(ctx.Param("workspace_id"), 10, 64)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid workspace id")
	}

	var req dto.UpdateWorkspaceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	workspace, appErr := c.WorkspaceService.UpdateWorkspace(ctx.Request().Context(), userID, workspaceID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, workspace, "Workspace updated")
}

// DeleteWorkspace handles DELETE /workspaces/:workspace_id
func (c *WorkspaceController) DeleteWorkspace(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	workspaceID, err := strconv.ParseInt(ctx.Param("workspace_id"), 10, 64)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid workspace id")
	}

	if appErr := c.WorkspaceService.DeleteWorkspace(ctx.Request().Context(), userID, workspaceID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Workspace deleted")
}
