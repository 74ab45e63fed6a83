package router

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/middleware"
	"dingdong-api/modules/workspace/controller"
)

// WorkspaceRouter handles workspace routes
type WorkspaceRouter struct {
	WorkspaceController *controller.WorkspaceController
}

// NewWorkspaceRouter creates a new router
func NewWorkspaceRouter(workspaceController *controller.WorkspaceController) *WorkspaceRouter {
	return &WorkspaceRouter{
		WorkspaceController: workspaceController,
	}
}

// Setup registers workspace routes
func (r *WorkspaceRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	workspaceRoutes := v1.Group("/workspaces", mw.AuthMiddleware())
	workspaceRoutes.GET("", r.WorkspaceController.GetWorkspaces)
	workspaceRoutes.POST("", r.WorkspaceController.CreateWorkspace)
	workspaceRoutes.PATCH("/:workspace_id", r.WorkspaceController.UpdateWorkspace)
	workspaceRoutes.DELETE("/:workspace_id", r.WorkspaceController.DeleteWorkspace)
}
