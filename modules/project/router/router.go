package router

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/middleware"
	"dingdong-api/modules/project/controller"
)

// ProjectRouter handles experiment project routes
type ProjectRouter struct {
	ProjectController *controller.ProjectController
}

// NewProjectRouter creates a new router
func NewProjectRouter(projectController *controller.ProjectController) *ProjectRouter {
	return &ProjectRouter{
		ProjectController: projectController,
	}
}

// Setup registers project routes
func (r *ProjectRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	workspaceProjects := v1.Group("/workspaces/:workspace_id/projects", mw.AuthMiddleware())
	workspaceProjects.GET("", r.ProjectController.GetProjects)
	workspaceProjects.POST("", r.ProjectController.CreateProject)

	projects := v1.Group("/projects", mw.AuthMiddleware())
	projects.POST("/join", r.ProjectController.JoinProject)
	projects.GET("/:project_id", r.ProjectController.GetProject)
	projects.PUT("/:project_id", r.ProjectController.UpdateProject)
	projects.DELETE("/:project_id", r.ProjectController.DeleteProject)
	projects.GET("/:project_id/participants", r.ProjectController.GetParticipants)
	projects.POST("/:project_id/participants/export", r.ProjectController.ExportParticipants)
	projects.PATCH("/:project_id/participants/:participant_id/attendance", r.ProjectController.UpdateAttendance)
	projects.DELETE("/:project_id/participants/:participant_id", r.ProjectController.DeleteParticipant)
}
