package workspace

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/database"
	"dingdong-api/core/middleware"
	"dingdong-api/modules/workspace/controller"
	"dingdong-api/modules/workspace/repository"
	"dingdong-api/modules/workspace/router"
	"dingdong-api/modules/workspace/service"
)

var workspaceService service.WorkspaceServiceInterface

// Init initializes the workspace module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewWorkspaceRepository(db)
	workspaceService = service.NewWorkspaceService(repo)
	ctrl := controller.NewWorkspaceController(workspaceService)
	rtr := router.NewWorkspaceRouter(ctrl)

	rtr.Setup(e, mw)
}

// GetService exposes the workspace service to other modules.
func GetService() service.WorkspaceServiceInterface {
	return workspaceService
}
