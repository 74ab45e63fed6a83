package project

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/database"
	"dingdong-api/core/middleware"
	"dingdong-api/core/storage"
	"dingdong-api/modules/project/controller"
	"dingdong-api/modules/project/repository"
	"dingdong-api/modules/project/router"
	"dingdong-api/modules/project/service"
	"dingdong-api/modules/workspace"
)

// Init initializes the project module and registers routes. The workspace
// module must be initialized first.
func Init(e *echo.Echo, db database.Database, store storage.StorageInterface, mw *middleware.Middleware) {
	repo := repository.NewProjectRepository(db)
	svc := service.NewProjectService(repo, workspace.GetService(), store)
	ctrl := controller.NewProjectController(svc)
	rtr := router.NewProjectRouter(ctrl)

	rtr.Setup(e, mw)
}
