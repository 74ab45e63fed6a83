package user

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/database"
	"dingdong-api/core/middleware"
	"dingdong-api/modules/auth"
	"dingdong-api/modules/user/controller"
	"dingdong-api/modules/user/repository"
	"dingdong-api/modules/user/router"
	"dingdong-api/modules/user/service"
)

// Init initializes the user module and registers routes. The auth module must
// be initialized first.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo, auth.GetService(), service.NewGoogleProfileFetcher())
	ctrl := controller.NewUserController(svc)
	rtr := router.NewUserRouter(ctrl)

	rtr.Setup(e, mw)
}
