package auth

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/cache"
	"dingdong-api/core/middleware"
	"dingdong-api/core/worker"
	"dingdong-api/modules/auth/controller"
	"dingdong-api/modules/auth/router"
	"dingdong-api/modules/auth/service"
)

var authService service.AuthServiceInterface

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, c cache.CacheInterface, w worker.ClientInterface, mw *middleware.Middleware) {
	authService = service.NewAuthService(c, w)
	ctrl := controller.NewAuthController(authService)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}

// GetService exposes the auth service to other modules.
func GetService() service.AuthServiceInterface {
	return authService
}
