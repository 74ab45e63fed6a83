package router

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/middleware"
	"dingdong-api/modules/user/controller"
)

// UserRouter handles account routes
type UserRouter struct {
	UserController *controller.UserController
}

// NewUserRouter creates a new router
func NewUserRouter(userController *controller.UserController) *UserRouter {
	return &UserRouter{
		UserController: userController,
	}
}

// Setup registers account routes
func (r *UserRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	userRoutes := v1.Group("/users")
	userRoutes.POST("", r.UserController.CreateUser)
	userRoutes.POST("/login", r.UserController.Login)
	userRoutes.POST("/login/google", r.UserController.OauthLogin)
	userRoutes.GET("", r.UserController.GetUserList, mw.AuthMiddleware(), mw.AdminMiddleware())
}
