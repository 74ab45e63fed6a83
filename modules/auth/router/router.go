package router

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/middleware"
	"dingdong-api/modules/auth/controller"
)

// AuthRouter handles auth routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

// NewAuthRouter creates a new router
func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers auth routes; all of them are public.
func (r *AuthRouter) Setup(e *echo.Echo, _ *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.POST("/refresh", r.AuthController.RefreshToken)
	authRoutes.POST("/email/send", r.AuthController.SendVerificationEmail)
	authRoutes.POST("/email/verify", r.AuthController.VerifyEmail)
}
