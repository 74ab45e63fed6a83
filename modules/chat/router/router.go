package router

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/middleware"
	"dingdong-api/modules/chat/controller"
)

// ChatRouter handles chat routes
type ChatRouter struct {
	ChatController *controller.ChatController
}

// NewChatRouter creates a new router
func NewChatRouter(chatController *controller.ChatController) *ChatRouter {
	return &ChatRouter{
		ChatController: chatController,
	}
}

// Setup registers chat routes. Browsers cannot set headers on websocket
// dials, so the auth middleware also accepts the token as a query parameter
// here.
func (r *ChatRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	chatRoutes := v1.Group("/chat", mw.AuthMiddleware())
	chatRoutes.GET("/:room_id", r.ChatController.Connect)
}
