package chat

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/cache"
	"dingdong-api/core/middleware"
	"dingdong-api/modules/chat/controller"
	"dingdong-api/modules/chat/router"
	"dingdong-api/modules/chat/service"
)

// Init initializes the chat module and registers routes
func Init(e *echo.Echo, c cache.CacheInterface, mw *middleware.Middleware) {
	broker := service.NewRedisBroker(c)
	svc := service.NewChatService(broker)
	ctrl := controller.NewChatController(svc)
	rtr := router.NewChatRouter(ctrl)

	rtr.Setup(e, mw)
}
