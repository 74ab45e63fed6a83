package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"dingdong-api/core/constants"
	"dingdong-api/core/controller"
	"dingdong-api/core/errors"
	"dingdong-api/core/logger"
	"dingdong-api/core/utils"
	"dingdong-api/modules/chat/dto"
	"dingdong-api/modules/chat/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatController handles the room websocket endpoint
type ChatController struct {
	controller.BaseController
	ChatService service.ChatServiceInterface
}

// NewChatController creates a new controller
func NewChatController(svc service.ChatServiceInterface) *ChatController {
	return &ChatController{
		BaseController: controller.NewBaseController(),
		ChatService:    svc,
	}
}

func (c *ChatController) getUserIDFromContext(ctx echo.Context) (int64, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return 0, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims.UserID, nil
}

// Connect handles GET /chat/:room_id. It upgrades the connection, announces
// the user to the room, then relays every text frame as a room broadcast
// until the client disconnects.
func (c *ChatController) Connect(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	roomID := ctx.Param("room_id")
	if roomID == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid room id")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Failed to upgrade connection")
	}
	defer conn.Close()

	reqCtx := ctx.Request().Context()
	client, appErr := c.ChatService.JoinRoom(reqCtx, roomID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	go writeLoop(conn, client)

	broadcast := func(text string) {
		msg := &dto.ChatMessage{UserID: userID, RoomID: roomID, Message: text}
		if appErr := c.ChatService.Broadcast(reqCtx, msg); appErr != nil {
			logger.Error("ChatController:Connect", appErr.Err)
		}
	}

	broadcast(fmt.Sprintf("User %d connected to room - %s", userID, roomID))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var incoming dto.ChatMessage
		if err := json.Unmarshal(data, &incoming); err != nil {
			broadcast(string(data))
			continue
		}
		broadcast(incoming.Message)
	}

	c.ChatService.LeaveRoom(roomID, client)
	broadcast(fmt.Sprintf("User %d disconnected from room - %s", userID, roomID))
	return nil
}

func writeLoop(conn *websocket.Conn, client *service.Client) {
	for payload := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
