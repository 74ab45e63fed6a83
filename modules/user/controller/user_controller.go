package controller

import (
	"github.com/labstack/echo/v4"

	"dingdong-api/core/controller"
	"dingdong-api/core/errors"
	"dingdong-api/core/params"
	"dingdong-api/modules/user/dto"
	"dingdong-api/modules/user/service"
)

// UserController handles account HTTP requests
type UserController struct {
	controller.BaseController
	UserService service.UserServiceInterface
}

// NewUserController creates a new controller
func NewUserController(svc service.UserServiceInterface) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		UserService:    svc,
	}
}

// CreateUser handles POST /users
func (c *UserController) CreateUser(ctx echo.Context) error {
	var req dto.CreateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	user, appErr := c.UserService.CreateUser(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, user, "User created")
}

// Login handles POST /users/login
func (c *UserController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	tokens, appErr := c.UserService.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, tokens, "Login successful")
}

// OauthLogin handles POST /users/login/google
func (c *UserController) OauthLogin(ctx echo.Context) error {
	var req dto.OauthLoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "code is required")
	}

	tokens, appErr := c.UserService.OauthLogin(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, tokens, "Login successful")
}

// GetUserList handles GET /users (admin only)
func (c *UserController) GetUserList(ctx echo.Context) error {
	qp := params.Parse(ctx)

	users, appErr := c.UserService.GetUserList(ctx.Request().Context(), qp)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, users, "Users retrieved")
}
