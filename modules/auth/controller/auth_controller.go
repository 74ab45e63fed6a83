package controller

import (
	"strings"

	"github.com/labstack/echo/v4"

	"dingdong-api/core/controller"
	"dingdong-api/core/errors"
	"dingdong-api/modules/auth/dto"
	"dingdong-api/modules/auth/service"
)

// AuthController handles token and email verification HTTP requests
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

// NewAuthController creates a new controller
func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

// RefreshToken handles POST /auth/refresh
func (c *AuthController) RefreshToken(ctx echo.Context) error {
	var req dto.RefreshTokenRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return c.BadRequest(errors.ErrInvalidInput, "refresh_token is required")
	}

	tokens, appErr := c.AuthService.RefreshToken(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, tokens, "Token refreshed")
}

// SendVerificationEmail handles POST /auth/email/send
func (c *AuthController) SendVerificationEmail(ctx echo.Context) error {
	var req dto.SendEmailRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return c.BadRequest(errors.ErrInvalidInput, "A valid email is required")
	}

	if appErr := c.AuthService.SendVerificationEmail(ctx.Request().Context(), email); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Verification email sent")
}

// VerifyEmail handles POST /auth/email/verify
func (c *AuthController) VerifyEmail(ctx echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Email == "" || req.Code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "email and code are required")
	}

	if appErr := c.AuthService.VerifyEmail(ctx.Request().Context(), req.Email, req.Code); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Email verified")
}
