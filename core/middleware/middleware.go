package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"dingdong-api/core/constants"
	"dingdong-api/core/controller"
	apperrors "dingdong-api/core/errors"
	"dingdong-api/core/utils"
)

// Middleware bundles the route guards handed to module routers.
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the access token and stores its claims on the context.
// Tokens arrive as "Authorization: Bearer <token>" or, for websocket upgrades
// where custom headers are unavailable, as a "token" query parameter.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := extractToken(c)
			if tokenString == "" {
				return controller.NewErrorResponse(401, apperrors.ErrUnauthorized, "missing authorization token")
			}

			claims, err := utils.ValidateAndParseToken(tokenString)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return controller.NewErrorResponse(401, apperrors.ErrTokenExpired, "token expired")
				}
				return controller.NewErrorResponse(401, apperrors.ErrInvalidToken, "invalid token")
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(401, apperrors.ErrInvalidToken, "wrong token scope")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// AdminMiddleware requires AuthMiddleware to have run first.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
			if !ok || !claims.IsAdmin {
				return controller.NewErrorResponse(403, apperrors.ErrUnauthorized, "admin access required")
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.QueryParam("token")
}

// TokenData returns the authenticated claims set by AuthMiddleware.
func TokenData(c echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok
}
