package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/api/handler"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// HeaderToken is the custom request header carrying the raw access token.
// The scheme is not a standard bearer header; clients send the bare token.
const HeaderToken = "Authorization-Header-Custom"

// Auth validates the access token and injects the caller identity into the
// request context.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderToken)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			identity, err := auth.Validate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(handler.CtxUserID, identity.UserID)
			c.Set(handler.CtxRole, identity.Role)

			return next(c)
		}
	}
}
