package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/api/handler"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/rbac"
)

// Gate enforces the role capability table for one resource kind and verb.
func Gate(kind domain.Kind, verb rbac.Verb) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(handler.CtxRole).(domain.Role)
			if !ok || !rbac.Allowed(role, kind, verb) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
