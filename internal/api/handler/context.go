package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

// Context keys populated by the auth middleware.
const (
	CtxUserID = "userId"
	CtxRole   = "role"
)

// ctxIdentity extracts the authenticated caller injected by the Auth
// middleware and fast-fails with 401 when the middleware did not run.
func ctxIdentity(c echo.Context) (userID int64, role domain.Role, err error) {
	userID, okID := c.Get(CtxUserID).(int64)
	role, okRole := c.Get(CtxRole).(domain.Role)
	if !okID || !okRole {
		return 0, 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// pathID parses the numeric :id route parameter. A missing or non-numeric id
// never reaches a repository; it is a route-shape failure.
func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}
