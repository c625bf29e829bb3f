package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

// bindAndValidate binds the request body into req and runs struct validation.
// Bind failures keep echo's 400; validation failures surface as ErrValidation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return nil
}
