package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
	"github.com/assetcare/asset-admin/internal/core/rbac"
)

// SettingsHandler exposes the global settings document. Reads are projected
// to the caller's role; writes stay admin-only behind the route gate.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Fields are typed int64 so a JSON string or null fails the bind outright
// instead of sliding through as a zero value.
type settingsRequest struct {
	UserBlockingPeriod int64 `json:"userBlockingPeriod" validate:"required,gt=0"`
	IdlePeriod         int64 `json:"idlePeriod" validate:"required,gt=0"`
	BackupInterval     int64 `json:"backupInterval" validate:"required,gt=0"`
	BackupCount        int64 `json:"backupCount" validate:"required,gt=0"`
}

// Get returns the settings fields visible to the caller's role.
//
// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	settings, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, rbac.ProjectSettings(settings, role))
}

// Update replaces the settings document.
//
// @Summary      Update settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      settingsRequest  true  "New settings"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	var req settingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), domain.Settings{
		UserBlockingPeriod: req.UserBlockingPeriod,
		IdlePeriod:         req.IdlePeriod,
		BackupInterval:     req.BackupInterval,
		BackupCount:        req.BackupCount,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, rbac.ProjectSettings(updated, role))
}
