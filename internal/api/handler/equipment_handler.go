package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// EquipmentHandler handles equipment installed on objects.
type EquipmentHandler struct {
	service ports.EquipmentService
}

func NewEquipmentHandler(service ports.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

type equipmentRequest struct {
	ObjectID   int64  `json:"objectId" validate:"required"`
	SystemType string `json:"systemType" validate:"required"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Location   string `json:"location"`
	CategoryID int64  `json:"categoryId"`
}

type equipmentResponse struct {
	ID         int64     `json:"id"`
	ObjectID   int64     `json:"objectId"`
	SystemType string    `json:"systemType"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	Location   string    `json:"location"`
	CategoryID int64     `json:"categoryId"`
	State      int       `json:"state"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	CreatedBy  int64     `json:"createdBy"`
	UpdatedBy  int64     `json:"updatedBy"`
}

func toEquipmentResponse(e *domain.Equipment) equipmentResponse {
	return equipmentResponse{
		ID:         e.ID,
		ObjectID:   e.ObjectID,
		SystemType: e.SystemType,
		Brand:      e.Brand,
		Model:      e.Model,
		Location:   e.Location,
		CategoryID: e.CategoryID,
		State:      int(e.State),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		CreatedBy:  e.CreatedBy,
		UpdatedBy:  e.UpdatedBy,
	}
}

// Create registers an equipment unit.
//
// @Summary      Create equipment
// @Tags         equipments
// @Accept       json
// @Produce      json
// @Param        body  body      equipmentRequest  true  "Equipment details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /equipments [post]
func (h *EquipmentHandler) Create(c echo.Context) error {
	var req equipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.EquipmentInput{
		ObjectID:   req.ObjectID,
		SystemType: req.SystemType,
		Brand:      req.Brand,
		Model:      req.Model,
		Location:   req.Location,
		CategoryID: req.CategoryID,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toEquipmentResponse(result))
}

// List returns active equipment, optionally narrowed by a filter query.
//
// @Summary      List equipment
// @Tags         equipments
// @Produce      json
// @Param        filter  query     string  false  "Filter predicate, e.g. `objectId eq 1`"
// @Success      200     {object}  envelope
// @Router       /equipments [get]
func (h *EquipmentHandler) List(c echo.Context) error {
	results, err := h.service.List(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return err
	}

	items := make([]equipmentResponse, 0, len(results))
	for _, e := range results {
		items = append(items, toEquipmentResponse(e))
	}
	return respondList(c, items)
}

// ByID returns a single active equipment unit.
//
// @Summary      Get equipment
// @Tags         equipments
// @Produce      json
// @Param        id   path      int  true  "Equipment id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /equipments/{id} [get]
func (h *EquipmentHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, toEquipmentResponse(result))
}

// Update modifies an active equipment unit.
//
// @Summary      Update equipment
// @Tags         equipments
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Equipment id"
// @Param        body  body      equipmentRequest  true  "Updated equipment"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /equipments/{id} [put]
func (h *EquipmentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req equipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Update(c.Request().Context(), id, ports.EquipmentInput{
		ObjectID:   req.ObjectID,
		SystemType: req.SystemType,
		Brand:      req.Brand,
		Model:      req.Model,
		Location:   req.Location,
		CategoryID: req.CategoryID,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toEquipmentResponse(result))
}

// Delete retires an equipment unit. Unknown ids are answered as a no-op.
//
// @Summary      Delete equipment
// @Tags         equipments
// @Produce      json
// @Param        id   path      int  true  "Equipment id"
// @Success      200  {object}  envelope
// @Router       /equipments/{id} [delete]
func (h *EquipmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, actor); err != nil {
		return err
	}
	return respondNull(c)
}
