package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// ObjectHandler handles the tracked-site catalog.
type ObjectHandler struct {
	service ports.ObjectService
}

func NewObjectHandler(service ports.ObjectService) *ObjectHandler {
	return &ObjectHandler{service: service}
}

type objectRequest struct {
	Name             string  `json:"name" validate:"required"`
	RegionID         int64   `json:"regionId" validate:"required"`
	District         string  `json:"district"`
	OrganizationName string  `json:"organizationName"`
	ResourceIDs      []int64 `json:"resourceIds"`
}

type objectResponse struct {
	ID               int64                 `json:"id"`
	Name             string                `json:"name"`
	RegionID         int64                 `json:"regionId"`
	District         string                `json:"district"`
	OrganizationName string                `json:"organizationName"`
	State            int                   `json:"state"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	CreatedBy        int64                 `json:"createdBy"`
	UpdatedBy        int64                 `json:"updatedBy"`
	Region           *domain.Region        `json:"region,omitempty"`
	Resources        []domain.FileResource `json:"resources,omitempty"`
}

// toObjectResponse builds the wire shape. expand=false is the nested form
// embedded in user responses, which carries the bare record only.
func toObjectResponse(r *ports.ObjectResult, expand bool) objectResponse {
	resp := objectResponse{
		ID:               r.Object.ID,
		Name:             r.Object.Name,
		RegionID:         r.Object.RegionID,
		District:         r.Object.District,
		OrganizationName: r.Object.OrganizationName,
		State:            int(r.Object.State),
		CreatedAt:        r.Object.CreatedAt,
		UpdatedAt:        r.Object.UpdatedAt,
		CreatedBy:        r.Object.CreatedBy,
		UpdatedBy:        r.Object.UpdatedBy,
	}
	if expand {
		resp.Region = r.Region
		resp.Resources = r.Resources
		if resp.Resources == nil {
			resp.Resources = []domain.FileResource{}
		}
	}
	return resp
}

// Create registers a tracked object.
//
// @Summary      Create object
// @Tags         objects
// @Accept       json
// @Produce      json
// @Param        body  body      objectRequest  true  "Object details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /objects [post]
func (h *ObjectHandler) Create(c echo.Context) error {
	var req objectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.ObjectInput{
		Name:             req.Name,
		RegionID:         req.RegionID,
		District:         req.District,
		OrganizationName: req.OrganizationName,
		ResourceIDs:      req.ResourceIDs,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toObjectResponse(result, true))
}

// List returns active objects, optionally narrowed by a filter query.
//
// @Summary      List objects
// @Tags         objects
// @Produce      json
// @Param        filter  query     string  false  "Filter predicate, e.g. `regionId eq 2`"
// @Success      200     {object}  envelope
// @Router       /objects [get]
func (h *ObjectHandler) List(c echo.Context) error {
	results, err := h.service.List(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return err
	}

	items := make([]objectResponse, 0, len(results))
	for _, r := range results {
		items = append(items, toObjectResponse(r, true))
	}
	return respondList(c, items)
}

// ByID returns a single active object.
//
// @Summary      Get object
// @Tags         objects
// @Produce      json
// @Param        id   path      int  true  "Object id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /objects/{id} [get]
func (h *ObjectHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, toObjectResponse(result, true))
}

// Update modifies an active object.
//
// @Summary      Update object
// @Tags         objects
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Object id"
// @Param        body  body      objectRequest  true  "Updated object"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /objects/{id} [put]
func (h *ObjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req objectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Update(c.Request().Context(), id, ports.ObjectInput{
		Name:             req.Name,
		RegionID:         req.RegionID,
		District:         req.District,
		OrganizationName: req.OrganizationName,
		ResourceIDs:      req.ResourceIDs,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toObjectResponse(result, true))
}

// Delete removes an object from circulation.
//
// @Summary      Delete object
// @Tags         objects
// @Produce      json
// @Param        id   path      int  true  "Object id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /objects/{id} [delete]
func (h *ObjectHandler) Delete(c echo.Context) error {
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
