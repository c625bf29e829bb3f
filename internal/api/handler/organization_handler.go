package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// OrganizationHandler handles repair contractors.
type OrganizationHandler struct {
	service ports.OrganizationService
}

func NewOrganizationHandler(service ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

type organizationRequest struct {
	Name      string  `json:"name" validate:"required"`
	INN       string  `json:"inn"`
	Comment   string  `json:"comment"`
	RegionIDs []int64 `json:"regionIds"`
	State     *int    `json:"state"`
}

type organizationResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	INN       string          `json:"inn"`
	Comment   string          `json:"comment"`
	State     int             `json:"state"`
	Regions   []domain.Region `json:"regions"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	CreatedBy int64           `json:"createdBy"`
	UpdatedBy int64           `json:"updatedBy"`
}

func toOrganizationResponse(r *ports.OrganizationResult) organizationResponse {
	regions := r.Regions
	if regions == nil {
		regions = []domain.Region{}
	}
	return organizationResponse{
		ID:        r.Organization.ID,
		Name:      r.Organization.Name,
		INN:       r.Organization.INN,
		Comment:   r.Organization.Comment,
		State:     int(r.Organization.State),
		Regions:   regions,
		CreatedAt: r.Organization.CreatedAt,
		UpdatedAt: r.Organization.UpdatedAt,
		CreatedBy: r.Organization.CreatedBy,
		UpdatedBy: r.Organization.UpdatedBy,
	}
}

// Create registers a contractor organization.
//
// @Summary      Create organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        body  body      organizationRequest  true  "Organization details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c echo.Context) error {
	var req organizationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.OrganizationInput{
		Name:      req.Name,
		INN:       req.INN,
		Comment:   req.Comment,
		RegionIDs: req.RegionIDs,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toOrganizationResponse(result))
}

// List returns active organizations, optionally narrowed by a filter query.
//
// @Summary      List organizations
// @Tags         organizations
// @Produce      json
// @Param        filter  query     string  false  "Filter predicate, e.g. `inn eq 7701234567`"
// @Success      200     {object}  envelope
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c echo.Context) error {
	results, err := h.service.List(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return err
	}

	items := make([]organizationResponse, 0, len(results))
	for _, r := range results {
		items = append(items, toOrganizationResponse(r))
	}
	return respondList(c, items)
}

// ByID returns a single active organization. Disabled ones answer 404.
//
// @Summary      Get organization
// @Tags         organizations
// @Produce      json
// @Param        id   path      int  true  "Organization id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /organizations/{id} [get]
func (h *OrganizationHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, toOrganizationResponse(result))
}

// Update modifies an active organization.
//
// @Summary      Update organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Organization id"
// @Param        body  body      organizationRequest  true  "Updated organization"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /organizations/{id} [put]
func (h *OrganizationHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req organizationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Update(c.Request().Context(), id, ports.OrganizationInput{
		Name:      req.Name,
		INN:       req.INN,
		Comment:   req.Comment,
		RegionIDs: req.RegionIDs,
		State:     req.State,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toOrganizationResponse(result))
}

// Delete disables an organization. Unknown ids are answered as a no-op.
//
// @Summary      Delete organization
// @Tags         organizations
// @Produce      json
// @Param        id   path      int  true  "Organization id"
// @Success      200  {object}  envelope
// @Router       /organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c echo.Context) error {
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
