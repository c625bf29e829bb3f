package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// DefectHandler handles reported equipment failures.
type DefectHandler struct {
	service ports.DefectService
}

func NewDefectHandler(service ports.DefectService) *DefectHandler {
	return &DefectHandler{service: service}
}

type defectRequest struct {
	EquipmentID         int64     `json:"equipmentId" validate:"required"`
	OrganizationID      int64     `json:"organizationId" validate:"required"`
	ResourceIDs         []int64   `json:"resourceIds"`
	AssignedAt          string    `json:"assignedAt"`
	Comment             string    `json:"comment"`
	CauseFailureComment string    `json:"causeFailureComment"`
	State               int       `json:"state"`
	ReportedAt          time.Time `json:"reportedAt"`
}

type defectResponse struct {
	ID                  int64                 `json:"id"`
	StringID            string                `json:"stringId"`
	EquipmentID         int64                 `json:"equipmentId"`
	OrganizationID      int64                 `json:"organizationId"`
	AssignedAt          string                `json:"assignedAt"`
	Comment             string                `json:"comment"`
	CauseFailureComment string                `json:"causeFailureComment"`
	State               int                   `json:"state"`
	ReportedAt          time.Time             `json:"reportedAt"`
	SpentRepairTime     *int64                `json:"spentRepairTime"`
	RepairStartedAt     *time.Time            `json:"repairStartedAt"`
	RepairFinishedAt    *time.Time            `json:"repairFinishedAt"`
	ClosedAt            *time.Time            `json:"closedAt"`
	Equipment           *equipmentResponse    `json:"equipment"`
	Organization        *organizationResponse `json:"organization"`
	Resources           []domain.FileResource `json:"resources"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
	CreatedBy           int64                 `json:"createdBy"`
	UpdatedBy           int64                 `json:"updatedBy"`
}

func toDefectResponse(r *ports.DefectResult) defectResponse {
	resp := defectResponse{
		ID:                  r.Defect.ID,
		StringID:            r.Defect.StringID,
		EquipmentID:         r.Defect.EquipmentID,
		OrganizationID:      r.Defect.OrganizationID,
		AssignedAt:          r.Defect.AssignedAt,
		Comment:             r.Defect.Comment,
		CauseFailureComment: r.Defect.CauseFailureComment,
		State:               int(r.Defect.State),
		ReportedAt:          r.Defect.ReportedAt,
		SpentRepairTime:     r.Defect.SpentRepairTime,
		RepairStartedAt:     r.Defect.RepairStartedAt,
		RepairFinishedAt:    r.Defect.RepairFinishedAt,
		ClosedAt:            r.Defect.ClosedAt,
		Resources:           r.Resources,
		CreatedAt:           r.Defect.CreatedAt,
		UpdatedAt:           r.Defect.UpdatedAt,
		CreatedBy:           r.Defect.CreatedBy,
		UpdatedBy:           r.Defect.UpdatedBy,
	}
	if resp.Resources == nil {
		resp.Resources = []domain.FileResource{}
	}
	if r.Equipment != nil {
		eq := toEquipmentResponse(r.Equipment)
		resp.Equipment = &eq
	}
	if r.Organization != nil {
		org := toOrganizationResponse(&ports.OrganizationResult{Organization: r.Organization})
		resp.Organization = &org
	}
	return resp
}

// Create registers a defect report.
//
// @Summary      Create defect
// @Tags         defects
// @Accept       json
// @Produce      json
// @Param        body  body      defectRequest  true  "Defect details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /defects [post]
func (h *DefectHandler) Create(c echo.Context) error {
	var req defectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.DefectInput{
		EquipmentID:         req.EquipmentID,
		OrganizationID:      req.OrganizationID,
		ResourceIDs:         req.ResourceIDs,
		AssignedAt:          req.AssignedAt,
		Comment:             req.Comment,
		CauseFailureComment: req.CauseFailureComment,
		State:               req.State,
		ReportedAt:          req.ReportedAt,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toDefectResponse(result))
}

// List returns defects, optionally narrowed by a filter query. Rows marked
// for deletion stay listable so the filter can target them.
//
// @Summary      List defects
// @Tags         defects
// @Produce      json
// @Param        filter  query     string  false  "Filter predicate, e.g. `state eq 3`"
// @Success      200     {object}  envelope
// @Router       /defects [get]
func (h *DefectHandler) List(c echo.Context) error {
	results, err := h.service.List(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return err
	}

	items := make([]defectResponse, 0, len(results))
	for _, r := range results {
		items = append(items, toDefectResponse(r))
	}
	return respondList(c, items)
}

// ByID returns a single defect report.
//
// @Summary      Get defect
// @Tags         defects
// @Produce      json
// @Param        id   path      int  true  "Defect id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /defects/{id} [get]
func (h *DefectHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, toDefectResponse(result))
}

// Update modifies a defect report.
//
// @Summary      Update defect
// @Tags         defects
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Defect id"
// @Param        body  body      defectRequest  true  "Updated defect"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /defects/{id} [put]
func (h *DefectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req defectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Update(c.Request().Context(), id, ports.DefectInput{
		EquipmentID:         req.EquipmentID,
		OrganizationID:      req.OrganizationID,
		ResourceIDs:         req.ResourceIDs,
		AssignedAt:          req.AssignedAt,
		Comment:             req.Comment,
		CauseFailureComment: req.CauseFailureComment,
		State:               req.State,
		ReportedAt:          req.ReportedAt,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, toDefectResponse(result))
}

// Delete marks a defect for deletion. Unknown ids are answered as a no-op.
//
// @Summary      Delete defect
// @Tags         defects
// @Produce      json
// @Param        id   path      int  true  "Defect id"
// @Success      200  {object}  envelope
// @Router       /defects/{id} [delete]
func (h *DefectHandler) Delete(c echo.Context) error {
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
