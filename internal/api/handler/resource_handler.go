package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/ports"
)

// ResourceHandler accepts file uploads referenced by objects and defects.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

type resourceResponse struct {
	ID int64 `json:"id"`
}

// Upload stores a multipart file and returns the resource id to reference.
//
// @Summary      Upload resource
// @Tags         resources
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File content"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /resources [post]
func (h *ResourceHandler) Upload(c echo.Context) error {
	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	resource, err := h.service.Store(c.Request().Context(), ports.StoreResourceInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     src,
	}, actor)
	if err != nil {
		return err
	}
	return respond(c, resourceResponse{ID: resource.ID})
}
