package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/ports"
)

// UserHandler handles operator account management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Login            string  `json:"login" validate:"required"`
	Password         string  `json:"password"`
	RoleID           int64   `json:"roleId" validate:"required"`
	OrganizationName string  `json:"organizationName"`
	Post             string  `json:"post"`
	FullName         string  `json:"fullName" validate:"required"`
	ObjectIDs        []int64 `json:"objectIds"`
	Email            string  `json:"email" validate:"omitempty,email"`
	PhoneNumber      string  `json:"phoneNumber"`
}

type updateUserRequest struct {
	RoleID           int64   `json:"roleId" validate:"required"`
	OrganizationName string  `json:"organizationName"`
	Post             string  `json:"post"`
	FullName         string  `json:"fullName" validate:"required"`
	ObjectIDs        []int64 `json:"objectIds"`
	Email            string  `json:"email" validate:"omitempty,email"`
	PhoneNumber      string  `json:"phoneNumber"`
	State            *int    `json:"state"`
}

type updateUserStateRequest struct {
	NewState *int `json:"newState" validate:"required"`
}

type userResponse struct {
	ID               int64            `json:"id"`
	Login            string           `json:"login"`
	FullName         string           `json:"fullName"`
	OrganizationName string           `json:"organizationName"`
	Email            string           `json:"email"`
	PhoneNumber      string           `json:"phoneNumber"`
	BlockedUntil     *time.Time       `json:"blockedUntil"`
	Post             string           `json:"post"`
	Role             ports.RoleInfo   `json:"role"`
	CreatedAt        time.Time        `json:"createdAt"`
	Objects          []objectResponse `json:"objects"`
	State            int              `json:"state"`
}

func toUserResponse(r *ports.UserResult) userResponse {
	objects := make([]objectResponse, 0, len(r.Objects))
	for _, obj := range r.Objects {
		objects = append(objects, toObjectResponse(&ports.ObjectResult{Object: obj}, false))
	}
	return userResponse{
		ID:               r.User.ID,
		Login:            r.User.Login,
		FullName:         r.User.FullName,
		OrganizationName: r.User.OrganizationName,
		Email:            r.User.Email,
		PhoneNumber:      r.User.PhoneNumber,
		BlockedUntil:     r.User.BlockedUntil,
		Post:             r.User.Post,
		Role:             r.Role,
		CreatedAt:        r.User.CreatedAt,
		Objects:          objects,
		State:            int(r.User.State),
	}
}

// Create registers a new operator account.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Login:            req.Login,
		Password:         req.Password,
		RoleID:           req.RoleID,
		OrganizationName: req.OrganizationName,
		Post:             req.Post,
		FullName:         req.FullName,
		ObjectIDs:        req.ObjectIDs,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
	}, actor)
	if err != nil {
		return err
	}

	return respond(c, toUserResponse(result))
}

// List returns all operator accounts, optionally narrowed by a filter query.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        filter  query     string  false  "Filter predicate, e.g. `id eq 3`"
// @Success      200     {object}  envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	results, err := h.service.List(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return err
	}

	items := make([]userResponse, 0, len(results))
	for _, r := range results {
		items = append(items, toUserResponse(r))
	}
	return respondList(c, items)
}

// ByID returns a single operator account.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) ByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, toUserResponse(result))
}

// Update modifies an operator account's profile.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Updated profile"
// @Success      200   {object}  envelope
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		RoleID:           req.RoleID,
		OrganizationName: req.OrganizationName,
		Post:             req.Post,
		FullName:         req.FullName,
		ObjectIDs:        req.ObjectIDs,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		State:            req.State,
	}, actor)
	if err != nil {
		return err
	}

	return respond(c, toUserResponse(result))
}

// UpdateState blocks or unblocks an operator account.
//
// @Summary      Change user state
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "User id"
// @Param        body  body      updateUserStateRequest  true  "New state"
// @Success      200   {object}  envelope
// @Router       /users/{id}/state [put]
func (h *UserHandler) UpdateState(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserStateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.UpdateState(c.Request().Context(), id, *req.NewState, actor)
	if err != nil {
		return err
	}
	return respond(c, toUserResponse(result))
}
