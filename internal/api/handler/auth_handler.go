package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/ports"
)

// AuthHandler handles operator sign-in.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type signedInUser struct {
	AccessToken string `json:"accessToken"`
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Role        int64  `json:"role"`
}

type signInResponse struct {
	User signedInUser `json:"user"`
}

// SignIn authenticates an operator and returns an access token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/admin/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	token, user, err := h.authService.SignIn(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return err
	}

	return respond(c, signInResponse{
		User: signedInUser{
			AccessToken: token,
			ID:          user.ID,
			Login:       user.Login,
			Role:        int64(user.RoleID),
		},
	})
}
