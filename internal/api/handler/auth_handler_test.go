package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

type stubAuthService struct {
	signInFn func(ctx context.Context, login, password string) (string, *domain.User, error)
}

func (s *stubAuthService) SignIn(ctx context.Context, login, password string) (string, *domain.User, error) {
	return s.signInFn(ctx, login, password)
}

func (s *stubAuthService) Validate(context.Context, string) (*ports.Identity, error) {
	panic("not used")
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signInFn: func(_ context.Context, login, password string) (string, *domain.User, error) {
			if login != "default_admin" || password != "135xx642" {
				t.Fatalf("unexpected credentials: %s %s", login, password)
			}
			return "token-123", &domain.User{ID: 1, Login: login, RoleID: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"login":"default_admin","password":"135xx642"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/admin/sign-in", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["code"] != "success" {
		t.Fatalf("expected success code, got %v", resp["code"])
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object")
	}
	user, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["accessToken"] != "token-123" || user["login"] != "default_admin" || user["role"] != float64(1) {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signInFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	// Empty credentials surface the service's 401, not a bind failure.
	req := httptest.NewRequest(http.MethodPost, "/auth/admin/sign-in", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.SignIn(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_SignIn_RateLimited(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signInFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrRateLimited
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/admin/sign-in", strings.NewReader(`{"login":"a","password":"b"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SignIn(c); err != domain.ErrRateLimited {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
