package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/assetcare/asset-admin/internal/api/handler"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/rbac"
)

func invokeGate(t *testing.T, role interface{}, kind domain.Kind, verb rbac.Verb) (bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(handler.CtxRole, role)
	}

	called := false
	h := Gate(kind, verb)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, h(c)
}

func TestGate_AdminWrites(t *testing.T) {
	called, err := invokeGate(t, domain.RoleAdmin, domain.KindObject, rbac.VerbCreate)
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestGate_NonAdminWriteForbidden(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleWorker, domain.RoleAnalyst, domain.RoleHead, domain.RoleSenior} {
		called, err := invokeGate(t, role, domain.KindObject, rbac.VerbCreate)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %d: expected ErrForbidden, got %v", role, err)
		}
		if called {
			t.Fatalf("role %d: next should not run", role)
		}
	}
}

func TestGate_NonAdminReadsAllowed(t *testing.T) {
	called, err := invokeGate(t, domain.RoleWorker, domain.KindDefect, rbac.VerbRead)
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestGate_MissingRoleForbidden(t *testing.T) {
	if _, err := invokeGate(t, nil, domain.KindObject, rbac.VerbRead); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
