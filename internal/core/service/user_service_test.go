package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

func newTestUserService() (*UserService, *stubUserRepo, *stubObjectRepo) {
	users := newStubUserRepo()
	objects := newStubObjectRepo()
	return NewUserService(users, objects, zerolog.Nop()), users, objects
}

func TestUserService_Create_DefaultPassword(t *testing.T) {
	svc, users, _ := newTestUserService()

	result, err := svc.Create(context.Background(), ports.CreateUserInput{
		Login:    "worker1",
		RoleID:   int64(domain.RoleWorker),
		FullName: "Worker One",
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if result.User.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if result.Role.Name != "worker" {
		t.Fatalf("expected expanded role, got %+v", result.Role)
	}

	stored, err := users.ByLogin(context.Background(), "worker1")
	if err != nil {
		t.Fatalf("ByLogin: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123")); err != nil {
		t.Fatalf("expected default initial password, got %v", err)
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Login:    "worker1",
		RoleID:   42,
		FullName: "Worker One",
	}, 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_Create_DuplicateLogin(t *testing.T) {
	svc, _, _ := newTestUserService()

	in := ports.CreateUserInput{Login: "worker1", RoleID: int64(domain.RoleWorker), FullName: "Worker"}
	if _, err := svc.Create(context.Background(), in, 1); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), in, 1); !errors.Is(err, domain.ErrLoginTaken) {
		t.Fatalf("expected ErrLoginTaken, got %v", err)
	}
}

func TestUserService_Create_MissingObjectReference(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Login:     "worker1",
		RoleID:    int64(domain.RoleWorker),
		FullName:  "Worker",
		ObjectIDs: []int64{99},
	}, 1)
	if !errors.Is(err, domain.ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func TestUserService_Update_MissingIsNotFound(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Update(context.Background(), 99, ports.UpdateUserInput{
		RoleID:   int64(domain.RoleWorker),
		FullName: "Ghost",
	}, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_UpdateState_BlockAndUnblock(t *testing.T) {
	svc, users, _ := newTestUserService()

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Login:    "worker1",
		RoleID:   int64(domain.RoleWorker),
		FullName: "Worker",
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	blocked, err := svc.UpdateState(context.Background(), created.User.ID, int(domain.UserBlocked), 1)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	if blocked.User.State != domain.UserBlocked {
		t.Fatalf("expected blocked state, got %d", blocked.User.State)
	}

	// Unblocking clears any lockout stamp as well.
	stored, _ := users.ByID(context.Background(), created.User.ID)
	until := stored.UpdatedAt.Add(time.Hour)
	stored.BlockedUntil = &until
	if _, err := users.Update(context.Background(), stored); err != nil {
		t.Fatalf("Update: %v", err)
	}

	unblocked, err := svc.UpdateState(context.Background(), created.User.ID, int(domain.UserActive), 1)
	if err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if unblocked.User.State != domain.UserActive || unblocked.User.BlockedUntil != nil {
		t.Fatalf("expected active user without blockedUntil, got %+v", unblocked.User)
	}
}

func TestUserService_UpdateState_UnknownState(t *testing.T) {
	svc, _, _ := newTestUserService()

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Login:    "worker1",
		RoleID:   int64(domain.RoleWorker),
		FullName: "Worker",
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateState(context.Background(), created.User.ID, 7, 1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_List_Filtered(t *testing.T) {
	svc, _, _ := newTestUserService()

	for _, login := range []string{"a", "b", "c"} {
		if _, err := svc.Create(context.Background(), ports.CreateUserInput{
			Login:    login,
			RoleID:   int64(domain.RoleWorker),
			FullName: login,
		}, 1); err != nil {
			t.Fatalf("Create %s: %v", login, err)
		}
	}

	results, err := svc.List(context.Background(), "id gt 1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if _, err := svc.List(context.Background(), "password eq x"); !errors.Is(err, domain.ErrMalformedFilter) {
		t.Fatalf("expected ErrMalformedFilter for unknown field, got %v", err)
	}
}

func TestUserService_Expand_DropsRemovedObjects(t *testing.T) {
	svc, _, objects := newTestUserService()

	obj, err := objects.Create(context.Background(), &domain.Object{Name: "site", State: domain.ObjectActive})
	if err != nil {
		t.Fatalf("object Create: %v", err)
	}

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Login:     "worker1",
		RoleID:    int64(domain.RoleWorker),
		FullName:  "Worker",
		ObjectIDs: []int64{obj.ID},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.Objects) != 1 {
		t.Fatalf("expected 1 expanded object, got %d", len(created.Objects))
	}

	obj.State = domain.ObjectRemoved
	if _, err := objects.Update(context.Background(), obj); err != nil {
		t.Fatalf("object Update: %v", err)
	}

	fetched, err := svc.ByID(context.Background(), created.User.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if len(fetched.Objects) != 0 {
		t.Fatalf("expected removed object dropped from expansion, got %d", len(fetched.Objects))
	}
}
