package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

func newTestAuthService(users *stubUserRepo, attempts *stubAttemptStore) *AuthService {
	return NewAuthService(users, attempts, newStubSettingsRepo(), "secret", time.Hour, 5, 15*time.Minute, zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, login, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Login:        login,
		PasswordHash: string(hash),
		RoleID:       role,
		State:        domain.UserActive,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_SignIn_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubAttemptStore())
	seedUser(t, users, "alice", "s3cret", domain.RoleAdmin)

	token, user, err := svc.SignIn(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Login != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["type"] != "access" {
		t.Fatalf("expected access token type, got %v", claims["type"])
	}
	if int64(claims["role"].(float64)) != int64(domain.RoleAdmin) {
		t.Fatalf("expected role %d, got %v", domain.RoleAdmin, claims["role"])
	}
}

func TestAuthService_SignIn_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubAttemptStore())

	if _, _, err := svc.SignIn(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubAttemptStore())
	seedUser(t, users, "alice", "goodpass", domain.RoleWorker)

	if _, _, err := svc.SignIn(context.Background(), "alice", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_UnknownLogin(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubAttemptStore())

	if _, _, err := svc.SignIn(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_LockoutAfterThreshold(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubAttemptStore())
	seedUser(t, users, "alice", "goodpass", domain.RoleWorker)

	// The first five failures report invalid credentials, not a lockout.
	for i := 0; i < 5; i++ {
		if _, _, err := svc.SignIn(context.Background(), "alice", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Once the threshold is reached, even the correct password is refused.
	if _, _, err := svc.SignIn(context.Background(), "alice", "goodpass"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// The crossing attempt stamped a blocking period on the account.
	stored, err := users.ByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ByLogin: %v", err)
	}
	if stored.BlockedUntil == nil || !stored.BlockedUntil.After(time.Now()) {
		t.Fatalf("expected future blockedUntil, got %v", stored.BlockedUntil)
	}
}

func TestAuthService_SignIn_SuccessResetsCounter(t *testing.T) {
	users := newStubUserRepo()
	attempts := newStubAttemptStore()
	svc := newTestAuthService(users, attempts)
	seedUser(t, users, "alice", "goodpass", domain.RoleWorker)

	for i := 0; i < 4; i++ {
		_, _, _ = svc.SignIn(context.Background(), "alice", "badpass")
	}
	if _, _, err := svc.SignIn(context.Background(), "alice", "goodpass"); err != nil {
		t.Fatalf("expected success before threshold, got %v", err)
	}

	// Counter was reset: four more failures stay below the threshold.
	for i := 0; i < 4; i++ {
		_, _, _ = svc.SignIn(context.Background(), "alice", "badpass")
	}
	if _, _, err := svc.SignIn(context.Background(), "alice", "goodpass"); err != nil {
		t.Fatalf("expected success after reset, got %v", err)
	}
}

func TestAuthService_SignIn_BlockedUser(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubAttemptStore())
	user := seedUser(t, users, "alice", "s3cret", domain.RoleWorker)

	user.State = domain.UserBlocked
	if _, err := users.Update(context.Background(), user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, _, err := svc.SignIn(context.Background(), "alice", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for blocked user, got %v", err)
	}
}

func TestAuthService_Validate_TwoStage(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubAttemptStore())
	user := seedUser(t, users, "alice", "s3cret", domain.RoleAnalyst)

	token, _, err := svc.SignIn(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	identity, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if identity.UserID != user.ID || identity.Role != domain.RoleAnalyst {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	// Blocking the account invalidates tokens issued before the block.
	user.State = domain.UserBlocked
	if _, err := users.Update(context.Background(), user); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after block, got %v", err)
	}
}

func TestAuthService_Validate_Garbage(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubAttemptStore())

	if _, err := svc.Validate(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_EnsureDefaultAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubAttemptStore())

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	// Idempotent on restart.
	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureDefaultAdmin second run: %v", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected exactly one seeded admin, got %d users", len(users.users))
	}

	token, user, err := svc.SignIn(context.Background(), DefaultAdminLogin, "135xx642")
	if err != nil {
		t.Fatalf("default admin sign-in failed: %v", err)
	}
	if token == "" || user.RoleID != domain.RoleAdmin {
		t.Fatalf("unexpected default admin: %+v", user)
	}
}
