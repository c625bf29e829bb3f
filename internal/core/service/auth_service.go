package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assetcare/asset-admin/internal/api/metrics"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// DefaultAdminLogin is the bootstrap administrator account seeded at startup.
const DefaultAdminLogin = "default_admin"

const defaultAdminPassword = "135xx642"

const tokenTypeAccess = "access"

// AuthService implements sign-in with per-login lockout and stateless access
// token issue/validation.
type AuthService struct {
	users            ports.UserRepository
	attempts         ports.AttemptStore
	settings         ports.SettingsRepository
	jwtSecret        string
	tokenTTL         time.Duration
	lockoutThreshold int
	lockoutWindow    time.Duration
	logger           zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	attempts ports.AttemptStore,
	settings ports.SettingsRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	lockoutThreshold int,
	lockoutWindow time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if lockoutThreshold <= 0 {
		lockoutThreshold = 5
	}
	if lockoutWindow <= 0 {
		lockoutWindow = 15 * time.Minute
	}
	return &AuthService{
		users:            users,
		attempts:         attempts,
		settings:         settings,
		jwtSecret:        jwtSecret,
		tokenTTL:         tokenTTL,
		lockoutThreshold: lockoutThreshold,
		lockoutWindow:    lockoutWindow,
		logger:           logger,
	}
}

// accessClaims is the self-describing token payload.
type accessClaims struct {
	UserID int64  `json:"userId"`
	Role   int64  `json:"role"`
	Login  string `json:"login"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// SignIn authenticates login/password and returns a signed access token.
// The lockout check runs before any credential work so a locked login is
// rejected even with correct credentials.
func (s *AuthService) SignIn(ctx context.Context, login, password string) (string, *domain.User, error) {
	if login == "" || password == "" {
		metrics.SignInAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()

	count, err := s.attempts.Count(ctx, login, now, s.lockoutWindow)
	if err != nil {
		return "", nil, fmt.Errorf("attempt count: %w", err)
	}
	if count >= s.lockoutThreshold {
		metrics.SignInAttemptsTotal.WithLabelValues("rate_limited").Inc()
		return "", nil, domain.ErrRateLimited
	}

	user, err := s.users.ByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if ferr := s.recordFailure(ctx, login, now, nil); ferr != nil {
				return "", nil, ferr
			}
			metrics.SignInAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.BlockedUntil != nil && now.Before(*user.BlockedUntil) {
		metrics.SignInAttemptsTotal.WithLabelValues("rate_limited").Inc()
		return "", nil, domain.ErrRateLimited
	}
	if user.State == domain.UserBlocked {
		metrics.SignInAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if ferr := s.recordFailure(ctx, login, now, user); ferr != nil {
			return "", nil, ferr
		}
		metrics.SignInAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.attempts.Reset(ctx, login); err != nil {
		return "", nil, fmt.Errorf("attempt reset: %w", err)
	}

	token, err := s.issueToken(user, now)
	if err != nil {
		return "", nil, err
	}

	metrics.SignInAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("user_id", user.ID).Str("login", user.Login).Msg("sign-in succeeded")
	return token, user, nil
}

// recordFailure counts one failed attempt. The attempt that crosses the
// threshold additionally stamps blockedUntil on the account, using the
// configured user blocking period, so the lockout outlives the attempt store.
func (s *AuthService) recordFailure(ctx context.Context, login string, now time.Time, user *domain.User) error {
	count, err := s.attempts.Fail(ctx, login, now, s.lockoutWindow)
	if err != nil {
		return fmt.Errorf("attempt record: %w", err)
	}
	if count != s.lockoutThreshold {
		return nil
	}

	metrics.LockoutsTotal.Inc()
	s.logger.Warn().Str("login", login).Int("failures", count).Msg("login locked out")

	if user == nil {
		return nil
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("settings read: %w", err)
	}
	until := now.Add(time.Duration(cfg.UserBlockingPeriod) * time.Millisecond)
	user.BlockedUntil = &until
	user.UpdatedAt = now
	if _, err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("stamp blocked until: %w", err)
	}
	return nil
}

func (s *AuthService) issueToken(user *domain.User, now time.Time) (string, error) {
	claims := accessClaims{
		UserID: user.ID,
		Role:   int64(user.RoleID),
		Login:  user.Login,
		Type:   tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// Validate runs the two-stage token check: signature/expiry first (stateless),
// then the current state of the owning user, so tokens issued before a block
// stop working.
func (s *AuthService) Validate(ctx context.Context, token string) (*ports.Identity, error) {
	claims := &accessClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid || claims.Type != tokenTypeAccess {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.ByID(ctx, claims.UserID)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if user.BlockedNow(time.Now().UTC()) {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidToken
	}

	metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
	return &ports.Identity{UserID: user.ID, Role: user.RoleID}, nil
}

// EnsureDefaultAdmin seeds the bootstrap administrator when absent.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.users.ByLogin(ctx, DefaultAdminLogin)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Login:        DefaultAdminLogin,
		PasswordHash: string(hash),
		RoleID:       domain.RoleAdmin,
		State:        domain.UserActive,
		FullName:     "Default Administrator",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	s.logger.Info().Str("login", DefaultAdminLogin).Msg("seeded default administrator")
	return nil
}
