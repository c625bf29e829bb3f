package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assetcare/asset-admin/internal/api/metrics"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/filter"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// defaultInitialPassword is assigned to operator-created accounts when the
// creating admin does not supply one.
const defaultInitialPassword = "123"

// UserService implements operator account management.
type UserService struct {
	users   ports.UserRepository
	objects ports.ObjectRepository
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, objects ports.ObjectRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, objects: objects, logger: logger}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput, actor int64) (*ports.UserResult, error) {
	role := domain.Role(in.RoleID)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown roleId %d", domain.ErrValidation, in.RoleID)
	}

	if _, err := s.users.ByLogin(ctx, in.Login); err == nil {
		return nil, domain.ErrLoginTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if len(in.ObjectIDs) > 0 {
		ok, err := s.objects.Exist(ctx, in.ObjectIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: objectIds", domain.ErrMissingReference)
		}
	}

	password := in.Password
	if password == "" {
		password = defaultInitialPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Login:            in.Login,
		PasswordHash:     string(hash),
		RoleID:           role,
		State:            domain.UserActive,
		FullName:         in.FullName,
		OrganizationName: in.OrganizationName,
		Post:             in.Post,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		ObjectIDs:        in.ObjectIDs,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        actor,
		UpdatedBy:        actor,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindUser), "create").Inc()
	s.logger.Info().Int64("user_id", created.ID).Str("login", created.Login).Msg("user created")
	return s.expand(ctx, created)
}

func (s *UserService) ByID(ctx context.Context, id int64) (*ports.UserResult, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, user)
}

func (s *UserService) List(ctx context.Context, rawFilter string) ([]*ports.UserResult, error) {
	pred, err := filter.Parse(rawFilter, filter.UserFields)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, pred)
	if err != nil {
		return nil, err
	}
	results := make([]*ports.UserResult, 0, len(users))
	for _, u := range users {
		r, err := s.expand(ctx, u)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput, actor int64) (*ports.UserResult, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.UpdateMissing(domain.KindUser)
		}
		return nil, err
	}

	role := domain.Role(in.RoleID)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown roleId %d", domain.ErrValidation, in.RoleID)
	}
	if len(in.ObjectIDs) > 0 {
		ok, err := s.objects.Exist(ctx, in.ObjectIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: objectIds", domain.ErrMissingReference)
		}
	}

	if in.State != nil {
		next := domain.UserState(*in.State)
		if !next.Valid() {
			return nil, fmt.Errorf("%w: unknown state %d", domain.ErrValidation, *in.State)
		}
		if next != user.State && !user.State.CanTransitionTo(next) {
			return nil, domain.ErrInvalidTransition
		}
		user.State = next
	}

	user.RoleID = role
	user.FullName = in.FullName
	user.OrganizationName = in.OrganizationName
	user.Post = in.Post
	user.Email = in.Email
	user.PhoneNumber = in.PhoneNumber
	user.ObjectIDs = in.ObjectIDs
	user.UpdatedAt = time.Now().UTC()
	user.UpdatedBy = actor

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindUser), "update").Inc()
	return s.expand(ctx, updated)
}

// UpdateState applies an explicit block/unblock transition.
func (s *UserService) UpdateState(ctx context.Context, id int64, newState int, actor int64) (*ports.UserResult, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := domain.UserState(newState)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown state %d", domain.ErrValidation, newState)
	}
	if next != user.State && !user.State.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	user.State = next
	if next == domain.UserActive {
		user.BlockedUntil = nil
	}
	user.UpdatedAt = time.Now().UTC()
	user.UpdatedBy = actor

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindUser), "update").Inc()
	s.logger.Info().Int64("user_id", id).Int("state", newState).Msg("user state changed")
	return s.expand(ctx, updated)
}

// expand attaches the role object and the user's object scope to the record.
// Objects removed since the assignment are silently dropped from the view.
func (s *UserService) expand(ctx context.Context, user *domain.User) (*ports.UserResult, error) {
	objects := make([]*domain.Object, 0, len(user.ObjectIDs))
	for _, id := range user.ObjectIDs {
		obj, err := s.objects.ByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		objects = append(objects, obj)
	}

	return &ports.UserResult{
		User:    user,
		Role:    ports.RoleInfo{ID: int64(user.RoleID), Name: user.RoleID.Name()},
		Objects: objects,
	}, nil
}
