package ports

import (
	"context"
	"io"
	"time"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

// Identity is the authenticated caller extracted from a validated token.
type Identity struct {
	UserID int64
	Role   domain.Role
}

// AuthService issues and validates access tokens and enforces per-login
// lockout on failed sign-ins.
type AuthService interface {
	// SignIn returns an access token on success. Failures surface as
	// domain.ErrInvalidCredentials or, once the lockout threshold is hit
	// inside the window, domain.ErrRateLimited.
	SignIn(ctx context.Context, login, password string) (string, *domain.User, error)
	// Validate checks signature, expiry and token type, then the current
	// state of the owning user. Any failure is domain.ErrInvalidToken.
	Validate(ctx context.Context, token string) (*Identity, error)
}

// RoleInfo is the expanded role object attached to user responses.
type RoleInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserResult is a user record with its response expansions.
type UserResult struct {
	User    *domain.User
	Role    RoleInfo
	Objects []*domain.Object
}

type CreateUserInput struct {
	Login            string
	Password         string
	RoleID           int64
	OrganizationName string
	Post             string
	FullName         string
	ObjectIDs        []int64
	Email            string
	PhoneNumber      string
}

type UpdateUserInput struct {
	RoleID           int64
	OrganizationName string
	Post             string
	FullName         string
	ObjectIDs        []int64
	Email            string
	PhoneNumber      string
	State            *int
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput, actor int64) (*UserResult, error)
	ByID(ctx context.Context, id int64) (*UserResult, error)
	List(ctx context.Context, rawFilter string) ([]*UserResult, error)
	Update(ctx context.Context, id int64, in UpdateUserInput, actor int64) (*UserResult, error)
	// UpdateState applies an explicit state transition (block/unblock).
	UpdateState(ctx context.Context, id int64, newState int, actor int64) (*UserResult, error)
}

// ObjectResult is an object record with its response expansions.
type ObjectResult struct {
	Object    *domain.Object
	Region    *domain.Region
	Resources []domain.FileResource
}

type ObjectInput struct {
	Name             string
	RegionID         int64
	District         string
	OrganizationName string
	ResourceIDs      []int64
}

type ObjectService interface {
	Create(ctx context.Context, in ObjectInput, actor int64) (*ObjectResult, error)
	List(ctx context.Context, rawFilter string) ([]*ObjectResult, error)
	ByID(ctx context.Context, id int64) (*ObjectResult, error)
	Update(ctx context.Context, id int64, in ObjectInput, actor int64) (*ObjectResult, error)
	Delete(ctx context.Context, id int64, actor int64) error
}

type EquipmentInput struct {
	ObjectID   int64
	SystemType string
	Brand      string
	Model      string
	Location   string
	CategoryID int64
}

type EquipmentService interface {
	Create(ctx context.Context, in EquipmentInput, actor int64) (*domain.Equipment, error)
	List(ctx context.Context, rawFilter string) ([]*domain.Equipment, error)
	ByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Update(ctx context.Context, id int64, in EquipmentInput, actor int64) (*domain.Equipment, error)
	Delete(ctx context.Context, id int64, actor int64) error
}

// OrganizationResult is an organization record with its region expansion.
type OrganizationResult struct {
	Organization *domain.Organization
	Regions      []domain.Region
}

type OrganizationInput struct {
	Name      string
	INN       string
	Comment   string
	RegionIDs []int64
	State     *int
}

type OrganizationService interface {
	Create(ctx context.Context, in OrganizationInput, actor int64) (*OrganizationResult, error)
	List(ctx context.Context, rawFilter string) ([]*OrganizationResult, error)
	ByID(ctx context.Context, id int64) (*OrganizationResult, error)
	Update(ctx context.Context, id int64, in OrganizationInput, actor int64) (*OrganizationResult, error)
	Delete(ctx context.Context, id int64, actor int64) error
}

// DefectResult is a defect record with its response expansions.
type DefectResult struct {
	Defect       *domain.Defect
	Equipment    *domain.Equipment
	Organization *domain.Organization
	Resources    []domain.FileResource
}

type DefectInput struct {
	EquipmentID         int64
	OrganizationID      int64
	ResourceIDs         []int64
	AssignedAt          string
	Comment             string
	CauseFailureComment string
	State               int
	ReportedAt          time.Time
}

type DefectService interface {
	Create(ctx context.Context, in DefectInput, actor int64) (*DefectResult, error)
	List(ctx context.Context, rawFilter string) ([]*DefectResult, error)
	ByID(ctx context.Context, id int64) (*DefectResult, error)
	Update(ctx context.Context, id int64, in DefectInput, actor int64) (*DefectResult, error)
	// Delete marks the defect for deletion (state 3); the row is retained.
	Delete(ctx context.Context, id int64, actor int64) error
}

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings, actor int64) (domain.Settings, error)
}

type StoreResourceInput struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

type ResourceService interface {
	// Store persists the uploaded content and returns the metadata record.
	// The returned id is immediately usable as a resourceIds reference.
	Store(ctx context.Context, in StoreResourceInput, actor int64) (*domain.FileResource, error)
}
