package ports

import (
	"context"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/filter"
)

// Repository contracts. List calls accept an optional predicate; nil means
// unfiltered. Implementations must preserve insertion order and must never
// apply partial state transitions: a concurrent read observes either the
// pre- or post-update record.

// UserRepository persists operator accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ByID(ctx context.Context, id int64) (*domain.User, error)
	ByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context, pred *filter.Predicate) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ObjectRepository persists tracked objects. Removed objects are excluded
// from ByID and List.
type ObjectRepository interface {
	Create(ctx context.Context, obj *domain.Object) (*domain.Object, error)
	ByID(ctx context.Context, id int64) (*domain.Object, error)
	List(ctx context.Context, pred *filter.Predicate) ([]*domain.Object, error)
	Update(ctx context.Context, obj *domain.Object) (*domain.Object, error)
	// Exist reports whether every id refers to an active object.
	Exist(ctx context.Context, ids []int64) (bool, error)
}

// EquipmentRepository persists equipment units. Removed units are excluded
// from ByID and List.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error)
	ByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context, pred *filter.Predicate) ([]*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// OrganizationRepository persists organizations. Disabled rows stay in
// storage; ByID returns them so the service can decide visibility.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	ByID(ctx context.Context, id int64) (*domain.Organization, error)
	List(ctx context.Context, pred *filter.Predicate) ([]*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// DefectRepository persists defects. Rows marked for deletion remain listed
// so they stay reachable through filters.
type DefectRepository interface {
	Create(ctx context.Context, d *domain.Defect) (*domain.Defect, error)
	ByID(ctx context.Context, id int64) (*domain.Defect, error)
	List(ctx context.Context, pred *filter.Predicate) ([]*domain.Defect, error)
	Update(ctx context.Context, d *domain.Defect) (*domain.Defect, error)
}

// ResourceRepository persists uploaded file metadata.
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.FileResource) (*domain.FileResource, error)
	ByIDs(ctx context.Context, ids []int64) ([]domain.FileResource, error)
	// Exist reports whether every id refers to a stored resource.
	Exist(ctx context.Context, ids []int64) (bool, error)
}

// RegionRepository reads the fixed region catalog.
type RegionRepository interface {
	ByID(ctx context.Context, id int64) (*domain.Region, error)
	ByIDs(ctx context.Context, ids []int64) ([]domain.Region, error)
}

// SettingsRepository reads and writes the settings singleton. Get returns
// DefaultSettings when the record was never saved.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}
