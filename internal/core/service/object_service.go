package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetcare/asset-admin/internal/api/metrics"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/filter"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// ObjectService implements CRUD over tracked objects with referential checks
// against the region catalog and uploaded resources.
type ObjectService struct {
	objects   ports.ObjectRepository
	regions   ports.RegionRepository
	resources ports.ResourceRepository
	logger    zerolog.Logger
}

func NewObjectService(objects ports.ObjectRepository, regions ports.RegionRepository, resources ports.ResourceRepository, logger zerolog.Logger) *ObjectService {
	return &ObjectService{objects: objects, regions: regions, resources: resources, logger: logger}
}

// checkRefs verifies every foreign id before anything is persisted.
func (s *ObjectService) checkRefs(ctx context.Context, in ports.ObjectInput) error {
	if _, err := s.regions.ByID(ctx, in.RegionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: regionId %d", domain.ErrMissingReference, in.RegionID)
		}
		return err
	}
	if len(in.ResourceIDs) > 0 {
		ok, err := s.resources.Exist(ctx, in.ResourceIDs)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: resourceIds", domain.ErrMissingReference)
		}
	}
	return nil
}

func (s *ObjectService) Create(ctx context.Context, in ports.ObjectInput, actor int64) (*ports.ObjectResult, error) {
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	obj := &domain.Object{
		Name:             in.Name,
		RegionID:         in.RegionID,
		District:         in.District,
		OrganizationName: in.OrganizationName,
		ResourceIDs:      in.ResourceIDs,
		State:            domain.ObjectActive,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        actor,
		UpdatedBy:        actor,
	}

	created, err := s.objects.Create(ctx, obj)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindObject), "create").Inc()
	s.logger.Info().Int64("object_id", created.ID).Str("name", created.Name).Msg("object created")
	return s.expand(ctx, created)
}

func (s *ObjectService) ByID(ctx context.Context, id int64) (*ports.ObjectResult, error) {
	obj, err := s.objects.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, obj)
}

func (s *ObjectService) List(ctx context.Context, rawFilter string) ([]*ports.ObjectResult, error) {
	pred, err := filter.Parse(rawFilter, filter.ObjectFields)
	if err != nil {
		return nil, err
	}
	objects, err := s.objects.List(ctx, pred)
	if err != nil {
		return nil, err
	}
	results := make([]*ports.ObjectResult, 0, len(objects))
	for _, obj := range objects {
		r, err := s.expand(ctx, obj)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *ObjectService) Update(ctx context.Context, id int64, in ports.ObjectInput, actor int64) (*ports.ObjectResult, error) {
	obj, err := s.objects.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.UpdateMissing(domain.KindObject)
		}
		return nil, err
	}
	if obj.State != domain.ObjectActive {
		return nil, fmt.Errorf("%w: object %d is not active", domain.ErrValidation, id)
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	obj.Name = in.Name
	obj.RegionID = in.RegionID
	obj.District = in.District
	obj.OrganizationName = in.OrganizationName
	obj.ResourceIDs = in.ResourceIDs
	obj.UpdatedAt = time.Now().UTC()
	obj.UpdatedBy = actor

	updated, err := s.objects.Update(ctx, obj)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindObject), "update").Inc()
	return s.expand(ctx, updated)
}

// Delete removes the object from all subsequent reads and filtered lists.
// Deleting an unknown object id answers NotFound (per-kind policy).
func (s *ObjectService) Delete(ctx context.Context, id int64, actor int64) error {
	obj, err := s.objects.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DeleteMissing(domain.KindObject)
		}
		return err
	}

	obj.State = domain.ObjectRemoved
	obj.UpdatedAt = time.Now().UTC()
	obj.UpdatedBy = actor
	if _, err := s.objects.Update(ctx, obj); err != nil {
		return err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindObject), "delete").Inc()
	s.logger.Info().Int64("object_id", id).Msg("object removed")
	return nil
}

func (s *ObjectService) expand(ctx context.Context, obj *domain.Object) (*ports.ObjectResult, error) {
	region, err := s.regions.ByID(ctx, obj.RegionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	resources, err := s.resources.ByIDs(ctx, obj.ResourceIDs)
	if err != nil {
		return nil, err
	}
	return &ports.ObjectResult{Object: obj, Region: region, Resources: resources}, nil
}
