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

// EquipmentService implements CRUD over equipment units installed on objects.
type EquipmentService struct {
	equipment ports.EquipmentRepository
	objects   ports.ObjectRepository
	logger    zerolog.Logger
}

func NewEquipmentService(equipment ports.EquipmentRepository, objects ports.ObjectRepository, logger zerolog.Logger) *EquipmentService {
	return &EquipmentService{equipment: equipment, objects: objects, logger: logger}
}

func (s *EquipmentService) checkRefs(ctx context.Context, in ports.EquipmentInput) error {
	ok, err := s.objects.Exist(ctx, []int64{in.ObjectID})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: objectId %d", domain.ErrMissingReference, in.ObjectID)
	}
	return nil
}

func (s *EquipmentService) Create(ctx context.Context, in ports.EquipmentInput, actor int64) (*domain.Equipment, error) {
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	eq := &domain.Equipment{
		ObjectID:   in.ObjectID,
		SystemType: in.SystemType,
		Brand:      in.Brand,
		Model:      in.Model,
		Location:   in.Location,
		CategoryID: in.CategoryID,
		State:      domain.EquipmentActive,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  actor,
		UpdatedBy:  actor,
	}

	created, err := s.equipment.Create(ctx, eq)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindEquipment), "create").Inc()
	s.logger.Info().Int64("equipment_id", created.ID).Int64("object_id", created.ObjectID).Msg("equipment created")
	return created, nil
}

func (s *EquipmentService) ByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	return s.equipment.ByID(ctx, id)
}

func (s *EquipmentService) List(ctx context.Context, rawFilter string) ([]*domain.Equipment, error) {
	pred, err := filter.Parse(rawFilter, filter.EquipmentFields)
	if err != nil {
		return nil, err
	}
	return s.equipment.List(ctx, pred)
}

func (s *EquipmentService) Update(ctx context.Context, id int64, in ports.EquipmentInput, actor int64) (*domain.Equipment, error) {
	eq, err := s.equipment.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.UpdateMissing(domain.KindEquipment)
		}
		return nil, err
	}
	if eq.State != domain.EquipmentActive {
		return nil, fmt.Errorf("%w: equipment %d is not active", domain.ErrValidation, id)
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	eq.ObjectID = in.ObjectID
	eq.SystemType = in.SystemType
	eq.Brand = in.Brand
	eq.Model = in.Model
	eq.Location = in.Location
	eq.CategoryID = in.CategoryID
	eq.UpdatedAt = time.Now().UTC()
	eq.UpdatedBy = actor

	updated, err := s.equipment.Update(ctx, eq)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindEquipment), "update").Inc()
	return updated, nil
}

// Delete removes the unit from reads and filtered lists. Deleting an unknown
// equipment id is an idempotent no-op (per-kind policy).
func (s *EquipmentService) Delete(ctx context.Context, id int64, actor int64) error {
	eq, err := s.equipment.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DeleteMissing(domain.KindEquipment)
		}
		return err
	}

	eq.State = domain.EquipmentRemoved
	eq.UpdatedAt = time.Now().UTC()
	eq.UpdatedBy = actor
	if _, err := s.equipment.Update(ctx, eq); err != nil {
		return err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindEquipment), "delete").Inc()
	s.logger.Info().Int64("equipment_id", id).Msg("equipment removed")
	return nil
}
