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

// DefectService implements CRUD over reported defects. Deletion is a soft
// mark (state 3): the row stays in storage and remains reachable by filter.
type DefectService struct {
	defects       ports.DefectRepository
	equipment     ports.EquipmentRepository
	organizations ports.OrganizationRepository
	resources     ports.ResourceRepository
	logger        zerolog.Logger
}

func NewDefectService(
	defects ports.DefectRepository,
	equipment ports.EquipmentRepository,
	organizations ports.OrganizationRepository,
	resources ports.ResourceRepository,
	logger zerolog.Logger,
) *DefectService {
	return &DefectService{
		defects:       defects,
		equipment:     equipment,
		organizations: organizations,
		resources:     resources,
		logger:        logger,
	}
}

func (s *DefectService) checkRefs(ctx context.Context, in ports.DefectInput) error {
	ok, err := s.equipment.Exists(ctx, in.EquipmentID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: equipmentId %d", domain.ErrMissingReference, in.EquipmentID)
	}

	ok, err = s.organizations.Exists(ctx, in.OrganizationID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: organizationId %d", domain.ErrMissingReference, in.OrganizationID)
	}

	if len(in.ResourceIDs) > 0 {
		ok, err = s.resources.Exist(ctx, in.ResourceIDs)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: resourceIds", domain.ErrMissingReference)
		}
	}
	return nil
}

func (s *DefectService) Create(ctx context.Context, in ports.DefectInput, actor int64) (*ports.DefectResult, error) {
	if in.ReportedAt.IsZero() {
		return nil, fmt.Errorf("%w: reportedAt is required", domain.ErrValidation)
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	defect := &domain.Defect{
		EquipmentID:         in.EquipmentID,
		OrganizationID:      in.OrganizationID,
		ResourceIDs:         in.ResourceIDs,
		AssignedAt:          in.AssignedAt,
		Comment:             in.Comment,
		CauseFailureComment: in.CauseFailureComment,
		State:               domain.DefectActive,
		ReportedAt:          in.ReportedAt,
		CreatedAt:           now,
		UpdatedAt:           now,
		CreatedBy:           actor,
		UpdatedBy:           actor,
	}

	created, err := s.defects.Create(ctx, defect)
	if err != nil {
		return nil, err
	}

	// Human-readable id derived from the numeric one.
	created.StringID = fmt.Sprintf("DF-%06d", created.ID)
	created, err = s.defects.Update(ctx, created)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindDefect), "create").Inc()
	s.logger.Info().Int64("defect_id", created.ID).Int64("equipment_id", created.EquipmentID).Msg("defect created")
	return s.expand(ctx, created)
}

func (s *DefectService) ByID(ctx context.Context, id int64) (*ports.DefectResult, error) {
	defect, err := s.defects.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, defect)
}

func (s *DefectService) List(ctx context.Context, rawFilter string) ([]*ports.DefectResult, error) {
	pred, err := filter.Parse(rawFilter, filter.DefectFields)
	if err != nil {
		return nil, err
	}
	defects, err := s.defects.List(ctx, pred)
	if err != nil {
		return nil, err
	}
	results := make([]*ports.DefectResult, 0, len(defects))
	for _, d := range defects {
		r, err := s.expand(ctx, d)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *DefectService) Update(ctx context.Context, id int64, in ports.DefectInput, actor int64) (*ports.DefectResult, error) {
	defect, err := s.defects.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.UpdateMissing(domain.KindDefect)
		}
		return nil, err
	}
	if defect.State != domain.DefectActive {
		return nil, fmt.Errorf("%w: defect %d is marked for deletion", domain.ErrValidation, id)
	}
	if in.ReportedAt.IsZero() {
		return nil, fmt.Errorf("%w: reportedAt is required", domain.ErrValidation)
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	defect.EquipmentID = in.EquipmentID
	defect.OrganizationID = in.OrganizationID
	defect.ResourceIDs = in.ResourceIDs
	defect.AssignedAt = in.AssignedAt
	defect.Comment = in.Comment
	defect.CauseFailureComment = in.CauseFailureComment
	defect.ReportedAt = in.ReportedAt
	defect.UpdatedAt = time.Now().UTC()
	defect.UpdatedBy = actor

	updated, err := s.defects.Update(ctx, defect)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindDefect), "update").Inc()
	return s.expand(ctx, updated)
}

// Delete marks the defect for deletion. The transition table only permits
// Active → MarkedForDeletion; repeating the delete is an idempotent no-op, as
// is deleting an unknown id (per-kind policy).
func (s *DefectService) Delete(ctx context.Context, id int64, actor int64) error {
	defect, err := s.defects.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DeleteMissing(domain.KindDefect)
		}
		return err
	}
	if defect.State == domain.DefectMarkedForDeletion {
		return nil
	}
	if !defect.State.CanTransitionTo(domain.DefectMarkedForDeletion) {
		return domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	defect.State = domain.DefectMarkedForDeletion
	defect.ClosedAt = &now
	defect.UpdatedAt = now
	defect.UpdatedBy = actor
	if _, err := s.defects.Update(ctx, defect); err != nil {
		return err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindDefect), "delete").Inc()
	s.logger.Info().Int64("defect_id", id).Msg("defect marked for deletion")
	return nil
}

func (s *DefectService) expand(ctx context.Context, defect *domain.Defect) (*ports.DefectResult, error) {
	eq, err := s.equipment.ByID(ctx, defect.EquipmentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	org, err := s.organizations.ByID(ctx, defect.OrganizationID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	resources, err := s.resources.ByIDs(ctx, defect.ResourceIDs)
	if err != nil {
		return nil, err
	}
	return &ports.DefectResult{Defect: defect, Equipment: eq, Organization: org, Resources: resources}, nil
}
