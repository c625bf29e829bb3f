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

// OrganizationService implements CRUD over contractor organizations. Disabling
// an organization (update with state 1) soft-deletes it: the row survives but
// direct fetches answer NotFound and further updates are rejected.
type OrganizationService struct {
	organizations ports.OrganizationRepository
	regions       ports.RegionRepository
	logger        zerolog.Logger
}

func NewOrganizationService(organizations ports.OrganizationRepository, regions ports.RegionRepository, logger zerolog.Logger) *OrganizationService {
	return &OrganizationService{organizations: organizations, regions: regions, logger: logger}
}

func (s *OrganizationService) checkRefs(ctx context.Context, in ports.OrganizationInput) error {
	if len(in.RegionIDs) == 0 {
		return nil
	}
	found, err := s.regions.ByIDs(ctx, in.RegionIDs)
	if err != nil {
		return err
	}
	if len(found) != len(in.RegionIDs) {
		return fmt.Errorf("%w: regionIds", domain.ErrMissingReference)
	}
	return nil
}

func (s *OrganizationService) Create(ctx context.Context, in ports.OrganizationInput, actor int64) (*ports.OrganizationResult, error) {
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		Name:      in.Name,
		INN:       in.INN,
		Comment:   in.Comment,
		RegionIDs: in.RegionIDs,
		State:     domain.OrganizationActive,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actor,
		UpdatedBy: actor,
	}

	created, err := s.organizations.Create(ctx, org)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindOrganization), "create").Inc()
	s.logger.Info().Int64("organization_id", created.ID).Str("name", created.Name).Msg("organization created")
	return s.expand(ctx, created)
}

// ByID answers NotFound for disabled organizations: once soft-deleted the
// record is gone from direct fetches even though the row is retained.
func (s *OrganizationService) ByID(ctx context.Context, id int64) (*ports.OrganizationResult, error) {
	org, err := s.organizations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.State == domain.OrganizationDisabled {
		return nil, domain.ErrNotFound
	}
	return s.expand(ctx, org)
}

func (s *OrganizationService) List(ctx context.Context, rawFilter string) ([]*ports.OrganizationResult, error) {
	pred, err := filter.Parse(rawFilter, filter.OrganizationFields)
	if err != nil {
		return nil, err
	}
	orgs, err := s.organizations.List(ctx, pred)
	if err != nil {
		return nil, err
	}
	results := make([]*ports.OrganizationResult, 0, len(orgs))
	for _, org := range orgs {
		if org.State == domain.OrganizationDisabled {
			continue
		}
		r, err := s.expand(ctx, org)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *OrganizationService) Update(ctx context.Context, id int64, in ports.OrganizationInput, actor int64) (*ports.OrganizationResult, error) {
	org, err := s.organizations.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.UpdateMissing(domain.KindOrganization)
		}
		return nil, err
	}
	if org.State == domain.OrganizationDisabled {
		return nil, fmt.Errorf("%w: organization %d is disabled", domain.ErrValidation, id)
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	if in.State != nil {
		next := domain.OrganizationState(*in.State)
		if next != domain.OrganizationActive && next != domain.OrganizationDisabled {
			return nil, fmt.Errorf("%w: unknown state %d", domain.ErrValidation, *in.State)
		}
		org.State = next
	}

	org.Name = in.Name
	org.INN = in.INN
	org.Comment = in.Comment
	org.RegionIDs = in.RegionIDs
	org.UpdatedAt = time.Now().UTC()
	org.UpdatedBy = actor

	updated, err := s.organizations.Update(ctx, org)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindOrganization), "update").Inc()
	if updated.State == domain.OrganizationDisabled {
		s.logger.Info().Int64("organization_id", id).Msg("organization disabled")
	}
	return s.expand(ctx, updated)
}

// Delete disables the organization through the same soft-delete transition as
// an update with state 1. Deleting an unknown id is an idempotent no-op
// (per-kind policy).
func (s *OrganizationService) Delete(ctx context.Context, id int64, actor int64) error {
	org, err := s.organizations.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DeleteMissing(domain.KindOrganization)
		}
		return err
	}
	if org.State == domain.OrganizationDisabled {
		return nil
	}

	org.State = domain.OrganizationDisabled
	org.UpdatedAt = time.Now().UTC()
	org.UpdatedBy = actor
	if _, err := s.organizations.Update(ctx, org); err != nil {
		return err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindOrganization), "delete").Inc()
	s.logger.Info().Int64("organization_id", id).Msg("organization disabled")
	return nil
}

func (s *OrganizationService) expand(ctx context.Context, org *domain.Organization) (*ports.OrganizationResult, error) {
	regions, err := s.regions.ByIDs(ctx, org.RegionIDs)
	if err != nil {
		return nil, err
	}
	return &ports.OrganizationResult{Organization: org, Regions: regions}, nil
}
