package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

func newTestOrganizationService() (*OrganizationService, *stubOrganizationRepo) {
	orgs := newStubOrganizationRepo()
	regions := newStubRegionRepo(domain.Region{ID: 1, Name: "Central"})
	return NewOrganizationService(orgs, regions, zerolog.Nop()), orgs
}

func TestOrganizationService_Create_ExpandsRegions(t *testing.T) {
	svc, _ := newTestOrganizationService()

	result, err := svc.Create(context.Background(), ports.OrganizationInput{
		Name:      "Repairs Ltd",
		INN:       "7701234567",
		RegionIDs: []int64{1},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(result.Regions) != 1 || result.Regions[0].Name != "Central" {
		t.Fatalf("expected expanded regions, got %+v", result.Regions)
	}
}

func TestOrganizationService_Create_UnknownRegion(t *testing.T) {
	svc, _ := newTestOrganizationService()

	_, err := svc.Create(context.Background(), ports.OrganizationInput{
		Name:      "Repairs Ltd",
		RegionIDs: []int64{99},
	}, 1)
	if !errors.Is(err, domain.ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func TestOrganizationService_Disable_HidesFromReads(t *testing.T) {
	svc, _ := newTestOrganizationService()

	created, err := svc.Create(context.Background(), ports.OrganizationInput{Name: "Repairs Ltd"}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	disabled := int(domain.OrganizationDisabled)
	if _, err := svc.Update(context.Background(), created.Organization.ID, ports.OrganizationInput{
		Name:  "Repairs Ltd",
		State: &disabled,
	}, 1); err != nil {
		t.Fatalf("disable via update: %v", err)
	}

	// Direct fetch answers NotFound even though the row is retained.
	if _, err := svc.ByID(context.Background(), created.Organization.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for disabled org, got %v", err)
	}

	results, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected disabled org excluded from list, got %d", len(results))
	}

	// Further updates are rejected.
	if _, err := svc.Update(context.Background(), created.Organization.ID, ports.OrganizationInput{Name: "x"}, 1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for disabled org, got %v", err)
	}
}

func TestOrganizationService_Update_MissingIsValidation(t *testing.T) {
	svc, _ := newTestOrganizationService()

	_, err := svc.Update(context.Background(), 99, ports.OrganizationInput{Name: "x"}, 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrganizationService_Delete_Idempotent(t *testing.T) {
	svc, orgs := newTestOrganizationService()

	// Unknown id is a no-op.
	if err := svc.Delete(context.Background(), 99, 1); err != nil {
		t.Fatalf("expected nil for unknown id, got %v", err)
	}

	created, err := svc.Create(context.Background(), ports.OrganizationInput{Name: "Repairs Ltd"}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.Organization.ID, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting twice stays a no-op.
	if err := svc.Delete(context.Background(), created.Organization.ID, 1); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	stored, err := orgs.ByID(context.Background(), created.Organization.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.State != domain.OrganizationDisabled {
		t.Fatalf("expected disabled state, got %d", stored.State)
	}
}
