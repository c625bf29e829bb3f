package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetcare/asset-admin/internal/api/metrics"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// ResourceService stores uploaded files. Storage is synchronous: once Store
// returns, the id is safe to reference from object and defect payloads.
type ResourceService struct {
	resources ports.ResourceRepository
	blobs     ports.BlobStore
	logger    zerolog.Logger
}

func NewResourceService(resources ports.ResourceRepository, blobs ports.BlobStore, logger zerolog.Logger) *ResourceService {
	return &ResourceService{resources: resources, blobs: blobs, logger: logger}
}

func (s *ResourceService) Store(ctx context.Context, in ports.StoreResourceInput, actor int64) (*domain.FileResource, error) {
	if in.FileName == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}

	path, size, err := s.blobs.Save(ctx, in.FileName, in.Content)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	res := &domain.FileResource{
		FileName:    in.FileName,
		ContentType: in.ContentType,
		Size:        size,
		Path:        path,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   actor,
	}
	created, err := s.resources.Create(ctx, res)
	if err != nil {
		return nil, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindResource), "create").Inc()
	s.logger.Info().Int64("resource_id", created.ID).Str("file", created.FileName).Int64("size", size).Msg("resource stored")
	return created, nil
}
