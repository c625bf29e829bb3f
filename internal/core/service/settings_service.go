package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/assetcare/asset-admin/internal/api/metrics"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// SettingsService reads and updates the system settings singleton. Role-based
// field projection on reads is a presentation concern and happens in the
// handler via the rbac registry.
type SettingsService struct {
	settings ports.SettingsRepository
	logger   zerolog.Logger
}

func NewSettingsService(settings ports.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *SettingsService) Update(ctx context.Context, in domain.Settings, actor int64) (domain.Settings, error) {
	if in.UserBlockingPeriod <= 0 || in.IdlePeriod <= 0 || in.BackupInterval <= 0 || in.BackupCount <= 0 {
		return domain.Settings{}, fmt.Errorf("%w: all settings fields must be positive", domain.ErrValidation)
	}

	if err := s.settings.Save(ctx, in); err != nil {
		return domain.Settings{}, err
	}

	metrics.EntityOperationsTotal.WithLabelValues(string(domain.KindSettings), "update").Inc()
	s.logger.Info().Int64("actor", actor).Msg("system settings updated")
	return in, nil
}
