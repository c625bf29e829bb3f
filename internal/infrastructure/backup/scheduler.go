package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetcare/asset-admin/internal/api/metrics"
	"github.com/assetcare/asset-admin/internal/core/ports"
)

// minInterval guards against a misconfigured settings document spinning the
// scheduler in a tight loop.
const minInterval = time.Minute

// Scheduler periodically snapshots every collection to JSON files on disk.
// The interval and retention count come from the live settings document, so
// an admin change takes effect on the next tick without a restart.
type Scheduler struct {
	users         ports.UserRepository
	objects       ports.ObjectRepository
	equipments    ports.EquipmentRepository
	organizations ports.OrganizationRepository
	defects       ports.DefectRepository
	settings      ports.SettingsRepository

	dir string
	log zerolog.Logger
}

func NewScheduler(
	users ports.UserRepository,
	objects ports.ObjectRepository,
	equipments ports.EquipmentRepository,
	organizations ports.OrganizationRepository,
	defects ports.DefectRepository,
	settings ports.SettingsRepository,
	dataDir string,
	log zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		users:         users,
		objects:       objects,
		equipments:    equipments,
		organizations: organizations,
		defects:       defects,
		settings:      settings,
		dir:           filepath.Join(dataDir, "backups"),
		log:           log,
	}
}

// Start launches the backup loop. It stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		interval := s.interval(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			if err := s.runOnce(ctx); err != nil {
				metrics.BackupRunsTotal.WithLabelValues("error").Inc()
				s.log.Error().Err(err).Msg("backup run failed")
				continue
			}
			metrics.BackupRunsTotal.WithLabelValues("ok").Inc()
		}
	}
}

func (s *Scheduler) interval(ctx context.Context) time.Duration {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("backup interval lookup failed, using minimum")
		return minInterval
	}
	interval := time.Duration(cfg.BackupInterval) * time.Millisecond
	if interval < minInterval {
		interval = minInterval
	}
	return interval
}

// runOnce writes one timestamped snapshot directory and prunes old ones down
// to the configured retention count.
func (s *Scheduler) runOnce(ctx context.Context) error {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	dir := filepath.Join(s.dir, time.Now().UTC().Format("20060102T150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	users, err := s.users.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot users: %w", err)
	}
	objects, err := s.objects.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot objects: %w", err)
	}
	equipments, err := s.equipments.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot equipments: %w", err)
	}
	organizations, err := s.organizations.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot organizations: %w", err)
	}
	defects, err := s.defects.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot defects: %w", err)
	}

	snapshots := map[string]interface{}{
		"users.json":         users,
		"objects.json":       objects,
		"equipments.json":    equipments,
		"organizations.json": organizations,
		"defects.json":       defects,
	}
	for name, data := range snapshots {
		if err := writeJSON(filepath.Join(dir, name), data); err != nil {
			return err
		}
	}

	s.log.Info().Str("dir", dir).Msg("backup snapshot written")
	return s.prune(int(cfg.BackupCount))
}

func writeJSON(path string, data interface{}) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// prune removes the oldest snapshot directories beyond keep.
func (s *Scheduler) prune(keep int) error {
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read backup dir: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) <= keep {
		return nil
	}

	// Names are UTC timestamps, so lexicographic order is chronological.
	sort.Strings(dirs)
	for _, name := range dirs[:len(dirs)-keep] {
		if err := os.RemoveAll(filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("prune %s: %w", name, err)
		}
	}
	return nil
}
