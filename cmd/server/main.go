package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/assetcare/asset-admin/internal/api"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
	"github.com/assetcare/asset-admin/internal/core/service"
	"github.com/assetcare/asset-admin/internal/infrastructure/backup"
	"github.com/assetcare/asset-admin/internal/infrastructure/config"
	mongodb "github.com/assetcare/asset-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/assetcare/asset-admin/internal/infrastructure/db/redis"
	"github.com/assetcare/asset-admin/internal/infrastructure/ratelimit"
	"github.com/assetcare/asset-admin/internal/infrastructure/storage"
	"github.com/assetcare/asset-admin/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// regionCatalog is the fixed set of regions referenced by objects and
// organizations. Seeded idempotently on every start.
var regionCatalog = []domain.Region{
	{ID: 1, Name: "Central"},
	{ID: 2, Name: "Northern"},
	{ID: 3, Name: "Southern"},
	{ID: 4, Name: "Eastern"},
	{ID: 5, Name: "Western"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	objectRepo := mongodb.NewObjectRepository(db)
	equipmentRepo := mongodb.NewEquipmentRepository(db)
	organizationRepo := mongodb.NewOrganizationRepository(db)
	defectRepo := mongodb.NewDefectRepository(db)
	resourceRepo := mongodb.NewResourceRepository(db)
	regionRepo := mongodb.NewRegionRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := regionRepo.Seed(ctx, regionCatalog); err != nil {
		log.Fatal().Err(err).Msg("region seed failed")
	}

	// --- Attempt store ---
	var rdb *goredis.Client
	var attempts ports.AttemptStore
	if cfg.Auth.AttemptStore == "redis" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		attempts = redisdb.NewAttemptStore(rdb)
	} else {
		attempts = ratelimit.NewMemoryStore()
	}

	blobs, err := storage.NewDiskStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init failed")
	}

	// --- Services ---
	authService := service.NewAuthService(
		userRepo, attempts, settingsRepo,
		cfg.Auth.JWTSecret, cfg.Auth.TokenTTL,
		cfg.Auth.LockoutThreshold, cfg.Auth.LockoutWindow,
		log,
	)
	userService := service.NewUserService(userRepo, objectRepo, log)
	objectService := service.NewObjectService(objectRepo, regionRepo, resourceRepo, log)
	equipmentService := service.NewEquipmentService(equipmentRepo, objectRepo, log)
	organizationService := service.NewOrganizationService(organizationRepo, regionRepo, log)
	defectService := service.NewDefectService(defectRepo, equipmentRepo, organizationRepo, resourceRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	resourceService := service.NewResourceService(resourceRepo, blobs, log)

	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("default admin bootstrap failed")
	}

	backup.NewScheduler(
		userRepo, objectRepo, equipmentRepo, organizationRepo, defectRepo,
		settingsRepo, cfg.DataDir, log,
	).Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Auth:          authService,
		Users:         userService,
		Objects:       objectService,
		Equipments:    equipmentService,
		Organizations: organizationService,
		Defects:       defectService,
		Settings:      settingsService,
		Resources:     resourceService,
		Mongo:         db,
		Redis:         rdb,
		APIPrefix:     cfg.APIPrefix,
		Logger:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("prefix", cfg.APIPrefix).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
