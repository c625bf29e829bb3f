package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/assetcare/asset-admin/internal/api/handler"
	"github.com/assetcare/asset-admin/internal/api/middleware"
	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/ports"
	"github.com/assetcare/asset-admin/internal/core/rbac"
)

// Dependencies carries everything the router wires into handlers. Redis may
// be nil when the in-memory attempt store is configured.
type Dependencies struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Objects       ports.ObjectService
	Equipments    ports.EquipmentService
	Organizations ports.OrganizationService
	Defects       ports.DefectService
	Settings      ports.SettingsService
	Resources     ports.ResourceService

	Mongo *mongo.Database
	Redis *redis.Client

	APIPrefix string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("assetadmin"))

	// --- Health and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	objectHandler := handler.NewObjectHandler(deps.Objects)
	equipmentHandler := handler.NewEquipmentHandler(deps.Equipments)
	organizationHandler := handler.NewOrganizationHandler(deps.Organizations)
	defectHandler := handler.NewDefectHandler(deps.Defects)
	settingsHandler := handler.NewSettingsHandler(deps.Settings)
	resourceHandler := handler.NewResourceHandler(deps.Resources)

	v1 := e.Group(deps.APIPrefix)

	// --- Auth routes ---
	v1.POST("/auth/admin/sign-in", authHandler.SignIn)

	// --- Authenticated routes ---
	authed := v1.Group("", middleware.Auth(deps.Auth))

	authed.POST("/users", userHandler.Create, middleware.Gate(domain.KindUser, rbac.VerbCreate))
	authed.GET("/users", userHandler.List, middleware.Gate(domain.KindUser, rbac.VerbRead))
	authed.GET("/users/:id", userHandler.ByID, middleware.Gate(domain.KindUser, rbac.VerbRead))
	authed.PUT("/users/:id", userHandler.Update, middleware.Gate(domain.KindUser, rbac.VerbUpdate))
	authed.PUT("/users/:id/state", userHandler.UpdateState, middleware.Gate(domain.KindUser, rbac.VerbUpdate))

	authed.POST("/objects", objectHandler.Create, middleware.Gate(domain.KindObject, rbac.VerbCreate))
	authed.GET("/objects", objectHandler.List, middleware.Gate(domain.KindObject, rbac.VerbRead))
	authed.GET("/objects/:id", objectHandler.ByID, middleware.Gate(domain.KindObject, rbac.VerbRead))
	authed.PUT("/objects/:id", objectHandler.Update, middleware.Gate(domain.KindObject, rbac.VerbUpdate))
	authed.DELETE("/objects/:id", objectHandler.Delete, middleware.Gate(domain.KindObject, rbac.VerbDelete))

	authed.POST("/equipments", equipmentHandler.Create, middleware.Gate(domain.KindEquipment, rbac.VerbCreate))
	authed.GET("/equipments", equipmentHandler.List, middleware.Gate(domain.KindEquipment, rbac.VerbRead))
	authed.GET("/equipments/:id", equipmentHandler.ByID, middleware.Gate(domain.KindEquipment, rbac.VerbRead))
	authed.PUT("/equipments/:id", equipmentHandler.Update, middleware.Gate(domain.KindEquipment, rbac.VerbUpdate))
	authed.DELETE("/equipments/:id", equipmentHandler.Delete, middleware.Gate(domain.KindEquipment, rbac.VerbDelete))

	authed.POST("/organizations", organizationHandler.Create, middleware.Gate(domain.KindOrganization, rbac.VerbCreate))
	authed.GET("/organizations", organizationHandler.List, middleware.Gate(domain.KindOrganization, rbac.VerbRead))
	authed.GET("/organizations/:id", organizationHandler.ByID, middleware.Gate(domain.KindOrganization, rbac.VerbRead))
	authed.PUT("/organizations/:id", organizationHandler.Update, middleware.Gate(domain.KindOrganization, rbac.VerbUpdate))
	authed.DELETE("/organizations/:id", organizationHandler.Delete, middleware.Gate(domain.KindOrganization, rbac.VerbDelete))

	authed.POST("/defects", defectHandler.Create, middleware.Gate(domain.KindDefect, rbac.VerbCreate))
	authed.GET("/defects", defectHandler.List, middleware.Gate(domain.KindDefect, rbac.VerbRead))
	authed.GET("/defects/:id", defectHandler.ByID, middleware.Gate(domain.KindDefect, rbac.VerbRead))
	authed.PUT("/defects/:id", defectHandler.Update, middleware.Gate(domain.KindDefect, rbac.VerbUpdate))
	authed.DELETE("/defects/:id", defectHandler.Delete, middleware.Gate(domain.KindDefect, rbac.VerbDelete))

	authed.GET("/settings", settingsHandler.Get, middleware.Gate(domain.KindSettings, rbac.VerbRead))
	authed.PUT("/settings", settingsHandler.Update, middleware.Gate(domain.KindSettings, rbac.VerbUpdate))

	authed.POST("/resources", resourceHandler.Upload, middleware.Gate(domain.KindResource, rbac.VerbCreate))

	return e
}
