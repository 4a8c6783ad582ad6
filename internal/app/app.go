package app

import (
	"anilhas-backend/internal/access"
	"anilhas-backend/internal/audit"
	"anilhas-backend/internal/auth"
	"anilhas-backend/internal/config"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/database"
	"anilhas-backend/internal/health"
	"anilhas-backend/internal/lifecycle"
	"anilhas-backend/internal/middleware"
	"anilhas-backend/internal/movements"
	"anilhas-backend/internal/producers"
	"anilhas-backend/internal/profiles"
	"anilhas-backend/internal/provisioning"
	"anilhas-backend/internal/rings"
	"anilhas-backend/internal/roosters"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the app plus DB/Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis)
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Health request marker (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// Health endpoints (no auth)
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	if db != nil {
		healthHandlers.DB = &database.Pinger{DB: db}
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	// Auth (no auth middleware)
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Protected modules (auth required) ---
	if db != nil && rdb != nil {
		gate := &access.Gate{DB: db}

		ringService := &rings.Service{DB: db}
		ringHandlers := &rings.Handlers{Service: ringService}

		movementService := &movements.Service{DB: db}
		movementHandlers := &movements.Handlers{Service: movementService, Gate: gate}

		lifecycleService := &lifecycle.Service{DB: db}
		lifecycleHandlers := &lifecycle.Handlers{Service: lifecycleService, Gate: gate}

		roosterService := &roosters.Service{DB: db}
		roosterHandlers := &roosters.Handlers{Service: roosterService, Gate: gate}

		producerService := &producers.Service{DB: db}
		producerHandlers := &producers.Handlers{Service: producerService}

		auditService := &audit.Service{DB: db}
		auditHandlers := &audit.Handlers{Service: auditService}
		provisioningService := &provisioning.Service{
			DB:        db,
			Identity:  &provisioning.GormIdentityStore{DB: db},
			Producers: producerService,
			Audit:     auditService,
		}
		provisioningHandlers := &provisioning.Handlers{Service: provisioningService, Gate: gate}

		// Admin module (role-gated per route). ActiveProfile re-checks the
		// profile row so a deactivated admin loses access before session expiry.
		adminGroup := app.Group("/api/v1/admin", middleware.RequireAuth(), middleware.ActiveProfile(gate))
		adminGroup.Post("/generate-rings", middleware.AuthorizePermission(constants.GenerateRings), ringHandlers.GenerateRings)
		adminGroup.Get("/ring-pool", middleware.AuthorizePermission(constants.ViewRingPool), ringHandlers.RingPool)
		adminGroup.Post("/assign-rings", middleware.AuthorizePermission(constants.AssignRings), lifecycleHandlers.AssignRings)
		adminGroup.Get("/out-history", middleware.AuthorizePermission(constants.ViewGlobalHistory), movementHandlers.OutHistory)
		adminGroup.Get("/transfer-history", middleware.AuthorizePermission(constants.ViewGlobalHistory), movementHandlers.TransferHistory)
		adminGroup.Post("/create-user", middleware.AuthorizePermission(constants.ManageUsers), provisioningHandlers.CreateUser)
		adminGroup.Post("/reset-password", middleware.AuthorizePermission(constants.ManageUsers), provisioningHandlers.ResetPassword)
		adminGroup.Post("/toggle-active", middleware.AuthorizePermission(constants.ManageUsers), provisioningHandlers.ToggleActive)
		adminGroup.Get("/users", middleware.AuthorizePermission(constants.ManageUsers), provisioningHandlers.ListUsers)
		adminGroup.Get("/audit-events", middleware.AuthorizePermission(constants.ManageUsers), auditHandlers.List)

		// Self-service profile (any authenticated role, own row only)
		profileService := &profiles.Service{DB: db}
		profileHandlers := &profiles.Handlers{Service: profileService, Gate: gate}
		profileGroup := app.Group("/api/v1/profile", middleware.RequireAuth())
		profileGroup.Get("/", profileHandlers.Me)
		profileGroup.Patch("/", profileHandlers.Update)

		// Producers (any authenticated role: transfer destination picker)
		app.Get("/api/v1/producers", middleware.RequireAuth(), middleware.ActiveProfile(gate), producerHandlers.ListActive)

		// Roosters (scoped by the gate)
		roosterGroup := app.Group("/api/v1/roosters", middleware.RequireAuth())
		roosterGroup.Get("/", roosterHandlers.ListActive)
		roosterGroup.Get("/:ring_number", roosterHandlers.Timeline)

		// Movements / lifecycle operations
		movementGroup := app.Group("/api/v1/movements", middleware.RequireAuth())
		movementGroup.Post("/assign-current-month", middleware.AuthorizePermission(constants.AssignOwnRings), lifecycleHandlers.AssignCurrentMonth)
		movementGroup.Post("/exit", middleware.AuthorizePermission(constants.ExitRooster), lifecycleHandlers.Exit)
		movementGroup.Post("/exit-detailed", middleware.AuthorizePermission(constants.ExitRooster), lifecycleHandlers.ExitDetailed)
		movementGroup.Post("/transfer", middleware.AuthorizePermission(constants.TransferRooster), lifecycleHandlers.Transfer)
		movementGroup.Post("/transfer-detailed", middleware.AuthorizePermission(constants.TransferRooster), lifecycleHandlers.TransferDetailed)
		movementGroup.Get("/history", middleware.AuthorizePermission(constants.ViewFlock), movementHandlers.History)
	}

	return app, db, rdb, nil
}
