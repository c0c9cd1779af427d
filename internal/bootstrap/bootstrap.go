package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appControllers "github.com/nucesstack/notestack/internal/app/controllers"
	appMigrations "github.com/nucesstack/notestack/internal/app/migrations"
	appRepos "github.com/nucesstack/notestack/internal/app/repositories"
	appRoutes "github.com/nucesstack/notestack/internal/app/routes"
	appServices "github.com/nucesstack/notestack/internal/app/services"
	"github.com/nucesstack/notestack/internal/config"
	"github.com/nucesstack/notestack/internal/db"
	appMiddleware "github.com/nucesstack/notestack/internal/middleware"
	pkgAuth "github.com/nucesstack/notestack/internal/pkg/auth"
	"github.com/nucesstack/notestack/internal/pkg/helpers"
	"github.com/nucesstack/notestack/internal/pkg/logger"
	"github.com/nucesstack/notestack/internal/pkg/notify"
	"github.com/nucesstack/notestack/internal/pkg/spool"
	"github.com/nucesstack/notestack/internal/pkg/upload"
	"github.com/nucesstack/notestack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService        *pkgAuth.JWTService
	AuthService       *appServices.AuthService
	CatalogService    *appServices.CatalogService
	NoteService       *appServices.NoteService
	SubmissionService *appServices.SubmissionService
	ModerationService *appServices.ModerationService

	AuthController         *appControllers.AuthController
	CatalogController      *appControllers.CatalogController
	AdminCatalogController *appControllers.AdminCatalogController
	NoteController         *appControllers.NoteController
	SubmissionController   *appControllers.SubmissionController
	ModerationController   *appControllers.ModerationController
	AuthMiddleware         *appMiddleware.AuthMiddleware

	Spool    *spool.Store
	Notifier notify.Notifier
}

// LoadConfigAndSetupLogger loads configuration and initializes the
// global logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	logger.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds default data.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool); err != nil {
		// Startup continues; a partially seeded database is workable.
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies wires repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(database)

	spoolStore, err := spool.NewStore(cfg.Server.SpoolPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize spool directory")
		return nil, fmt.Errorf("failed to initialize spool directory: %w", err)
	}
	deps.Spool = spoolStore

	if cfg.Notify.Topic != "" {
		deps.Notifier = notify.NewNtfyNotifier(cfg.Notify.BaseURL, cfg.Notify.Topic, cfg.Notify.QueueSize)
	} else {
		logger.Warn().Msg("No notification topic configured, notifications disabled")
		deps.Notifier = notify.Noop{}
	}

	forwarder := upload.NewClient(
		cfg.Upload.WebhookURL,
		cfg.Upload.APIKey,
		helpers.ParseDuration(cfg.Upload.Timeout, 30*time.Second),
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AdminRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.SemesterRepository,
		deps.Repos.SubjectRepository,
		deps.Repos.NoteRepository,
	)
	deps.NoteService = appServices.NewNoteService(
		deps.Repos.NoteRepository,
		deps.Repos.SubjectRepository,
	)
	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.SubjectRepository,
		deps.Repos.NoteRepository,
		deps.Spool,
		forwarder,
		deps.Notifier,
	)
	deps.ModerationService = appServices.NewModerationService(
		deps.Repos.NoteRepository,
		deps.Repos.AuditRepository,
		deps.Notifier,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.AdminCatalogController = appControllers.NewAdminCatalogController(deps.CatalogService, deps.NoteService)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.SubmissionService)
	deps.ModerationController = appControllers.NewModerationController(deps.ModerationService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.AdminCatalogController,
		deps.NoteController,
		deps.SubmissionController,
		deps.ModerationController,
		deps.AuthMiddleware,
	)

	return router
}
