package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/rafael/coursehub/internal/app/auth"
	appControllers "github.com/rafael/coursehub/internal/app/controllers"
	appMigrations "github.com/rafael/coursehub/internal/app/migrations"
	appRepos "github.com/rafael/coursehub/internal/app/repositories"
	appRoutes "github.com/rafael/coursehub/internal/app/routes"
	appServices "github.com/rafael/coursehub/internal/app/services"
	"github.com/rafael/coursehub/internal/config"
	"github.com/rafael/coursehub/internal/db"
	appMiddleware "github.com/rafael/coursehub/internal/middleware"
	pkgAuth "github.com/rafael/coursehub/internal/pkg/auth"
	"github.com/rafael/coursehub/internal/pkg/filestorage"
	"github.com/rafael/coursehub/internal/pkg/helpers"
	"github.com/rafael/coursehub/internal/pkg/logger"
	"github.com/rafael/coursehub/internal/pkg/validation"
	"github.com/rafael/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	FileStorage  *filestorage.LocalStorage
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	Controllers  appRoutes.Controllers
	Logger       zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default organization.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		// A seeding failure is inconvenient, not fatal.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	// The base URL must match the static file serving endpoint.
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.OrganizationRepository,
		deps.Repos.AssociateRepository,
	)

	authService := appServices.NewAuthService(
		database,
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.OrganizationRepository,
		deps.Repos.AssociateRepository,
		deps.JWTService,
	)
	accountService := appServices.NewAccountService(
		deps.Repos.UserRepository,
		deps.Repos.OrganizationRepository,
		deps.Repos.AssociateRepository,
		deps.FileStorage,
	)
	associateService := appServices.NewAssociateService(
		deps.Repos.OrganizationRepository,
		deps.Repos.AssociateRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CategoryRepository,
		deps.Repos.QuestionRepository,
	)
	categoryService := appServices.NewCategoryService(deps.Repos.CategoryRepository)
	courseService := appServices.NewCourseService(
		database,
		deps.Repos.CourseRepository,
		deps.Repos.CategoryRepository,
		deps.FileStorage,
	)
	lessonService := appServices.NewLessonService(
		deps.Repos.LessonRepository,
		deps.Repos.CourseRepository,
		deps.FileStorage,
	)
	qaService := appServices.NewQAService(
		database,
		deps.Repos.QuestionRepository,
		deps.Repos.AnswerRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.LessonRepository,
		deps.Repos.OrganizationRepository,
	)
	notificationService := appServices.NewNotificationService(database, deps.Repos.NotificationRepository)
	quizService := appServices.NewQuizService(database, deps.Repos.QuizRepository, deps.Repos.CourseRepository)
	forumService := appServices.NewForumService(deps.Repos.TopicRepository, deps.FileStorage)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService, associateService),
		Account:      appControllers.NewAccountController(accountService),
		Category:     appControllers.NewCategoryController(categoryService),
		Course:       appControllers.NewCourseController(courseService),
		Lesson:       appControllers.NewLessonController(lessonService),
		QA:           appControllers.NewQAController(qaService),
		Notification: appControllers.NewNotificationController(notificationService),
		Quiz:         appControllers.NewQuizController(quizService),
		Forum:        appControllers.NewForumController(forumService),
		Instructor:   appControllers.NewInstructorController(associateService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterCustomRules(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validation rules")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.JWTService, deps.AuthzService)

	return router
}
