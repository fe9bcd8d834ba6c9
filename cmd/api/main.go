package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/onboarding-service/internal/api/http"
	"github.com/spec-kit/onboarding-service/internal/api/http/handlers"
	"github.com/spec-kit/onboarding-service/internal/auth"
	"github.com/spec-kit/onboarding-service/internal/client"
	"github.com/spec-kit/onboarding-service/internal/config"
	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/events"
	"github.com/spec-kit/onboarding-service/internal/observability"
	"github.com/spec-kit/onboarding-service/internal/persistence"
	"github.com/spec-kit/onboarding-service/internal/repository"
	"github.com/spec-kit/onboarding-service/internal/service"
	"github.com/spec-kit/onboarding-service/internal/wizard"
	"github.com/spec-kit/onboarding-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rds := persistence.NewRedis(cfg.Redis, logger)
	defer rds.Close()

	pool := pg.PoolHandle()

	var (
		deptRepo      repository.DepartmentRepository
		locationRepo  repository.LocationRepository
		basicInfoRepo repository.BasicInfoRepository
		detailsRepo   repository.DetailsRepository
		operatorRepo  repository.OperatorRepository
	)
	if pool != nil {
		deptRepo = repository.NewDepartmentRepository(pool)
		locationRepo = repository.NewLocationRepository(pool)
		basicInfoRepo = repository.NewBasicInfoRepository(pool)
		detailsRepo = repository.NewDetailsRepository(pool)
		operatorRepo = repository.NewOperatorRepository(pool)
	} else {
		directory := repository.NewMemoryDirectory(domain.SeedDepartments(), domain.SeedLocations())
		deptRepo = directory
		locationRepo = directory.Locations()
		basicInfoRepo = repository.NewMemoryBasicInfo(nil)
		detailsRepo = repository.NewMemoryDetails(nil)
		operatorRepo = repository.NewMemoryOperators(nil)
	}

	var draftStore wizard.DraftStore
	if err := rds.Ping(ctx); err == nil {
		draftStore = repository.NewRedisDraftStore(rds.Client, cfg.Wizard.DraftMaxAge())
	} else {
		logger.Warn("using in-memory draft store", zap.Error(err))
		draftStore = repository.NewMemoryDraftStore()
	}

	dispatcher := events.NewInMemoryDispatcher()

	directoryService := service.NewDirectoryService(deptRepo, locationRepo)
	onboardingService := service.NewOnboardingService(basicInfoRepo, detailsRepo, dispatcher)
	employeeService := service.NewEmployeeService(onboardingService)
	authService := service.NewAuthService(cfg.Auth, operatorRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), operatorRepo)

	if pool == nil {
		seedOperators(ctx, authService, logger)
	}

	// With a remote backend configured the wizard talks to it over HTTP;
	// otherwise the in-process services serve both roles.
	var (
		wizardDirectory wizard.Directory = directoryService
		wizardBackend   wizard.Backend   = service.NewLocalBackend(onboardingService)
	)
	if cfg.Wizard.BackendBaseURL != "" {
		api := client.New(cfg.Wizard.BackendBaseURL, cfg.Wizard.ClientTimeout())
		wizardDirectory = api
		wizardBackend = api
	}

	metrics := observability.NewMetrics()
	wizardService := service.NewWizardService(cfg.Wizard, service.WizardDependencies{
		Directory:  wizardDirectory,
		Backend:    wizardBackend,
		DraftStore: draftStore,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rds),
		Operators:      handlers.NewOperatorsHandler(authService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		BasicInfo:      handlers.NewBasicInfoHandler(onboardingService),
		Details:        handlers.NewDetailsHandler(onboardingService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Wizard:         handlers.NewWizardHandler(wizardService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// seedOperators provisions default accounts so the wizard is usable out of
// the box when running without Postgres.
func seedOperators(ctx context.Context, authService *service.AuthService, logger *zap.Logger) {
	accounts := []struct {
		name, email, password string
		role                  domain.UserRole
	}{
		{"Admin Operator", "admin@example.com", "admin123", domain.RoleAdmin},
		{"Ops Operator", "ops@example.com", "ops123", domain.RoleOps},
	}
	for _, account := range accounts {
		if _, err := authService.Register(ctx, account.name, account.email, account.password, account.role); err != nil {
			logger.Warn("failed to seed operator", zap.String("email", account.email), zap.Error(err))
		}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
