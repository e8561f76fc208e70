package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/work-nest/backoffice/internal/api/http"
	"github.com/work-nest/backoffice/internal/api/http/handlers"
	"github.com/work-nest/backoffice/internal/auth"
	"github.com/work-nest/backoffice/internal/config"
	"github.com/work-nest/backoffice/internal/events"
	"github.com/work-nest/backoffice/internal/notification"
	"github.com/work-nest/backoffice/internal/observability"
	"github.com/work-nest/backoffice/internal/persistence"
	"github.com/work-nest/backoffice/internal/repository"
	"github.com/work-nest/backoffice/internal/service"
	"github.com/work-nest/backoffice/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	txManager := repository.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var mailer notification.Mailer
	if strings.TrimSpace(cfg.Mail.SMTPHost) == "" {
		mailer = notification.NewLogMailer(logger)
	} else {
		mailer = notification.NewSMTPMailer(cfg.Mail)
	}

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
		Redis:       redis.ClientHandle(),
		Logger:      logger,
	})
	invitationService := service.NewInvitationService(cfg.Auth, service.InvitationDependencies{
		AccountRepo:    accountRepo,
		DepartmentRepo: departmentRepo,
		Tx:             txManager,
		TokenManager:   authService.TokenManager(),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	departmentService := service.NewDepartmentService(service.DepartmentDependencies{
		DepartmentRepo: departmentRepo,
		AccountRepo:    accountRepo,
		Tx:             txManager,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	bookingService := service.NewBookingService(cfg.Booking, service.BookingDependencies{
		BookingRepo: bookingRepo,
		AccountRepo: accountRepo,
		ClientRepo:  clientRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	clientService := service.NewClientService(clientRepo)
	accountService := service.NewAccountService(accountRepo)

	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Invitations:    handlers.NewInvitationHandler(invitationService),
		Departments:    handlers.NewDepartmentHandler(departmentService),
		Bookings:       handlers.NewBookingHandler(bookingService),
		Clients:        handlers.NewClientHandler(clientService),
		Accounts:       handlers.NewAccountHandler(accountService),
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
