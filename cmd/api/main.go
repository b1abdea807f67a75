package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpdeskpro/helpdesk-service/internal/api/http"
	"github.com/helpdeskpro/helpdesk-service/internal/api/http/handlers"
	"github.com/helpdeskpro/helpdesk-service/internal/auth"
	"github.com/helpdeskpro/helpdesk-service/internal/config"
	"github.com/helpdeskpro/helpdesk-service/internal/events"
	"github.com/helpdeskpro/helpdesk-service/internal/mail"
	"github.com/helpdeskpro/helpdesk-service/internal/observability"
	"github.com/helpdeskpro/helpdesk-service/internal/persistence"
	"github.com/helpdeskpro/helpdesk-service/internal/repository"
	"github.com/helpdeskpro/helpdesk-service/internal/service"
	"github.com/helpdeskpro/helpdesk-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewSMTPMailer(cfg.SMTP, logger)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo: commentRepo,
		TicketRepo:  ticketRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.App.BaseURL)
	reminderService := service.NewReminderService(service.ReminderDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
		Stamper:     redis,
		StaleAfter:  cfg.Reminder.StaleAfter(),
		Logger:      logger,
	})

	worker.StartNotificationWorker(notificationService)
	worker.StartReminderWorker(ctx, reminderService, cfg.Reminder.Interval(), logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Reminders:      handlers.NewRemindersHandler(reminderService),
		AuthMiddleware: authMiddleware,
		CronSecret:     cfg.Reminder.Secret,
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
