package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gottaspeak/backend/internal/api/http"
	"github.com/gottaspeak/backend/internal/api/http/handlers"
	"github.com/gottaspeak/backend/internal/auth"
	"github.com/gottaspeak/backend/internal/config"
	"github.com/gottaspeak/backend/internal/events"
	"github.com/gottaspeak/backend/internal/mail"
	"github.com/gottaspeak/backend/internal/observability"
	"github.com/gottaspeak/backend/internal/persistence"
	"github.com/gottaspeak/backend/internal/repository"
	"github.com/gottaspeak/backend/internal/service"
	"github.com/gottaspeak/backend/internal/worker"
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

	rdb := persistence.NewRedis(cfg.Redis, logger)
	defer rdb.Close()

	pool := pg.PoolHandle()
	sessionRepo := repository.NewSessionRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	siteConfigRepo := repository.NewSiteConfigRepository(pool)
	lessonLinkRepo := repository.NewLessonLinkRepository(pool)
	supportMailRepo := repository.NewSupportMailRepository(pool)

	tokenService := auth.NewSessionTokenService(cfg.Session.JWTSecret)
	adminGuard := auth.NewAdminGuard(cfg.Admin.TokenHash)

	dispatcher := events.NewInMemoryDispatcher(logger)
	mailer := mail.NewMailer(cfg.Mail)
	notificationService := service.NewMailNotificationService(dispatcher, mailer, supportMailRepo, logger)
	worker.StartMailWorker(notificationService)

	siteConfigService := service.NewSiteConfigService(siteConfigRepo, rdb.Client, logger)
	sessionService := service.NewSessionService(sessionRepo, service.NewRoomNamer(), cfg.Session.DefaultTTLMinutes)
	inviteService := service.NewInviteService(sessionRepo, tokenService, cfg.Session.FrontendURL, cfg.Session.DefaultTTLMinutes)
	lessonLinkService := service.NewLessonLinkService(lessonLinkRepo, service.NewRoomNamer(), siteConfigService, cfg.Session.DefaultTTLMinutes)
	joinService := service.NewJoinService(sessionRepo, tokenService, siteConfigService, logger)
	materialService := service.NewMaterialService(materialRepo)
	noteService := service.NewNoteService(noteRepo)
	progressService := service.NewProgressService(progressRepo)
	messageService := service.NewMessageService(messageRepo)
	contactService := service.NewContactService(dispatcher, rdb.Client, cfg.Mail.SupportTo, cfg.Mail.HelloTo, logger)
	courseService := service.NewCourseService(cfg.Courses, logger)
	defer courseService.Stop()

	reaper := worker.NewSessionReaper(sessionRepo, dispatcher, cfg.Session.ReapInterval(), logger)
	reaper.Start(ctx)
	defer reaper.Stop()

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(),
		Sessions:   handlers.NewSessionsHandler(sessionService, inviteService, joinService),
		Materials:  handlers.NewMaterialsHandler(materialService),
		Notes:      handlers.NewNotesHandler(noteService),
		Progress:   handlers.NewProgressHandler(progressService),
		Messages:   handlers.NewMessagesHandler(messageService),
		Contact:    handlers.NewContactHandler(contactService),
		Lessons:    handlers.NewLessonLinksHandler(lessonLinkService),
		Config:     handlers.NewConfigHandler(siteConfigService),
		Courses:    handlers.NewCoursesHandler(courseService),
		AdminGuard: adminGuard,
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
