package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/vitality/web/config"
	"github.com/pageza/vitality/web/internal/api"
	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/branding"
	"github.com/pageza/vitality/web/internal/database"
	"github.com/pageza/vitality/web/internal/logging"
	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/router"
	"github.com/pageza/vitality/web/internal/server"
	"github.com/pageza/vitality/web/internal/service"
	"github.com/pageza/vitality/web/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	env := config.GetEnvironment()
	gin.SetMode(env.GinMode())
	logger := logging.New(cfg)
	secure := env == config.Production

	ctx := context.Background()
	health := database.NewHealthChecker(3 * time.Second)

	// Sessions and rate limits share one backend
	var (
		store   session.Store
		counter middleware.Counter
	)
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := database.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to Redis")
		}
		defer client.Close()
		store = session.NewRedisStore(client)
		counter = middleware.NewRedisCounter(client)
	default:
		logger.Warn("using in-memory sessions; sessions are lost on restart")
		store = session.NewMemoryStore()
		counter = middleware.NewMemoryCounter()
	}
	health.Register("sessions", store)

	codec, err := session.NewCookieCodec(cfg.SessionSecret)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize session cookies")
	}
	manager := session.NewManager(store, cfg.SessionTTL)
	loader := middleware.NewSessionLoader(manager, codec, logger, secure)

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize S3")
	}

	backend := apiclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, apiclient.WithLogger(logger))
	organizations := service.NewOrganizationService(backend)
	svc := api.Services{
		Auth:          service.NewAuthService(backend),
		Profile:       service.NewProfileService(backend),
		Users:         service.NewUserService(backend),
		Foods:         service.NewFoodService(backend),
		Exercises:     service.NewExerciseService(backend),
		Measurements:  service.NewMeasurementService(backend),
		Diets:         service.NewDietService(backend),
		Workouts:      service.NewWorkoutService(backend),
		Organizations: organizations,
		Logos:         service.NewImageService(s3Config, nil),
		Notifications: service.NewNotificationService(backend),
	}
	health.Register("backend", database.PingFunc(func(ctx context.Context) error {
		_, err := organizations.GetConfig(ctx, cfg.DefaultTenant)
		return err
	}))

	render := api.NewResponder(manager, logger)
	members := api.NewMemberHandler(svc, render)
	handlers := router.Handlers{
		Health:        api.NewHealthHandler(health),
		Home:          api.NewHomeHandler(render, cfg.DefaultTenant),
		Auth:          api.NewAuthHandler(svc.Auth, loader, middleware.NewLoginRateLimiter(counter, cfg.LoginRateLimit), render, cfg.DefaultTenant),
		Member:        members,
		Notifications: api.NewNotificationHandler(svc, render),
		Trainer:       api.NewTrainerHandler(svc, render),
		Admin:         api.NewAdminHandler(svc, render, members),
		SuperAdmin:    api.NewSuperAdminHandler(svc, render),
	}

	engine := router.SetupRouter(handlers, router.Options{
		Loader:         loader,
		Resolver:       branding.NewResolver(organizations, cfg.DefaultTenant, logger),
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Logger:         logger,
	})

	srv, err := server.New(cfg, engine, logger, secure)
	if err != nil {
		logger.WithError(err).Fatal("failed to create server")
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("received signal")
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("server stopped")
}
