package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lost-and-found/internal/config"
	"lost-and-found/internal/database"
	"lost-and-found/internal/event"
	"lost-and-found/internal/handler"
	"lost-and-found/internal/middleware"
	"lost-and-found/internal/repository"
	"lost-and-found/internal/repository/memory"
	"lost-and-found/internal/router"
	"lost-and-found/internal/service"
	"lost-and-found/internal/storage"
	"lost-and-found/internal/websocket"
)

type App struct {
	cfg          *config.Config
	server       *http.Server
	hub          *websocket.Hub
	jobs         *housekeeping
	cleanupFuncs []func()
}

type stores struct {
	items    service.ItemStore
	claims   service.ClaimStore
	activity service.ActivityStore
	attempts service.LoginAttemptStore
	users    service.UserStore
	tokens   service.TokenStore
}

func openStores(ctx context.Context, cfg *config.Config) (stores, *database.DB, error) {
	if cfg.StoreBackend == config.BackendMemory {
		slog.Warn("using in-memory stores; data is lost on restart")
		return stores{
			items:    memory.NewItemStore(),
			claims:   memory.NewClaimStore(),
			activity: memory.NewActivityStore(),
			attempts: memory.NewLoginAttemptStore(),
			users:    memory.NewUserStore(),
			tokens:   memory.NewTokenStore(),
		}, nil, nil
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return stores{}, nil, fmt.Errorf("failed to open database: %w", err)
	}

	pool := db.Pool
	slog.Info("database ready")
	return stores{
		items:    repository.NewItemRepository(pool),
		claims:   repository.NewClaimRepository(pool),
		activity: repository.NewActivityRepository(pool),
		attempts: repository.NewLoginAttemptRepository(pool),
		users:    repository.NewUserRepository(pool),
		tokens:   repository.NewTokenRepository(pool),
	}, db, nil
}

func openImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, string, error) {
	if cfg.ImageStore == config.ImageStoreS3 {
		store, err := storage.NewS3(ctx, storage.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize S3 image store: %w", err)
		}
		return store, "", nil
	}

	store, err := storage.NewLocal(cfg.UploadRoot, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize upload directory: %w", err)
	}
	return store, store.Root(), nil
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	st, db, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var cleanupFuncs []func()
	health := handler.NewHealthHandler(nil, cfg.StoreBackend)
	if db != nil {
		cleanupFuncs = append(cleanupFuncs, db.Close)
		health = handler.NewHealthHandler(db, cfg.StoreBackend)
	}

	images, uploadRoot, err := openImageStore(ctx, cfg)
	if err != nil {
		for _, cleanup := range cleanupFuncs {
			cleanup()
		}
		return nil, err
	}

	bus := event.NewBus()
	hub := websocket.NewHub(bus, cfg.EventDebounce)

	activityService := service.NewActivityService(st.activity, cfg.ActivityRetention())
	guard := service.NewLoginGuard(st.attempts, bus, cfg.AdminContactEmail)
	authService := service.NewAuthService(st.users, st.tokens, guard, service.AuthConfig{
		JWTSecret:   cfg.JWTSecret,
		AccessTTL:   cfg.JWTAccessTTL,
		RefreshTTL:  cfg.JWTRefreshTTL,
		AdminEmails: cfg.AdminEmails,
	})
	itemService := service.NewItemService(st.items, activityService, bus, cfg.SortLocale, cfg.BulkConcurrency)
	itemService.SetImageStore(images)
	claimService := service.NewClaimService(st.claims, st.items, activityService, bus)
	uploadService := service.NewUploadService(images, cfg.MaxUploadSize, cfg.ImageMaxDimension)
	exportService := service.NewExportService(itemService, cfg.ReportOrganization)

	jobs, err := newHousekeeping(authService, activityService, cfg.TokenCleanupInterval, cfg.ActivityPurgeInterval)
	if err != nil {
		for _, cleanup := range cleanupFuncs {
			cleanup()
		}
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Health:       health,
		Auth:         handler.NewAuthHandler(authService, guard),
		Items:        handler.NewItemHandler(itemService, claimService, exportService),
		Uploads:      handler.NewUploadHandler(uploadService),
		Claims:       handler.NewClaimHandler(claimService),
		Activity:     handler.NewActivityHandler(activityService),
		LoginAttempt: handler.NewLoginAttemptHandler(guard),
		Events:       handler.NewEventsHandler(hub, websocket.NewUpgrader(cfg.CORSOrigins)),
	}, uploadRoot)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		cfg:          cfg,
		server:       server,
		hub:          hub,
		jobs:         jobs,
		cleanupFuncs: cleanupFuncs,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.hub.Run(ctx)
	a.jobs.Start()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr, "backend", a.cfg.StoreBackend, "images", a.cfg.ImageStore)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.jobs.Stop()
	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return runErr
}
