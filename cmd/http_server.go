package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/core/events"
	"github.com/railtrace/railway-assets/internal/dashboard"
	"github.com/railtrace/railway-assets/internal/identity"
	"github.com/railtrace/railway-assets/internal/inspection"
	inspectionPostgres "github.com/railtrace/railway-assets/internal/inspection/postgres"
	"github.com/railtrace/railway-assets/internal/profile"
	"github.com/railtrace/railway-assets/internal/rbac"
	"github.com/railtrace/railway-assets/internal/session"
	"github.com/railtrace/railway-assets/internal/storage"
	"github.com/railtrace/railway-assets/internal/transport"
	"github.com/railtrace/railway-assets/internal/transport/rest"
	"github.com/railtrace/railway-assets/internal/user"
	userPostgres "github.com/railtrace/railway-assets/internal/user/postgres"
	"github.com/railtrace/railway-assets/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Local    *storage.Local
	Router   *chi.Mux
	Resolver *session.Resolver
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	// Resolve the initial session before accepting traffic. The context
	// stays alive for the whole run: in remote mode it drives the identity
	// subscription's polling loop, so cancelling it would stop change
	// notifications. Individual remote calls are bounded by the client
	// timeouts, not by this context.
	sessionCtx, cancelSession := context.WithCancel(context.Background())
	defer cancelSession()
	deps.Resolver.Start(sessionCtx)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
		if err := deps.Local.Close(); err != nil {
			slog.Error("Local store close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithConfig(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	if err := rest.ValidateOpenAPISpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("openapi spec check failed: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wrap database with gorm: %w", err)
	}

	local, err := storage.OpenLocal(config.LocalStore.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local session store: %w", err)
	}

	bus := events.NewEventBus(lg)
	state := session.NewState(bus, lg)

	identityClient := identity.NewClient(identity.Config{
		BaseURL:      config.Identity.BaseURL,
		APIKey:       config.Identity.APIKey,
		Timeout:      config.Identity.Timeout,
		PollInterval: config.Identity.PollInterval,
	}, lg)

	profileStore := profile.NewStore(profile.Config{
		BaseURL: config.Profile.BaseURL,
		APIKey:  config.Profile.APIKey,
		Timeout: config.Profile.Timeout,
	}, lg)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), config.Auth.BCryptCost, lg)

	resolver := session.NewResolver(
		config.Auth.UseLocalAuth,
		identityClient,
		profileStore,
		local,
		userService,
		state,
		bus,
		lg,
	)

	tokens := session.NewJWTTokenGenerator(
		config.Auth.AccessTokenSecret,
		config.Auth.RefreshTokenSecret,
		config.Auth.AccessTokenDuration,
		config.Auth.RefreshTokenDuration,
	)

	baseHandler := transport.NewBaseHandler(lg)

	inspectionService := inspection.NewService(inspectionPostgres.NewInspectionRepository(gormDB), lg)
	dashboardService := dashboard.NewService(
		dashboard.NewProductsClient(dashboard.Config{
			BaseURL: config.Products.BaseURL,
			Timeout: config.Products.Timeout,
		}),
		inspectionService,
		lg,
	)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Session:    session.NewHandler(resolver, tokens),
		RBAC:       rbac.NewHandler(),
		User:       user.NewHandler(baseHandler, userService),
		Inspection: inspection.NewHandler(baseHandler, inspectionService),
		Dashboard:  dashboard.NewHandler(baseHandler, dashboardService),
	}, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Local:    local,
		Router:   router,
		Resolver: resolver,
		Logger:   lg,
	}, nil
}

// initDB opens the Postgres pool through the pgx stdlib driver.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
