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

	"github.com/registroos/registro-os/internal"
	"github.com/registroos/registro-os/internal/access"
	"github.com/registroos/registro-os/internal/apontamento"
	apontamentoPostgres "github.com/registroos/registro-os/internal/apontamento/postgres"
	"github.com/registroos/registro-os/internal/auth"
	authPostgres "github.com/registroos/registro-os/internal/auth/postgres"
	"github.com/registroos/registro-os/internal/catalog"
	catalogPostgres "github.com/registroos/registro-os/internal/catalog/postgres"
	"github.com/registroos/registro-os/internal/core/events"
	"github.com/registroos/registro-os/internal/sector"
	sectorPostgres "github.com/registroos/registro-os/internal/sector/postgres"
	"github.com/registroos/registro-os/internal/serviceorder"
	"github.com/registroos/registro-os/internal/serviceorder/portal"
	serviceorderPostgres "github.com/registroos/registro-os/internal/serviceorder/postgres"
	"github.com/registroos/registro-os/internal/transport"
	"github.com/registroos/registro-os/internal/transport/rest"
	"github.com/registroos/registro-os/internal/user"
	userPostgres "github.com/registroos/registro-os/internal/user/postgres"
	"github.com/registroos/registro-os/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

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
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx connection: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)
	baseHandler := transport.NewBaseHandler(appLogger)

	// auth
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewAuthRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen)
	authHandler := auth.NewHandler(authService)
	rbac := auth.NewRBACAuthorization(appLogger)

	// users
	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, config.Security.BCryptCost, appLogger)
	userHandler := user.NewHandler(baseHandler, userService)

	// sectors
	sectorRepo := sectorPostgres.NewSectorRepository(gormDB)
	sectorService := sector.NewService(sectorRepo, appLogger)
	sectorHandler := sector.NewHandler(baseHandler, sectorService)

	// catalogs
	catalogRepo := catalogPostgres.NewCatalogRepository(gormDB)
	catalogService := catalog.NewService(catalogRepo, appLogger)
	catalogHandler := catalog.NewHandler(baseHandler, catalogService)

	// service orders
	orderRepo := serviceorderPostgres.NewServiceOrderRepository(gormDB)
	orderService := serviceorder.NewService(orderRepo, eventBus, appLogger)
	portalClient := portal.NewClient(config.Portal, appLogger)
	refresher := serviceorder.NewRefresher(portalClient, orderService, appLogger)
	orderHandler := serviceorder.NewHandler(baseHandler, orderService, refresher)

	// apontamentos
	evaluator := access.NewEvaluator(config.Workflow.GetProductionSectors(), appLogger)
	apontamentoRepo := apontamentoPostgres.NewApontamentoRepository(gormDB)
	apontamentoService := apontamento.NewService(apontamentoRepo, orderService, evaluator, catalogService, eventBus, appLogger)
	apontamentoHandler := apontamento.NewHandler(baseHandler, apontamentoService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		authHandler,
		rbac,
		userHandler,
		sectorHandler,
		catalogHandler,
		orderHandler,
		apontamentoHandler,
		appLogger,
	)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
	}, nil
}

// initDB initializes the database connection
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
