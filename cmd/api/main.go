package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perfume-boutique-ws/config"
	"perfume-boutique-ws/internal/handler"
	"perfume-boutique-ws/internal/middleware"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/internal/repository/memory"
	"perfume-boutique-ws/internal/seed"
	"perfume-boutique-ws/internal/service"
	"perfume-boutique-ws/internal/ws"
	"perfume-boutique-ws/pkg/database"
	"perfume-boutique-ws/pkg/jwt"
	"perfume-boutique-ws/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.LoadEnv()

	zapLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer zapLogger.Sync()

	// 2. Setup Storage
	store, err := openStore(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.Error(err))
	}

	// 3. Seed demo boutiques, accounts and catalog
	if cfg.Seed.DemoData {
		if _, err := seed.Run(context.Background(), store, zapLogger); err != nil {
			zapLogger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zapLogger.Named("ws"))
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	repos := store.Repos()
	tokens := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	txService := service.NewTransactionService(store, wsHub, zapLogger.Named("engine"), service.TransactionOptions{
		AllowOversell: cfg.Engine.AllowOversell,
	})
	catalogService := service.NewCatalogService(repos.Products, repos.Boutiques)
	dashService := service.NewDashboardService(repos, cfg.Engine.LowStockThreshold)
	authService := service.NewAuthService(repos.Users, tokens, zapLogger.Named("auth"))
	userService := service.NewUserService(repos.Users)

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Transactions: handler.NewTransactionHandler(txService, userService),
		Dashboard:    handler.NewDashboardHandler(dashService),
		Users:        handler.NewUserHandler(userService, dashService),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	handler.RegisterRoutes(app, handlers, middleware.RequireAuth(tokens, repos.Users))

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zapLogger.Panic("server stopped", zap.Error(err))
		}
	}()
	zapLogger.Info("server started",
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Database.Driver),
		zap.Bool("allow_oversell", cfg.Engine.AllowOversell),
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}

// openStore picks the storage backend; postgres schemas are migrated on startup.
func openStore(cfg config.DatabaseConfig, zapLogger *zap.Logger) (repository.Store, error) {
	if cfg.Driver != config.DriverPostgres {
		zapLogger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}

	db, err := database.ConnectDB(cfg, zapLogger)
	if err != nil {
		return nil, err
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := repository.AutoMigrate(db); err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}
