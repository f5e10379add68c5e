package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/knightmeat/taste-backend/api/routes"
	"github.com/knightmeat/taste-backend/internal/accounts"
	"github.com/knightmeat/taste-backend/internal/dishes"
	"github.com/knightmeat/taste-backend/internal/mailer"
	"github.com/knightmeat/taste-backend/internal/users"
	"github.com/knightmeat/taste-backend/pkg/auth/session"
	"github.com/knightmeat/taste-backend/pkg/config"
	"github.com/knightmeat/taste-backend/pkg/db"
	"github.com/knightmeat/taste-backend/pkg/db/models"
	"github.com/knightmeat/taste-backend/pkg/logger"
	"github.com/knightmeat/taste-backend/pkg/metrics"
	"github.com/knightmeat/taste-backend/pkg/migrate"
	"github.com/knightmeat/taste-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.UseSQLite && cfg.App.IsDev() {
		if err := dbClient.DB().AutoMigrate(&models.User{}, &models.Dish{}); err != nil {
			logg.Error(context.Background(), "failed to auto-migrate sqlite schema", err)
			os.Exit(1)
		}
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	accountService, err := accounts.NewService(accounts.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		Mailer:         mailer.New(cfg, logg),
		SessionManager: sessionManager,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	dishService, err := dishes.NewService(dishes.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create dish service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			accountService,
			dishService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
