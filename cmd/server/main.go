package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/plinkhq/plink/config"
	appmodel "github.com/plinkhq/plink/internal/app/model"
	apprepository "github.com/plinkhq/plink/internal/app/repository"
	appserver "github.com/plinkhq/plink/internal/app/server"
	appservice "github.com/plinkhq/plink/internal/app/service"
	"github.com/plinkhq/plink/internal/infra/logger"
	infraNATS "github.com/plinkhq/plink/internal/infra/nats"
	infraPostgres "github.com/plinkhq/plink/internal/infra/postgres"
	infraPrometheus "github.com/plinkhq/plink/internal/infra/prometheus"
	infraRedis "github.com/plinkhq/plink/internal/infra/redis"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Configuration loaded successfully",
		zap.Int("server_port", cfg.Server.Port),
		zap.String("postgres_user", cfg.Postgres.User),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.String("redis_host", cfg.Redis.Host),
		zap.Int("redis_port", cfg.Redis.Port),
		zap.String("nats_host", cfg.NATS.Host),
		zap.Int("nats_port", cfg.NATS.Port),
	)

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, gormDB,
		&appmodel.User{},
		&appmodel.Link{},
		&appmodel.Appearance{},
		&appmodel.AnalyticsEvent{},
	); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()

	log.Info("Connected to Postgres successfully")

	redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Connected to Redis successfully")

	natsConn, js, err := infraNATS.Connect(cfg.NATS)
	if err != nil {
		log.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Drain()
	log.Info("Connected to NATS successfully", zap.Bool("jetstream_ready", js != nil))

	if !isDev {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.Int("port", cfg.Prometheus.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Skipping Prometheus metrics server in development mode")
	}

	userRepo := apprepository.NewUserRepository(gormDB)
	linkRepo := apprepository.NewLinkRepository(gormDB)
	appearanceRepo := apprepository.NewAppearanceRepository(gormDB)
	eventRepo := apprepository.NewAnalyticsEventRepository(gormDB)

	usernameFilter := appservice.NewUsernameFilter(cfg.Bloom.ExpectedUsers, cfg.Bloom.FalsePositiveRate)
	usernames, err := userRepo.Usernames(ctx)
	if err != nil {
		log.Fatal("Failed to warm username filter", zap.Error(err))
	}
	usernameFilter.Warm(usernames)
	log.Info("Username filter warmed", zap.Int("usernames", len(usernames)))

	viewConsumer := appservice.NewViewConsumer(js, log, eventRepo)
	if err := viewConsumer.Start(); err != nil {
		log.Fatal("Failed to start view consumer", zap.Error(err))
	}
	log.Info("Profile view consumer started")

	server := appserver.New(appserver.Dependencies{
		Logger:           log,
		Postgres:         pool,
		Redis:            redisClient,
		NATS:             natsConn,
		JetStream:        js,
		Users:            userRepo,
		Links:            linkRepo,
		Appearances:      appearanceRepo,
		Events:           eventRepo,
		UsernameFilter:   usernameFilter,
		SessionKeyPrefix: cfg.Session.KeyPrefix,
		CORSOrigin:       cfg.Server.CORSOrigin,
	})

	if err := server.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
