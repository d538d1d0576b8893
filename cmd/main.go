package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/devcamper-api/config"
	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/container"
	"github.com/oksasatya/devcamper-api/internal/infrastructure/geocoder"
	pginfra "github.com/oksasatya/devcamper-api/internal/infrastructure/postgres"
	"github.com/oksasatya/devcamper-api/internal/infrastructure/search"
	"github.com/oksasatya/devcamper-api/internal/infrastructure/storage"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/internal/router"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
	"github.com/oksasatya/devcamper-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis: rate limits and geocode cache
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// Photos go to GCS when a bucket is configured, otherwise to local disk
	var files application.FileStore
	if cfg.GCSBucket != "" {
		gcsClient, err := storage.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		files = storage.NewGCSStore(gcsClient, cfg.GCSBucket)
	} else {
		files = storage.NewDiskStore(cfg.FileUploadPath, "/uploads")
	}

	// Outgoing mail is queued for cmd/email_worker
	var mail application.EmailSender = mailer.LogSender{Logger: logger}
	if cfg.MailSendEnabled {
		pub, err := mailer.NewQueueSender(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		mail = pub
	}

	// Search is optional; the API works without it
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; search disabled")
		} else {
			idx := search.NewBootcampIndex(es, cfg.ESBootcampsIndex)
			if err := idx.EnsureIndex(ctx); err != nil {
				logger.WithError(err).Warn("elasticsearch index setup failed; search disabled")
			} else {
				container.SetSearch(idx)
			}
		}
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpire))
	container.SetTokens(helpers.NewTokenIssuer(cfg.SingleUseTokenTTL))
	container.SetGeocoder(geocoder.NewCached(geocoder.NewMapQuest(cfg.GeocoderURL, cfg.GeocoderAPIKey), rdb, cfg.GeocodeCacheTTL, logger))
	container.SetFiles(files)
	container.SetMail(mail)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(), middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorHandler(logger))
	r.MaxMultipartMemory = cfg.MaxFileUpload + 1<<20
	if cfg.GCSBucket == "" {
		r.Static("/uploads", cfg.FileUploadPath)
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s (%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	// let detached aggregate recomputes finish before the pool closes
	if rc := container.GetRecomputer(); rc != nil {
		rc.Wait()
	}
	logger.Info("server exited properly")
}
