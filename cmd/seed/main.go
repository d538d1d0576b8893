package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/devcamper-api/config"
	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/infrastructure/geocoder"
	pginfra "github.com/oksasatya/devcamper-api/internal/infrastructure/postgres"
	"github.com/oksasatya/devcamper-api/internal/infrastructure/storage"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

func main() {
	importData := flag.Bool("i", false, "import seed data")
	deleteData := flag.Bool("d", false, "delete all users, bootcamps, courses and reviews")
	dir := flag.String("dir", "db/seed", "directory holding users.json, bootcamps.json, courses.json, reviews.json")
	flag.Parse()
	if *importData == *deleteData {
		log.Fatal("usage: seed -i [-dir db/seed] | seed -d")
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if *deleteData {
		if _, err := pool.Exec(ctx, `TRUNCATE reviews, courses, bootcamps, users CASCADE`); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		logger.Info("data deleted")
		return
	}

	var geo application.Geocoder = geocoder.NewMapQuest(cfg.GeocoderURL, cfg.GeocoderAPIKey)
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		geo = geocoder.NewCached(geo, rdb, cfg.GeocodeCacheTTL, logger)
	}

	users := pginfra.NewUserRepository(pool)
	bootcamps := pginfra.NewBootcampRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	rc := application.NewRecomputer(bootcamps, courses, reviews, logger, cfg.RecomputeTimeout)

	s := &seeder{
		Users:     application.NewUserService(users),
		Lookup:    users,
		Bootcamps: application.NewBootcampService(bootcamps, geo, storage.NewDiskStore(cfg.FileUploadPath, "/uploads"), nil, logger, cfg.MaxFileUpload),
		Courses:   application.NewCourseService(courses, bootcamps, rc),
		Reviews:   application.NewReviewService(reviews, bootcamps, rc),
		Logger:    logger,
	}
	if err := s.Import(ctx, *dir); err != nil {
		log.Fatalf("import failed: %v", err)
	}
	rc.Wait()
	logger.Info("data imported")
}
