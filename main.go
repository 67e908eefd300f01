package main

import (
	"flag"
	"log"

	"quiz_portal_backend/internal/app"
	"quiz_portal_backend/internal/config"
	"quiz_portal_backend/pkg/configwatcher"
	"quiz_portal_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	// Auth reads the JWT secret per request, so a secret rotation in the
	// config file takes effect without a restart.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		cfg.RotateJWTSecret(newCfg.JWT.Secret)
		log.Println("Config reloaded")
	})

	application.Run()
}
