package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/timberintel/timberintel/internal/clean"
	"github.com/timberintel/timberintel/internal/coverage"
	"github.com/timberintel/timberintel/internal/extract"
	"github.com/timberintel/timberintel/internal/store"
	"github.com/timberintel/timberintel/internal/tendata"
	"github.com/timberintel/timberintel/server/config"
	"github.com/timberintel/timberintel/server/internal/handler"
	"github.com/timberintel/timberintel/server/internal/repository"
	"github.com/timberintel/timberintel/server/internal/router"
	"github.com/timberintel/timberintel/server/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	migrateFlag := flag.Bool("migrate", false, "Run database migrations and exit")
	flag.Parse()

	if *migrateFlag {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get sql.DB: %v", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatalf("Goose: failed to set dialect: %v", err)
		}
		log.Println("Running database migrations...")
		if err := goose.Up(sqlDB, "internal/migrations"); err != nil {
			log.Fatalf("Goose migration failed: %v", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	recordRepo := repository.NewGormRecordRepository(db, logger)
	storeRepo := store.NewGormRecordRepository(db)
	loader := extract.NewLoader(storeRepo, logger, 0)
	scanner := coverage.NewScanner(storeRepo, coverage.DefaultScanPolicy(), logger)
	client := tendata.NewClient(cfg.TendataBaseURL, cfg.TendataAPIKey, logger)
	recordService := service.NewRecordsService(recordRepo, loader, clean.NewPipeline(logger), scanner, client)
	recordHandler := handler.NewRecordHandler(recordService)

	routerConfig := &router.Config{
		RecordHandler: recordHandler,
	}

	router := router.NewRouter(routerConfig)

	router.Run(fmt.Sprintf(":%s", cfg.ServerPort))
}
