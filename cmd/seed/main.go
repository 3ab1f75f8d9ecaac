package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
	"storefront/internal/repository/document"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	settingsrepo "storefront/internal/repository/settings"
	userrepo "storefront/internal/repository/user"
	"storefront/internal/seed"
)

func main() {
	file := flag.String("file", "", "YAML dataset to load instead of the built-in one")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	data, err := seed.Load(*file)
	if err != nil {
		logger.Fatalf("load dataset: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	targets := seed.Targets{
		Products:   productrepo.NewPostgres(pool, logger),
		Categories: categoryrepo.NewPostgres(pool, logger),
		Slides:     document.NewPostgres[domain.Slide](pool, document.Slides, logger),
		Banners:    document.NewPostgres[domain.Banner](pool, document.Banners, logger),
		Users:      userrepo.NewPostgres(pool, logger),
		Orders:     orderrepo.NewPostgres(pool, logger),
		Reviews:    document.NewPostgres[domain.Review](pool, document.Reviews, logger),
		Settings:   settingsrepo.NewPostgres(pool, logger),
	}
	counts, err := seed.Apply(ctx, targets, data)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied counts=%v", counts)
}
