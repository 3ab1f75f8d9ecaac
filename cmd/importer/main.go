package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/importer"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
)

func main() {
	var (
		filePath   string
		categories bool
	)
	flag.StringVar(&filePath, "file", "", "Path to product CSV file")
	flag.BoolVar(&categories, "categories", true, "Also upsert the categories found in the file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	var catWriter importer.CategoryWriter
	if categories {
		catWriter = categoryrepo.NewPostgres(pool, logger)
	}
	imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger), catWriter)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products and %d categories in %s\n", res.Products, res.Categories, time.Since(start).Truncate(time.Millisecond))
}
