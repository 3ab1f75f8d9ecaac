package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/httpserver"
	"storefront/internal/notify"
	categoryrepo "storefront/internal/repository/category"
	"storefront/internal/repository/document"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	settingsrepo "storefront/internal/repository/settings"
	userrepo "storefront/internal/repository/user"
	"storefront/internal/seed"
	categorysvc "storefront/internal/service/category"
	contentsvc "storefront/internal/service/content"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
	settingssvc "storefront/internal/service/settings"
	usersvc "storefront/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var mailer notify.Mailer = notify.LogMailer{Logger: logger}
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		logger.Printf("mail via smtp %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	} else {
		logger.Printf("SMTP_HOST not set, mail is logged only")
	}
	notifier := notify.New(mailer, logger)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	settingsRepo := settingsrepo.NewPostgres(dbpool, logger)
	slideRepo := document.NewPostgres[domain.Slide](dbpool, document.Slides, logger)
	bannerRepo := document.NewPostgres[domain.Banner](dbpool, document.Banners, logger)
	reviewRepo := document.NewPostgres[domain.Review](dbpool, document.Reviews, logger)

	settingsService := settingssvc.New(settingsRepo)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Products:   productsvc.New(productRepo),
		Categories: categorysvc.New(categoryRepo),
		Content:    contentsvc.New(slideRepo, bannerRepo),
		Users:      usersvc.New(userRepo, notifier, settingsService, logger),
		Reviews:    reviewsvc.New(reviewRepo),
		Orders:     ordersvc.New(orderRepo, notifier, settingsService),
		Settings:   settingsService,
		Seeder: seed.Targets{
			Products:   productRepo,
			Categories: categoryRepo,
			Slides:     slideRepo,
			Banners:    bannerRepo,
			Users:      userRepo,
			Orders:     orderRepo,
			Reviews:    reviewRepo,
			Settings:   settingsRepo,
		},
		Ping: func(ctx context.Context) error { return db.Ping(ctx, dbpool) },
	}, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
	notifier.Wait()
}
