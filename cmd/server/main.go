package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"eventboard/config"
	"eventboard/internal/adapters/email"
	"eventboard/internal/adapters/media"
	deliveryhttp "eventboard/internal/delivery/http"
	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/repository/postgres"
	"eventboard/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Without a data source the process must not serve requests.
		os.Stderr.WriteString("fatal: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	connManager := postgres.NewConnManager(cfg.DBUrl)
	defer connManager.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := connManager.Get(ctx)
	cancel()
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	// Migrations
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		logger.Error("could not create migration driver", "err", err)
		os.Exit(1)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("could not create migrate instance", "err", err)
		os.Exit(1)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("could not run migrations", "err", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	// Adapters
	uploader, err := media.NewUploader(media.UploaderConfig{
		Provider: cfg.Media.Provider,
		S3: media.S3Config{
			Bucket:          cfg.Media.Bucket,
			Region:          cfg.Media.Region,
			AccessKeyID:     cfg.Media.AccessKeyID,
			SecretAccessKey: cfg.Media.SecretAccessKey,
			BaseURL:         cfg.Media.BaseURL,
		},
	})
	if err != nil {
		logger.Error("could not create media uploader", "err", err)
		os.Exit(1)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.Region,
			AccessKeyID:     cfg.Mailer.AccessKeyID,
			SecretAccessKey: cfg.Mailer.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("could not create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventService := services.NewEventService(eventRepo, uploader, cfg.ServiceTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, cfg.ServiceTimeout)

	// Controllers
	eventController := controllers.NewEventController(logger, eventService)
	bookingController := controllers.NewBookingController(logger, bookingService)

	health := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux := deliveryhttp.NewRouter(eventController, bookingController, health)
	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
