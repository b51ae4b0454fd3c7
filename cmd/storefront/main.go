package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mailer"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/storage"
	"github.com/Skotchmaster/storefront/internal/telegram"
)

type eventSink interface {
	service.EventPublisher
	Close() error
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL, db.DefaultPool())
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	r := &repo.GormRepo{DB: gdb, Schema: cfg.DBSchema}

	var events eventSink = mykafka.Discard{}
	if len(cfg.KafkaBrokers) > 0 {
		events = mykafka.NewProducer(cfg.KafkaBrokers)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	catalog := &service.CatalogService{Repo: r, Events: events}
	if cfg.Elastic.URL != "" {
		es, err := search.NewClient(cfg.Elastic)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		idx := search.NewIndex(es, cfg.Elastic.Index)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := idx.Ping(pingCtx); err != nil {
			logger.Warn("search_index_unavailable", "error", err)
		}
		pingCancel()
		catalog.Index = idx
	}

	promotion := &service.PromotionService{Repo: r, Events: events}
	mail := &service.MailService{
		Repo:      r,
		SMTP:      cfg.SMTP,
		Mailer:    mailer.New(cfg.SMTP, 30*time.Second),
		Promotion: promotion,
	}

	upload := &service.UploadService{
		CDNBaseURL: cfg.Storage.CDNBaseURL,
		AccountID:  cfg.Storage.AccessKeyID,
	}
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		upload.Store = storage.NewS3Store(cfg.Storage)
	} else {
		logger.Warn("object_storage_disabled", "reason", "AWS_ACCESS_KEY_ID or AWS_SECRET_ACCESS_KEY is empty")
	}

	bot := &service.BotService{
		Repo:    r,
		SiteURL: cfg.SiteURL,
		NewMessenger: func(token string) (service.Messenger, error) {
			c, err := telegram.New(token, telegram.Options{
				ServerURL: cfg.TelegramAPIURL,
				Timeout:   cfg.TelegramTimeout,
			})
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}

	deps := &httpserver.Deps{
		DB:        gdb,
		Catalog:   &httpserver.CatalogHTTP{Svc: catalog},
		Promotion: &httpserver.PromotionHTTP{Svc: promotion},
		Content:   &httpserver.ContentHTTP{Svc: &service.ContentService{Repo: r}},
		Shop: &httpserver.ShopHTTP{
			Svc:       &service.ShopService{Repo: r, Events: events},
			Analytics: &service.AnalyticsService{Repo: r},
		},
		Bot:    &httpserver.BotHTTP{Svc: bot},
		Email:  &httpserver.EmailHTTP{Svc: mail},
		Upload: &httpserver.UploadHTTP{Svc: upload},
	}
	if len(cfg.AdminJWTSecret) > 0 {
		deps.AdminGuard = auth.RequireAdmin(cfg.AdminJWTSecret)
		logger.Info("admin_guard_enabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		Skipper:      func(c echo.Context) bool { return c.Request().Method == http.MethodOptions },
		AllowOrigins: []string{"*"},
	}))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	if err := events.Close(); err != nil {
		logger.Warn("event_writer_close_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Warn("db_close_failed", "error", err)
	}

	logger.Info("storefront stopped")
}
