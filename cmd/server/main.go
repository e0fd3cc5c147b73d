package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mcastellanos/tienda/internal/config"
	"github.com/mcastellanos/tienda/internal/es"
	"github.com/mcastellanos/tienda/internal/events"
	"github.com/mcastellanos/tienda/internal/httpserver"
	"github.com/mcastellanos/tienda/internal/logging"
	authmw "github.com/mcastellanos/tienda/internal/middleware/auth"
	loggingmw "github.com/mcastellanos/tienda/internal/middleware/logging"
	"github.com/mcastellanos/tienda/internal/repo"
	"github.com/mcastellanos/tienda/internal/service"
	"github.com/mcastellanos/tienda/internal/service/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.KafkaProducer
	var publisher events.Publisher
	if cfg.Kafka.Address != "" {
		producer = events.NewKafkaProducer(cfg.Kafka.Address)
		publisher = producer
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var searchHandler *httpserver.SearchHTTP
	if cfg.Elastic.URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchHandler = &httpserver.SearchHTTP{ES: esClient, Index: cfg.Elastic.Index}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	tokens := token.New([]byte(cfg.JWTSecret))
	gormRepo := &repo.GormRepo{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: gormRepo, Tokens: tokens}, Events: publisher},
		Cart:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo}, Events: publisher},
		Catalog: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}, Events: publisher},
		Orders:  &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: gormRepo}},
		Search:  searchHandler,
		Gate:    &authmw.Middleware{Tokens: tokens},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
