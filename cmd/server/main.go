package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopnet/marketplace/internal/config"
	"github.com/shopnet/marketplace/internal/db"
	"github.com/shopnet/marketplace/internal/events"
	"github.com/shopnet/marketplace/internal/httpserver"
	"github.com/shopnet/marketplace/internal/logging"
	"github.com/shopnet/marketplace/internal/repo"
	"github.com/shopnet/marketplace/internal/search"
	"github.com/shopnet/marketplace/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()
	if producer == nil {
		logger.Warn("kafka_disabled", "reason", "no brokers configured")
	}

	var index *search.ProductIndex
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg)
		if err != nil {
			logger.Error("es_connect_failed", "error", err)
			os.Exit(1)
		}
		index = search.NewProductIndex(es)
	} else {
		logger.Warn("search_disabled", "reason", "ES_URL not set")
	}

	r := repo.New(gdb)

	e := echo.New()
	e.HideBanner = true
	httpserver.Register(e, httpserver.Deps{
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,

		Users: &service.UserService{
			Repo:          r,
			JWTSecret:     cfg.JWTSecret,
			RefreshSecret: cfg.RefreshSecret,
		},
		Categories: &service.CategoryService{Repo: r},
		Shops:      &service.ShopService{Repo: r},
		Groupings:  &service.GroupingService{Repo: r},
		Products:   &service.ProductService{Repo: r},
		Orders:     &service.OrderService{Repo: r},

		Producer: producer,
		Index:    index,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("server_starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	logger.Info("server_stopped")
}
