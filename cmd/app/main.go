package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/adapters/out/paymentgw"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/rabbitmq"
	redisadapter "marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/ports"
	"marketplace/internal/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// @title						Marketplace API
// @version					1.0
// @description				Deliveries, rides, courier dispatch and PIX payments.
// @BasePath					/api/v1
func main() {
	config, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := run(config); err != nil {
		log.Fatalf("marketplace stopped: %v", err)
	}
}

func run(config cmd.Config) error {
	level, err := config.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(pgdriver.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return err
	}

	tasks, locker, redisClient, err := sharedState(ctx, config)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		logger.Warn("REDIS_URL is empty, dispatch tasks and the sweep lock stay in process")
	}

	gateway, err := rabbitmq.Dial(config.AMQPURL, config.AMQPExchange)
	if err != nil {
		return err
	}
	defer gateway.Close()

	processor, err := paymentgw.NewClient(paymentgw.Config{
		BaseURL: config.PaymentGatewayURL,
		APIKey:  config.PaymentGatewayAPIKey,
		Timeout: config.PaymentGatewayTimeout,
	}, logger)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics, err := metrics.New(registry)
	if err != nil {
		return err
	}

	root, err := cmd.NewCompositionRoot(config, cmd.Infrastructure{
		DB:        db,
		Tasks:     tasks,
		Locker:    locker,
		Gateway:   gateway,
		Processor: processor,
		Metrics:   appMetrics,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}

	e := httpin.NewEcho(root.CreateHTTPServer(), appMetrics, registry, logger)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErrs []error
	if err := e.Shutdown(shutdownCtx); err != nil {
		shutdownErrs = append(shutdownErrs, fmt.Errorf("http shutdown: %w", err))
	}
	jobManager.StopAll()
	if err := root.Coordinator().Shutdown(shutdownCtx); err != nil {
		shutdownErrs = append(shutdownErrs, fmt.Errorf("dispatch shutdown: %w", err))
	}
	return errors.Join(shutdownErrs...)
}

// sharedState picks the dispatch task store and sweep locker. The returned
// client is nil when both live in memory.
func sharedState(ctx context.Context, config cmd.Config) (ports.DispatchTaskStore, ports.Locker, *redis.Client, error) {
	if config.RedisURL == "" {
		return memory.NewDispatchTaskStore(), memory.NewLocker(), nil, nil
	}

	client, err := redisadapter.NewClient(ctx, config.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return redisadapter.NewDispatchTaskStore(client, config.DispatchTaskTTL), redisadapter.NewLocker(client), client, nil
}
