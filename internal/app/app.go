package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lavenshop/cart-service/internal/catalog"
	"github.com/lavenshop/cart-service/internal/config"
	"github.com/lavenshop/cart-service/internal/event"
	handler "github.com/lavenshop/cart-service/internal/handler/http"
	redisrepo "github.com/lavenshop/cart-service/internal/repository/redis"
	"github.com/lavenshop/cart-service/internal/service"
	"github.com/lavenshop/cart-service/pkg/health"
	"github.com/lavenshop/cart-service/pkg/httpclient"
	"github.com/lavenshop/cart-service/pkg/kafka"
	"github.com/lavenshop/cart-service/pkg/middleware"
)

// App wires together all cart service components.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	redis    *redis.Client
	producer *kafka.Producer
}

// New builds the application from configuration. It connects to Redis
// eagerly; Kafka and the downstream services are only probed by the
// readiness check.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	producer := kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	publisher := event.NewPublisher(producer, logger)

	repo := redisrepo.NewCartRepository(redisClient, cfg.CartTTL)

	baseClient := httpclient.New(httpclient.DefaultConfig())

	catalogCB := httpclient.DefaultCircuitBreakerConfig("catalog-service")
	catalogCB.Timeout = cfg.CircuitBreakerTimeout
	catalogCB.FailureRatio = cfg.CircuitBreakerFailureRatio
	catalogCB.MinRequests = cfg.CircuitBreakerMinRequests
	catalogClient := catalog.NewClient(cfg.CatalogServiceURL,
		httpclient.NewCircuitBreakerClient(baseClient, catalogCB, logger))

	orderCB := httpclient.DefaultCircuitBreakerConfig("order-service")
	orderCB.Timeout = cfg.CircuitBreakerTimeout
	orderCB.FailureRatio = cfg.CircuitBreakerFailureRatio
	orderCB.MinRequests = cfg.CircuitBreakerMinRequests
	orderClient := httpclient.NewCircuitBreakerClient(baseClient, orderCB, logger)

	cartSvc := service.NewCartService(repo, catalogClient, publisher, logger)
	checkoutSvc := service.NewCheckoutService(cartSvc, cfg.ShippingPolicy(),
		orderClient, cfg.OrderServiceURL, publisher, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", producer.Ping)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Environment = cfg.Environment
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	}

	router := handler.NewRouter(handler.RouterConfig{
		Cart:       handler.NewCartHandler(cartSvc, logger),
		Checkout:   handler.NewCheckoutHandler(checkoutSvc, logger),
		Health:     healthHandler,
		Logger:     logger,
		CORS:       corsCfg,
		APITimeout: cfg.APITimeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		server:   srv,
		redis:    redisClient,
		producer: producer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts everything down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("kafka close: %w", err))
	}
	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis close: %w", err))
	}

	return errors.Join(errs...)
}
