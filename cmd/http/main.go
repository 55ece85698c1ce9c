package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/adapters/config"
	"github.com/alessok/devops-proyecto-final/internal/adapters/http"
	"github.com/alessok/devops-proyecto-final/internal/adapters/http/controllers"
	"github.com/alessok/devops-proyecto-final/internal/adapters/http/handlers"
	"github.com/alessok/devops-proyecto-final/internal/adapters/metrics"
	"github.com/alessok/devops-proyecto-final/internal/adapters/mongo"
	"github.com/alessok/devops-proyecto-final/internal/adapters/mongo/repository"
	"github.com/alessok/devops-proyecto-final/internal/adapters/outbox"
	"github.com/alessok/devops-proyecto-final/internal/adapters/rabbitmq"
	"github.com/alessok/devops-proyecto-final/internal/adapters/redis"
	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/logger"
	"github.com/alessok/devops-proyecto-final/internal/core/service"
)

// @title       Inventory Management API
// @version     1.0
// @description Product and stock management API

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, cfg.Logger.IsProduction); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}
	handlers.SetProductionMode(cfg.Logger.IsProduction)

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// metrics pipeline
	metricsProvider, err := metrics.NewProvider(cfg.Metrics, cfg.Logger.ServiceName)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize metrics", err, nil)
	}
	metricsSink, err := metrics.NewSink(metricsProvider)
	if err != nil {
		logger.Fatal(ctx, "Failed to create metrics sink", err, nil)
	}

	// initialize database connection
	mongoClient, err := mongo.NewConnection(cfg.Mongo, mongo.NewPoolMonitor(metricsSink))
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// initialize database and repos
	database := mongoClient.Database(cfg.Mongo.Database)
	outboxRepository := repository.NewOutboxRepository(database)
	txManager := mongo.NewTransactionManager(mongoClient)
	productRepository := repository.NewProductRepository(database, outboxRepository, txManager, cfg.Inventory.LowStockThreshold)
	categoryRepository := repository.NewCategoryRepository(database)
	userRepository := repository.NewUserRepository(database)

	// caches and rate limiter
	productCache := redis.NewCache[domain.Product](redisClient, "product-cache")
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Product]](redisClient, "idempotency-cache")
	rateLimiter := redis.NewRateLimiter(redisClient)

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	categoryService := service.NewCategoryService(categoryRepository, metricsSink)
	idempotencyService := service.NewIdempotencyService(
		idempotencyCache,
		cfg.Idempotency.TTL,
		cfg.Idempotency.PollInterval,
		cfg.Idempotency.PollTimeout,
	)
	productService := service.NewProductService(
		productRepository,
		categoryService,
		productCache,
		idempotencyService,
		metricsSink,
		cfg.Inventory.DefaultPageLimit,
		cfg.Inventory.MaxPageLimit,
		cfg.Inventory.LowStockThreshold,
	)

	// gauge refresher (uses cancellable context)
	refresher := service.NewMetricsRefresher(
		productRepository,
		categoryRepository,
		userRepository,
		metricsSink,
		cfg.Inventory.RefreshInterval,
		cfg.Inventory.LowStockThreshold,
	)
	go refresher.Start(ctx)

	// controllers
	productController := controllers.NewProductController(productService)
	categoryController := controllers.NewCategoryController(categoryService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	// router
	router := http.NewRouter(healthController, productController, categoryController, rateLimiter, metricsSink, cfg.Auth.JWTSecret)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := metricsProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "metrics shutdown error", err, nil)
		}
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Println("logger shutdown error: " + err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	err = router.ListenAndServe(ctx, cfg.HTTP)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
