package integration_test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	adaptconfig "github.com/alessok/devops-proyecto-final/internal/adapters/config"
	"github.com/alessok/devops-proyecto-final/internal/adapters/metrics"
	adaptmongo "github.com/alessok/devops-proyecto-final/internal/adapters/mongo"
	"github.com/alessok/devops-proyecto-final/internal/adapters/mongo/repository"
	"github.com/alessok/devops-proyecto-final/internal/adapters/outbox"
	adaptrabbitmq "github.com/alessok/devops-proyecto-final/internal/adapters/rabbitmq"
	adaptredis "github.com/alessok/devops-proyecto-final/internal/adapters/redis"
	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/dto"
	"github.com/alessok/devops-proyecto-final/internal/core/service"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lowStockThreshold = 5

var (
	mongoClient  *mongo.Client
	redisClient  *adaptredis.Client
	broker       *adaptrabbitmq.RabbitMQAdapter
	amqpEndpoint string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		log.Fatalf("mongodb container: %v", err)
	}
	mongoEndpoint, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("mongodb connection string: %v", err)
	}
	mongoClient, err = mongo.Connect(ctx, options.Client().
		ApplyURI(mongoEndpoint).
		SetDirect(true).
		SetConnectTimeout(30*time.Second).
		SetServerSelectionTimeout(30*time.Second))
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("mongodb ping: %v", err)
	}

	// --- Redis ---
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Fatalf("redis container: %v", err)
	}
	redisEndpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("redis connection string: %v", err)
	}
	redisClient, err = adaptredis.NewConnection(adaptconfig.RedisConfig{URL: redisEndpoint})
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}

	// --- RabbitMQ ---
	rabbitContainer, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("rabbitmq container: %v", err)
	}
	amqpEndpoint, err = rabbitContainer.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("rabbitmq amqp url: %v", err)
	}
	broker, err = adaptrabbitmq.NewRabbitMQAdapter(adaptconfig.RabbitMQConfig{
		URL:        amqpEndpoint,
		MaxRetries: 2,
		RetryDelay: 100 * time.Millisecond,
		ExchangeConfigs: []adaptconfig.ExchangeConfig{
			{Name: "exchange.product", Type: "direct", Durable: true, AutoDelete: false},
		},
	})
	if err != nil {
		log.Fatalf("rabbitmq adapter: %v", err)
	}

	code := m.Run()

	_ = broker.Close()
	_ = redisClient.Close()
	_ = mongoClient.Disconnect(ctx)
	_ = mongoContainer.Terminate(ctx)
	_ = redisContainer.Terminate(ctx)
	_ = rabbitContainer.Terminate(ctx)

	os.Exit(code)
}

func setupConsumer(t *testing.T, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(amqpEndpoint)
	if err != nil {
		t.Fatalf("consumer dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("consumer channel: %v", err)
	}
	t.Cleanup(func() { ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare: %v", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, "exchange.product", false, nil); err != nil {
		t.Fatalf("queue bind: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	return msgs
}

func buildServices(t *testing.T, dbName string) (
	*service.ProductService,
	*service.CategoryService,
	*outbox.Handler,
) {
	t.Helper()
	db := mongoClient.Database(dbName)

	outboxRepo := repository.NewOutboxRepository(db)
	txManager := adaptmongo.NewTransactionManager(mongoClient)
	productRepo := repository.NewProductRepository(db, outboxRepo, txManager, lowStockThreshold)
	categoryRepo := repository.NewCategoryRepository(db)

	sink := metrics.NewNoopSink()
	categoryService := service.NewCategoryService(categoryRepo, sink)

	productCache := adaptredis.NewCache[domain.Product](redisClient, dbName+"-product")
	idempotencyCache := adaptredis.NewCache[service.IdempotencyEntry[domain.Product]](redisClient, dbName+"-idemp")
	idempotencyService := service.NewIdempotencyService(idempotencyCache, 5*time.Minute, 500*time.Millisecond, 10*time.Second)

	productService := service.NewProductService(productRepo, categoryService, productCache, idempotencyService, sink, 10, 100, lowStockThreshold)

	outboxHandler := outbox.NewHandler(outboxRepo, broker, adaptconfig.OutboxConfig{
		Interval:  100 * time.Millisecond,
		BatchSize: 50,
	})

	return productService, categoryService, outboxHandler
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func createCategory(t *testing.T, categorySvc *service.CategoryService) domain.ID {
	t.Helper()
	category, err := categorySvc.Create(context.Background(), &dto.CreateCategoryRequest{
		Name:        strPtr("Integration"),
		Description: strPtr("integration fixtures"),
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category.ID
}

func createProduct(t *testing.T, productSvc *service.ProductService, categoryID domain.ID, name string, price int64, stock int) *domain.Product {
	t.Helper()
	product, err := productSvc.Create(context.Background(), "", &dto.CreateProductRequest{
		Name:          strPtr(name),
		Description:   strPtr("integration product"),
		Price:         int64Ptr(price),
		StockQuantity: intPtr(stock),
		CategoryID:    int64Ptr(int64(categoryID)),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestIntegration_CreateProduct_FullCycle(t *testing.T) {
	msgs := setupConsumer(t, "product.created")

	productSvc, categorySvc, outboxHandler := buildServices(t, "int_full_cycle")
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go outboxHandler.Start(handlerCtx)

	categoryID := createCategory(t, categorySvc)
	product := createProduct(t, productSvc, categoryID, "Integration Widget", 2999, 50)

	if product.ID == 0 {
		t.Fatal("product ID should be assigned")
	}
	if !product.IsActive {
		t.Fatal("new product should be active")
	}

	select {
	case msg := <-msgs:
		var event domain.ProductCreatedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.ProductID != product.ID {
			t.Fatalf("event product_id: expected %d, got %d", product.ID, event.ProductID)
		}
		if event.StockQuantity != 50 {
			t.Fatalf("event stock: expected 50, got %d", event.StockQuantity)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for product.created event")
	}

	fetched, err := productSvc.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if fetched.Name != "Integration Widget" {
		t.Fatalf("unexpected product: %+v", fetched)
	}
}

func TestIntegration_CreateProduct_Idempotency(t *testing.T) {
	productSvc, categorySvc, _ := buildServices(t, "int_idempotency")
	ctx := context.Background()

	categoryID := createCategory(t, categorySvc)
	request := &dto.CreateProductRequest{
		Name:          strPtr("Idemp Widget"),
		Description:   strPtr("test"),
		Price:         int64Ptr(1000),
		StockQuantity: intPtr(100),
		CategoryID:    int64Ptr(int64(categoryID)),
	}

	first, err := productSvc.Create(ctx, "idemp-key-1", request)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	second, err := productSvc.Create(ctx, "idemp-key-1", request)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same product: %d vs %d", first.ID, second.ID)
	}

	// one physical record
	page, err := productSvc.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 product, got %d", page.Total)
	}
}

func TestIntegration_StockFlow(t *testing.T) {
	msgs := setupConsumer(t, "product.stock_changed")

	productSvc, categorySvc, outboxHandler := buildServices(t, "int_stock_flow")
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go outboxHandler.Start(handlerCtx)

	categoryID := createCategory(t, categorySvc)
	product := createProduct(t, productSvc, categoryID, "Stock Widget", 500, 10)

	updated, err := productSvc.UpdateStock(ctx, product.ID, &dto.UpdateStockRequest{Delta: intPtr(-3)})
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if updated.StockQuantity != 7 {
		t.Fatalf("expected stock 7, got %d", updated.StockQuantity)
	}

	select {
	case msg := <-msgs:
		var event domain.ProductStockChangedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.PreviousStock != 10 || event.StockQuantity != 7 {
			t.Fatalf("unexpected stock event: %+v", event)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for product.stock_changed event")
	}

	_, err = productSvc.UpdateStock(ctx, product.ID, &dto.UpdateStockRequest{Delta: intPtr(-100)})
	if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidOperation) {
		t.Fatalf("expected KindInvalidOperation, got %v", err)
	}

	unchanged, err := productSvc.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if unchanged.StockQuantity != 7 {
		t.Fatalf("stock should be unchanged after rejection: %d", unchanged.StockQuantity)
	}
}

func TestIntegration_ConcurrentStockDecrements(t *testing.T) {
	productSvc, categorySvc, _ := buildServices(t, "int_concurrent_stock")
	ctx := context.Background()

	categoryID := createCategory(t, categorySvc)
	product := createProduct(t, productSvc, categoryID, "Contended Widget", 500, 5)

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := productSvc.UpdateStock(ctx, product.ID, &dto.UpdateStockRequest{Delta: intPtr(-1)})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 5 {
		t.Fatalf("expected exactly 5 successful decrements, got %d", succeeded)
	}

	final, err := productSvc.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if final.StockQuantity != 0 {
		t.Fatalf("expected stock 0, got %d", final.StockQuantity)
	}
}

func TestIntegration_UpdateAndStats(t *testing.T) {
	productSvc, categorySvc, _ := buildServices(t, "int_stats")
	ctx := context.Background()

	categoryID := createCategory(t, categorySvc)
	a := createProduct(t, productSvc, categoryID, "Stat A", 1000, 2)
	createProduct(t, productSvc, categoryID, "Stat B", 2000, 3)

	// deactivate one; it must vanish from the aggregates
	isActive := false
	if _, err := productSvc.Update(ctx, a.ID, &dto.UpdateProductRequest{IsActive: &isActive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	stats, err := productSvc.InventoryStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalProducts != 1 {
		t.Fatalf("expected 1 active product, got %d", stats.TotalProducts)
	}
	if want := domain.Amount(2000 * 3); stats.TotalValue != want {
		t.Fatalf("expected total value %d, got %d", want, stats.TotalValue)
	}
	if stats.LowStockCount != 1 {
		t.Fatalf("expected 1 low stock product, got %d", stats.LowStockCount)
	}

	low, err := productSvc.LowStock(ctx, nil)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("expected 2 products at or below threshold, got %d", len(low))
	}
}

func TestIntegration_GetByID_Cache(t *testing.T) {
	productSvc, categorySvc, _ := buildServices(t, "int_cache")
	ctx := context.Background()

	categoryID := createCategory(t, categorySvc)
	product := createProduct(t, productSvc, categoryID, "Cache Widget", 1500, 20)

	first, err := productSvc.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}

	// second fetch, cache hit
	second, err := productSvc.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}

	if first.ID != second.ID || first.Price != second.Price {
		t.Fatal("cached product should match original")
	}
}

func TestIntegration_LowStockEvent(t *testing.T) {
	msgs := setupConsumer(t, "product.low_stock")

	productSvc, categorySvc, outboxHandler := buildServices(t, "int_low_stock_event")
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go outboxHandler.Start(handlerCtx)

	categoryID := createCategory(t, categorySvc)
	product := createProduct(t, productSvc, categoryID, "Scarce Widget", 500, 10)

	// 10 -> 4 crosses the threshold
	if _, err := productSvc.UpdateStock(ctx, product.ID, &dto.UpdateStockRequest{Quantity: intPtr(4)}); err != nil {
		t.Fatalf("set stock: %v", err)
	}

	select {
	case msg := <-msgs:
		var event domain.ProductLowStockEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.ProductID != product.ID || event.StockQuantity != 4 || event.Threshold != lowStockThreshold {
			t.Fatalf("unexpected low stock event: %+v", event)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for product.low_stock event")
	}
}
