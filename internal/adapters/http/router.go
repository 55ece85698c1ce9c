package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/adapters/config"
	"github.com/alessok/devops-proyecto-final/internal/adapters/http/controllers"
	"github.com/alessok/devops-proyecto-final/internal/adapters/http/handlers"
	"github.com/alessok/devops-proyecto-final/internal/adapters/http/middleware"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"github.com/gin-gonic/gin"
)

type Router struct {
	healthController   *controllers.HealthController
	productController  *controllers.ProductController
	categoryController *controllers.CategoryController
	rateLimiter        middleware.RateLimiter
	metrics            port.MetricsPort
	jwtSecret          string
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	categoryController *controllers.CategoryController,
	rateLimiter middleware.RateLimiter,
	metrics port.MetricsPort,
	jwtSecret string,
) *Router {
	return &Router{
		healthController:   healthController,
		productController:  productController,
		categoryController: categoryController,
		rateLimiter:        rateLimiter,
		metrics:            metrics,
		jwtSecret:          jwtSecret,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter

	router.Use(middleware.CollectMetrics(r.metrics))
	router.NoRoute(handlers.NotFoundFallback)

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		authenticated := v1Group.Group("")
		authenticated.Use(middleware.Authenticate(r.jwtSecret))

		authenticated.GET("/products", r.productController.List)
		authenticated.GET("/products/low-stock", r.productController.LowStock)
		authenticated.GET("/products/:id", r.productController.GetByID)
		authenticated.POST("/products", middleware.RateLimit(rl, 15, 1*time.Minute), r.productController.Create)
		authenticated.PUT("/products/:id", middleware.RateLimit(rl, 20, 1*time.Minute), r.productController.Update)
		authenticated.DELETE("/products/:id", middleware.RateLimit(rl, 20, 1*time.Minute), r.productController.Delete)
		authenticated.PATCH("/products/:id/stock", middleware.RateLimit(rl, 30, 1*time.Minute), r.productController.UpdateStock)

		authenticated.GET("/inventory/stats", r.productController.InventoryStats)

		authenticated.GET("/categories", r.categoryController.List)
		authenticated.GET("/categories/:id", r.categoryController.GetByID)
		authenticated.POST("/categories", middleware.RateLimit(rl, 15, 1*time.Minute), r.categoryController.Create)
		authenticated.DELETE("/categories/:id", middleware.RateLimit(rl, 20, 1*time.Minute), r.categoryController.Delete)
	}
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.Default()
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
