package service

import (
	"context"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/logger"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
)

// MetricsRefresher keeps the inventory gauges aligned with the database.
// Services adjust counters on the hot path; the refresher periodically
// replaces them with authoritative counts so drift never accumulates.
type MetricsRefresher struct {
	products   port.ProductPort
	categories port.CategoryPort
	users      port.UserPort
	metrics    port.MetricsPort

	interval          time.Duration
	lowStockThreshold int
}

func NewMetricsRefresher(
	products port.ProductPort,
	categories port.CategoryPort,
	users port.UserPort,
	metrics port.MetricsPort,
	interval time.Duration,
	lowStockThreshold int,
) *MetricsRefresher {
	return &MetricsRefresher{
		products:          products,
		categories:        categories,
		users:             users,
		metrics:           metrics,
		interval:          interval,
		lowStockThreshold: lowStockThreshold,
	}
}

// Start blocks until ctx is cancelled, refreshing the gauges on every tick.
func (r *MetricsRefresher) Start(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *MetricsRefresher) refresh(ctx context.Context) {
	if total, err := r.products.Count(ctx); err != nil {
		logger.Error(ctx, "metrics: product count failed", err, nil)
	} else {
		r.metrics.SetTotalProducts(ctx, total)
	}

	if total, err := r.categories.Count(ctx); err != nil {
		logger.Error(ctx, "metrics: category count failed", err, nil)
	} else {
		r.metrics.SetTotalCategories(ctx, total)
	}

	if total, err := r.users.Count(ctx); err != nil {
		logger.Error(ctx, "metrics: user count failed", err, nil)
	} else {
		r.metrics.SetTotalUsers(ctx, total)
	}

	if stats, err := r.products.Aggregate(ctx, r.lowStockThreshold); err != nil {
		logger.Error(ctx, "metrics: inventory stats failed", err, nil)
	} else {
		r.metrics.SetLowStockProducts(ctx, stats.LowStockCount)
	}
}
