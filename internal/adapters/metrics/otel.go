package metrics

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/alessok/devops-proyecto-final/internal/adapters/config"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
)

// NewProvider sets up the OTLP metric pipeline and registers it globally.
func NewProvider(cfg config.MetricsConfig, serviceName string) (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(provider)
	return provider, nil
}

// gauge pairs an instrument with its current value so callers can both set
// and increment it without reading back from the metrics backend.
type gauge struct {
	value      atomic.Int64
	instrument metric.Int64Gauge
}

func (g *gauge) set(ctx context.Context, n int64) {
	g.value.Store(n)
	g.instrument.Record(ctx, n)
}

func (g *gauge) add(ctx context.Context, delta int64) {
	g.instrument.Record(ctx, g.value.Add(delta))
}

type Sink struct {
	requestsTotal     metric.Int64Counter
	requestDuration   metric.Float64Histogram
	productOperations metric.Int64Counter

	totalProducts     gauge
	totalCategories   gauge
	totalUsers        gauge
	lowStockProducts  gauge
	activeConnections gauge
}

func NewSink(provider *sdkmetric.MeterProvider) (port.MetricsPort, error) {
	meter := provider.Meter("inventory")
	sink := &Sink{}

	var err error
	if sink.requestsTotal, err = meter.Int64Counter(
		"inventory_http_requests_total",
		metric.WithDescription("Count of HTTP requests by method, route and status"),
	); err != nil {
		return nil, err
	}

	if sink.requestDuration, err = meter.Float64Histogram(
		"inventory_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if sink.productOperations, err = meter.Int64Counter(
		"inventory_product_operations_total",
		metric.WithDescription("Count of product write operations by type"),
	); err != nil {
		return nil, err
	}

	gauges := []struct {
		g    *gauge
		name string
		desc string
	}{
		{&sink.totalProducts, "inventory_total_products", "Number of products"},
		{&sink.totalCategories, "inventory_total_categories", "Number of categories"},
		{&sink.totalUsers, "inventory_total_users", "Number of users"},
		{&sink.lowStockProducts, "inventory_low_stock_products", "Number of products at or below the low stock threshold"},
		{&sink.activeConnections, "inventory_db_active_connections", "Open database connections"},
	}
	for _, entry := range gauges {
		if entry.g.instrument, err = meter.Int64Gauge(
			entry.name,
			metric.WithDescription(entry.desc),
		); err != nil {
			return nil, err
		}
	}

	return sink, nil
}

func requestAttributes(method, route string, status int) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
}

func (s *Sink) IncRequest(ctx context.Context, method, route string, status int) {
	s.requestsTotal.Add(ctx, 1, requestAttributes(method, route, status))
}

func (s *Sink) ObserveRequestDuration(ctx context.Context, method, route string, status int, seconds float64) {
	s.requestDuration.Record(ctx, seconds, requestAttributes(method, route, status))
}

func (s *Sink) IncProductOperation(ctx context.Context, operation string) {
	s.productOperations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func (s *Sink) SetTotalProducts(ctx context.Context, n int64)     { s.totalProducts.set(ctx, n) }
func (s *Sink) AddTotalProducts(ctx context.Context, delta int64) { s.totalProducts.add(ctx, delta) }
func (s *Sink) SetTotalCategories(ctx context.Context, n int64)   { s.totalCategories.set(ctx, n) }
func (s *Sink) AddTotalCategories(ctx context.Context, delta int64) {
	s.totalCategories.add(ctx, delta)
}
func (s *Sink) SetTotalUsers(ctx context.Context, n int64)       { s.totalUsers.set(ctx, n) }
func (s *Sink) SetLowStockProducts(ctx context.Context, n int64) { s.lowStockProducts.set(ctx, n) }

func (s *Sink) AddActiveConnections(ctx context.Context, delta int64) {
	s.activeConnections.add(ctx, delta)
}
