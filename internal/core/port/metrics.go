package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// MetricsPort is the sink for operational and business metrics. All methods
// must be safe for concurrent use; increments never lose updates.
type MetricsPort interface {
	IncRequest(ctx context.Context, method, route string, status int)
	ObserveRequestDuration(ctx context.Context, method, route string, status int, seconds float64)
	IncProductOperation(ctx context.Context, operation string)

	SetTotalProducts(ctx context.Context, n int64)
	AddTotalProducts(ctx context.Context, delta int64)
	SetTotalCategories(ctx context.Context, n int64)
	AddTotalCategories(ctx context.Context, delta int64)
	SetTotalUsers(ctx context.Context, n int64)
	SetLowStockProducts(ctx context.Context, n int64)

	AddActiveConnections(ctx context.Context, delta int64)
}
