package metrics

import (
	"context"

	"github.com/alessok/devops-proyecto-final/internal/core/port"
)

// NoopSink discards every measurement. Used when the metrics pipeline is
// disabled, for example in local development without a collector.
type NoopSink struct{}

func NewNoopSink() port.MetricsPort {
	return &NoopSink{}
}

func (*NoopSink) IncRequest(context.Context, string, string, int)                      {}
func (*NoopSink) ObserveRequestDuration(context.Context, string, string, int, float64) {}
func (*NoopSink) IncProductOperation(context.Context, string)                          {}
func (*NoopSink) SetTotalProducts(context.Context, int64)                              {}
func (*NoopSink) AddTotalProducts(context.Context, int64)                              {}
func (*NoopSink) SetTotalCategories(context.Context, int64)                            {}
func (*NoopSink) AddTotalCategories(context.Context, int64)                            {}
func (*NoopSink) SetTotalUsers(context.Context, int64)                                 {}
func (*NoopSink) SetLowStockProducts(context.Context, int64)                           {}
func (*NoopSink) AddActiveConnections(context.Context, int64)                          {}
