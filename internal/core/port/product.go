package port

import (
	"context"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	// Insert persists the product, assigns its sequential ID and records a
	// product.created outbox event in the same transaction.
	Insert(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	// List returns products ordered by ID ascending.
	List(ctx context.Context, offset, limit int64) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	// UpdateAtomic performs a read-merge-write as one atomic unit: merge runs
	// against the current record inside the repository transaction, and a
	// merge error aborts without writing.
	UpdateAtomic(ctx context.Context, id domain.ID, merge func(*domain.Product) error) (*domain.Product, error)
	Delete(ctx context.Context, id domain.ID) error
	// AdjustStock applies a signed delta with a conditional update; the stock
	// can never go negative, concurrent callers included.
	AdjustStock(ctx context.Context, id domain.ID, delta int) (*domain.Product, error)
	SetStock(ctx context.Context, id domain.ID, quantity int) (*domain.Product, error)
	// Aggregate computes the inventory snapshot in a single pipeline pass so
	// total value is always consistent with the price/stock pairs it counts.
	Aggregate(ctx context.Context, lowStockThreshold int) (*domain.InventoryStats, error)
	// FindLowStock returns products with stock at or below the threshold,
	// ordered by stock ascending then ID ascending.
	FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
}
