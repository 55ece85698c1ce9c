package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	adaptermongo "github.com/alessok/devops-proyecto-final/internal/adapters/mongo"
	"github.com/alessok/devops-proyecto-final/internal/adapters/mongo/repository"
	"github.com/alessok/devops-proyecto-final/internal/adapters/outbox"
	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
)

const testLowStockThreshold = 5

func newProductRepository(db *mongo.Database) (port.ProductPort, outbox.Repository) {
	outboxRepo := repository.NewOutboxRepository(db)
	tx := adaptermongo.NewTransactionManager(testClient)
	return repository.NewProductRepository(db, outboxRepo, tx, testLowStockThreshold), outboxRepo
}

func insertTestProduct(t *testing.T, repo port.ProductPort, name string, price int64, stock int) *domain.Product {
	t.Helper()
	product := domain.NewProduct(name, "test description", domain.NewAmountFromCents(price), stock, 1)
	if err := repo.Insert(context.Background(), product); err != nil {
		t.Fatalf("setup: insert product failed: %v", err)
	}
	return product
}

func outboxEventNames(t *testing.T, outboxRepo outbox.Repository) []string {
	t.Helper()
	entries, err := outboxRepo.FetchPending(context.Background(), 100)
	if err != nil {
		t.Fatalf("fetch outbox entries failed: %v", err)
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.EventName
	}
	return names
}

func TestProductRepository_Insert(t *testing.T) {
	repo, outboxRepo := newProductRepository(testClient.Database("test_product_insert"))
	ctx := context.Background()

	t.Run("assigns sequential ids", func(t *testing.T) {
		first := insertTestProduct(t, repo, "Widget", 1500, 100)
		second := insertTestProduct(t, repo, "Gadget", 2500, 50)

		if first.ID != 1 || second.ID != 2 {
			t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
		}
	})

	t.Run("rejects preset id", func(t *testing.T) {
		product := domain.NewProduct("Widget", "d", 100, 1, 1)
		product.ID = 99

		if err := repo.Insert(ctx, product); err == nil {
			t.Fatal("expected error for preset ID")
		}
	})

	t.Run("writes a created event in the same transaction", func(t *testing.T) {
		names := outboxEventNames(t, outboxRepo)
		if len(names) == 0 {
			t.Fatal("expected outbox entries")
		}
		for _, name := range names {
			if name != "product.created" {
				t.Fatalf("unexpected event %q", name)
			}
		}
	})
}

func TestProductRepository_GetByID(t *testing.T) {
	repo, _ := newProductRepository(testClient.Database("test_product_get"))
	ctx := context.Background()

	t.Run("returns product by id", func(t *testing.T) {
		created := insertTestProduct(t, repo, "Widget", 1500, 100)

		found, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found.Name != "Widget" || found.StockQuantity != 100 {
			t.Fatalf("unexpected product: %+v", found)
		}
	})

	t.Run("not found for missing id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})
}

func TestProductRepository_List(t *testing.T) {
	repo, _ := newProductRepository(testClient.Database("test_product_list"))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		insertTestProduct(t, repo, "Product", 1000, 10)
	}

	t.Run("orders by id ascending with skip and limit", func(t *testing.T) {
		products, err := repo.List(ctx, 1, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}
		if products[0].ID != 2 || products[1].ID != 3 {
			t.Fatalf("expected ids 2,3 got %d,%d", products[0].ID, products[1].ID)
		}
	})

	t.Run("count matches inserted products", func(t *testing.T) {
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if count != 5 {
			t.Fatalf("expected 5, got %d", count)
		}
	})
}

func TestProductRepository_UpdateAtomic(t *testing.T) {
	repo, _ := newProductRepository(testClient.Database("test_product_update"))
	ctx := context.Background()

	t.Run("applies the merge against the stored record", func(t *testing.T) {
		created := insertTestProduct(t, repo, "Widget", 1500, 100)

		updated, err := repo.UpdateAtomic(ctx, created.ID, func(p *domain.Product) error {
			p.Name = "Renamed"
			return nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Name != "Renamed" || updated.StockQuantity != 100 {
			t.Fatalf("unexpected product: %+v", updated)
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Fatal("expected updated_at to move forward")
		}
	})

	t.Run("merge error aborts without writing", func(t *testing.T) {
		created := insertTestProduct(t, repo, "Widget", 1500, 100)

		wantErr := errors.New("merge rejected")
		_, err := repo.UpdateAtomic(ctx, created.ID, func(p *domain.Product) error {
			p.Name = "should not persist"
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected merge error, got %v", err)
		}

		found, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found.Name != "Widget" {
			t.Fatalf("aborted merge was persisted: %+v", found)
		}
	})

	t.Run("not found for missing id", func(t *testing.T) {
		_, err := repo.UpdateAtomic(ctx, 9999, func(*domain.Product) error { return nil })
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})
}

func TestProductRepository_Delete(t *testing.T) {
	repo, outboxRepo := newProductRepository(testClient.Database("test_product_delete"))
	ctx := context.Background()

	created := insertTestProduct(t, repo, "Widget", 1500, 100)

	t.Run("deletes and writes a deleted event", func(t *testing.T) {
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		_, err := repo.GetByID(ctx, created.ID)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound after delete, got %v", err)
		}

		names := outboxEventNames(t, outboxRepo)
		found := false
		for _, name := range names {
			if name == "product.deleted" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected product.deleted event, got %v", names)
		}
	})

	t.Run("second delete of same id is not found", func(t *testing.T) {
		err := repo.Delete(ctx, created.ID)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})
}

func TestProductRepository_AdjustStock(t *testing.T) {
	repo, outboxRepo := newProductRepository(testClient.Database("test_product_adjust"))
	ctx := context.Background()

	t.Run("applies delta and reports new stock", func(t *testing.T) {
		created := insertTestProduct(t, repo, "Widget", 1500, 100)

		updated, err := repo.AdjustStock(ctx, created.ID, -30)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.StockQuantity != 70 {
			t.Fatalf("expected stock 70, got %d", updated.StockQuantity)
		}
	})

	t.Run("insufficient stock leaves the record unchanged", func(t *testing.T) {
		created := insertTestProduct(t, repo, "Widget", 1500, 10)

		_, err := repo.AdjustStock(ctx, created.ID, -11)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidOperation) {
			t.Fatalf("expected KindInvalidOperation, got %v", err)
		}

		found, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found.StockQuantity != 10 {
			t.Fatalf("stock changed on rejected adjustment: %d", found.StockQuantity)
		}
	})

	t.Run("not found for missing id", func(t *testing.T) {
		_, err := repo.AdjustStock(ctx, 9999, -1)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})

	t.Run("writes stock changed and low stock events", func(t *testing.T) {
		created := insertTestProduct(t, repo, "Widget", 1500, 10)

		// 10 -> 4 crosses the threshold of 5
		if _, err := repo.AdjustStock(ctx, created.ID, -6); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		names := outboxEventNames(t, outboxRepo)
		var stockChanged, lowStock bool
		for _, name := range names {
			switch name {
			case "product.stock_changed":
				stockChanged = true
			case "product.low_stock":
				lowStock = true
			}
		}
		if !stockChanged || !lowStock {
			t.Fatalf("expected stock_changed and low_stock events, got %v", names)
		}
	})

	t.Run("concurrent decrements never drive stock negative", func(t *testing.T) {
		created := insertTestProduct(t, repo, "Widget", 1500, 5)

		const workers = 10
		var wg sync.WaitGroup
		successes := make(chan struct{}, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.AdjustStock(ctx, created.ID, -1); err == nil {
					successes <- struct{}{}
				}
			}()
		}
		wg.Wait()
		close(successes)

		succeeded := 0
		for range successes {
			succeeded++
		}
		if succeeded != 5 {
			t.Fatalf("expected exactly 5 successful decrements, got %d", succeeded)
		}

		found, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found.StockQuantity != 0 {
			t.Fatalf("expected stock 0, got %d", found.StockQuantity)
		}
	})
}

func TestProductRepository_SetStock(t *testing.T) {
	repo, _ := newProductRepository(testClient.Database("test_product_setstock"))
	ctx := context.Background()

	created := insertTestProduct(t, repo, "Widget", 1500, 10)

	updated, err := repo.SetStock(ctx, created.ID, 77)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.StockQuantity != 77 {
		t.Fatalf("expected stock 77, got %d", updated.StockQuantity)
	}

	found, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found.StockQuantity != 77 {
		t.Fatalf("expected persisted stock 77, got %d", found.StockQuantity)
	}
}

func TestProductRepository_Aggregate(t *testing.T) {
	repo, _ := newProductRepository(testClient.Database("test_product_aggregate"))
	ctx := context.Background()

	// active: 2×1000 + 3×2000, one of them low on stock
	insertTestProduct(t, repo, "A", 1000, 2)
	insertTestProduct(t, repo, "B", 2000, 3)
	inactive := insertTestProduct(t, repo, "C", 9999, 100)
	if _, err := repo.UpdateAtomic(ctx, inactive.ID, func(p *domain.Product) error {
		p.IsActive = false
		return nil
	}); err != nil {
		t.Fatalf("setup: deactivate failed: %v", err)
	}

	stats, err := repo.Aggregate(ctx, testLowStockThreshold)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if stats.TotalProducts != 2 {
		t.Fatalf("expected 2 active products, got %d", stats.TotalProducts)
	}
	if want := domain.Amount(2*1000 + 3*2000); stats.TotalValue != want {
		t.Fatalf("expected total value %d, got %d", want, stats.TotalValue)
	}
	if stats.LowStockCount != 2 {
		t.Fatalf("expected 2 low stock products, got %d", stats.LowStockCount)
	}
}

func TestProductRepository_FindLowStock(t *testing.T) {
	repo, _ := newProductRepository(testClient.Database("test_product_lowstock"))
	ctx := context.Background()

	insertTestProduct(t, repo, "High", 1000, 50) // id 1
	insertTestProduct(t, repo, "Low2", 1000, 3)  // id 2
	insertTestProduct(t, repo, "Low1", 1000, 1)  // id 3
	insertTestProduct(t, repo, "Low3", 1000, 3)  // id 4
	insertTestProduct(t, repo, "Edge", 1000, 5)  // id 5, exactly at threshold

	products, err := repo.FindLowStock(ctx, testLowStockThreshold)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(products))
	}

	wantIDs := []domain.ID{3, 2, 4, 5}
	for i, product := range products {
		if product.ID != wantIDs[i] {
			t.Fatalf("expected order %v, got %d at position %d", wantIDs, product.ID, i)
		}
	}
}
