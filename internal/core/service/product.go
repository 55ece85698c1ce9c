package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/dto"
	"github.com/alessok/devops-proyecto-final/internal/core/logger"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	"github.com/alessok/devops-proyecto-final/internal/core/utils"
	"github.com/alessok/devops-proyecto-final/internal/core/validation"
)

const productCacheTTL = 15 * time.Minute

// ProductList is one page of products plus paging metadata.
type ProductList struct {
	Products []*domain.Product
	Total    int64
	Page     int64
	Limit    int64
}

type ProductService struct {
	productRepository port.ProductPort
	categoryService   *CategoryService
	productCache      port.CachePort[domain.Product]
	idempotency       *IdempotencyService[domain.Product]
	metrics           port.MetricsPort

	defaultPageLimit  int64
	maxPageLimit      int64
	lowStockThreshold int
}

func NewProductService(
	productRepository port.ProductPort,
	categoryService *CategoryService,
	productCache port.CachePort[domain.Product],
	idempotency *IdempotencyService[domain.Product],
	metrics port.MetricsPort,
	defaultPageLimit int64,
	maxPageLimit int64,
	lowStockThreshold int,
) *ProductService {
	return &ProductService{
		productRepository: productRepository,
		categoryService:   categoryService,
		productCache:      productCache,
		idempotency:       idempotency,
		metrics:           metrics,
		defaultPageLimit:  defaultPageLimit,
		maxPageLimit:      maxPageLimit,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *ProductService) cacheKey(id domain.ID) string {
	return fmt.Sprintf("product:%d", id)
}

// List returns one page ordered by id ascending. Out-of-range paging
// parameters are clamped rather than rejected so listing stays available.
func (s *ProductService) List(ctx context.Context, page, limit int64) (*ProductList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.defaultPageLimit
	}
	if limit > s.maxPageLimit {
		limit = s.maxPageLimit
	}

	products, err := s.productRepository.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepository.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ProductList{Products: products, Total: total, Page: page, Limit: limit}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	cached, err := s.productCache.Get(ctx, s.cacheKey(id))
	if err != nil {
		logger.Error(ctx, "cache: get product failed", err, map[string]any{
			"product_id": id,
		})
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productCache.Set(ctx, s.cacheKey(id), product, productCacheTTL); err != nil {
		logger.Error(ctx, "cache: set product failed", err, map[string]any{
			"product_id": id,
		})
	}

	return product, nil
}

func (s *ProductService) createProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error) {
	if violations := validation.ValidateCreateProduct(request); len(violations) > 0 {
		return nil, serviceerrors.NewValidationError(violations)
	}

	categoryID := domain.ID(*request.CategoryID)
	if err := s.categoryService.Exists(ctx, categoryID); err != nil {
		return nil, err
	}

	product := domain.NewProduct(
		*request.Name,
		*request.Description,
		domain.NewAmountFromCents(*request.Price),
		*request.StockQuantity,
		categoryID,
	)

	if err := s.productRepository.Insert(ctx, product); err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":        *request.Name,
			"category_id": categoryID,
		})
		return nil, err
	}

	s.metrics.AddTotalProducts(ctx, 1)
	s.metrics.IncProductOperation(ctx, "create")

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID})
	return product, nil
}

// Create validates and persists a new product. When idempotencyKey is
// non-empty a replayed request returns the first result instead of creating
// a duplicate.
func (s *ProductService) Create(ctx context.Context, idempotencyKey string, request *dto.CreateProductRequest) (*domain.Product, error) {
	if idempotencyKey == "" {
		return s.createProduct(ctx, request)
	}

	payloadHash := utils.HashJSON(request)

	existing, err := s.idempotency.Claim(ctx, idempotencyKey, payloadHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	product, err := s.createProduct(ctx, request)
	if err != nil {
		s.idempotency.Release(ctx, idempotencyKey)
		return nil, err
	}

	s.idempotency.Complete(ctx, idempotencyKey, payloadHash, product)
	return product, nil
}

// Update applies a partial update. The merge happens inside one repository
// transaction so concurrent writers cannot lose each other's fields, and the
// merged record is re-validated before commit.
func (s *ProductService) Update(ctx context.Context, id domain.ID, request *dto.UpdateProductRequest) (*domain.Product, error) {
	if violations := validation.ValidateUpdateProduct(request); len(violations) > 0 {
		return nil, serviceerrors.NewValidationError(violations)
	}

	patch := toProductPatch(request)
	if patch.IsEmpty() {
		// a valid no-op: nothing to write, but the product must exist
		return s.productRepository.GetByID(ctx, id)
	}

	if patch.CategoryID != nil {
		if err := s.categoryService.Exists(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.productRepository.UpdateAtomic(ctx, id, func(p *domain.Product) error {
		patch.Apply(p)
		return validation.CheckProductInvariants(p)
	})
	if err != nil {
		return nil, err
	}

	if err := s.productCache.Set(ctx, s.cacheKey(id), updated, productCacheTTL); err != nil {
		logger.Error(ctx, "cache: update product failed", err, map[string]any{
			"product_id": id,
		})
	}

	s.metrics.IncProductOperation(ctx, "update")
	logger.Info(ctx, "Product updated", map[string]any{"product_id": id})
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id domain.ID) error {
	if err := s.productRepository.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.productCache.Del(ctx, s.cacheKey(id)); err != nil {
		logger.Error(ctx, "cache: delete product failed", err, map[string]any{
			"product_id": id,
		})
	}

	s.metrics.AddTotalProducts(ctx, -1)
	s.metrics.IncProductOperation(ctx, "delete")

	logger.Info(ctx, "Product deleted", map[string]any{"product_id": id})
	return nil
}

// UpdateStock adjusts stock by delta or sets it to an absolute quantity. The
// repository applies the change conditionally, so a result below zero is
// rejected without modifying the record even under concurrent callers.
func (s *ProductService) UpdateStock(ctx context.Context, id domain.ID, request *dto.UpdateStockRequest) (*domain.Product, error) {
	if violations := validation.ValidateUpdateStock(request); len(violations) > 0 {
		return nil, serviceerrors.NewValidationError(violations)
	}

	var (
		updated *domain.Product
		err     error
	)
	if request.Delta != nil {
		updated, err = s.productRepository.AdjustStock(ctx, id, *request.Delta)
	} else {
		updated, err = s.productRepository.SetStock(ctx, id, *request.Quantity)
	}
	if err != nil {
		return nil, err
	}

	if err := s.productCache.Set(ctx, s.cacheKey(id), updated, productCacheTTL); err != nil {
		logger.Error(ctx, "cache: update product failed", err, map[string]any{
			"product_id": id,
		})
	}

	s.metrics.IncProductOperation(ctx, "update_stock")
	logger.Info(ctx, "Product stock updated", map[string]any{
		"product_id":     id,
		"stock_quantity": updated.StockQuantity,
	})
	return updated, nil
}

// InventoryStats returns a consistent snapshot of the inventory aggregates.
func (s *ProductService) InventoryStats(ctx context.Context) (*domain.InventoryStats, error) {
	stats, err := s.productRepository.Aggregate(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	s.metrics.SetLowStockProducts(ctx, stats.LowStockCount)
	return stats, nil
}

// LowStock returns products with stock at or below the threshold, ordered by
// stock ascending then id ascending. A nil threshold uses the configured
// default.
func (s *ProductService) LowStock(ctx context.Context, threshold *int) ([]*domain.Product, error) {
	t := s.lowStockThreshold
	if threshold != nil {
		t = *threshold
	}
	return s.productRepository.FindLowStock(ctx, t)
}

func toProductPatch(request *dto.UpdateProductRequest) domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:          request.Name,
		Description:   request.Description,
		StockQuantity: request.StockQuantity,
		IsActive:      request.IsActive,
	}
	if request.Price != nil {
		price := domain.NewAmountFromCents(*request.Price)
		patch.Price = &price
	}
	if request.CategoryID != nil {
		categoryID := domain.ID(*request.CategoryID)
		patch.CategoryID = &categoryID
	}
	return patch
}
