package domain

import "time"

type Product struct {
	ID            ID
	Name          string
	Description   string
	Price         Amount
	StockQuantity int
	CategoryID    ID
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewProduct(name string, description string, price Amount, stockQuantity int, categoryID ID) *Product {
	return &Product{
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		CategoryID:    categoryID,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// ProductPatch carries a partial update. A nil field means "leave unchanged";
// a non-nil field overwrites, even with a zero value.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *Amount
	StockQuantity *int
	CategoryID    *ID
	IsActive      *bool
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.StockQuantity == nil && p.CategoryID == nil && p.IsActive == nil
}

// Apply merges the patch into product, touching only the fields that are set.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.StockQuantity != nil {
		product.StockQuantity = *p.StockQuantity
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
	if p.IsActive != nil {
		product.IsActive = *p.IsActive
	}
}

// InventoryStats is a consistent snapshot of the inventory aggregates over
// active products. TotalValue sums price times stock per product.
type InventoryStats struct {
	TotalProducts int64
	TotalValue    Amount
	LowStockCount int64
}

type ProductCreatedEvent struct {
	ProductID     ID        `json:"product_id"`
	Name          string    `json:"name"`
	Price         int64     `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryID    ID        `json:"category_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (e *ProductCreatedEvent) GetName() string       { return "product.created" }
func (e *ProductCreatedEvent) GetEntityName() string { return "product" }

func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         int64(p.Price),
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		CreatedAt:     p.CreatedAt,
	}
}

type ProductStockChangedEvent struct {
	ProductID     ID        `json:"product_id"`
	PreviousStock int       `json:"previous_stock"`
	StockQuantity int       `json:"stock_quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (e *ProductStockChangedEvent) GetName() string       { return "product.stock_changed" }
func (e *ProductStockChangedEvent) GetEntityName() string { return "product" }

func NewProductStockChangedEvent(id ID, previousStock, stockQuantity int, updatedAt time.Time) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		ProductID:     id,
		PreviousStock: previousStock,
		StockQuantity: stockQuantity,
		UpdatedAt:     updatedAt,
	}
}

type ProductDeletedEvent struct {
	ProductID ID        `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *ProductDeletedEvent) GetName() string       { return "product.deleted" }
func (e *ProductDeletedEvent) GetEntityName() string { return "product" }

func NewProductDeletedEvent(id ID, deletedAt time.Time) *ProductDeletedEvent {
	return &ProductDeletedEvent{ProductID: id, DeletedAt: deletedAt}
}

// ProductLowStockEvent fires when a stock mutation crosses the low stock
// threshold from above.
type ProductLowStockEvent struct {
	ProductID     ID        `json:"product_id"`
	StockQuantity int       `json:"stock_quantity"`
	Threshold     int       `json:"threshold"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (e *ProductLowStockEvent) GetName() string       { return "product.low_stock" }
func (e *ProductLowStockEvent) GetEntityName() string { return "product" }

func NewProductLowStockEvent(id ID, stockQuantity, threshold int, updatedAt time.Time) *ProductLowStockEvent {
	return &ProductLowStockEvent{
		ProductID:     id,
		StockQuantity: stockQuantity,
		Threshold:     threshold,
		UpdatedAt:     updatedAt,
	}
}
