package document

import (
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
)

type ProductDocument struct {
	ID            int64     `bson:"_id"`
	Name          string    `bson:"name"`
	Description   string    `bson:"description"`
	Price         int64     `bson:"price"`
	StockQuantity int       `bson:"stock_quantity"`
	CategoryID    int64     `bson:"category_id"`
	IsActive      bool      `bson:"is_active"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func ToProductDocument(p *domain.Product) *ProductDocument {
	return &ProductDocument{
		ID:            int64(p.ID),
		Name:          p.Name,
		Description:   p.Description,
		Price:         int64(p.Price),
		StockQuantity: p.StockQuantity,
		CategoryID:    int64(p.CategoryID),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d *ProductDocument) ToDomain() *domain.Product {
	return &domain.Product{
		ID:            domain.ID(d.ID),
		Name:          d.Name,
		Description:   d.Description,
		Price:         domain.Amount(d.Price),
		StockQuantity: d.StockQuantity,
		CategoryID:    domain.ID(d.CategoryID),
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
