package document

import (
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
)

type CategoryDocument struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func ToCategoryDocument(c *domain.Category) *CategoryDocument {
	return &CategoryDocument{
		ID:          int64(c.ID),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d *CategoryDocument) ToDomain() *domain.Category {
	return &domain.Category{
		ID:          domain.ID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
