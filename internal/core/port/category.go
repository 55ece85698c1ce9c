package port

import (
	"context"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type CategoryPort interface {
	Insert(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id domain.ID) error
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id domain.ID) (bool, error)
}
