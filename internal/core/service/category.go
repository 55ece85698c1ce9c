package service

import (
	"context"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/dto"
	"github.com/alessok/devops-proyecto-final/internal/core/logger"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	"github.com/alessok/devops-proyecto-final/internal/core/validation"
)

type CategoryService struct {
	categoryRepository port.CategoryPort
	metrics            port.MetricsPort
}

func NewCategoryService(categoryRepository port.CategoryPort, metrics port.MetricsPort) *CategoryService {
	return &CategoryService{
		categoryRepository: categoryRepository,
		metrics:            metrics,
	}
}

func (s *CategoryService) Create(ctx context.Context, request *dto.CreateCategoryRequest) (*domain.Category, error) {
	if violations := validation.ValidateCreateCategory(request); len(violations) > 0 {
		return nil, serviceerrors.NewValidationError(violations)
	}

	description := ""
	if request.Description != nil {
		description = *request.Description
	}

	category := domain.NewCategory(*request.Name, description)
	if err := s.categoryRepository.Insert(ctx, category); err != nil {
		logger.Error(ctx, "category: create failed", err, map[string]any{
			"name": *request.Name,
		})
		return nil, err
	}

	s.metrics.AddTotalCategories(ctx, 1)
	logger.Info(ctx, "Category created", map[string]any{"category_id": category.ID})
	return category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id domain.ID) (*domain.Category, error) {
	return s.categoryRepository.GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepository.List(ctx)
}

func (s *CategoryService) Delete(ctx context.Context, id domain.ID) error {
	if err := s.categoryRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.AddTotalCategories(ctx, -1)
	logger.Info(ctx, "Category deleted", map[string]any{"category_id": id})
	return nil
}

// Exists fails with a not found error when the category is missing. Products
// reference categories by id, so writes check the reference up front.
func (s *CategoryService) Exists(ctx context.Context, id domain.ID) error {
	ok, err := s.categoryRepository.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return serviceerrors.NewNotFoundError("category not found")
	}
	return nil
}
