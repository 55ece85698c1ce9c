package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

func TestMetricsRefresher_refresh(t *testing.T) {
	t.Run("sets every gauge from repository counts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		products := mock.NewMockProductPort(ctrl)
		categories := mock.NewMockCategoryPort(ctrl)
		users := mock.NewMockUserPort(ctrl)
		metrics := mock.NewMockMetricsPort(ctrl)

		products.EXPECT().Count(gomock.Any()).Return(int64(12), nil)
		categories.EXPECT().Count(gomock.Any()).Return(int64(4), nil)
		users.EXPECT().Count(gomock.Any()).Return(int64(7), nil)
		products.EXPECT().Aggregate(gomock.Any(), 5).
			Return(&domain.InventoryStats{TotalProducts: 12, LowStockCount: 3}, nil)

		metrics.EXPECT().SetTotalProducts(gomock.Any(), int64(12))
		metrics.EXPECT().SetTotalCategories(gomock.Any(), int64(4))
		metrics.EXPECT().SetTotalUsers(gomock.Any(), int64(7))
		metrics.EXPECT().SetLowStockProducts(gomock.Any(), int64(3))

		refresher := NewMetricsRefresher(products, categories, users, metrics, time.Minute, 5)
		refresher.refresh(context.Background())
	})

	t.Run("one failing count does not block the others", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		products := mock.NewMockProductPort(ctrl)
		categories := mock.NewMockCategoryPort(ctrl)
		users := mock.NewMockUserPort(ctrl)
		metrics := mock.NewMockMetricsPort(ctrl)

		products.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("timeout"))
		categories.EXPECT().Count(gomock.Any()).Return(int64(4), nil)
		users.EXPECT().Count(gomock.Any()).Return(int64(7), nil)
		products.EXPECT().Aggregate(gomock.Any(), 5).
			Return(&domain.InventoryStats{}, nil)

		metrics.EXPECT().SetTotalCategories(gomock.Any(), int64(4))
		metrics.EXPECT().SetTotalUsers(gomock.Any(), int64(7))
		metrics.EXPECT().SetLowStockProducts(gomock.Any(), int64(0))

		refresher := NewMetricsRefresher(products, categories, users, metrics, time.Minute, 5)
		refresher.refresh(context.Background())
	})
}
