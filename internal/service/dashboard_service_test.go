package service

import (
	"testing"

	"stocktrack-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	sales := newStubSaleRepo()
	movements := newStubMovementRepo()

	products.add(&model.Product{Name: "A", SKU: "A", Quantity: 2, MinStockLevel: 10})
	products.add(&model.Product{Name: "B", SKU: "B", Quantity: 50, MinStockLevel: 10})
	categories.Create(&model.Category{Name: "Tools"})

	hot := uuid.New()
	cold := uuid.New()
	for i := 0; i < 3; i++ {
		sales.Create(nil, &model.SalesTransaction{
			ProductID:   hot,
			Quantity:    10,
			TotalAmount: decimal.NewFromInt(100),
		})
	}
	sales.Create(nil, &model.SalesTransaction{
		ProductID:   cold,
		Quantity:    1,
		TotalAmount: decimal.NewFromInt(7),
	})

	svc := NewDashboardService(products, categories, sales, movements)
	stats, err := svc.GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalCategories)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.True(t, stats.TotalSales.Equal(decimal.NewFromInt(307)))
	assert.Len(t, stats.RecentTransactions, 4)

	require.NotEmpty(t, stats.TopSellingProducts)
	assert.Equal(t, 30, stats.TopSellingProducts[0].TotalSold)
}
