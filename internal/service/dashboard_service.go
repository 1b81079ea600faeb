package service

import (
	"time"

	"stocktrack-backend/internal/model"
	"stocktrack-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate payload for the overview page.
type DashboardStats struct {
	TotalProducts      int64                          `json:"totalProducts"`
	TotalCategories    int64                          `json:"totalCategories"`
	LowStockCount      int64                          `json:"lowStockCount"`
	TotalSales         decimal.Decimal                `json:"totalSales"`
	RecentTransactions []model.SalesTransaction       `json:"recentTransactions"`
	TopSellingProducts []repository.TopSellingProduct `json:"topSellingProducts"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetStockMovement(days int) ([]repository.DailyFlow, error)
}

type dashboardService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	sales      repository.SaleRepository
	movements  repository.MovementRepository
}

func NewDashboardService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	sales repository.SaleRepository,
	movements repository.MovementRepository,
) DashboardService {
	return &dashboardService{
		products:   products,
		categories: categories,
		sales:      sales,
		movements:  movements,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	totalProducts, err := s.products.Count()
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.categories.Count()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock()
	if err != nil {
		return nil, err
	}
	totalSales, err := s.sales.TotalSales()
	if err != nil {
		return nil, err
	}
	recent, err := s.sales.FindRecent(5)
	if err != nil {
		return nil, err
	}
	topSelling, err := s.sales.TopSelling(5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:      totalProducts,
		TotalCategories:    totalCategories,
		LowStockCount:      lowStock,
		TotalSales:         totalSales,
		RecentTransactions: recent,
		TopSellingProducts: topSelling,
	}, nil
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.DailyFlow, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.movements.GetDailyFlow(startDate, endDate)
}
