package repository

import (
	"stocktrack-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TopSellingProduct is an aggregate row for the dashboard: units sold
// and revenue per product, descending by units.
type TopSellingProduct struct {
	ProductName string          `json:"product_name"`
	TotalSold   int             `json:"total_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.SalesTransaction) error
	FindAll(limit int) ([]model.SalesTransaction, error)
	FindRecent(limit int) ([]model.SalesTransaction, error)
	TotalSales() (decimal.Decimal, error)
	TopSelling(limit int) ([]TopSellingProduct, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.SalesTransaction) error {
	return r.conn(tx).Create(sale).Error
}

func (r *saleRepo) FindAll(limit int) ([]model.SalesTransaction, error) {
	var sales []model.SalesTransaction
	err := r.db.Preload("Product").Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindRecent(limit int) ([]model.SalesTransaction, error) {
	return r.FindAll(limit)
}

func (r *saleRepo) TotalSales() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.SalesTransaction{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) TopSelling(limit int) ([]TopSellingProduct, error) {
	var results []TopSellingProduct

	rows, err := r.db.Model(&model.SalesTransaction{}).
		Select(`
			products.name as product_name,
			SUM(sales_transactions.quantity) as total_sold,
			SUM(sales_transactions.total_amount) as revenue
		`).
		Joins("JOIN products ON products.id = sales_transactions.product_id").
		Group("products.name").
		Order("total_sold DESC").
		Limit(limit).
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row TopSellingProduct
		if err := rows.Scan(&row.ProductName, &row.TotalSold, &row.Revenue); err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, nil
}
