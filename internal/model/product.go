package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name          string          `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	SKU           string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku" validate:"required"`
	Description   string          `json:"description"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category       `json:"category,omitempty" validate:"-"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity      int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	MinStockLevel int             `gorm:"not null;default:10" json:"min_stock_level" validate:"gte=0"`
}

// IsLowStock reports whether the product is strictly below its threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinStockLevel
}
