package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesTransaction is an immutable record of a completed sale. The unit
// price and total are snapshots taken at sale time and are never
// recomputed from the current product price.
type SalesTransaction struct {
	BaseModel
	TransactionNumber string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"transaction_number"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product           *Product        `json:"product,omitempty" validate:"-"`
	Quantity          int             `gorm:"not null" json:"quantity" validate:"required,gte=1"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	CustomerName      string          `gorm:"type:varchar(200)" json:"customer_name"`
	Notes             string          `json:"notes"`
}
