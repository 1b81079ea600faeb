package model

import "github.com/google/uuid"

type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// StockMovement is an immutable record of a change to a product's stock
// quantity. Sales produce an OUT movement; direct stock edits produce
// IN, OUT or ADJUSTMENT.
type StockMovement struct {
	BaseModel
	ProductID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product         *Product     `json:"product,omitempty" validate:"-"`
	MovementType    MovementType `gorm:"type:varchar(20);not null" json:"movement_type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity        int          `gorm:"not null" json:"quantity" validate:"gte=0"`
	ReferenceNumber string       `gorm:"type:varchar(100)" json:"reference_number"`
	Notes           string       `json:"notes"`
}
