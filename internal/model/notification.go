package model

import "github.com/google/uuid"

type NotificationType string

const (
	NotifProductAdded    NotificationType = "PRODUCT_ADDED"
	NotifProductUpdated  NotificationType = "PRODUCT_UPDATED"
	NotifProductDeleted  NotificationType = "PRODUCT_DELETED"
	NotifCategoryAdded   NotificationType = "CATEGORY_ADDED"
	NotifCategoryDeleted NotificationType = "CATEGORY_DELETED"
	NotifSaleRecorded    NotificationType = "SALE_RECORDED"
	NotifStockUpdate     NotificationType = "STOCK_UPDATE"
	NotifLowStock        NotificationType = "LOW_STOCK"
)

// Notification is an append-only feed entry. After creation the only
// allowed mutation is toggling IsRead; read entries can be bulk-purged.
type Notification struct {
	BaseModel
	Type              NotificationType `gorm:"type:varchar(50);not null;index:idx_notifications_read,priority:2" json:"type"`
	Message           string           `gorm:"not null" json:"message"`
	RelatedEntityType string           `gorm:"type:varchar(50)" json:"related_entity_type"`
	RelatedEntityID   *uuid.UUID       `gorm:"type:uuid" json:"related_entity_id"`
	IsRead            bool             `gorm:"not null;default:false;index:idx_notifications_read,priority:1" json:"is_read"`
}
