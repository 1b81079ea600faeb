package repository

import (
	"stocktrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(tx *gorm.DB, notification *model.Notification) error
	FindAll(unreadOnly bool, limit int) ([]model.Notification, error)
	FindByID(id uuid.UUID) (*model.Notification, error)
	SetRead(id uuid.UUID, isRead bool) error
	PurgeRead() error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

func (r *notificationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *notificationRepo) Create(tx *gorm.DB, notification *model.Notification) error {
	return r.conn(tx).Create(notification).Error
}

func (r *notificationRepo) FindAll(unreadOnly bool, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	query := r.db.Order("created_at DESC").Limit(limit)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	err := query.Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) FindByID(id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	return &notification, err
}

func (r *notificationRepo) SetRead(id uuid.UUID, isRead bool) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", isRead).Error
}

// PurgeRead deletes every read notification. A no-op when none exist.
func (r *notificationRepo) PurgeRead() error {
	return r.db.Where("is_read = ?", true).Delete(&model.Notification{}).Error
}
