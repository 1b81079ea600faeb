package service

import (
	"errors"

	"stocktrack-backend/internal/apperr"
	"stocktrack-backend/internal/model"
	"stocktrack-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultFeedLimit = 20

// NotificationService exposes the append-only feed: list newest-first,
// toggle read state, purge read entries.
type NotificationService interface {
	List(unreadOnly bool, limit int) ([]model.Notification, error)
	MarkRead(id uuid.UUID, isRead bool) (*model.Notification, error)
	PurgeRead() error
}

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) List(unreadOnly bool, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.notifications.FindAll(unreadOnly, limit)
}

func (s *notificationService) MarkRead(id uuid.UUID, isRead bool) (*model.Notification, error) {
	if _, err := s.notifications.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Notification not found")
		}
		return nil, err
	}
	if err := s.notifications.SetRead(id, isRead); err != nil {
		return nil, err
	}
	return s.notifications.FindByID(id)
}

func (s *notificationService) PurgeRead() error {
	return s.notifications.PurgeRead()
}
