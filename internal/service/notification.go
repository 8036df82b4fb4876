package service

import (
	"context"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, donorID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.noteRepo.List(ctx, donorID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkNotificationRead(ctx context.Context, donorID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, donorID)
}
