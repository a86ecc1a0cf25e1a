package persistent

import (
	"blog-api/pkg/models"
	"blog-api/services/notification/internal/entity"
)

func ToNotificationEntity(m *models.Notification) *entity.Notification {
	if m == nil {
		return nil
	}
	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		Type:      entity.NotificationType(m.Type),
		Seen:      m.Seen,
		CreatedAt: m.CreatedAt,
	}
}

func ToNotificationModel(e *entity.Notification) *models.Notification {
	if e == nil {
		return nil
	}
	return &models.Notification{
		ID:        e.ID,
		UserID:    e.UserID,
		PostID:    e.PostID,
		Type:      models.NotificationType(e.Type),
		Seen:      e.Seen,
		CreatedAt: e.CreatedAt,
	}
}
