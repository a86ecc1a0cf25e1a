package persistent

import (
	"context"

	"blog-api/pkg/models"
	"blog-api/services/notification/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	List(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, int64, error)
	CountUnseen(ctx context.Context, userID string) (int64, error)
	MarkSeen(ctx context.Context, id string) error
	MarkAllSeen(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationModel := ToNotificationModel(notification)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(notificationModel).Error; err != nil {
		return err
	}
	*notification = *ToNotificationEntity(notificationModel)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	var notificationModel models.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notificationModel).Error; err != nil {
		return nil, err
	}
	return ToNotificationEntity(&notificationModel), nil
}

// List returns one page of the user's notifications, newest first, and the
// number of rows matching the filter.
func (r *notificationRepository) List(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, int64, error) {
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", filter.UserID)
		if filter.Seen != nil {
			query = query.Where("seen = ?", *filter.Seen)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notificationModels []models.Notification
	err := scoped().Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&notificationModels).Error
	if err != nil {
		return nil, 0, err
	}

	notifications := make([]*entity.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = ToNotificationEntity(&notificationModels[i])
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnseen(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkSeen(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("seen", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Update("seen", true)
	return result.RowsAffected, result.Error
}
