package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"blog-api/pkg/cache"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"
	"blog-api/services/notification/internal/entity"
	"blog-api/services/notification/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100

	unseenCountTTL = 10 * time.Minute
)

// ChannelKey is the Redis pub/sub channel carrying a user's new notifications.
func ChannelKey(userID string) string {
	return cache.NotificationChannel(userID)
}

// UnseenCountKey caches the number of unseen notifications of a user.
func UnseenCountKey(userID string) string {
	return cache.UnseenNotificationsKey(userID)
}

type NotificationUseCase interface {
	HandleEngagement(ctx context.Context, event queue.EngagementEvent) (*entity.Notification, error)
	ListNotifications(ctx context.Context, userID string, seen *bool, limit, offset int) ([]*entity.Notification, int64, error)
	UnseenCount(ctx context.Context, userID string) (int64, error)
	MarkSeen(ctx context.Context, userID, id string) (*entity.Notification, error)
	MarkAllSeen(ctx context.Context, userID string) (int64, error)
	Subscribe(ctx context.Context, userID string) (*redis.PubSub, error)
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	redisClient      *redis.Client
	logger           *logger.Logger
}

func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
		logger:           logger,
	}
}

// HandleEngagement stores the notification carried by event, drops the cached
// unseen count and pushes the notification to live subscribers.
func (uc *notificationUseCase) HandleEngagement(ctx context.Context, event queue.EngagementEvent) (*entity.Notification, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	uc.logger.Info("[NOTIFICATION QUEUE] Processing %s event: recipient=%s, post=%s", event.Type, event.RecipientID, event.PostID)

	notification := &entity.Notification{
		UserID: event.RecipientID,
		PostID: event.PostID,
		Type:   entity.NotificationType(event.Type),
	}
	if !event.OccurredAt.IsZero() {
		notification.CreatedAt = event.OccurredAt
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return notification, nil
	}
	subscribers, err := cache.AnnounceNotification(ctx, uc.redisClient, notification.UserID, payload)
	if err != nil {
		uc.logger.Warn("[NOTIFICATION QUEUE] Failed to announce notification for user %s: %v", notification.UserID, err)
		return notification, nil
	}

	uc.logger.Info("[NOTIFICATION QUEUE] Stored notification %s, live subscribers=%d", notification.ID, subscribers)
	return notification, nil
}

func (uc *notificationUseCase) ListNotifications(ctx context.Context, userID string, seen *bool, limit, offset int) ([]*entity.Notification, int64, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	notifications, total, err := uc.notificationRepo.List(ctx, entity.NotificationFilter{
		UserID: userID,
		Seen:   seen,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// UnseenCount reads the cached counter and falls back to the database.
func (uc *notificationUseCase) UnseenCount(ctx context.Context, userID string) (int64, error) {
	key := UnseenCountKey(userID)

	cached, err := uc.redisClient.Get(ctx, key).Result()
	if err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	} else if err != redis.Nil {
		uc.logger.Warn("Failed to read unseen count for user %s: %v", userID, err)
	}

	count, err := uc.notificationRepo.CountUnseen(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	if err := uc.redisClient.Set(ctx, key, count, unseenCountTTL).Err(); err != nil {
		uc.logger.Warn("Failed to cache unseen count for user %s: %v", userID, err)
	}
	return count, nil
}

// MarkSeen flags one of the user's notifications as seen. Notifications of
// other users are reported as missing.
func (uc *notificationUseCase) MarkSeen(ctx context.Context, userID, id string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, ErrNotFound
	}

	if !notification.Seen {
		if err := uc.notificationRepo.MarkSeen(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to mark notification seen: %w", err)
		}
		notification.Seen = true
		uc.resetUnseen(ctx, userID)
	}
	return notification, nil
}

func (uc *notificationUseCase) MarkAllSeen(ctx context.Context, userID string) (int64, error) {
	updated, err := uc.notificationRepo.MarkAllSeen(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications seen: %w", err)
	}
	uc.resetUnseen(ctx, userID)
	uc.logger.Info("Marked %d notifications seen for user %s", updated, userID)
	return updated, nil
}

// Subscribe joins the user's channel and waits for Redis to confirm it, so
// nothing published after it returns is missed.
func (uc *notificationUseCase) Subscribe(ctx context.Context, userID string) (*redis.PubSub, error) {
	pubsub := uc.redisClient.Subscribe(ctx, ChannelKey(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return pubsub, nil
}

func (uc *notificationUseCase) resetUnseen(ctx context.Context, userID string) {
	if err := uc.redisClient.Del(ctx, UnseenCountKey(userID)).Err(); err != nil {
		uc.logger.Warn("Failed to reset unseen count for user %s: %v", userID, err)
	}
}
