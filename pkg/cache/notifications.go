package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NotificationChannel is the pub/sub channel carrying a user's new notifications.
func NotificationChannel(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// UnseenNotificationsKey caches the number of unseen notifications of a user.
func UnseenNotificationsKey(userID string) string {
	return fmt.Sprintf("notifications:unseen:%s", userID)
}

// AnnounceNotification drops the user's cached unseen count and publishes
// payload to the user's channel. It returns the number of live subscribers.
func AnnounceNotification(ctx context.Context, client *redis.Client, userID string, payload []byte) (int64, error) {
	if err := client.Del(ctx, UnseenNotificationsKey(userID)).Err(); err != nil {
		return 0, fmt.Errorf("failed to reset unseen count: %w", err)
	}
	subscribers, err := client.Publish(ctx, NotificationChannel(userID), payload).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish to %s: %w", NotificationChannel(userID), err)
	}
	return subscribers, nil
}
