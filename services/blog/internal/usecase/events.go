package usecase

import (
	"context"
	"encoding/json"
	"time"

	"blog-api/pkg/cache"
	"blog-api/pkg/logger"
	"blog-api/pkg/models"
	"blog-api/pkg/queue"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

// EventPublisher hands engagement events to the notification service.
type EventPublisher interface {
	PublishEngagement(event queue.EngagementEvent) error
}

// Notifier tells post authors about likes, comments and bookmarks. Events go
// through the publisher when one is configured; otherwise, or when publishing
// fails, the notification row is written directly and announced over Redis
// the same way the notification service announces it.
type Notifier struct {
	publisher   EventPublisher
	repo        persistent.EngagementRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNotifier(publisher EventPublisher, repo persistent.EngagementRepository, redisClient *redis.Client, logger *logger.Logger) *Notifier {
	return &Notifier{
		publisher:   publisher,
		repo:        repo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, t entity.NotificationType, post *entity.Post, actorID string) {
	if n == nil || post == nil {
		return
	}
	if actorID != "" && actorID == post.UserID {
		return
	}

	if n.publisher == nil {
		n.store(ctx, t, post)
		return
	}

	event := queue.EngagementEvent{
		Type:        models.NotificationType(t),
		RecipientID: post.UserID,
		ActorID:     actorID,
		PostID:      post.ID,
		Priority:    queue.PriorityFor(models.NotificationType(t)),
		OccurredAt:  time.Now().UTC(),
	}

	go func() {
		if err := n.publisher.PublishEngagement(event); err != nil {
			n.logger.Warn("[NOTIFY] Publishing %s event failed, storing directly: %v", t, err)
			n.store(context.Background(), t, post)
		}
	}()
}

func (n *Notifier) store(ctx context.Context, t entity.NotificationType, post *entity.Post) {
	notification := &entity.Notification{
		UserID: post.UserID,
		PostID: post.ID,
		Type:   t,
	}
	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		n.logger.Error("[NOTIFY] Failed to store %s notification for post %s: %v", t, post.ID, err)
		return
	}

	if n.redisClient == nil {
		return
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	if _, err := cache.AnnounceNotification(ctx, n.redisClient, notification.UserID, payload); err != nil {
		n.logger.Warn("[NOTIFY] Failed to announce notification %s: %v", notification.ID, err)
	}
}
