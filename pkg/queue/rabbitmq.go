package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"blog-api/pkg/config"
	"blog-api/pkg/logger"
	"blog-api/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	EngagementExchange    = "engagement"
	EngagementRoutingKey  = "post.engagement"

	maxPriority = 10
)

// EngagementEvent is published whenever someone likes, comments on or
// bookmarks a post. RecipientID is the post author.
type EngagementEvent struct {
	Type        models.NotificationType `json:"type"`
	RecipientID string                  `json:"recipient_id"`
	ActorID     string                  `json:"actor_id,omitempty"`
	PostID      string                  `json:"post_id"`
	Priority    int                     `json:"priority"`
	OccurredAt  time.Time               `json:"occurred_at"`
}

// PriorityFor ranks comments above bookmarks above likes.
func PriorityFor(t models.NotificationType) int {
	switch t {
	case models.NotificationComment:
		return 5
	case models.NotificationBookmark:
		return 3
	default:
		return 1
	}
}

func (e EngagementEvent) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("unknown notification type %q", e.Type)
	}
	if e.RecipientID == "" || e.PostID == "" {
		return fmt.Errorf("event is missing recipient or post")
	}
	return nil
}

func DecodeEvent(body []byte) (EngagementEvent, error) {
	var event EngagementEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return event, err
	}
	return event, nil
}

func clampPriority(p int) uint8 {
	if p < 0 {
		return 0
	}
	if p > maxPriority {
		return maxPriority
	}
	return uint8(p)
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func URL(cfg *config.Config) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	err := channel.ExchangeDeclare(
		EngagementExchange, // name
		"direct",           // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		amqp.Table{
			"x-max-priority": maxPriority,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		NotificationQueueName,
		EngagementRoutingKey,
		EngagementExchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEngagement sends the event to the notification queue as a persistent message.
func (c *Client) PublishEngagement(event EngagementEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		EngagementExchange,
		EngagementRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     clampPriority(event.Priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", EngagementExchange, EngagementRoutingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published %s event for post %s", event.Type, event.PostID)
	return nil
}

// ConsumeEngagement starts a goroutine delivering events to handler.
// Malformed messages are dropped; handler failures are requeued.
func (c *Client) ConsumeEngagement(handler func(EngagementEvent) error) error {
	msgs, err := c.channel.Consume(
		NotificationQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", NotificationQueueName)

	go func() {
		for msg := range msgs {
			event, err := DecodeEvent(msg.Body)
			if err != nil {
				c.logger.Error("[RABBITMQ] Dropping malformed event: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(event); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for %s event on post %s: %v", event.Type, event.PostID, err)
				msg.Nack(false, !msg.Redelivered)
				continue
			}

			msg.Ack(false)
		}
		c.logger.Warn("[RABBITMQ] Delivery channel closed for queue: %s", NotificationQueueName)
	}()

	return nil
}

// QueueLength returns the number of messages waiting in the notification queue.
func (c *Client) QueueLength() (int, error) {
	q, err := c.channel.QueueInspect(NotificationQueueName)
	if err != nil {
		return 0, err
	}
	return q.Messages, nil
}
