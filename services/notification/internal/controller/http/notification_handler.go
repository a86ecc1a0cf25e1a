package http

import (
	"errors"
	"net/http"
	"strconv"

	"blog-api/pkg/jwt"
	"blog-api/pkg/logger"
	"blog-api/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
	jwtService          *jwt.Service
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger, jwtService *jwt.Service) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
		jwtService:          jwtService,
	}
}

// GetNotifications godoc
// @Summary      Get user notifications
// @Description  Notifications of the authenticated user, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        seen query bool false "Only seen (true) or unseen (false) notifications"
// @Param        limit query int false "Number of notifications to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var seen *bool
	if seenStr := c.Query("seen"); seenStr != "" {
		parsed, err := strconv.ParseBool(seenStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"seen": []string{"Must be a valid boolean."}})
			return
		}
		seen = &parsed
	}

	limit := usecase.DefaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= usecase.MaxLimit {
			limit = parsedLimit
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	notifications, total, err := h.notificationUseCase.ListNotifications(c.Request.Context(), userID, seen, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"total":         total,
		"offset":        offset,
	})
}

// UnseenCount godoc
// @Summary      Count unseen notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Failure      401  {object}  map[string]string
// @Router       /notifications/unseen-count [get]
func (h *NotificationHandler) UnseenCount(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	count, err := h.notificationUseCase.UnseenCount(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to count notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unseen": count})
}

// MarkSeen godoc
// @Summary      Mark a notification as seen
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  entity.Notification
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id}/seen [post]
func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notification, err := h.notificationUseCase.MarkSeen(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
			return
		}
		h.logger.Error("Failed to mark notification seen: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllSeen godoc
// @Summary      Mark every notification as seen
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Failure      401  {object}  map[string]string
// @Router       /notifications/seen [post]
func (h *NotificationHandler) MarkAllSeen(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.notificationUseCase.MarkAllSeen(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to mark notifications seen: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// HandleWebSocket godoc
// @Summary      Live notification stream
// @Description  Upgrades to a WebSocket that receives every new notification as JSON
// @Tags         notifications
// @Param        token query string true "JWT access token"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      401  {object}  map[string]string
// @Router       /notifications/ws [get]
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	if userID == "" {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		claims, err := h.jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID = claims.UserID
	}

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	pubsub, err := h.notificationUseCase.Subscribe(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to subscribe user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	defer pubsub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for user %s", userID)

	redisChannel := pubsub.Channel()
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case msg, ok := <-redisChannel:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					h.logger.Error("Failed to write WebSocket message: %v", err)
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read error: %v", err)
			}
			break
		}
	}

	close(done)
	h.logger.Info("WebSocket disconnected for user %s", userID)
}
