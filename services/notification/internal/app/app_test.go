package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-api/pkg/config"
	"blog-api/pkg/database/dbtest"
	"blog-api/pkg/jwt"
	"blog-api/pkg/logger"
	"blog-api/pkg/models"
	"blog-api/pkg/queue"
	"blog-api/services/notification/internal/entity"
	"blog-api/services/notification/internal/repo/persistent"
	"blog-api/services/notification/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	uc     usecase.NotificationUseCase
	token  string
	author *models.User
	post   *models.Post
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	db := dbtest.New(t)
	author := &models.User{Email: "author@x.com", Password: "hash"}
	require.NoError(t, db.Create(author).Error)
	post := &models.Post{UserID: author.ID, Title: "Hello"}
	require.NoError(t, db.Create(post).Error)

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTTokenTTL:       time.Hour,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
	log := logger.NewWithWriters(io.Discard, io.Discard)
	uc := usecase.NewNotificationUseCase(persistent.NewNotificationRepository(db), redisClient, log)

	token, err := jwt.NewService(cfg.JWTSecret).GenerateToken(author.ID, "user")
	require.NoError(t, err)

	return &testServer{
		t:      t,
		router: NewRouter(cfg, log, uc, redisClient),
		uc:     uc,
		token:  token,
		author: author,
		post:   post,
	}
}

func (s *testServer) do(method, path string) *httptest.ResponseRecorder {
	s.t.Helper()
	req, err := http.NewRequest(method, path, nil)
	require.NoError(s.t, err)
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) notify(t models.NotificationType) *entity.Notification {
	s.t.Helper()
	notification, err := s.uc.HandleEngagement(context.Background(), queue.EngagementEvent{
		Type:        t,
		RecipientID: s.author.ID,
		PostID:      s.post.ID,
	})
	require.NoError(s.t, err)
	return notification
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotificationFlow(t *testing.T) {
	s := newTestServer(t)
	like := s.notify(models.NotificationLike)
	s.notify(models.NotificationComment)

	req, _ := http.NewRequest("GET", "/api/v1/notifications", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do("GET", "/api/v1/notifications/unseen-count")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unseen":2}`, w.Body.String())

	w = s.do("POST", "/api/v1/notifications/"+like.ID+"/seen")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seen":true`)

	w = s.do("GET", "/api/v1/notifications?seen=false")
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Notifications []entity.Notification `json:"notifications"`
		Total         int64                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Notifications, 1)
	assert.Equal(t, entity.NotificationComment, page.Notifications[0].Type)

	w = s.do("POST", "/api/v1/notifications/seen")
	assert.JSONEq(t, `{"updated":1}`, w.Body.String())

	w = s.do("GET", "/api/v1/notifications/unseen-count")
	assert.JSONEq(t, `{"unseen":0}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do("POST", "/api/v1/notifications/missing/seen").Code)
}

func TestWebSocketReceivesNotifications(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/notifications/ws?token=" + s.token
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	sent := s.notify(models.NotificationBookmark)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var got entity.Notification
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, entity.NotificationBookmark, got.Type)
	assert.Equal(t, s.post.ID, got.PostID)
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/notifications/ws?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
