package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPostRouter(uc *MockPostUseCase, userID string) *gin.Engine {
	handler := NewPostHandler(uc, nil, testLogger())
	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)
	router.GET("/posts/slug/:slug", handler.GetPostBySlug)
	router.GET("/posts/:id", handler.GetPost)
	router.GET("/users/:id/posts", handler.UserPosts)
	router.POST("/posts", asUser(userID, handler.CreatePost))
	router.PATCH("/posts/:id", asUser(userID, handler.UpdatePost))
	router.DELETE("/posts/:id", asUser(userID, handler.DeletePost))
	router.POST("/posts/:id/like", asUser(userID, handler.LikePost))
	router.POST("/posts/:id/view", asUser(userID, handler.IncrementView))
	return router
}

func samplePost() *entity.Post {
	profileID := "profile-1"
	return &entity.Post{
		ID:            "post-1",
		UserID:        "user-1",
		ProfileID:     &profileID,
		Title:         "Hello",
		Status:        entity.StatusActive,
		Slug:          "hello-abcd1234",
		Likes:         2,
		Author:        alice(),
		AuthorProfile: &entity.Profile{ID: "profile-1", UserID: "user-1"},
	}
}

func TestListPosts_Filters(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "")

	filter := entity.PostFilter{CategorySlug: "go", Status: entity.StatusDraft, Limit: 5, Offset: 10}
	uc.On("ListPosts", mock.Anything, filter).Return([]*entity.Post{samplePost()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?category=go&status=Draft&limit=5&offset=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.IsType(t, map[string]interface{}{}, body[0]["user"])
	assert.IsType(t, map[string]interface{}{}, body[0]["profile"])
	assert.EqualValues(t, 2, body[0]["likes"])
	uc.AssertExpectations(t)
}

func TestListPosts_InvalidStatus(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "")

	uc.On("ListPosts", mock.Anything, mock.Anything).Return(nil, usecase.ErrInvalidStatus)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?status=Gone", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status"`)
}

func TestUserPosts(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "")

	uc.On("ListPosts", mock.Anything, entity.PostFilter{UserID: "user-1", Limit: defaultLimit}).Return([]*entity.Post{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-1/posts?limit=500", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	uc.AssertExpectations(t)
}

func TestGetPost(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "")

	uc.On("GetPost", mock.Anything, "post-1").Return(samplePost(), nil)
	uc.On("GetPost", mock.Anything, "missing").Return(nil, usecase.ErrNotFound)
	uc.On("GetPostBySlug", mock.Anything, "hello-abcd1234").Return(samplePost(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1?depth=0", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"user-1"`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/posts/missing", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/posts/slug/hello-abcd1234", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"hello-abcd1234"`)
}

func TestCreatePost(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "user-1")

	title := "Hello"
	category := "cat-1"
	uc.On("CreatePost", mock.Anything, "user-1", usecase.PostInput{Title: &title, CategoryID: &category}).Return(samplePost(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts", `{"title":"Hello","category":"cat-1"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Active"`)
	uc.AssertExpectations(t)
}

func TestCreatePost_BadStatus(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts", `{"title":"Hello","status":"Archived"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":["\"Archived\" is not a valid choice."]}`, w.Body.String())
}

func TestCreatePost_FieldLengths(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "title",
			body: `{"title":"` + strings.Repeat("t", 101) + `"}`,
			want: `{"title":["Ensure this field has no more than 100 characters."]}`,
		},
		{
			name: "tags",
			body: `{"title":"Hello","tags":"` + strings.Repeat("g", 101) + `"}`,
			want: `{"tags":["Ensure this field has no more than 100 characters."]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockPostUseCase)
			router := newPostRouter(uc, "user-1")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("POST", "/posts", tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
			uc.AssertNotCalled(t, "CreatePost")
		})
	}
}

func TestCreatePost_TitleAtColumnWidth(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "user-1")

	uc.On("CreatePost", mock.Anything, "user-1", mock.Anything).Return(samplePost(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts", `{"title":"`+strings.Repeat("t", 100)+`"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestUpdatePost_ValueTooLongFromStore(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "driver error",
			err:  &pgconn.PgError{Code: "22001", Message: "value too long for type character varying(100)"},
			want: `{"non_field_errors":["Ensure this field has no more characters than allowed."]}`,
		},
		{
			name: "driver error with column",
			err:  &pgconn.PgError{Code: "22001", ColumnName: "tags"},
			want: `{"tags":["Ensure this field has no more characters than allowed."]}`,
		},
		{
			name: "mapped by usecase",
			err:  usecase.ErrValueTooLong,
			want: `{"non_field_errors":["Ensure this field has no more characters than allowed."]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockPostUseCase)
			router := newPostRouter(uc, "user-1")

			uc.On("UpdatePost", mock.Anything, "user-1", "post-1", mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("PATCH", "/posts/post-1", `{"title":"Hello"}`))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestCreatePost_Unauthorized(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts", `{"title":"Hello"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePost_NotOwner(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "user-2")

	uc.On("UpdatePost", mock.Anything, "user-2", "post-1", mock.Anything).Return(nil, usecase.ErrNotPostOwner)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", "/posts/post-1", `{"title":"Mine now"}`))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeletePost(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "user-1")

	uc.On("DeletePost", mock.Anything, "user-1", "post-1").Return(nil)
	uc.On("DeletePost", mock.Anything, "user-1", "post-2").Return(errors.New("connection reset"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/posts/post-2", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestLikePost(t *testing.T) {
	uc := new(MockPostUseCase)
	router := newPostRouter(uc, "user-1")

	uc.On("ToggleLike", mock.Anything, "user-1", "post-1").Return(true, int64(3), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"liked":true,"likes":3}`, w.Body.String())
}

func TestIncrementView_KeysByUserOrIP(t *testing.T) {
	uc := new(MockPostUseCase)

	uc.On("IncrementView", mock.Anything, "post-1", "user-1").Return(true, nil)
	uc.On("IncrementView", mock.Anything, "post-1", "ip:10.0.0.1").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/view", nil)
	newPostRouter(uc, "user-1").ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"counted":true}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/posts/post-1/view", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	newPostRouter(uc, "").ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"counted":false}`, w.Body.String())

	uc.AssertExpectations(t)
}
