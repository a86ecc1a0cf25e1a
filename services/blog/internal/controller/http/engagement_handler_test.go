package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEngagementRouter(uc *MockEngagementUseCase, userID string) *gin.Engine {
	handler := NewEngagementHandler(uc, nil, testLogger())
	router := setupTestRouter()
	router.GET("/posts/:id/comments", handler.ListComments)
	router.POST("/posts/:id/comments", handler.AddComment)
	router.DELETE("/comments/:id", asUser(userID, handler.DeleteComment))
	router.GET("/bookmarks", asUser(userID, handler.ListBookmarks))
	router.POST("/posts/:id/bookmark", asUser(userID, handler.AddBookmark))
	router.DELETE("/bookmarks/:id", asUser(userID, handler.DeleteBookmark))
	return router
}

func TestListComments_Tree(t *testing.T) {
	uc := new(MockEngagementUseCase)
	router := newEngagementRouter(uc, "")

	parent := "c-1"
	tree := []*entity.Comment{{
		ID:     "c-1",
		PostID: "post-1",
		Body:   "root",
		Replies: []*entity.Comment{
			{ID: "c-2", PostID: "post-1", ParentID: &parent, Body: "reply", Replies: []*entity.Comment{}},
		},
	}}
	uc.On("CommentTree", mock.Anything, "post-1").Return(tree, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/comments", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "root", body[0]["comment"])
	replies := body[0]["replies"].([]interface{})
	require.Len(t, replies, 1)
	reply := replies[0].(map[string]interface{})
	assert.Equal(t, "c-1", reply["parent"])
	assert.Equal(t, []interface{}{}, reply["replies"])
}

func TestAddComment(t *testing.T) {
	uc := new(MockEngagementUseCase)
	router := newEngagementRouter(uc, "")

	parent := "c-1"
	input := usecase.CommentInput{Name: "Bob", Email: "bob@x.com", Body: "Nice", ParentID: &parent}
	uc.On("AddComment", mock.Anything, "post-1", input).
		Return(&entity.Comment{ID: "c-2", PostID: "post-1", ParentID: &parent, Body: "Nice", Replies: []*entity.Comment{}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts/post-1/comments", `{"name":"Bob","email":"bob@x.com","comment":"Nice","parent":"c-1"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"parent":"c-1"`)
	uc.AssertExpectations(t)
}

func TestAddComment_ParentFromOtherPost(t *testing.T) {
	uc := new(MockEngagementUseCase)
	router := newEngagementRouter(uc, "")

	uc.On("AddComment", mock.Anything, "post-2", mock.Anything).Return(nil, usecase.ErrParentPostMismatch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts/post-2/comments", `{"name":"Bob","email":"bob@x.com","comment":"x","parent":"c-1"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"parent":["parent comment belongs to a different post"]}`, w.Body.String())
}

func TestAddComment_Validation(t *testing.T) {
	uc := new(MockEngagementUseCase)
	router := newEngagementRouter(uc, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts/post-1/comments", `{"name":"Bob","email":"bob"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"email":["Enter a valid email address."],"comment":["This field is required."]}`, w.Body.String())
}

func TestAddComment_EmailTooLong(t *testing.T) {
	uc := new(MockEngagementUseCase)
	router := newEngagementRouter(uc, "")

	email := "bob@" + strings.Repeat("a", 45) + "." + strings.Repeat("b", 47) + ".com"
	require.Len(t, email, 101)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/posts/post-1/comments", `{"name":"Bob","email":"`+email+`","comment":"Hi"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"email":["Ensure this field has no more than 100 characters."]}`, w.Body.String())
	uc.AssertNotCalled(t, "AddComment")
}

func TestDeleteComment(t *testing.T) {
	uc := new(MockEngagementUseCase)
	router := newEngagementRouter(uc, "user-2")

	uc.On("DeleteComment", mock.Anything, "user-2", "c-1").Return(usecase.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/comments/c-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookmarks(t *testing.T) {
	uc := new(MockEngagementUseCase)
	router := newEngagementRouter(uc, "user-1")

	bookmark := &entity.Bookmark{ID: "b-1", UserID: "user-1", PostID: "post-1", Post: &entity.Post{ID: "post-1", UserID: "user-2", Title: "Hello"}}
	uc.On("AddBookmark", mock.Anything, "user-1", "post-1").Return(bookmark, nil)
	uc.On("ListBookmarks", mock.Anything, "user-1").Return([]*entity.Bookmark{bookmark}, nil)
	uc.On("DeleteBookmark", mock.Anything, "user-1", "b-1").Return(nil)
	uc.On("DeleteBookmark", mock.Anything, "user-1", "b-2").Return(usecase.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/bookmark", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Hello"`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/bookmarks", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/bookmarks/b-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/bookmarks/b-2", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
