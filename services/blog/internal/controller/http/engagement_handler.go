package http

import (
	"net/http"

	"blog-api/pkg/logger"
	"blog-api/services/blog/internal/serializer"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementUseCase usecase.EngagementUseCase
	media             serializer.MediaResolver
	logger            *logger.Logger
}

func NewEngagementHandler(engagementUseCase usecase.EngagementUseCase, media serializer.MediaResolver, logger *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementUseCase: engagementUseCase,
		media:             media,
		logger:            logger,
	}
}

type CommentRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Email   string  `json:"email" binding:"required,email,max=100"`
	Comment string  `json:"comment" binding:"required"`
	Parent  *string `json:"parent"`
}

// ListComments godoc
// @Summary      Comment tree of a post
// @Description  Top-level comments with their replies nested under "replies"
// @Tags         comments
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {array}   serializer.CommentResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [get]
func (h *EngagementHandler) ListComments(c *gin.Context) {
	tree, err := h.engagementUseCase.CommentTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Comments(tree))
}

// AddComment godoc
// @Summary      Comment on a post
// @Description  Set parent to reply to another comment of the same post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        request body CommentRequest true "Comment"
// @Success      201  {object}  serializer.CommentResponse
// @Failure      400  {object}  map[string][]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *EngagementHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.engagementUseCase.AddComment(c.Request.Context(), c.Param("id"), usecase.CommentInput{
		Name:     req.Name,
		Email:    req.Email,
		Body:     req.Comment,
		ParentID: req.Parent,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Comment(comment))
}

// DeleteComment godoc
// @Summary      Delete comment
// @Description  The post author can remove a comment together with its replies
// @Tags         comments
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.engagementUseCase.DeleteComment(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBookmarks godoc
// @Summary      List own bookmarks
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   serializer.BookmarkResponse
// @Failure      401  {object}  map[string]string
// @Router       /bookmarks [get]
func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookmarks, err := h.engagementUseCase.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Bookmarks(bookmarks, serializer.Options{Media: h.media}))
}

// AddBookmark godoc
// @Summary      Bookmark a post
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      201  {object}  serializer.BookmarkResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/bookmark [post]
func (h *EngagementHandler) AddBookmark(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookmark, err := h.engagementUseCase.AddBookmark(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Bookmark(bookmark, serializer.Options{Media: h.media}))
}

// DeleteBookmark godoc
// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Security     BearerAuth
// @Param        id path string true "Bookmark ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bookmarks/{id} [delete]
func (h *EngagementHandler) DeleteBookmark(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.engagementUseCase.DeleteBookmark(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
