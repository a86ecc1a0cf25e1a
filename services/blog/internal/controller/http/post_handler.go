package http

import (
	"net/http"

	"blog-api/pkg/logger"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/serializer"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

// postDepth expands the author and the author's profile by default.
const postDepth = 2

type PostHandler struct {
	postUseCase usecase.PostUseCase
	media       serializer.MediaResolver
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, media serializer.MediaResolver, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		media:       media,
		logger:      logger,
	}
}

type PostRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Image       *string `json:"image" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Tags        *string `json:"tags" binding:"omitempty,max=100"`
	Category    *string `json:"category"`
	Status      *string `json:"status" binding:"omitempty,oneof=Active Draft Disabled"`
}

func (r PostRequest) input() usecase.PostInput {
	return usecase.PostInput{
		Title:       r.Title,
		Image:       r.Image,
		Description: r.Description,
		Tags:        r.Tags,
		CategoryID:  r.Category,
		Status:      r.Status,
	}
}

func (h *PostHandler) options(depth int) serializer.Options {
	return serializer.Options{Depth: depth, Media: h.media}
}

// ListPosts godoc
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        category query string false "Category slug"
// @Param        status query string false "Post status" Enums(Active, Draft, Disabled)
// @Param        user query string false "Author ID"
// @Param        limit query int false "Number of posts to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Param        depth query int false "Nesting depth (0-3)"
// @Success      200  {array}   serializer.PostResponse
// @Failure      400  {object}  map[string][]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	limit, offset := pagination(c)
	h.list(c, entity.PostFilter{
		CategorySlug: c.Query("category"),
		Status:       entity.PostStatus(c.Query("status")),
		UserID:       c.Query("user"),
		Limit:        limit,
		Offset:       offset,
	})
}

// UserPosts godoc
// @Summary      List posts of a user
// @Tags         posts
// @Produce      json
// @Param        id path string true "User ID"
// @Param        status query string false "Post status" Enums(Active, Draft, Disabled)
// @Param        limit query int false "Number of posts to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {array}   serializer.PostResponse
// @Router       /users/{id}/posts [get]
func (h *PostHandler) UserPosts(c *gin.Context) {
	limit, offset := pagination(c)
	h.list(c, entity.PostFilter{
		Status: entity.PostStatus(c.Query("status")),
		UserID: c.Param("id"),
		Limit:  limit,
		Offset: offset,
	})
}

func (h *PostHandler) list(c *gin.Context, filter entity.PostFilter) {
	depth, ok := depthParam(c, postDepth)
	if !ok {
		return
	}

	posts, err := h.postUseCase.ListPosts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Posts(posts, h.options(depth)))
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        depth query int false "Nesting depth (0-3)"
// @Success      200  {object}  serializer.PostResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	depth, ok := depthParam(c, postDepth)
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Post(post, h.options(depth)))
}

// GetPostBySlug godoc
// @Summary      Get post by slug
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Param        depth query int false "Nesting depth (0-3)"
// @Success      200  {object}  serializer.PostResponse
// @Failure      404  {object}  map[string]string
// @Router       /posts/slug/{slug} [get]
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	depth, ok := depthParam(c, postDepth)
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Post(post, h.options(depth)))
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Status defaults to Active. The post is linked to the author's profile.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PostRequest true "Post"
// @Success      201  {object}  serializer.PostResponse
// @Failure      400  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req PostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), userID, req.input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Post(post, h.options(DepthCreate)))
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Only the author can update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body PostRequest true "Fields to change"
// @Success      200  {object}  serializer.PostResponse
// @Failure      400  {object}  map[string][]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req PostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), userID, c.Param("id"), req.input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Post(post, h.options(DepthCreate)))
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Only the author can delete a post. Comments, likes and bookmarks go with it.
// @Tags         posts
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LikePost godoc
// @Summary      Like or unlike post
// @Description  Toggle like on a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	liked, likes, err := h.postUseCase.ToggleLike(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": likes})
}

// IncrementView godoc
// @Summary      Count a view
// @Description  Counts at most one view per viewer and day. Anonymous viewers are keyed by IP.
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/view [post]
func (h *PostHandler) IncrementView(c *gin.Context) {
	viewer := c.GetString("user_id")
	if viewer == "" {
		viewer = "ip:" + c.ClientIP()
	}

	counted, err := h.postUseCase.IncrementView(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"counted": counted})
}
