package http

import (
	"net/http"

	"blog-api/pkg/logger"
	"blog-api/services/blog/internal/serializer"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Representation depth per request kind. Writes answer flat, reads nest
// posts with their user and profile.
const (
	DepthCreate = 0
	DepthRead   = usecase.MaxDepth
)

type CategoryHandler struct {
	categoryUseCase usecase.CategoryUseCase
	media           serializer.MediaResolver
	logger          *logger.Logger
}

func NewCategoryHandler(categoryUseCase usecase.CategoryUseCase, media serializer.MediaResolver, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
		media:           media,
		logger:          logger,
	}
}

type CategoryRequest struct {
	Title *string `json:"title" binding:"omitempty,max=100"`
	Image *string `json:"image" binding:"omitempty,max=255"`
	Slug  *string `json:"slug" binding:"omitempty,max=120"`
}

func (r CategoryRequest) input() usecase.CategoryInput {
	return usecase.CategoryInput{Title: r.Title, Image: r.Image, Slug: r.Slug}
}

// ListCategories godoc
// @Summary      List categories
// @Description  List all categories with their posts. Answers 404 with an empty array when there are none.
// @Tags         categories
// @Produce      json
// @Param        depth query int false "Nesting depth (0-3)"
// @Success      200  {array}   serializer.CategoryResponse
// @Failure      404  {array}   serializer.CategoryResponse
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	depth, ok := depthParam(c, DepthRead)
	if !ok {
		return
	}

	details, err := h.categoryUseCase.ListCategories(c.Request.Context(), depth)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if len(details) == 0 {
		c.JSON(http.StatusNotFound, []*serializer.CategoryResponse{})
		return
	}

	c.JSON(http.StatusOK, serializer.Categories(details, serializer.Options{Depth: depth, Media: h.media}))
}

// CreateCategory godoc
// @Summary      Create category
// @Description  Creating categories through the API is not supported.
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Failure      501  {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "Creating categories is not supported."})
}

// GetCategory godoc
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Param        depth query int false "Nesting depth (0-3)"
// @Success      200  {object}  serializer.CategoryResponse
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	depth, ok := depthParam(c, DepthRead)
	if !ok {
		return
	}

	detail, err := h.categoryUseCase.GetCategory(c.Request.Context(), c.Param("id"), depth)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Category(detail, serializer.Options{Depth: depth, Media: h.media}))
}

// GetCategoryBySlug godoc
// @Summary      Get category by slug
// @Tags         categories
// @Produce      json
// @Param        slug path string true "Category slug"
// @Param        depth query int false "Nesting depth (0-3)"
// @Success      200  {object}  serializer.CategoryResponse
// @Failure      404  {object}  map[string]string
// @Router       /categories/slug/{slug} [get]
func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	depth, ok := depthParam(c, DepthRead)
	if !ok {
		return
	}

	detail, err := h.categoryUseCase.GetCategoryBySlug(c.Request.Context(), c.Param("slug"), depth)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Category(detail, serializer.Options{Depth: depth, Media: h.media}))
}

// UpdateCategory godoc
// @Summary      Replace category
// @Description  Replace title, image and slug. A missing slug is derived from the title.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Category ID"
// @Param        request body CategoryRequest true "Category"
// @Success      200  {object}  serializer.CategoryResponse
// @Failure      400  {object}  map[string][]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	h.update(c, false)
}

// PatchCategory godoc
// @Summary      Update category fields
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Category ID"
// @Param        request body CategoryRequest true "Fields to change"
// @Success      200  {object}  serializer.CategoryResponse
// @Failure      400  {object}  map[string][]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /categories/{id} [patch]
func (h *CategoryHandler) PatchCategory(c *gin.Context) {
	h.update(c, true)
}

func (h *CategoryHandler) update(c *gin.Context, partial bool) {
	depth, ok := depthParam(c, DepthRead)
	if !ok {
		return
	}

	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, err := h.categoryUseCase.UpdateCategory(c.Request.Context(), c.Param("id"), req.input(), partial, depth)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Category(detail, serializer.Options{Depth: depth, Media: h.media}))
}

// DeleteCategory godoc
// @Summary      Delete category
// @Description  Posts of the category are kept without a category.
// @Tags         categories
// @Security     BearerAuth
// @Param        id path string true "Category ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.categoryUseCase.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.logger.Info("Category deleted: %s", id)
	c.Status(http.StatusNoContent)
}

// PostCount godoc
// @Summary      Count posts of a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200  {object}  map[string]int64
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id}/post-count [get]
func (h *CategoryHandler) PostCount(c *gin.Context) {
	count, err := h.categoryUseCase.PostCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_count": count})
}
