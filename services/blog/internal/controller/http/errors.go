package http

import (
	"errors"
	"net/http"
	"strconv"

	"blog-api/pkg/logger"
	"blog-api/pkg/middleware"
	"blog-api/services/blog/internal/serializer"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(serializer.JSONTagName)
	}
}

// bindJSON binds the body and writes field errors on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErrors(err))
		return false
	}
	return true
}

// writeError maps usecase errors onto HTTP responses.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrSlugTaken),
		errors.Is(err, usecase.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotPostOwner), errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, serializer.FieldError("email", err.Error()))
	case errors.Is(err, usecase.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, serializer.FieldError("title", "This field is required."))
	case errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, serializer.FieldError("status", err.Error()))
	case errors.Is(err, usecase.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, serializer.FieldError("category", err.Error()))
	case errors.Is(err, usecase.ErrParentNotFound), errors.Is(err, usecase.ErrParentPostMismatch):
		c.JSON(http.StatusBadRequest, serializer.FieldError("parent", err.Error()))
	case usecase.IsValueTooLong(err):
		c.JSON(http.StatusBadRequest, serializer.FieldError(tooLongField(err), "Ensure this field has no more characters than allowed."))
	default:
		log.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// tooLongField names the offending column when the driver reports one.
func tooLongField(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return serializer.NonFieldErrors
}

// currentUser returns the authenticated user id, answering 401 when absent.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// depthParam reads ?depth= within [0, MaxDepth], falling back to def.
func depthParam(c *gin.Context, def int) (int, bool) {
	raw := c.Query("depth")
	if raw == "" {
		return def, true
	}
	depth, err := strconv.Atoi(raw)
	if err != nil || depth < 0 || depth > usecase.MaxDepth {
		c.JSON(http.StatusBadRequest, serializer.FieldError("depth", "Must be an integer between 0 and 3."))
		return 0, false
	}
	return depth, true
}

func pagination(c *gin.Context) (int, int) {
	limit := defaultLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxLimit {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
