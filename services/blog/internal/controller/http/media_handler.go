package http

import (
	"net/http"
	"strings"
	"time"

	"blog-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const presignTTL = 15 * time.Minute

// Presigner issues temporary download URLs for stored objects.
type Presigner interface {
	PresignGet(key string, ttl time.Duration) (string, error)
}

type MediaHandler struct {
	presigner Presigner
	logger    *logger.Logger
}

func NewMediaHandler(presigner Presigner, logger *logger.Logger) *MediaHandler {
	return &MediaHandler{
		presigner: presigner,
		logger:    logger,
	}
}

// Serve godoc
// @Summary      Download a media file
// @Description  Redirects to a short-lived URL of the stored image
// @Tags         media
// @Param        path path string true "Image path"
// @Success      302
// @Failure      404  {object}  map[string]string
// @Router       /media/{path} [get]
func (h *MediaHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" || strings.Contains(key, "..") || h.presigner == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}

	url, err := h.presigner.PresignGet(key, presignTTL)
	if err != nil {
		h.logger.Error("Failed to presign %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media"})
		return
	}

	c.Redirect(http.StatusFound, url)
}
