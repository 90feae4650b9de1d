package media

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/pkg/response"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// Handler handles media HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts media routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	m := rg.Group("/media", authMW)
	m.POST("/featured-image", h.uploadFeaturedImage)
}

// uploadFeaturedImage POST /media/featured-image  [auth]
func (h *Handler) uploadFeaturedImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if file.Size > maxUploadBytes {
		response.UnprocessableEntity(c, "image exceeds the 10MB limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	key, url, err := h.svc.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			response.UnprocessableEntity(c, ErrDisabled.Error())
			return
		}
		response.UnprocessableEntity(c, err.Error())
		return
	}

	response.Created(c, gin.H{"key": key, "url": url})
}
