package post

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/middleware"
	"github.com/habariblog/core/internal/pkg/pagination"
	"github.com/habariblog/core/internal/pkg/response"
	"github.com/habariblog/core/internal/pkg/slug"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the post endpoints. Reads run behind optional auth
// so the admin view and draft access can recognize the caller; writes
// require a session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	posts := rg.Group("/posts")
	posts.GET("", optionalAuthMW, h.list)
	posts.GET("/:identifier", optionalAuthMW, h.get)
	posts.POST("", authMW, h.create)
	posts.PUT("/:identifier", authMW, h.update)
	posts.DELETE("/:identifier", authMW, h.delete)
}

func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	posts, pag, err := h.svc.List(pagination.FromContext(c), lq, middleware.CurrentUser(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]postResponse, 0, len(posts))
	for i := range posts {
		items = append(items, toListResponse(&posts[i]))
	}
	response.Paged(c, items, pag)
}

func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.GetByIdentifier(c.Param("identifier"), middleware.CurrentUser(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, toResponse(post, true))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	post, err := h.svc.Create(&dto, middleware.CurrentUser(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.CreatedMsg(c, toResponse(post, false), "Post created")
}

func (h *Handler) update(c *gin.Context) {
	id, ok := numericParam(c, "identifier")
	if !ok {
		response.NotFoundMsg(c, "post not found")
		return
	}

	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	post, err := h.svc.Update(id, &dto, middleware.CurrentUser(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, toResponse(post, false), "Post updated")
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := numericParam(c, "identifier")
	if !ok {
		response.NotFoundMsg(c, "post not found")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, nil, "Post deleted")
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errPostNotFound):
		response.NotFoundMsg(c, "post not found")
	case errors.Is(err, errCategoryNotFound):
		response.UnprocessableEntity(c, "the selected category does not exist")
	case errors.Is(err, errNotPostOwner):
		response.ForbiddenMsg(c, errNotPostOwner.Error())
	case errors.Is(err, errAuthRequired):
		response.Unauthorized(c)
	default:
		response.InternalError(c, err)
	}
}

func numericParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	if !slug.IsNumeric(raw) {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
