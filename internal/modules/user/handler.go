package user

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/middleware"
	"github.com/habariblog/core/internal/pkg/access"
	"github.com/habariblog/core/internal/pkg/pagination"
	"github.com/habariblog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the admin user-management endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/users", authMW, middleware.RequireAdmin())
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.PUT("/:id", h.update)
	grp.POST("/:id/activate", h.activate)
	grp.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	users, pag, err := h.svc.List(pagination.FromContext(c), lq)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]userResponse, 0, len(users))
	for i := range users {
		items = append(items, toResponse(&users[i], 0))
	}
	response.Paged(c, items, pag)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errUserNotFound.Error())
		return
	}

	user, postCount, err := h.svc.Get(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, toResponse(user, postCount))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errUserNotFound.Error())
		return
	}

	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, postCount, err := h.svc.Update(id, &dto)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, toResponse(user, postCount), "User updated")
}

func (h *Handler) activate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errUserNotFound.Error())
		return
	}

	user, postCount, err := h.svc.Activate(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, toResponse(user, postCount), "User activated")
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errUserNotFound.Error())
		return
	}

	if err := h.svc.Delete(id, middleware.CurrentUser(c)); err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, nil, "User deleted")
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUserNotFound):
		response.NotFoundMsg(c, errUserNotFound.Error())
	case errors.Is(err, access.ErrLastAdmin):
		response.ForbiddenMsg(c, access.ErrLastAdmin.Error())
	case errors.Is(err, access.ErrSelfDelete):
		response.ForbiddenMsg(c, access.ErrSelfDelete.Error())
	default:
		response.InternalError(c, err)
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
