package category

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/middleware"
	"github.com/habariblog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts public reads and admin writes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	grp := rg.Group("/categories")
	grp.GET("", optionalAuthMW, h.list)
	grp.GET("/:id", h.get)

	admin := grp.Group("", authMW, middleware.RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	includeInactive := c.Query("all") == "1" && middleware.CurrentUser(c).IsAdmin()
	categories, err := h.svc.List(includeInactive)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errCategoryNotFound.Error())
		return
	}

	cat, err := h.svc.Get(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	cat, err := h.svc.Create(&dto)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.CreatedMsg(c, cat, "Category created")
}

func (h *Handler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errCategoryNotFound.Error())
		return
	}

	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	cat, err := h.svc.Update(id, &dto)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, cat, "Category updated")
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errCategoryNotFound.Error())
		return
	}

	if err := h.svc.Delete(id); err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, nil, "Category deleted")
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errCategoryNotFound):
		response.NotFoundMsg(c, errCategoryNotFound.Error())
	case errors.Is(err, errCategoryInUse):
		response.UnprocessableEntity(c, errCategoryInUse.Error())
	case errors.Is(err, errNameTaken):
		response.UnprocessableEntity(c, errNameTaken.Error())
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
