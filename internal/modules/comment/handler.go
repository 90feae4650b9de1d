package comment

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/middleware"
	"github.com/habariblog/core/internal/pkg/pagination"
	"github.com/habariblog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the comment endpoints. Submission and listing hang
// off the post slug; moderation lives under /comments. The post-scoped
// routes reuse the :identifier wildcard so they can share the /posts tree.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	rg.POST("/posts/:identifier/comments", h.create)
	rg.GET("/posts/:identifier/comments", optionalAuthMW, h.listForPost)

	grp := rg.Group("/comments")
	grp.POST("/:id/like", h.like)

	admin := grp.Group("", authMW, middleware.RequireAdmin())
	admin.GET("/moderation-queue", h.moderationQueue)
	admin.POST("/:id/approve", h.approve)
	admin.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	comment, err := h.svc.Create(c.Param("identifier"), &dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.renderError(c, err)
		return
	}

	msg := "Comment posted"
	if !comment.IsApproved {
		msg = "Comment submitted and awaiting moderation"
	}
	response.CreatedMsg(c, toResponse(comment), msg)
}

func (h *Handler) listForPost(c *gin.Context) {
	includeUnapproved := middleware.CurrentUser(c).IsAdmin()
	comments, pag, err := h.svc.ListForPost(c.Param("identifier"), pagination.FromContext(c), includeUnapproved)
	if err != nil {
		h.renderError(c, err)
		return
	}

	items := make([]commentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, toResponse(&comments[i]))
	}
	response.Paged(c, items, pag)
}

func (h *Handler) moderationQueue(c *gin.Context) {
	comments, pag, err := h.svc.ModerationQueue(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]moderationItem, 0, len(comments))
	for i := range comments {
		items = append(items, toModerationItem(&comments[i]))
	}
	response.Paged(c, items, pag)
}

func (h *Handler) approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errCommentNotFound.Error())
		return
	}

	comment, err := h.svc.Approve(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, toResponse(comment), "Comment approved")
}

func (h *Handler) like(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errCommentNotFound.Error())
		return
	}

	comment, err := h.svc.Like(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.OK(c, gin.H{"id": comment.ID, "like_count": comment.LikeCount})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.NotFoundMsg(c, errCommentNotFound.Error())
		return
	}

	if err := h.svc.Delete(id); err != nil {
		h.renderError(c, err)
		return
	}
	response.OKMsg(c, nil, "Comment deleted")
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errPostNotFound):
		response.NotFoundMsg(c, errPostNotFound.Error())
	case errors.Is(err, errCommentNotFound):
		response.NotFoundMsg(c, errCommentNotFound.Error())
	case errors.Is(err, errParentNotFound):
		response.UnprocessableEntity(c, errParentNotFound.Error())
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
