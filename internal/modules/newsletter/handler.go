package newsletter

import (
	"errors"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/newsletter")
	grp.POST("/subscribe", h.subscribe)
	grp.POST("/unsubscribe", h.unsubscribe)
	grp.GET("/subscribers", authMW, middleware.RequireAdmin(), h.list)
}

func (h *Handler) subscribe(c *gin.Context) {
	var dto SubscribeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	sub, err := h.svc.Subscribe(&dto)
	if err != nil {
		if errors.Is(err, errAlreadySubscribed) {
			response.UnprocessableEntity(c, errAlreadySubscribed.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.CreatedMsg(c, toResponse(sub), "Subscribed. Karibu!")
}

func (h *Handler) unsubscribe(c *gin.Context) {
	var dto UnsubscribeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.svc.Unsubscribe(dto.Email, dto.Token); err != nil {
		if errors.Is(err, errSubscriberUnknown) {
			response.NotFoundMsg(c, errSubscriberUnknown.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OKMsg(c, nil, "Unsubscribed")
}

func (h *Handler) list(c *gin.Context) {
	activeOnly := c.Query("active") == "1"
	subs, pag, err := h.svc.List(pagination.FromContext(c), activeOnly)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]subscriberResponse, 0, len(subs))
	for i := range subs {
		items = append(items, toResponse(&subs[i]))
	}
	response.Paged(c, items, pag)
}
