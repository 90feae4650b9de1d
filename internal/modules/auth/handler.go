package auth

import (
	"errors"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/register", h.register)
	grp.POST("/login", h.login)
	grp.POST("/logout", authMW, h.logout)
	grp.GET("/me", authMW, h.me)
	grp.PUT("/me", authMW, h.updateMe)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			response.UnprocessableEntity(c, errEmailTaken.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.CreatedMsg(c, toUserResponse(user), "Registration successful. Your account is pending activation.")
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	token, user, err := h.svc.Login(&dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			response.UnauthorizedMsg(c, errInvalidCredentials.Error())
		case errors.Is(err, errAccountInactive):
			response.ForbiddenMsg(c, errAccountInactive.Error())
		case errors.Is(err, errAccountSuspended):
			response.ForbiddenMsg(c, errAccountSuspended.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OKMsg(c, loginResponse{Token: token, User: toUserResponse(user)}, "Login successful")
}

func (h *Handler) logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.svc.Logout(user.ID, middleware.CurrentSessionID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OKMsg(c, nil, "Logged out")
}

func (h *Handler) me(c *gin.Context) {
	response.OK(c, toUserResponse(middleware.CurrentUser(c)))
}

func (h *Handler) updateMe(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, err := h.svc.UpdateProfile(middleware.CurrentUser(c), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OKMsg(c, toUserResponse(user), "Profile updated")
}
