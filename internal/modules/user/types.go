package user

import (
	"errors"
	"time"

	"github.com/habariblog/core/internal/models"
)

var errUserNotFound = errors.New("user not found")

// UpdateUserDTO is the admin patch surface for an account. Role and status
// transitions run through the last-active-admin guard.
type UpdateUserDTO struct {
	Name   *string `json:"name"   binding:"omitempty,max=100"`
	Role   *string `json:"role"   binding:"omitempty,oneof=admin author"`
	Status *string `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	Bio    *string `json:"bio"`
}

// ListQuery filters the admin user listing.
type ListQuery struct {
	Role   string `form:"role"   binding:"omitempty,oneof=admin author"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive suspended"`
	Search string `form:"search"`
}

type userResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	Bio           string     `json:"bio,omitempty"`
	Avatar        string     `json:"avatar,omitempty"`
	PostCount     int64      `json:"post_count"`
	LastLoginTime *time.Time `json:"last_login_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toResponse(u *models.UserModel, postCount int64) userResponse {
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Status:        string(u.Status),
		Bio:           u.Bio,
		Avatar:        u.Avatar,
		PostCount:     postCount,
		LastLoginTime: u.LastLoginTime,
		CreatedAt:     u.CreatedAt,
	}
}
