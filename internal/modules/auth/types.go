package auth

import (
	"errors"
	"time"

	"github.com/habariblog/core/internal/models"
)

var (
	errEmailTaken         = errors.New("email address is already registered")
	errInvalidCredentials = errors.New("invalid email or password")
	errAccountInactive    = errors.New("your account has not been activated yet")
	errAccountSuspended   = errors.New("your account has been suspended")
)

type RegisterDTO struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Bio      string `json:"bio"`
}

// UpdateProfileDTO patches the caller's own profile. Role, status and
// email are deliberately absent; those are admin operations.
type UpdateProfileDTO struct {
	Name        *string  `json:"name"     binding:"omitempty,max=100"`
	Bio         *string  `json:"bio"`
	Avatar      *string  `json:"avatar"`
	SocialLinks []string `json:"social_links"`
	Password    *string  `json:"password" binding:"omitempty,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	Bio           string     `json:"bio,omitempty"`
	Avatar        string     `json:"avatar,omitempty"`
	SocialLinks   []string   `json:"social_links,omitempty"`
	LastLoginTime *time.Time `json:"last_login_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toUserResponse(u *models.UserModel) userResponse {
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Status:        string(u.Status),
		Bio:           u.Bio,
		Avatar:        u.Avatar,
		SocialLinks:   u.SocialLinks,
		LastLoginTime: u.LastLoginTime,
		CreatedAt:     u.CreatedAt,
	}
}
