package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/models"
	"github.com/habariblog/core/internal/pkg/jwt"
	"github.com/habariblog/core/internal/pkg/response"
	sessionpkg "github.com/habariblog/core/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	ContextKeyUser = "current_user"
	ContextKeySID  = "session_id"
)

// Auth returns a middleware that enforces bearer-token authentication and
// loads the acting user. Tokens of non-active accounts are rejected even if
// the session is still live.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, sid, err := resolveUser(db, extractToken(c))
		if err != nil || user == nil {
			response.Unauthorized(c)
			return
		}
		if !user.IsActive() {
			response.ForbiddenMsg(c, "Your account is not active")
			return
		}
		c.Set(ContextKeyUser, user)
		c.Set(ContextKeySID, sid)
		c.Next()
	}
}

// OptionalAuth loads the user if a valid token is present, but never blocks
// the request. Public endpoints use it to unlock owner/admin views.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, sid, err := resolveUser(db, extractToken(c)); err == nil && user != nil && user.IsActive() {
			c.Set(ContextKeyUser, user)
			c.Set(ContextKeySID, sid)
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			response.ForbiddenMsg(c, "Administrator access required")
			return
		}
		c.Next()
	}
}

func resolveUser(db *gorm.DB, rawToken string) (*models.UserModel, string, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, "", errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, "", err
	}
	active, err := sessionpkg.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	if !active {
		return nil, "", errors.New("session expired or revoked")
	}

	var user models.UserModel
	if err := db.First(&user, claims.UserID).Error; err != nil {
		return nil, "", err
	}
	return &user, claims.SessionID, nil
}

// CurrentUser extracts the authenticated user from context, nil when the
// request is anonymous.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(ContextKeyUser)
	user, _ := v.(*models.UserModel)
	return user
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated reports whether the request carries a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.EqualFold(token, "bearer") {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
