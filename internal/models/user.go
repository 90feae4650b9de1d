package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines what a user may manage.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
)

// UserStatus is the account lifecycle state. New registrants start inactive
// and must be activated by an admin before they can log in.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// UserModel represents an author or administrator.
type UserModel struct {
	Base
	Name          string      `json:"name"            gorm:"not null"`
	Email         string      `json:"email"           gorm:"uniqueIndex;not null"`
	Password      string      `json:"-"               gorm:"not null"`
	Role          Role        `json:"role"            gorm:"type:varchar(16);default:author;index"`
	Status        UserStatus  `json:"status"          gorm:"type:varchar(16);default:inactive;index"`
	Bio           string      `json:"bio"             gorm:"type:text"`
	Avatar        string      `json:"avatar"`
	SocialLinks   StringSlice `json:"social_links"    gorm:"type:json;serializer:json"`
	LastLoginTime *time.Time  `json:"last_login_time"`
	LastLoginIP   string      `json:"-"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }

// IsAdmin reports whether the user holds the admin role.
func (u *UserModel) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// IsActive reports whether the account may authenticate.
func (u *UserModel) IsActive() bool { return u != nil && u.Status == UserActive }

// UserSession is a revocable login session backing a bearer token.
type UserSession struct {
	ID        string     `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    uint       `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:varchar(512)"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (UserSession) TableName() string { return "user_sessions" }

func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
