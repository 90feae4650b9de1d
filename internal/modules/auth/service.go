package auth

import (
	"errors"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/habariblog/core/internal/models"
	"github.com/habariblog/core/internal/pkg/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Register creates a new author account in the inactive state. The account
// cannot log in until an administrator activates it.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Name:     strings.TrimSpace(dto.Name),
		Email:    strings.ToLower(strings.TrimSpace(dto.Email)),
		Password: string(hash),
		Role:     models.RoleAuthor,
		Status:   models.UserInactive,
		Bio:      dto.Bio,
	}
	if err := s.db.Create(&user).Error; err != nil {
		var myErr *mysqldriver.MySQLError
		if errors.As(err, &myErr) && myErr.Number == 1062 {
			return nil, errEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return &user, nil
}

// Login verifies credentials and issues a session token. Credential
// failures are indistinguishable between unknown email and wrong password;
// status failures are reported explicitly so a pending author knows why.
func (s *Service) Login(dto *LoginDTO, ip, ua string) (string, *models.UserModel, error) {
	var user models.UserModel
	err := s.db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(dto.Email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		return "", nil, errInvalidCredentials
	}

	switch user.Status {
	case models.UserActive:
	case models.UserSuspended:
		return "", nil, errAccountSuspended
	default:
		return "", nil, errAccountInactive
	}

	token, sess, err := session.Issue(s.db, user.ID, ip, ua, session.DefaultTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_time": &now,
		"last_login_ip":   ip,
	}).Error; err != nil {
		s.logger.Warn("failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	user.LastLoginTime = &now

	s.logger.Info("user logged in",
		zap.Uint("user_id", user.ID),
		zap.String("session_id", sess.ID),
		zap.String("ip", ip))
	return token, &user, nil
}

// UpdateProfile applies a self-service profile patch. A password change
// re-hashes with bcrypt; existing sessions stay valid.
func (s *Service) UpdateProfile(user *models.UserModel, dto *UpdateProfileDTO) (*models.UserModel, error) {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
	}
	if dto.Avatar != nil {
		updates["avatar"] = *dto.Avatar
	}
	if dto.SocialLinks != nil {
		updates["social_links"] = models.StringSlice(dto.SocialLinks)
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	var fresh models.UserModel
	if err := s.db.First(&fresh, user.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Logout revokes the session behind the presented token.
func (s *Service) Logout(userID uint, sessionID string) error {
	err := session.Revoke(s.db, userID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// already revoked or expired; logout is idempotent
		return nil
	}
	return err
}
