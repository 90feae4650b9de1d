package user

import (
	"errors"

	"github.com/habariblog/core/internal/models"
	"github.com/habariblog/core/internal/pkg/access"
	"github.com/habariblog/core/internal/pkg/pagination"
	"github.com/habariblog/core/internal/pkg/response"
	"github.com/habariblog/core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) List(q pagination.Query, lq ListQuery) ([]models.UserModel, response.Pagination, error) {
	tx := s.db.Model(&models.UserModel{}).Order("created_at DESC")
	if lq.Role != "" {
		tx = tx.Where("role = ?", lq.Role)
	}
	if lq.Status != "" {
		tx = tx.Where("status = ?", lq.Status)
	}
	if lq.Search != "" {
		like := "%" + lq.Search + "%"
		tx = tx.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var users []models.UserModel
	pag, err := pagination.Paginate(tx, q, &users)
	return users, pag, err
}

func (s *Service) Get(id uint) (*models.UserModel, int64, error) {
	var user models.UserModel
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, errUserNotFound
		}
		return nil, 0, err
	}
	count, err := s.postCount(user.ID)
	return &user, count, err
}

// Update applies an admin patch. Role or status changes are checked
// against the last-active-admin guard first; any transition away from
// active revokes every live session of the target.
func (s *Service) Update(id uint, dto *UpdateUserDTO) (*models.UserModel, int64, error) {
	user, _, err := s.Get(id)
	if err != nil {
		return nil, 0, err
	}

	newRole, newStatus := user.Role, user.Status
	if dto.Role != nil {
		newRole = models.Role(*dto.Role)
	}
	if dto.Status != nil {
		newStatus = models.UserStatus(*dto.Status)
	}
	if newRole != user.Role || newStatus != user.Status {
		activeAdmins, err := s.activeAdminCount()
		if err != nil {
			return nil, 0, err
		}
		if err := access.LastActiveAdminGuard(user, activeAdmins, newRole, newStatus); err != nil {
			return nil, 0, err
		}
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
	}
	if dto.Role != nil {
		updates["role"] = newRole
	}
	if dto.Status != nil {
		updates["status"] = newStatus
	}
	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, 0, err
		}
	}

	if newStatus != models.UserActive && user.Status == models.UserActive {
		if err := session.RevokeAll(s.db, user.ID); err != nil {
			s.logger.Warn("failed to revoke sessions", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	s.logger.Info("user updated",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(newRole)),
		zap.String("status", string(newStatus)))
	return s.Get(id)
}

// Activate flips a pending registration to active.
func (s *Service) Activate(id uint) (*models.UserModel, int64, error) {
	active := string(models.UserActive)
	return s.Update(id, &UpdateUserDTO{Status: &active})
}

// Delete removes an account. The last-active-admin guard is checked first,
// then self-deletion is refused. The target's posts keep their author id;
// sessions are revoked.
func (s *Service) Delete(id uint, actor *models.UserModel) error {
	user, _, err := s.Get(id)
	if err != nil {
		return err
	}

	activeAdmins, err := s.activeAdminCount()
	if err != nil {
		return err
	}
	if err := access.LastActiveAdminGuard(user, activeAdmins, models.RoleAuthor, models.UserInactive); err != nil {
		return err
	}
	if actor != nil && actor.ID == id {
		return access.ErrSelfDelete
	}

	if err := session.RevokeAll(s.db, user.ID); err != nil {
		s.logger.Warn("failed to revoke sessions", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	if err := s.db.Delete(user).Error; err != nil {
		return err
	}
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}
	s.logger.Info("user deleted", zap.Uint("user_id", user.ID), zap.Uint("actor_id", actorID))
	return nil
}

func (s *Service) postCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.PostModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *Service) activeAdminCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.UserModel{}).
		Where("role = ? AND status = ?", models.RoleAdmin, models.UserActive).
		Count(&count).Error
	return count, err
}
