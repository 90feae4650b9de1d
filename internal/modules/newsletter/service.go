package newsletter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habariblog/core/internal/models"
	"github.com/habariblog/core/internal/pkg/mail"
	"github.com/habariblog/core/internal/pkg/pagination"
	"github.com/habariblog/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	mailer *mail.Sender
	logger *zap.Logger
}

func NewService(db *gorm.DB, mailer *mail.Sender, logger *zap.Logger) *Service {
	return &Service{db: db, mailer: mailer, logger: logger}
}

// Subscribe registers an email address. A previously unsubscribed address
// is reactivated in place; an already active one reports a conflict. The
// confirmation email is best-effort and never fails the subscription.
func (s *Service) Subscribe(dto *SubscribeDTO) (*models.SubscriberModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var sub models.SubscriberModel
	err := s.db.First(&sub, "email = ?", email).Error
	switch {
	case err == nil:
		if sub.IsActive {
			return nil, errAlreadySubscribed
		}
		updates := map[string]interface{}{
			"is_active":       true,
			"subscribed_at":   time.Now(),
			"unsubscribed_at": nil,
		}
		if dto.Source != "" {
			updates["source"] = dto.Source
		}
		if err := s.db.Model(&sub).Updates(updates).Error; err != nil {
			return nil, err
		}
		sub.IsActive = true
		sub.UnsubscribedAt = nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.SubscriberModel{
			Email:        email,
			IsActive:     true,
			Source:       dto.Source,
			CancelToken:  uuid.New().String(),
			SubscribedAt: time.Now(),
		}
		if err := s.db.Create(&sub).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.sendConfirmation(&sub)
	s.logger.Info("newsletter subscription", zap.String("email", email), zap.String("source", dto.Source))
	return &sub, nil
}

// Unsubscribe deactivates a subscription, addressed by email (form) or by
// the cancel token (one-click link). Unsubscribing twice is idempotent.
func (s *Service) Unsubscribe(email, token string) error {
	var sub models.SubscriberModel
	var err error
	switch {
	case token != "":
		err = s.db.First(&sub, "cancel_token = ?", token).Error
	case email != "":
		err = s.db.First(&sub, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	default:
		return errSubscriberUnknown
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errSubscriberUnknown
		}
		return err
	}

	if !sub.IsActive {
		return nil
	}
	now := time.Now()
	return s.db.Model(&sub).Updates(map[string]interface{}{
		"is_active":       false,
		"unsubscribed_at": &now,
	}).Error
}

// List is the admin view over subscribers, newest first.
func (s *Service) List(q pagination.Query, activeOnly bool) ([]models.SubscriberModel, response.Pagination, error) {
	tx := s.db.Model(&models.SubscriberModel{}).Order("subscribed_at DESC")
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}

	var subs []models.SubscriberModel
	pag, err := pagination.Paginate(tx, q, &subs)
	return subs, pag, err
}

func (s *Service) sendConfirmation(sub *models.SubscriberModel) {
	html := fmt.Sprintf(
		"<p>Karibu! You are subscribed to the Habari newsletter.</p>"+
			"<p>If this was not you, you can unsubscribe with this token: <code>%s</code></p>",
		sub.CancelToken)
	err := s.mailer.Send(mail.Message{
		To:      []string{sub.Email},
		Subject: "Welcome to the Habari newsletter",
		HTML:    html,
	})
	if err != nil {
		s.logger.Warn("confirmation email failed", zap.String("email", sub.Email), zap.Error(err))
	}
}
