package newsletter

import (
	"errors"
	"time"

	"github.com/habariblog/core/internal/models"
)

var (
	errAlreadySubscribed = errors.New("this email address is already subscribed")
	errSubscriberUnknown = errors.New("no subscription found for that address")
)

type SubscribeDTO struct {
	Email  string `json:"email"  binding:"required,email"`
	Source string `json:"source" binding:"omitempty,max=50"`
}

// UnsubscribeDTO accepts either the subscriber's email or the opaque token
// from the unsubscribe link.
type UnsubscribeDTO struct {
	Email string `json:"email" binding:"omitempty,email"`
	Token string `json:"token"`
}

type subscriberResponse struct {
	ID             uint       `json:"id"`
	Email          string     `json:"email"`
	IsActive       bool       `json:"is_active"`
	Source         string     `json:"source,omitempty"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

func toResponse(s *models.SubscriberModel) subscriberResponse {
	return subscriberResponse{
		ID:             s.ID,
		Email:          s.Email,
		IsActive:       s.IsActive,
		Source:         s.Source,
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
	}
}
