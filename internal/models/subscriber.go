package models

import "time"

// SubscriberModel manages newsletter subscriptions.
type SubscriberModel struct {
	Base
	Email          string     `json:"email"           gorm:"uniqueIndex;not null"`
	IsActive       bool       `json:"is_active"       gorm:"default:true;index"`
	Source         string     `json:"source"`
	CancelToken    string     `json:"-"               gorm:"uniqueIndex"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
}

func (SubscriberModel) TableName() string { return "subscribers" }
