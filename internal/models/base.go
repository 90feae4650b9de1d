package models

import (
	"time"

	"gorm.io/gorm"
)

// Base is the base model for all entities. IDs are numeric auto-increment;
// public content is addressed by slug, numeric ids are the editor form.
type Base struct {
	ID        uint           `json:"id"         gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// StringSlice is a []string that serializes as JSON in MySQL.
type StringSlice []string
