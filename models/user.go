package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a community member. Identity comes from the external provider
// (Google); the row is created on first login or by an admin.
//
// Admin status is never persisted: it is recomputed from the configured
// email allow-list on every request and only stamped onto the struct for
// serialization.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	GoogleID string `gorm:"uniqueIndex;not null" json:"-"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `gorm:"not null" json:"name"`

	// Bak is the pending-penalty counter: how many "bakken" the member
	// still owes. Never below zero.
	Bak int `gorm:"not null;default:0" json:"bak"`
	XP  int `gorm:"not null;default:0" json:"xp"`
	Rep int `gorm:"not null;default:0" json:"rep"`

	ProfilePicture     *string `json:"profile_picture,omitempty"`
	ProfileDescription *string `gorm:"type:text" json:"profile_description,omitempty"`

	IsAdmin bool `gorm:"-" json:"is_admin"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
