package models

import "time"

// EventLog is an append-only audit record. Entries are never updated or
// deleted.
type EventLog struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
