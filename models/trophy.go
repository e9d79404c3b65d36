package models

import "time"

// Trophy is an awardable achievement. The catalog is seeded with the
// milestone-tier trophies plus the back-to-back series; admins can add
// custom entries on top.
type Trophy struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserTrophy records that a member holds a trophy. The composite unique
// index is what makes trophy awarding idempotent.
type UserTrophy struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_trophy" json:"user_id"`
	TrophyID string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_trophy" json:"trophy_id"`
	Trophy   *Trophy   `gorm:"foreignKey:TrophyID" json:"trophy,omitempty"`
	EarnedAt time.Time `gorm:"not null;autoCreateTime" json:"earned_at"`
}
