package models

// HallOfFameEntry is a memorable feat pinned by an admin, displayed in a
// manually curated order.
type HallOfFameEntry struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Position int    `gorm:"not null;default:1" json:"position"`
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Feat     string `gorm:"not null" json:"feat"`
	Activity string `gorm:"not null" json:"activity"`

	Timestamps
}
