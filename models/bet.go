package models

import "time"

// BetStatus is the lifecycle state of a Bet.
type BetStatus string

const (
	BetPending   BetStatus = "pending"
	BetCompleted BetStatus = "completed"
	BetCancelled BetStatus = "cancelled"
)

// Bet is a three-party wager: initiator vs opponent, settled by a neutral
// judge. The judge may only rule after the opponent approved the bet, and
// settling is a one-time transition: the winner gains Stake rep, the loser
// gains Stake bakken.
type Bet struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	InitiatorID string `gorm:"type:uuid;not null;index" json:"initiator_id"`
	Initiator   *User  `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	OpponentID  string `gorm:"type:uuid;not null;index" json:"opponent_id"`
	Opponent    *User  `gorm:"foreignKey:OpponentID" json:"opponent,omitempty"`
	JudgeID     string `gorm:"type:uuid;not null;index" json:"judge_id"`
	Judge       *User  `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Stake       int    `gorm:"not null" json:"stake"`

	OpponentApproval bool `gorm:"not null;default:false" json:"opponent_approval"`

	WinnerID *string   `gorm:"type:uuid" json:"winner_id,omitempty"`
	Winner   *User     `gorm:"foreignKey:WinnerID" json:"winner,omitempty"`
	Status   BetStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
