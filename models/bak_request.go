package models

import "time"

// RequestStatus is shared by the single-step BAK request lifecycle.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDeclined RequestStatus = "declined"
)

// BakRequest is the simple one-step penalty request: the requester claims the
// target owes a BAK for the given reason, and only the target resolves it.
type BakRequest struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RequesterID string `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester   *User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	TargetID    string `gorm:"type:uuid;not null;index" json:"target_id"`
	Target      *User  `gorm:"foreignKey:TargetID" json:"target,omitempty"`

	Reason string        `gorm:"not null" json:"reason"`
	Status RequestStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
