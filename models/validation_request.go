package models

import "time"

// ValidationStatus is the lifecycle state of a ValidationRequest.
type ValidationStatus string

const (
	ValidationPending  ValidationStatus = "pending"
	ValidationApproved ValidationStatus = "approved"
	ValidationDeclined ValidationStatus = "declined"
)

// ValidationRequest is the dual-approval claim "requester asserts the target
// has taken a BAK", backed by an uploaded evidence file.
//
// Invariants enforced by the validation service:
//   - requester and target can never appear in an approver slot
//   - the two approver slots never hold the same member
//   - at least one approver is an admin before the request turns approved
//   - EvidenceKey is empty once Status leaves pending
//
// Rows are never deleted; resolved requests stay behind as an audit trail
// while their evidence blob is removed from object storage.
type ValidationRequest struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RequesterID string `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester   *User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	TargetID    string `gorm:"type:uuid;not null;index" json:"target_id"`
	Target      *User  `gorm:"foreignKey:TargetID" json:"target,omitempty"`

	// EvidenceKey is the object-storage key of the uploaded proof. Cleared
	// once the request is resolved and the blob deleted.
	EvidenceKey string `json:"evidence_key"`

	Status ValidationStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`

	FirstApproverID  *string `gorm:"type:uuid" json:"first_approver_id,omitempty"`
	FirstApprover    *User   `gorm:"foreignKey:FirstApproverID" json:"first_approver,omitempty"`
	SecondApproverID *string `gorm:"type:uuid" json:"second_approver_id,omitempty"`
	SecondApprover   *User   `gorm:"foreignKey:SecondApproverID" json:"second_approver,omitempty"`
	DeclinedByID     *string `gorm:"type:uuid" json:"declined_by_id,omitempty"`
	DeclinedBy       *User   `gorm:"foreignKey:DeclinedByID" json:"declined_by,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Resolved reports whether the request reached a terminal state.
func (r *ValidationRequest) Resolved() bool {
	return r.Status != ValidationPending || r.DeclinedByID != nil
}
