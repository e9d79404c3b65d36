package services

import (
	"bak-counter/apperrors"
	"bak-counter/models"
)

// approvalAction is the transition decideApproval picked.
type approvalAction int

const (
	// actFirstApproval records the actor in the first slot; the request
	// stays pending and no balances move.
	actFirstApproval approvalAction = iota
	// actSecondApproval resolves the request: status approved, balance
	// effects applied, evidence cleaned up.
	actSecondApproval
)

// decideApproval applies the dual-approval rules to a single approve call.
// It is pure: the caller loads the row (locked) and the admin flags, and
// applies whatever action comes back inside the same transaction.
func decideApproval(req *models.ValidationRequest, actorID string, actorIsAdmin, firstApproverIsAdmin bool) (approvalAction, error) {
	if req.Resolved() {
		return 0, apperrors.Forbidden("this request has already been resolved")
	}
	if actorID == req.RequesterID || actorID == req.TargetID {
		return 0, apperrors.Forbidden("requester or target cannot approve the request")
	}

	if req.FirstApproverID == nil {
		return actFirstApproval, nil
	}

	if req.SecondApproverID == nil && *req.FirstApproverID != actorID {
		if !actorIsAdmin && !firstApproverIsAdmin {
			return 0, apperrors.Forbidden("an admin must approve this request")
		}
		return actSecondApproval, nil
	}

	return 0, apperrors.Forbidden("request already approved or cannot be approved by this user")
}
