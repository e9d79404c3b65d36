package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bak-counter/apperrors"
	"bak-counter/models"
)

const (
	requesterID = "req-1"
	targetID    = "tgt-1"
	memberC     = "usr-c"
	memberD     = "usr-d"
)

func pendingRequest() *models.ValidationRequest {
	return &models.ValidationRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      models.ValidationPending,
	}
}

func TestDecideApprovalFirstSlot(t *testing.T) {
	action, err := decideApproval(pendingRequest(), memberC, false, false)
	require.NoError(t, err)
	assert.Equal(t, actFirstApproval, action)
}

func TestDecideApprovalSecondSlot(t *testing.T) {
	first := memberC

	t.Run("admin actor may complete", func(t *testing.T) {
		req := pendingRequest()
		req.FirstApproverID = &first
		action, err := decideApproval(req, memberD, true, false)
		require.NoError(t, err)
		assert.Equal(t, actSecondApproval, action)
	})

	t.Run("admin first approver lets a regular member complete", func(t *testing.T) {
		req := pendingRequest()
		req.FirstApproverID = &first
		action, err := decideApproval(req, memberD, false, true)
		require.NoError(t, err)
		assert.Equal(t, actSecondApproval, action)
	})

	t.Run("two regular members are not enough", func(t *testing.T) {
		req := pendingRequest()
		req.FirstApproverID = &first
		_, err := decideApproval(req, memberD, false, false)
		require.Error(t, err)
		assert.Equal(t, 403, apperrors.StatusOf(err))
	})

	t.Run("first approver cannot fill both slots", func(t *testing.T) {
		req := pendingRequest()
		req.FirstApproverID = &first
		_, err := decideApproval(req, memberC, true, true)
		require.Error(t, err)
		assert.Equal(t, 403, apperrors.StatusOf(err))
	})
}

func TestDecideApprovalSelfDealing(t *testing.T) {
	for _, actor := range []string{requesterID, targetID} {
		_, err := decideApproval(pendingRequest(), actor, true, false)
		require.Error(t, err, "actor %s", actor)
		assert.Equal(t, 403, apperrors.StatusOf(err))
	}
}

func TestDecideApprovalTerminalStates(t *testing.T) {
	first, second, decliner := memberC, memberD, memberD

	approved := pendingRequest()
	approved.FirstApproverID = &first
	approved.SecondApproverID = &second
	approved.Status = models.ValidationApproved
	_, err := decideApproval(approved, "usr-e", true, true)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.StatusOf(err))

	declined := pendingRequest()
	declined.DeclinedByID = &decliner
	declined.Status = models.ValidationDeclined
	_, err = decideApproval(declined, "usr-e", true, false)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.StatusOf(err))

	// A decliner reference alone counts as resolved even if the status
	// write has not landed.
	halfDeclined := pendingRequest()
	halfDeclined.DeclinedByID = &decliner
	_, err = decideApproval(halfDeclined, "usr-e", true, false)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.StatusOf(err))
}

func TestDecideApprovalBothSlotsFilled(t *testing.T) {
	first, second := memberC, memberD
	req := pendingRequest()
	req.FirstApproverID = &first
	req.SecondApproverID = &second

	_, err := decideApproval(req, "usr-e", true, true)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.StatusOf(err))
}
