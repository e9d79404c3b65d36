package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bak-counter/apperrors"
	"bak-counter/models"
)

// BakRequestService runs the simple one-step penalty request between two
// members. No evidence, no dual approval: only the target resolves it.
type BakRequestService struct {
	DB  *gorm.DB
	Log *EventLogService
}

func NewBakRequestService(db *gorm.DB, logSvc *EventLogService) *BakRequestService {
	return &BakRequestService{DB: db, Log: logSvc}
}

// Submit opens a pending request from requester to target.
func (s *BakRequestService) Submit(requesterID, targetID, reason string) (*models.BakRequest, error) {
	if requesterID == targetID {
		return nil, apperrors.Validation("you cannot send a BAK request to yourself")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validation("a reason is required")
	}

	var target models.User
	if err := s.DB.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("target user not found")
		}
		return nil, err
	}

	request := models.BakRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		Reason:      reason,
		Status:      models.RequestPending,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// PendingForTarget lists open requests addressed to the member.
func (s *BakRequestService) PendingForTarget(targetID string) ([]models.BakRequest, error) {
	var requests []models.BakRequest
	err := s.DB.Preload("Requester").
		Where("target_id = ? AND status = ?", targetID, models.RequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// PendingCountForTarget counts open requests addressed to the member.
func (s *BakRequestService) PendingCountForTarget(targetID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.BakRequest{}).
		Where("target_id = ? AND status = ?", targetID, models.RequestPending).
		Count(&count).Error
	return count, err
}

// Resolve lets the target approve or decline a pending request. Exactly one
// counter moves per resolution: approval credits the target's bak, decline
// credits the requester's.
func (s *BakRequestService) Resolve(actor *models.User, requestID string, approve bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.BakRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("request not found")
		}
		if err != nil {
			return err
		}

		if req.TargetID != actor.ID {
			return apperrors.Forbidden("only the target can resolve this request")
		}
		if req.Status != models.RequestPending {
			return apperrors.Forbidden("this request has already been resolved")
		}

		var requester, target models.User
		if err := tx.First(&requester, "id = ?", req.RequesterID).Error; err != nil {
			return err
		}
		if err := tx.First(&target, "id = ?", req.TargetID).Error; err != nil {
			return err
		}

		if approve {
			req.Status = models.RequestApproved
			target.Bak++
			if err := tx.Save(&target).Error; err != nil {
				return err
			}
			s.Log.Log(&requester.ID, fmt.Sprintf("Heeft een BAK verstuurd naar %s met reden: %s en is goedgekeurd.", target.Name, req.Reason))
			s.Log.Log(&target.ID, fmt.Sprintf("Heeft een BAK ontvangen van %s met reden: %s en is goedgekeurd.", requester.Name, req.Reason))
		} else {
			req.Status = models.RequestDeclined
			requester.Bak++
			if err := tx.Save(&requester).Error; err != nil {
				return err
			}
			s.Log.Log(&requester.ID, fmt.Sprintf("Heeft een BAK verstuurd naar %s met reden: %s en is afgewezen.", target.Name, req.Reason))
			s.Log.Log(&target.ID, fmt.Sprintf("Heeft een BAK ontvangen van %s met reden: %s en is afgewezen.", requester.Name, req.Reason))
		}

		return tx.Save(&req).Error
	})
}
