package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bak-counter/apperrors"
	"bak-counter/models"
	"bak-counter/storage"
)

// ValidationService runs the dual-approval "BAK getrokken" workflow.
//
// Approve and Decline lock the request row for the whole read-check-write,
// so two near-simultaneous calls serialize: the second one sees the first
// approver slot filled and lands in the second-approval branch, or fails.
type ValidationService struct {
	DB       *gorm.DB
	Evidence storage.EvidenceStore
	Log      *EventLogService
	Trophies *TrophyService

	// isAdmin is the configured allow-list check, consulted for both the
	// actor and the first approver.
	isAdmin func(email string) bool

	evidenceMaxBytes int64
	pageSize         int
}

func NewValidationService(db *gorm.DB, evidence storage.EvidenceStore, logSvc *EventLogService, trophies *TrophyService, isAdmin func(string) bool, evidenceMaxBytes int64, pageSize int) *ValidationService {
	return &ValidationService{
		DB:               db,
		Evidence:         evidence,
		Log:              logSvc,
		Trophies:         trophies,
		isAdmin:          isAdmin,
		evidenceMaxBytes: evidenceMaxBytes,
		pageSize:         pageSize,
	}
}

// Create stores the evidence file and opens a pending request.
func (s *ValidationService) Create(ctx context.Context, requesterID, targetID string, evidence *multipart.FileHeader) (*models.ValidationRequest, error) {
	if evidence == nil {
		return nil, apperrors.Validation("evidence file is required")
	}
	contentType := evidence.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return nil, apperrors.Validation("only images or videos are allowed as evidence")
	}
	if evidence.Size > s.evidenceMaxBytes {
		return nil, apperrors.Validation(fmt.Sprintf("evidence file exceeds the %d byte limit", s.evidenceMaxBytes))
	}

	var target models.User
	if err := s.DB.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("target user not found")
		}
		return nil, err
	}

	data, err := readUpload(evidence)
	if err != nil {
		return nil, err
	}

	key := storage.NewObjectKey(storage.EvidencePrefix, evidence.Filename)
	if err := s.Evidence.Put(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	request := models.ValidationRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		EvidenceKey: key,
		Status:      models.ValidationPending,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Approve advances the state machine by one approval step for the actor.
func (s *ValidationService) Approve(ctx context.Context, actor *models.User, requestID string) error {
	var evidenceToDelete string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.ValidationRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("request not found")
		}
		if err != nil {
			return err
		}

		firstApproverIsAdmin := false
		if req.FirstApproverID != nil {
			var first models.User
			if err := tx.First(&first, "id = ?", *req.FirstApproverID).Error; err != nil {
				return err
			}
			firstApproverIsAdmin = s.isAdmin(first.Email)
		}

		action, err := decideApproval(&req, actor.ID, s.isAdmin(actor.Email), firstApproverIsAdmin)
		if err != nil {
			return err
		}

		switch action {
		case actFirstApproval:
			req.FirstApproverID = &actor.ID
			if err := tx.Save(&req).Error; err != nil {
				return err
			}
			s.Log.Log(&actor.ID, fmt.Sprintf("Heeft het BAK-verzoek als eerste goedkeurder goedgekeurd. Verzoek ID: %s.", req.ID))

		case actSecondApproval:
			var target models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&target, "id = ?", req.TargetID).Error; err != nil {
				return err
			}
			target.XP++
			if target.Bak > 0 {
				target.Bak--
			}
			if err := tx.Save(&target).Error; err != nil {
				return err
			}

			evidenceToDelete = req.EvidenceKey
			req.SecondApproverID = &actor.ID
			req.Status = models.ValidationApproved
			req.EvidenceKey = ""
			if err := tx.Save(&req).Error; err != nil {
				return err
			}

			if err := s.Trophies.AwardMilestoneTrophies(tx, target.ID); err != nil {
				return err
			}

			s.Log.Log(&actor.ID, fmt.Sprintf("Heeft het BAK-verzoek als tweede goedkeurder goedgekeurd. Verzoek ID: %s.", req.ID))
			s.Log.Log(&req.RequesterID, fmt.Sprintf("Het BAK-verzoek is goedgekeurd. Verzoek ID: %s.", req.ID))
			s.Log.Log(&req.TargetID, fmt.Sprintf("Een BAK-verzoek gericht aan jou is goedgekeurd. Verzoek ID: %s.", req.ID))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.deleteEvidence(ctx, evidenceToDelete)
	return nil
}

// Decline resolves the request as rejected. Admin only. The requester is
// credited one bak: the claim was judged to be wrongly raised.
func (s *ValidationService) Decline(ctx context.Context, actor *models.User, requestID string) error {
	if !s.isAdmin(actor.Email) {
		return apperrors.Forbidden("only admins can decline requests")
	}

	var evidenceToDelete string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.ValidationRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("request not found")
		}
		if err != nil {
			return err
		}
		if req.Resolved() {
			return apperrors.Forbidden("this request has already been resolved")
		}

		var requester, target models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&requester, "id = ?", req.RequesterID).Error; err != nil {
			return err
		}
		if err := tx.First(&target, "id = ?", req.TargetID).Error; err != nil {
			return err
		}

		requester.Bak++
		if err := tx.Save(&requester).Error; err != nil {
			return err
		}

		evidenceToDelete = req.EvidenceKey
		req.Status = models.ValidationDeclined
		req.DeclinedByID = &actor.ID
		req.EvidenceKey = ""
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		s.Log.Log(&requester.ID, fmt.Sprintf("%s heeft het BAK-verzoek van %s afgewezen.", actor.Name, requester.Name))
		s.Log.Log(&target.ID, fmt.Sprintf("Vals BAK-verzoek van %s afgewezen door %s.", requester.Name, actor.Name))
		return nil
	})
	if err != nil {
		return err
	}

	s.deleteEvidence(ctx, evidenceToDelete)
	return nil
}

// deleteEvidence removes the blob after the transaction committed.
// Best-effort: a failed delete is logged, never retried, and does not undo
// the state transition.
func (s *ValidationService) deleteEvidence(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.Evidence.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Error("failed to delete evidence file")
	}
}

// RequestPage is one paginated slice of requests.
type RequestPage struct {
	Requests   []models.ValidationRequest `json:"requests"`
	Page       int                        `json:"page"`
	TotalPages int                        `json:"total_pages"`
	Total      int64                      `json:"total"`
}

// List returns pending and resolved requests, newest first, each paginated
// independently.
func (s *ValidationService) List(activePage, closedPage int) (open RequestPage, closed RequestPage, err error) {
	open, err = s.pageByStatus(activePage, []models.ValidationStatus{models.ValidationPending})
	if err != nil {
		return
	}
	closed, err = s.pageByStatus(closedPage, []models.ValidationStatus{models.ValidationApproved, models.ValidationDeclined})
	return
}

func (s *ValidationService) pageByStatus(page int, statuses []models.ValidationStatus) (RequestPage, error) {
	if page < 1 {
		page = 1
	}

	query := s.DB.Model(&models.ValidationRequest{}).Where("status IN ?", statuses)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return RequestPage{}, err
	}

	var requests []models.ValidationRequest
	err := s.DB.Where("status IN ?", statuses).
		Preload("Requester").
		Preload("Target").
		Preload("FirstApprover").
		Preload("SecondApprover").
		Preload("DeclinedBy").
		Order("created_at DESC").
		Limit(s.pageSize).Offset((page - 1) * s.pageSize).
		Find(&requests).Error
	if err != nil {
		return RequestPage{}, err
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	return RequestPage{Requests: requests, Page: page, TotalPages: totalPages, Total: total}, nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.Validation("failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.Validation("failed to read uploaded file")
	}
	return data, nil
}
