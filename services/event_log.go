package services

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bak-counter/models"
)

// EventLogService appends audit records. Logging is best-effort: a failed
// append never fails the workflow that triggered it.
type EventLogService struct {
	DB *gorm.DB
}

func NewEventLogService(db *gorm.DB) *EventLogService {
	return &EventLogService{DB: db}
}

// Log appends one entry. userID may be nil for system events.
func (s *EventLogService) Log(userID *string, description string) {
	entry := models.EventLog{UserID: userID, Description: description}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.WithError(err).WithField("description", description).Error("failed to record event log")
	}
}

// List returns entries newest-first with the total count for pagination.
func (s *EventLogService) List(page, size int) ([]models.EventLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	var total int64
	if err := s.DB.Model(&models.EventLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.EventLog
	err := s.DB.Preload("User").
		Order("created_at DESC").
		Limit(size).Offset((page - 1) * size).
		Find(&entries).Error
	return entries, total, err
}
