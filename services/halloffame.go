package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"bak-counter/apperrors"
	"bak-counter/models"
)

// HallOfFameService curates the ordered list of memorable feats.
type HallOfFameService struct {
	DB *gorm.DB
}

func NewHallOfFameService(db *gorm.DB) *HallOfFameService {
	return &HallOfFameService{DB: db}
}

// List returns entries in display order.
func (s *HallOfFameService) List() ([]models.HallOfFameEntry, error) {
	var entries []models.HallOfFameEntry
	err := s.DB.Preload("User").Order("position ASC").Find(&entries).Error
	return entries, err
}

// Create appends a new entry at the end of the list.
func (s *HallOfFameService) Create(userID, feat, activity string) (*models.HallOfFameEntry, error) {
	if strings.TrimSpace(feat) == "" || strings.TrimSpace(activity) == "" {
		return nil, apperrors.Validation("feat and activity are required")
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	var entry models.HallOfFameEntry
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var last models.HallOfFameEntry
		position := 1
		err := tx.Order("position DESC").First(&last).Error
		if err == nil {
			position = last.Position + 1
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry = models.HallOfFameEntry{Position: position, UserID: userID, Feat: feat, Activity: activity}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Reorder rewrites the display positions in one transaction.
func (s *HallOfFameService) Reorder(orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return apperrors.Validation("no entries to reorder")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			result := tx.Model(&models.HallOfFameEntry{}).
				Where("id = ?", id).
				Update("position", i+1)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return apperrors.NotFound("hall of fame entry not found")
			}
		}
		return nil
	})
}
