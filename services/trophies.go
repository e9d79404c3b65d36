package services

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bak-counter/apperrors"
	"bak-counter/models"
)

// TrophyService manages the trophy catalog and awards milestone trophies
// when point counters move.
type TrophyService struct {
	DB  *gorm.DB
	Log *EventLogService
}

func NewTrophyService(db *gorm.DB, logSvc *EventLogService) *TrophyService {
	return &TrophyService{DB: db, Log: logSvc}
}

// AwardMilestoneTrophies grants every XP and REP tier trophy the user
// qualifies for but does not hold yet. Called explicitly after every code
// path that mutates xp or rep, inside that path's transaction.
//
// The check is keyed on (user, trophy), so jumping several tiers in one
// mutation grants each skipped tier exactly once and re-running is a no-op.
func (s *TrophyService) AwardMilestoneTrophies(tx *gorm.DB, userID string) error {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	earned := milestoneNamesUpTo(tierIndex(user.XP, xpLevels), levelNames)
	earned = append(earned, milestoneNamesUpTo(tierIndex(user.Rep, repTiers), reputationNames)...)

	for _, name := range earned {
		if err := s.awardByName(tx, userID, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *TrophyService) awardByName(tx *gorm.DB, userID, name string) error {
	var trophy models.Trophy
	err := tx.First(&trophy, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A hole in the catalog is an ops problem, not a workflow failure.
		log.WithField("trophy", name).Warn("milestone trophy not found in catalog, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&models.UserTrophy{}).
		Where("user_id = ? AND trophy_id = ?", userID, trophy.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	award := models.UserTrophy{UserID: userID, TrophyID: trophy.ID}
	if err := tx.Create(&award).Error; err != nil {
		return err
	}
	log.WithFields(log.Fields{"trophy": name, "user_id": userID}).Info("milestone trophy awarded")
	return nil
}

// AssignTrophy hands out a non-milestone trophy manually (admin action).
func (s *TrophyService) AssignTrophy(admin *models.User, userID, trophyID, reason string) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return err
	}

	var trophy models.Trophy
	if err := s.DB.First(&trophy, "id = ?", trophyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("trophy not found")
		}
		return err
	}

	for _, reserved := range MilestoneTrophyNames() {
		if trophy.Name == reserved {
			return apperrors.Forbidden("milestone trophies are awarded automatically")
		}
	}

	var count int64
	if err := s.DB.Model(&models.UserTrophy{}).
		Where("user_id = ? AND trophy_id = ?", userID, trophyID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Validation("user already holds this trophy")
	}

	award := models.UserTrophy{UserID: userID, TrophyID: trophyID}
	if err := s.DB.Create(&award).Error; err != nil {
		return err
	}

	s.Log.Log(&admin.ID, fmt.Sprintf("Heeft award %s toegekend aan %s. Reden: %s", trophy.Name, user.Name, reason))
	s.Log.Log(&user.ID, fmt.Sprintf("Award %s ontvangen van admin %s. Reden: %s", trophy.Name, admin.Name, reason))
	return nil
}

// CreateTrophy adds a custom catalog entry (admin action).
func (s *TrophyService) CreateTrophy(name, description, imageKey string) (*models.Trophy, error) {
	if name == "" || description == "" {
		return nil, apperrors.Validation("trophy name and description are required")
	}

	var count int64
	if err := s.DB.Model(&models.Trophy{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Validation("a trophy with this name already exists")
	}

	trophy := models.Trophy{Name: name, Description: description, Image: imageKey}
	if err := s.DB.Create(&trophy).Error; err != nil {
		return nil, err
	}
	return &trophy, nil
}

// ListForUser returns the trophies a member holds, newest first.
func (s *TrophyService) ListForUser(userID string) ([]models.UserTrophy, error) {
	var awards []models.UserTrophy
	err := s.DB.Preload("Trophy").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&awards).Error
	return awards, err
}

// AssignableTrophies returns catalog entries an admin may still hand to the
// user: not milestone-managed and not already held.
func (s *TrophyService) AssignableTrophies(userID string) ([]models.Trophy, error) {
	var trophies []models.Trophy
	err := s.DB.
		Where("name NOT IN ?", MilestoneTrophyNames()).
		Where("id NOT IN (?)", s.DB.Model(&models.UserTrophy{}).Select("trophy_id").Where("user_id = ?", userID)).
		Order("name ASC").
		Find(&trophies).Error
	return trophies, err
}
