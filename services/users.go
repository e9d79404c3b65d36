package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bak-counter/apperrors"
	"bak-counter/models"
	"bak-counter/storage"
)

// UserService manages members: identity sync, profiles, leaderboards and the
// admin-side counter adjustments.
type UserService struct {
	DB       *gorm.DB
	Evidence storage.EvidenceStore
	Log      *EventLogService
	Trophies *TrophyService

	profileImageMaxBytes int64
}

func NewUserService(db *gorm.DB, evidence storage.EvidenceStore, logSvc *EventLogService, trophies *TrophyService, profileImageMaxBytes int64) *UserService {
	return &UserService{
		DB:                   db,
		Evidence:             evidence,
		Log:                  logSvc,
		Trophies:             trophies,
		profileImageMaxBytes: profileImageMaxBytes,
	}
}

// FindOrCreateByGoogleID upserts the member on login. Email and name follow
// whatever the identity provider currently reports.
func (s *UserService) FindOrCreateByGoogleID(googleID, email, name string) (*models.User, error) {
	if googleID == "" || email == "" {
		return nil, apperrors.Validation("identity requires a provider id and email")
	}

	var user models.User
	err := s.DB.Where("google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{GoogleID: googleID, Email: email, Name: name}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if user.Email != email || user.Name != name {
		user.Email = email
		user.Name = name
		if err := s.DB.Save(&user).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// Get loads one member.
func (s *UserService) Get(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// List returns every member, sorted by name.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("name ASC").Find(&users).Error
	return users, err
}

// Profile is the full member view: tiers, trophies and recent history.
type Profile struct {
	User       models.User         `json:"user"`
	Level      TierDetails         `json:"level"`
	Reputation TierDetails         `json:"reputation"`
	Trophies   []models.UserTrophy `json:"trophies"`
	EventLogs  []models.EventLog   `json:"event_logs"`
}

// GetProfile assembles the profile page data for one member.
func (s *UserService) GetProfile(userID string) (*Profile, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	trophies, err := s.Trophies.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	var logs []models.EventLog
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return &Profile{
		User:       *user,
		Level:      LevelDetails(user.XP),
		Reputation: ReputationDetails(user.Rep),
		Trophies:   trophies,
		EventLogs:  logs,
	}, nil
}

// RankedUser is a leaderboard row.
type RankedUser struct {
	models.User
	Tier TierDetails `json:"tier"`
}

// Leaderboards returns the top five members by XP and by REP.
func (s *UserService) Leaderboards() (topXP []RankedUser, topRep []RankedUser, err error) {
	var byXP, byRep []models.User
	if err = s.DB.Order("xp DESC").Limit(5).Find(&byXP).Error; err != nil {
		return
	}
	if err = s.DB.Order("rep DESC").Limit(5).Find(&byRep).Error; err != nil {
		return
	}

	for _, u := range byXP {
		topXP = append(topXP, RankedUser{User: u, Tier: LevelDetails(u.XP)})
	}
	for _, u := range byRep {
		topRep = append(topRep, RankedUser{User: u, Tier: ReputationDetails(u.Rep)})
	}
	return
}

// UpdateDescription replaces the member's free-text bio.
func (s *UserService) UpdateDescription(userID, description string) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_description", description).Error
}

// UpdatePicture stores a new profile image and removes the previous one.
func (s *UserService) UpdatePicture(ctx context.Context, user *models.User, file *multipart.FileHeader) error {
	if file == nil {
		return apperrors.Validation("an image file is required")
	}
	contentType := file.Header.Get("Content-Type")
	if !isProfileImageType(contentType) {
		return apperrors.Validation("only JPEG, PNG or GIF images are allowed")
	}
	if file.Size > s.profileImageMaxBytes {
		return apperrors.Validation(fmt.Sprintf("image exceeds the %d byte limit", s.profileImageMaxBytes))
	}

	data, err := readUpload(file)
	if err != nil {
		return err
	}

	key := storage.NewObjectKey(storage.ProfilePrefix, file.Filename)
	if err := s.Evidence.Put(ctx, key, data, contentType); err != nil {
		return err
	}

	oldKey := ""
	if user.ProfilePicture != nil {
		oldKey = *user.ProfilePicture
	}

	if err := s.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("profile_picture", key).Error; err != nil {
		return err
	}

	s.deleteObject(ctx, oldKey)
	return nil
}

// DeletePicture removes the member's profile image.
func (s *UserService) DeletePicture(ctx context.Context, user *models.User) error {
	if user.ProfilePicture == nil {
		return nil
	}
	oldKey := *user.ProfilePicture

	if err := s.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("profile_picture", nil).Error; err != nil {
		return err
	}

	s.deleteObject(ctx, oldKey)
	return nil
}

func (s *UserService) deleteObject(ctx context.Context, key string) {
	if key == "" || strings.HasPrefix(key, "/images/") {
		// seeded catalog images are not bucket objects
		return
	}
	if err := s.Evidence.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Error("failed to delete stored image")
	}
}

// SetBak replaces a member's pending-penalty counter (admin action).
// Admins cannot touch their own counter.
func (s *UserService) SetBak(admin *models.User, userID string, newBak int, reason string) error {
	if admin.ID == userID {
		return apperrors.Forbidden("you cannot change your own BAK count")
	}
	if newBak < 0 {
		return apperrors.Validation("the BAK count cannot be negative")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.Get(userID)
		if err != nil {
			return err
		}

		delta := newBak - user.Bak
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("bak", newBak).Error; err != nil {
			return err
		}

		s.Log.Log(&admin.ID, fmt.Sprintf("Heeft de BAK-telling van %s met %+d aangepast. Reden: %s", user.Name, delta, reason))
		s.Log.Log(&user.ID, fmt.Sprintf("De BAK-telling is met %+d aangepast door admin %s. Reden: %s", delta, admin.Name, reason))
		return nil
	})
}

// SetXP replaces a member's experience (admin action) and awards any
// milestone trophies the jump unlocked.
func (s *UserService) SetXP(admin *models.User, userID string, newXP int, reason string) error {
	return s.setPoints(admin, userID, "xp", newXP, reason)
}

// SetRep replaces a member's reputation (admin action) and awards any
// milestone trophies the jump unlocked.
func (s *UserService) SetRep(admin *models.User, userID string, newRep int, reason string) error {
	return s.setPoints(admin, userID, "rep", newRep, reason)
}

func (s *UserService) setPoints(admin *models.User, userID, column string, newValue int, reason string) error {
	if newValue < 0 {
		return apperrors.Validation("point counters cannot be negative")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.Get(userID)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update(column, newValue).Error; err != nil {
			return err
		}

		if err := s.Trophies.AwardMilestoneTrophies(tx, userID); err != nil {
			return err
		}

		label := strings.ToUpper(column)
		s.Log.Log(&admin.ID, fmt.Sprintf("Heeft de %s van %s aangepast naar %d. Reden: %s", label, user.Name, newValue, reason))
		s.Log.Log(&user.ID, fmt.Sprintf("De %s is aangepast naar %d door admin %s. Reden: %s", label, newValue, admin.Name, reason))
		return nil
	})
}

func isProfileImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif":
		return true
	}
	return false
}
