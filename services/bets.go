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

// BetService runs the three-party wager workflow: initiator vs opponent,
// settled once by a neutral judge.
type BetService struct {
	DB       *gorm.DB
	Log      *EventLogService
	Trophies *TrophyService
}

func NewBetService(db *gorm.DB, logSvc *EventLogService, trophies *TrophyService) *BetService {
	return &BetService{DB: db, Log: logSvc, Trophies: trophies}
}

// Create opens a pending bet. The judge must be a neutral third party.
func (s *BetService) Create(initiator *models.User, opponentID, judgeID, title, description string, stake int) (*models.Bet, error) {
	if opponentID == "" || judgeID == "" {
		return nil, apperrors.Validation("both an opponent and a judge must be named")
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.Validation("a bet title is required")
	}
	if stake <= 0 {
		return nil, apperrors.Validation("the stake must be positive")
	}
	if judgeID == initiator.ID || judgeID == opponentID {
		return nil, apperrors.Validation("the judge must be a neutral third party")
	}

	var opponent, judge models.User
	if err := s.DB.First(&opponent, "id = ?", opponentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("opponent not found")
		}
		return nil, err
	}
	if err := s.DB.First(&judge, "id = ?", judgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("judge not found")
		}
		return nil, err
	}

	bet := models.Bet{
		InitiatorID: initiator.ID,
		OpponentID:  opponentID,
		JudgeID:     judgeID,
		Title:       title,
		Description: description,
		Stake:       stake,
		Status:      models.BetPending,
	}
	if err := s.DB.Create(&bet).Error; err != nil {
		return nil, err
	}

	s.Log.Log(&initiator.ID, fmt.Sprintf("Heeft een nieuwe weddenschap aangemaakt: %q tegen %s met %s als scheidsrechter. Inzet: %d.", title, opponent.Name, judge.Name, stake))
	s.Log.Log(&opponent.ID, fmt.Sprintf("Is uitgedaagd door %s voor de weddenschap %q. %s is de scheidsrechter. Inzet: %d.", initiator.Name, title, judge.Name, stake))
	s.Log.Log(&judge.ID, fmt.Sprintf("Is aangewezen als scheidsrechter voor de weddenschap %q tussen %s en %s. Inzet: %d.", title, initiator.Name, opponent.Name, stake))
	return &bet, nil
}

// ApproveByOpponent records the opponent's consent, unlocking judging.
func (s *BetService) ApproveByOpponent(actor *models.User, betID string) error {
	return s.updateAsOpponent(actor, betID, func(bet *models.Bet) {
		bet.OpponentApproval = true
	})
}

// DeclineByOpponent cancels the bet before it starts.
func (s *BetService) DeclineByOpponent(actor *models.User, betID string) error {
	return s.updateAsOpponent(actor, betID, func(bet *models.Bet) {
		bet.Status = models.BetCancelled
	})
}

func (s *BetService) updateAsOpponent(actor *models.User, betID string, apply func(*models.Bet)) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var bet models.Bet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&bet, "id = ?", betID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("bet not found")
		}
		if err != nil {
			return err
		}
		if bet.OpponentID != actor.ID {
			return apperrors.Forbidden("only the opponent can respond to this bet")
		}
		if bet.Status != models.BetPending {
			return apperrors.Forbidden("this bet has already been settled")
		}
		apply(&bet)
		return tx.Save(&bet).Error
	})
}

// Judge settles the bet: the named winner gains the stake as rep, the loser
// gains it as bakken. One-time transition; re-judging a settled bet fails.
func (s *BetService) Judge(actor *models.User, betID, winnerID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var bet models.Bet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&bet, "id = ?", betID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("bet not found")
		}
		if err != nil {
			return err
		}

		if bet.JudgeID != actor.ID {
			return apperrors.Forbidden("only the judge can settle this bet")
		}
		if bet.Status != models.BetPending {
			return apperrors.Forbidden("this bet has already been settled")
		}
		if !bet.OpponentApproval {
			return apperrors.Forbidden("the opponent has not approved this bet yet")
		}
		if winnerID != bet.InitiatorID && winnerID != bet.OpponentID {
			return apperrors.Validation("the winner must be the initiator or the opponent")
		}

		loserID := bet.InitiatorID
		if winnerID == bet.InitiatorID {
			loserID = bet.OpponentID
		}

		var winner, loser models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&winner, "id = ?", winnerID).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&loser, "id = ?", loserID).Error; err != nil {
			return err
		}

		winner.Rep += bet.Stake
		loser.Bak += bet.Stake
		if err := tx.Save(&winner).Error; err != nil {
			return err
		}
		if err := tx.Save(&loser).Error; err != nil {
			return err
		}

		bet.WinnerID = &winnerID
		bet.Status = models.BetCompleted
		if err := tx.Save(&bet).Error; err != nil {
			return err
		}

		if err := s.Trophies.AwardMilestoneTrophies(tx, winner.ID); err != nil {
			return err
		}

		s.Log.Log(&winner.ID, fmt.Sprintf("Heeft de weddenschap %q gewonnen. %d REP punten toegekend. Gewonnen van %s.", bet.Title, bet.Stake, loser.Name))
		s.Log.Log(&loser.ID, fmt.Sprintf("Heeft de weddenschap %q verloren. %d bakken toegewezen. Verloren van %s.", bet.Title, bet.Stake, winner.Name))
		return nil
	})
}

// List returns all bets, newest first.
func (s *BetService) List() ([]models.Bet, error) {
	var bets []models.Bet
	err := s.DB.Preload("Initiator").
		Preload("Opponent").
		Preload("Judge").
		Preload("Winner").
		Order("created_at DESC").
		Find(&bets).Error
	return bets, err
}

// PendingCountForOpponent counts bets still waiting for the member's
// approval.
func (s *BetService) PendingCountForOpponent(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Bet{}).
		Where("opponent_id = ? AND status = ? AND opponent_approval = false", userID, models.BetPending).
		Count(&count).Error
	return count, err
}
