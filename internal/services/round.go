package services

import (
	"errors"

	"github.com/wpsadi/AssessKit-sub000/internal/models"

	"gorm.io/gorm"
)

type RoundService struct {
	db *gorm.DB
}

func NewRoundService(db *gorm.DB) *RoundService {
	return &RoundService{db: db}
}

type RoundInput struct {
	Title             string
	OrderIndex        int
	TimeLimitMinutes  *int
	UsesEventDuration bool
}

func (s *RoundService) CreateRound(eventID, organizerID uint, input RoundInput) (*models.Round, error) {
	var event models.Event
	if err := s.db.Where("id = ? AND organizer_id = ?", eventID, organizerID).First(&event).Error; err != nil {
		return nil, ErrEventNotFound
	}

	if err := s.validateDurations(&event, input, 0); err != nil {
		return nil, err
	}

	round := models.Round{
		EventID:           eventID,
		Title:             input.Title,
		OrderIndex:        input.OrderIndex,
		TimeLimitMinutes:  input.TimeLimitMinutes,
		UsesEventDuration: input.UsesEventDuration,
	}
	if err := s.db.Create(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a round with this order already exists in the event")
		}
		return nil, err
	}
	return &round, nil
}

func (s *RoundService) UpdateRound(roundID, organizerID uint, input RoundInput) (*models.Round, error) {
	round, event, err := s.ownedRound(roundID, organizerID)
	if err != nil {
		return nil, err
	}

	if err := s.validateDurations(event, input, round.ID); err != nil {
		return nil, err
	}

	round.Title = input.Title
	round.OrderIndex = input.OrderIndex
	round.TimeLimitMinutes = input.TimeLimitMinutes
	round.UsesEventDuration = input.UsesEventDuration
	if err := s.db.Save(round).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a round with this order already exists in the event")
		}
		return nil, err
	}
	return round, nil
}

func (s *RoundService) DeleteRound(roundID, organizerID uint) error {
	round, _, err := s.ownedRound(roundID, organizerID)
	if err != nil {
		return err
	}
	return s.db.Delete(round).Error
}

func (s *RoundService) ownedRound(roundID, organizerID uint) (*models.Round, *models.Event, error) {
	var round models.Round
	if err := s.db.First(&round, roundID).Error; err != nil {
		return nil, nil, ErrRoundNotFound
	}
	var event models.Event
	if err := s.db.Where("id = ? AND organizer_id = ?", round.EventID, organizerID).First(&event).Error; err != nil {
		return nil, nil, ErrRoundNotFound
	}
	return &round, &event, nil
}

// validateDurations enforces the authoring-time invariant: rounds with fixed
// limits must not, in aggregate, exceed the event duration. Rounds that use
// the event duration are excluded from the sum.
func (s *RoundService) validateDurations(event *models.Event, input RoundInput, excludeRoundID uint) error {
	if input.UsesEventDuration && input.TimeLimitMinutes != nil {
		return errors.New("round cannot both use the event duration and declare its own limit")
	}
	if input.TimeLimitMinutes != nil && *input.TimeLimitMinutes <= 0 {
		return errors.New("round time limit must be positive")
	}
	if input.TimeLimitMinutes == nil || event.DurationMinutes == 0 {
		return nil
	}

	var existing []models.Round
	if err := s.db.Where("event_id = ? AND id <> ?", event.ID, excludeRoundID).Find(&existing).Error; err != nil {
		return err
	}
	sum := *input.TimeLimitMinutes
	for _, r := range existing {
		if !r.UsesEventDuration && r.TimeLimitMinutes != nil {
			sum += *r.TimeLimitMinutes
		}
	}
	if sum > event.DurationMinutes {
		return errors.New("combined round durations exceed the event duration")
	}
	return nil
}
