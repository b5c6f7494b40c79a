package services

import (
	"errors"

	"github.com/wpsadi/AssessKit-sub000/internal/models"

	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

type ParticipantInput struct {
	Email       string
	DisplayName string
	Active      *bool
}

func (s *ParticipantService) CreateParticipant(eventID, organizerID uint, input ParticipantInput) (*models.Participant, error) {
	if err := s.ownedEvent(eventID, organizerID); err != nil {
		return nil, err
	}
	if input.Email == "" {
		return nil, errors.New("email is required")
	}

	participant := models.Participant{
		EventID:     eventID,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Active:      true,
	}
	if input.Active != nil {
		participant.Active = *input.Active
	}
	if err := s.db.Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a participant with this email already exists in the event")
		}
		return nil, err
	}
	return &participant, nil
}

func (s *ParticipantService) ListParticipants(eventID, organizerID uint) ([]models.Participant, error) {
	if err := s.ownedEvent(eventID, organizerID); err != nil {
		return nil, err
	}
	var participants []models.Participant
	if err := s.db.Where("event_id = ?", eventID).Order("created_at ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (s *ParticipantService) GetParticipant(participantID, organizerID uint) (*models.Participant, error) {
	return s.ownedParticipant(participantID, organizerID)
}

func (s *ParticipantService) UpdateParticipant(participantID, organizerID uint, input ParticipantInput) (*models.Participant, error) {
	participant, err := s.ownedParticipant(participantID, organizerID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		participant.Email = input.Email
	}
	if input.DisplayName != "" {
		participant.DisplayName = input.DisplayName
	}
	if input.Active != nil {
		participant.Active = *input.Active
	}
	if err := s.db.Save(participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a participant with this email already exists in the event")
		}
		return nil, err
	}
	return participant, nil
}

// DeleteParticipant cascades to the participant's session, responses and
// scores via the store's foreign keys.
func (s *ParticipantService) DeleteParticipant(participantID, organizerID uint) error {
	participant, err := s.ownedParticipant(participantID, organizerID)
	if err != nil {
		return err
	}
	return s.db.Delete(participant).Error
}

func (s *ParticipantService) ownedEvent(eventID, organizerID uint) error {
	var event models.Event
	if err := s.db.Where("id = ? AND organizer_id = ?", eventID, organizerID).First(&event).Error; err != nil {
		return ErrEventNotFound
	}
	return nil
}

func (s *ParticipantService) ownedParticipant(participantID, organizerID uint) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.First(&participant, participantID).Error; err != nil {
		return nil, ErrParticipantNotFound
	}
	if err := s.ownedEvent(participant.EventID, organizerID); err != nil {
		return nil, ErrParticipantNotFound
	}
	return &participant, nil
}
