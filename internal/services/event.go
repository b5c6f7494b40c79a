package services

import (
	"errors"
	"math/rand"

	"github.com/wpsadi/AssessKit-sub000/internal/models"

	"gorm.io/gorm"
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type EventInput struct {
	Name            string
	DurationMinutes int
}

func (s *EventService) CreateEvent(organizerID uint, input EventInput) (*models.Event, error) {
	if input.DurationMinutes < 0 {
		return nil, errors.New("event duration cannot be negative")
	}

	event := models.Event{
		OrganizerID:     organizerID,
		Name:            input.Name,
		Code:            s.generateUniqueCode(),
		DurationMinutes: input.DurationMinutes,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) ListEvents(organizerID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Where("organizer_id = ?", organizerID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) GetEvent(eventID, organizerID uint) (*models.Event, error) {
	var event models.Event
	err := s.db.Where("id = ? AND organizer_id = ?", eventID, organizerID).
		Preload("Rounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Rounds.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Rounds.Questions.AcceptedAnswers").
		First(&event).Error
	if err != nil {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

func (s *EventService) UpdateEvent(eventID, organizerID uint, input EventInput) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("id = ? AND organizer_id = ?", eventID, organizerID).First(&event).Error; err != nil {
		return nil, ErrEventNotFound
	}
	if input.DurationMinutes < 0 {
		return nil, errors.New("event duration cannot be negative")
	}

	event.Name = input.Name
	event.DurationMinutes = input.DurationMinutes
	if err := s.db.Save(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) DeleteEvent(eventID, organizerID uint) error {
	result := s.db.Where("id = ? AND organizer_id = ?", eventID, organizerID).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (s *EventService) generateUniqueCode() string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		code := make([]byte, 6)
		for i := range code {
			code[i] = charset[rand.Intn(len(charset))]
		}
		var count int64
		s.db.Model(&models.Event{}).Where("code = ?", string(code)).Count(&count)
		if count == 0 {
			return string(code)
		}
	}
}
