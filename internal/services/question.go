package services

import (
	"errors"

	"github.com/wpsadi/AssessKit-sub000/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionInput struct {
	Code             string
	Prompt           string
	OrderIndex       int
	PositivePoints   int
	NegativePoints   int
	TimeLimitSeconds *int
	AcceptedAnswers  []string
}

func (s *QuestionService) CreateQuestion(roundID, organizerID uint, input QuestionInput) (*models.Question, error) {
	if _, err := s.ownedRound(roundID, organizerID); err != nil {
		return nil, err
	}
	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	question := models.Question{
		RoundID:          roundID,
		Code:             input.Code,
		Prompt:           input.Prompt,
		OrderIndex:       input.OrderIndex,
		PositivePoints:   input.PositivePoints,
		NegativePoints:   input.NegativePoints,
		TimeLimitSeconds: input.TimeLimitSeconds,
	}
	for _, value := range input.AcceptedAnswers {
		question.AcceptedAnswers = append(question.AcceptedAnswers, models.AcceptedAnswer{Value: value})
	}

	if err := s.db.Create(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("a question with this code or order already exists in the round")
		}
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) UpdateQuestion(questionID, organizerID uint, input QuestionInput) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, ErrQuestionNotFound
	}
	if _, err := s.ownedRound(question.RoundID, organizerID); err != nil {
		return nil, ErrQuestionNotFound
	}
	if err := validateQuestionInput(input); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		question.Code = input.Code
		question.Prompt = input.Prompt
		question.OrderIndex = input.OrderIndex
		question.PositivePoints = input.PositivePoints
		question.NegativePoints = input.NegativePoints
		question.TimeLimitSeconds = input.TimeLimitSeconds
		if err := tx.Save(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("a question with this code or order already exists in the round")
			}
			return err
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.AcceptedAnswer{}).Error; err != nil {
			return err
		}
		question.AcceptedAnswers = nil
		for _, value := range input.AcceptedAnswers {
			question.AcceptedAnswers = append(question.AcceptedAnswers, models.AcceptedAnswer{QuestionID: question.ID, Value: value})
		}
		return tx.Create(&question.AcceptedAnswers).Error
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) DeleteQuestion(questionID, organizerID uint) error {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return ErrQuestionNotFound
	}
	if _, err := s.ownedRound(question.RoundID, organizerID); err != nil {
		return ErrQuestionNotFound
	}
	return s.db.Delete(&question).Error
}

func (s *QuestionService) ownedRound(roundID, organizerID uint) (*models.Round, error) {
	var round models.Round
	if err := s.db.First(&round, roundID).Error; err != nil {
		return nil, ErrRoundNotFound
	}
	var event models.Event
	if err := s.db.Where("id = ? AND organizer_id = ?", round.EventID, organizerID).First(&event).Error; err != nil {
		return nil, ErrRoundNotFound
	}
	return &round, nil
}

func validateQuestionInput(input QuestionInput) error {
	if input.Code == "" {
		return errors.New("question code is required")
	}
	if len(input.AcceptedAnswers) == 0 {
		return errors.New("at least one accepted answer is required")
	}
	if input.PositivePoints < 0 {
		return errors.New("positive points cannot be negative")
	}
	if input.NegativePoints > 0 {
		return errors.New("negative points cannot be positive")
	}
	if input.TimeLimitSeconds != nil && *input.TimeLimitSeconds <= 0 {
		return errors.New("question time limit must be positive")
	}
	return nil
}
