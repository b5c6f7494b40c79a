package services

import (
	"errors"
	"log"
	"time"

	"github.com/wpsadi/AssessKit-sub000/internal/models"

	"gorm.io/gorm"
)

// ProgressionService owns the per-participant session cursor: starting
// rounds, serving the current question, and the atomic submit sequence.
// Every operation takes the participant identity explicitly; there is no
// ambient request state.
type ProgressionService struct {
	db      *gorm.DB
	timing  *TimingService
	scoring *ScoringService
	now     func() time.Time
}

func NewProgressionService(db *gorm.DB, timing *TimingService, scoring *ScoringService) *ProgressionService {
	return NewProgressionServiceWithClock(db, timing, scoring, time.Now)
}

// NewProgressionServiceWithClock allows deterministic timestamps in tests.
func NewProgressionServiceWithClock(db *gorm.DB, timing *TimingService, scoring *ScoringService, now func() time.Time) *ProgressionService {
	return &ProgressionService{db: db, timing: timing, scoring: scoring, now: now}
}

type StartRoundResult struct {
	SessionID uint `json:"session_id"`
	RoundID   uint `json:"round_id,omitempty"`
	Completed bool `json:"completed"`
}

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type CurrentQuestionResult struct {
	Completed    bool       `json:"completed"`
	Message      string     `json:"message,omitempty"`
	QuestionID   uint       `json:"question_id,omitempty"`
	QuestionCode string     `json:"question_code,omitempty"`
	Prompt       string     `json:"prompt,omitempty"`
	Progress     Progress   `json:"progress"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
}

type QuestionTiming struct {
	EffectiveTimeLimit *int      `json:"effective_time_limit"`
	TimeRemaining      *int      `json:"time_remaining"`
	QuestionStartedAt  time.Time `json:"question_started_at"`
}

type StartQuestionResult struct {
	Session *models.Session `json:"session"`
	Timing  QuestionTiming  `json:"timing"`
}

type SubmitResult struct {
	IsCorrect        bool `json:"is_correct"`
	PointsEarned     int  `json:"points_earned"`
	IsLate           bool `json:"is_late"`
	TimeTakenSeconds int  `json:"time_taken"`
	RemainingSeconds *int `json:"remaining_time"`
	RoundID          uint `json:"-"`
	EventID          uint `json:"-"`
}

// StartRound creates the session on the event's first round, or advances a
// completed round to the next one. Advancing auto-selects the new round's
// first question and stamps its timer so the participant never needs a
// separate call to open it.
func (s *ProgressionService) StartRound(participantID, eventID uint) (*StartRoundResult, error) {
	var result *StartRoundResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		participant, err := s.activeParticipant(tx, participantID)
		if err != nil {
			return err
		}
		if participant.EventID != eventID {
			return ErrEventNotFound
		}

		var session models.Session
		err = tx.Where("participant_id = ?", participantID).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var first models.Round
			if err := tx.Where("event_id = ?", eventID).Order("order_index ASC").First(&first).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoundNotFound
				}
				return err
			}
			session = models.Session{
				ParticipantID:  participantID,
				EventID:        eventID,
				CurrentRoundID: &first.ID,
			}
			if err := tx.Create(&session).Error; err != nil {
				return err
			}
			result = &StartRoundResult{SessionID: session.ID, RoundID: first.ID}
			return nil
		}
		if err != nil {
			return err
		}

		if session.CurrentRoundID == nil {
			result = &StartRoundResult{SessionID: session.ID, Completed: true}
			return nil
		}

		var current models.Round
		if err := tx.First(&current, *session.CurrentRoundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("session %d references missing round %d", session.ID, *session.CurrentRoundID)
				return ErrInternalState
			}
			return err
		}

		var total, answered int64
		if err := tx.Model(&models.Question{}).Where("round_id = ?", current.ID).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Response{}).Where("participant_id = ? AND round_id = ?", participantID, current.ID).Count(&answered).Error; err != nil {
			return err
		}
		if answered < total {
			return &RoundNotCompleteError{RoundID: current.ID, Answered: int(answered), Total: int(total)}
		}

		var next models.Round
		err = tx.Where("event_id = ? AND order_index > ?", eventID, current.OrderIndex).
			Order("order_index ASC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			session.CurrentRoundID = nil
			session.CurrentQuestionID = nil
			session.QuestionStartedAt = nil
			session.IsOnQuestion = false
			if err := tx.Save(&session).Error; err != nil {
				return err
			}
			result = &StartRoundResult{SessionID: session.ID, Completed: true}
			return nil
		}
		if err != nil {
			return err
		}

		var firstQuestion models.Question
		if err := tx.Where("round_id = ?", next.ID).Order("order_index ASC").First(&firstQuestion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}

		now := s.now()
		session.CurrentRoundID = &next.ID
		session.CurrentQuestionID = &firstQuestion.ID
		session.QuestionStartedAt = &now
		session.IsOnQuestion = true
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		result = &StartRoundResult{SessionID: session.ID, RoundID: next.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CurrentQuestion selects the first unanswered question of the session's
// current round. The timer is sticky: re-polling the same question keeps its
// original start time.
func (s *ProgressionService) CurrentQuestion(participantID uint) (*CurrentQuestionResult, error) {
	if _, err := s.activeParticipant(s.db, participantID); err != nil {
		return nil, err
	}

	var session models.Session
	err := s.db.Where("participant_id = ?", participantID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}
	if session.CurrentRoundID == nil {
		return nil, ErrNoActiveSession
	}

	round, event, err := s.roundWithEvent(s.db, *session.CurrentRoundID, session.ID)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	if err := s.db.Where("round_id = ?", round.ID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}

	var answeredIDs []uint
	if err := s.db.Model(&models.Response{}).
		Where("participant_id = ? AND round_id = ?", participantID, round.ID).
		Pluck("question_id", &answeredIDs).Error; err != nil {
		return nil, err
	}
	answered := make(map[uint]bool, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = true
	}

	var target *models.Question
	for i := range questions {
		if !answered[questions[i].ID] {
			target = &questions[i]
			break
		}
	}
	if target == nil {
		return &CurrentQuestionResult{
			Completed: true,
			Message:   "round completed",
			Progress:  Progress{Current: len(questions), Total: len(questions)},
		}, nil
	}

	if session.CurrentQuestionID == nil || *session.CurrentQuestionID != target.ID || session.QuestionStartedAt == nil {
		now := s.now()
		session.CurrentQuestionID = &target.ID
		session.QuestionStartedAt = &now
		session.IsOnQuestion = true
		if err := s.db.Save(&session).Error; err != nil {
			return nil, err
		}
	}

	start := *session.QuestionStartedAt
	limit := s.timing.EffectiveLimitSeconds(target, round, event)
	var end *time.Time
	if limit != nil {
		e := start.Add(time.Duration(*limit) * time.Second)
		end = &e
	}

	return &CurrentQuestionResult{
		QuestionID:   target.ID,
		QuestionCode: target.Code,
		Prompt:       target.Prompt,
		Progress:     Progress{Current: len(answeredIDs) + 1, Total: len(questions)},
		StartTime:    &start,
		EndTime:      end,
	}, nil
}

// StartQuestion switches the session to a specific question. Before
// switching it checks the previous current question's timer: an expired
// timer refuses the switch so the miss is recorded through normal
// submission instead of being skipped past.
func (s *ProgressionService) StartQuestion(participantID, questionID, roundID uint) (*StartQuestionResult, error) {
	participant, err := s.activeParticipant(s.db, participantID)
	if err != nil {
		return nil, err
	}

	var round models.Round
	if err := s.db.First(&round, roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	if round.EventID != participant.EventID {
		return nil, ErrRoundNotFound
	}
	var event models.Event
	if err := s.db.First(&event, round.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	var question models.Question
	if err := s.db.Where("id = ? AND round_id = ?", questionID, roundID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	now := s.now()

	var session models.Session
	err = s.db.Where("participant_id = ?", participantID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.Session{ParticipantID: participantID, EventID: participant.EventID}
	} else if err != nil {
		return nil, err
	}

	// Switching is confined to the active round; hopping into another round
	// would sidestep the round-completion gate in StartRound.
	if session.CurrentRoundID != nil && *session.CurrentRoundID != round.ID {
		return nil, ErrQuestionNotInActiveRound
	}

	if session.CurrentQuestionID != nil && *session.CurrentQuestionID != question.ID && session.QuestionStartedAt != nil {
		var prev models.Question
		if err := s.db.First(&prev, *session.CurrentQuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("session %d references missing question %d", session.ID, *session.CurrentQuestionID)
				return nil, ErrInternalState
			}
			return nil, err
		}
		prevLimit := s.timing.EffectiveLimitSeconds(&prev, &round, &event)
		if s.timing.IsLate(*session.QuestionStartedAt, now, prevLimit) {
			return nil, &TimeExpiredError{
				ElapsedSeconds:        s.timing.ElapsedSeconds(*session.QuestionStartedAt, now),
				EffectiveLimitSeconds: *prevLimit,
			}
		}
	}

	// Sticky timer: re-entering the same unanswered question keeps its
	// original start time.
	if session.CurrentQuestionID == nil || *session.CurrentQuestionID != question.ID || session.QuestionStartedAt == nil {
		session.CurrentRoundID = &round.ID
		session.CurrentQuestionID = &question.ID
		session.QuestionStartedAt = &now
		session.IsOnQuestion = true
	}
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}

	limit := s.timing.EffectiveLimitSeconds(&question, &round, &event)
	remaining := s.timing.RemainingSeconds(*session.QuestionStartedAt, now, limit)

	return &StartQuestionResult{
		Session: &session,
		Timing: QuestionTiming{
			EffectiveTimeLimit: limit,
			TimeRemaining:      remaining,
			QuestionStartedAt:  *session.QuestionStartedAt,
		},
	}, nil
}

// SubmitAnswer runs the atomic submit sequence: ordering and duplicate
// guards, outcome computation, session advance, response insert, and score
// upsert — all in one transaction. A concurrent duplicate loses to the
// unique index on responses and surfaces as ErrAlreadyAnswered.
func (s *ProgressionService) SubmitAnswer(participantID uint, questionCode, answer string) (*SubmitResult, error) {
	var result *SubmitResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.activeParticipant(tx, participantID); err != nil {
			return err
		}

		var session models.Session
		err := tx.Where("participant_id = ?", participantID).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSession
		}
		if err != nil {
			return err
		}
		if session.CurrentRoundID == nil {
			return ErrNoActiveSession
		}

		var question models.Question
		err = tx.Preload("AcceptedAnswers").
			Where("round_id = ? AND code = ?", *session.CurrentRoundID, questionCode).
			First(&question).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotInActiveRound
		}
		if err != nil {
			return err
		}

		// Duplicate check runs before the ordering check: resubmitting an
		// already-answered question is reported as AlreadyAnswered, not as
		// an ordering violation.
		var duplicates int64
		if err := tx.Model(&models.Response{}).
			Where("participant_id = ? AND question_id = ?", participantID, question.ID).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return ErrAlreadyAnswered
		}

		var answeredCount int64
		if err := tx.Model(&models.Response{}).
			Where("participant_id = ? AND round_id = ?", participantID, question.RoundID).
			Count(&answeredCount).Error; err != nil {
			return err
		}
		if question.OrderIndex != int(answeredCount) {
			return &OutOfOrderError{Expected: int(answeredCount), Submitted: question.OrderIndex}
		}

		now := s.now()
		// Missing timer state is not penalized: treat the question as
		// just-started.
		startedAt := now
		if session.CurrentQuestionID != nil && *session.CurrentQuestionID == question.ID && session.QuestionStartedAt != nil {
			startedAt = *session.QuestionStartedAt
		}

		round, event, err := s.roundWithEvent(tx, question.RoundID, session.ID)
		if err != nil {
			return err
		}

		limit := s.timing.EffectiveLimitSeconds(&question, round, event)
		timeTaken := s.timing.ElapsedSeconds(startedAt, now)
		isLate := s.timing.IsLate(startedAt, now, limit)
		isCorrect := question.Accepts(answer)
		points := s.scoring.PointsFor(isCorrect, isLate, question.PositivePoints, question.NegativePoints)

		var total int64
		if err := tx.Model(&models.Question{}).Where("round_id = ?", round.ID).Count(&total).Error; err != nil {
			return err
		}

		var next models.Question
		err = tx.Where("round_id = ? AND order_index > ?", round.ID, question.OrderIndex).
			Order("order_index ASC").First(&next).Error
		hasNext := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if hasNext {
			startNext := now
			session.CurrentQuestionID = &next.ID
			session.QuestionStartedAt = &startNext
			session.IsOnQuestion = true
		} else {
			session.CurrentQuestionID = nil
			session.QuestionStartedAt = nil
			session.IsOnQuestion = false
		}
		session.AnsweredCount++
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		response := models.Response{
			ParticipantID:    participantID,
			QuestionID:       question.ID,
			RoundID:          round.ID,
			Value:            answer,
			IsCorrect:        isCorrect,
			IsLate:           isLate,
			PointsEarned:     points,
			TimeTakenSeconds: timeTaken,
			SubmittedAt:      now,
		}
		if err := tx.Create(&response).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyAnswered
			}
			return err
		}

		final := int(answeredCount)+1 == int(total)
		if err := s.upsertScore(tx, participantID, round, points, isCorrect, timeTaken, final, now); err != nil {
			return err
		}

		result = &SubmitResult{
			IsCorrect:        isCorrect,
			PointsEarned:     points,
			IsLate:           isLate,
			TimeTakenSeconds: timeTaken,
			RemainingSeconds: s.timing.RemainingSeconds(startedAt, now, limit),
			RoundID:          round.ID,
			EventID:          round.EventID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecalculateScore rebuilds the aggregate row from the response records.
// The result must match what the incremental per-submission path
// accumulated; responses are the ground truth.
func (s *ProgressionService) RecalculateScore(participantID, roundID uint) (*models.Score, error) {
	var out *models.Score
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var round models.Round
		if err := tx.First(&round, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return err
		}

		var responses []models.Response
		if err := tx.Where("participant_id = ? AND round_id = ?", participantID, roundID).
			Order("submitted_at ASC").
			Find(&responses).Error; err != nil {
			return err
		}

		var agg struct {
			TotalPoints    int
			TotalQuestions int
			CorrectAnswers int
			CompletionTime int
			LastSubmitted  *time.Time
		}
		for i := range responses {
			agg.TotalPoints += responses[i].PointsEarned
			agg.TotalQuestions++
			if responses[i].IsCorrect {
				agg.CorrectAnswers++
			}
			agg.CompletionTime += responses[i].TimeTakenSeconds
			agg.LastSubmitted = &responses[i].SubmittedAt
		}

		var totalInRound int64
		if err := tx.Model(&models.Question{}).Where("round_id = ?", roundID).Count(&totalInRound).Error; err != nil {
			return err
		}

		var score models.Score
		err := tx.Where("participant_id = ? AND round_id = ?", participantID, roundID).First(&score).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			score = models.Score{ParticipantID: participantID, RoundID: roundID, EventID: round.EventID}
		} else if err != nil {
			return err
		}

		score.TotalPoints = agg.TotalPoints
		score.TotalQuestions = agg.TotalQuestions
		score.CorrectAnswers = agg.CorrectAnswers
		score.CompletionTimeSeconds = agg.CompletionTime
		score.CompletedAt = nil
		if totalInRound > 0 && agg.TotalQuestions == int(totalInRound) {
			score.CompletedAt = agg.LastSubmitted
		}
		if err := tx.Save(&score).Error; err != nil {
			return err
		}
		out = &score
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProgressionService) activeParticipant(tx *gorm.DB, participantID uint) (*models.Participant, error) {
	var participant models.Participant
	if err := tx.First(&participant, participantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	if !participant.Active {
		return nil, ErrParticipantInactive
	}
	return &participant, nil
}

func (s *ProgressionService) roundWithEvent(tx *gorm.DB, roundID, sessionID uint) (*models.Round, *models.Event, error) {
	var round models.Round
	if err := tx.First(&round, roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("session %d references missing round %d", sessionID, roundID)
			return nil, nil, ErrInternalState
		}
		return nil, nil, err
	}
	var event models.Event
	if err := tx.First(&event, round.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("round %d references missing event %d", round.ID, round.EventID)
			return nil, nil, ErrInternalState
		}
		return nil, nil, err
	}
	return &round, &event, nil
}

func (s *ProgressionService) upsertScore(tx *gorm.DB, participantID uint, round *models.Round, points int, isCorrect bool, timeTaken int, final bool, now time.Time) error {
	var score models.Score
	err := tx.Where("participant_id = ? AND round_id = ?", participantID, round.ID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		score = models.Score{ParticipantID: participantID, RoundID: round.ID, EventID: round.EventID}
	} else if err != nil {
		return err
	}

	score.TotalPoints += points
	score.TotalQuestions++
	if isCorrect {
		score.CorrectAnswers++
	}
	score.CompletionTimeSeconds += timeTaken
	if final {
		completedAt := now
		score.CompletedAt = &completedAt
	}
	return tx.Save(&score).Error
}
