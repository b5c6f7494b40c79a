package models

import "time"

// Response is the immutable per-question record. The composite unique index
// on (participant_id, question_id) is the duplicate-submission guard: a
// second concurrent insert fails at the store instead of double-scoring.
type Response struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	ParticipantID    uint        `gorm:"not null;uniqueIndex:idx_response_unique" json:"participant_id"`
	Participant      Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID       uint        `gorm:"not null;uniqueIndex:idx_response_unique" json:"question_id"`
	Question         Question    `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	RoundID          uint        `gorm:"not null;index" json:"round_id"`
	Value            string      `gorm:"size:500;not null" json:"value"`
	IsCorrect        bool        `gorm:"not null" json:"is_correct"`
	IsLate           bool        `gorm:"not null" json:"is_late"`
	PointsEarned     int         `gorm:"not null;default:0" json:"points_earned"`
	TimeTakenSeconds int         `gorm:"not null;default:0" json:"time_taken_seconds"`
	SubmittedAt      time.Time   `json:"submitted_at"`
}
