package models

import "time"

// Score is the per-round aggregate upserted on every submission. It is a
// materialization of the participant's Responses for the round and must stay
// re-derivable from them (see ProgressionService.RecalculateScore).
type Score struct {
	ID                    uint        `gorm:"primaryKey" json:"id"`
	ParticipantID         uint        `gorm:"not null;uniqueIndex:idx_score_unique" json:"participant_id"`
	Participant           Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`
	RoundID               uint        `gorm:"not null;uniqueIndex:idx_score_unique" json:"round_id"`
	Round                 Round       `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"-"`
	EventID               uint        `gorm:"not null;index" json:"event_id"`
	TotalPoints           int         `gorm:"not null;default:0" json:"total_points"`
	TotalQuestions        int         `gorm:"not null;default:0" json:"total_questions"`
	CorrectAnswers        int         `gorm:"not null;default:0" json:"correct_answers"`
	CompletionTimeSeconds int         `gorm:"not null;default:0" json:"completion_time_seconds"`
	CompletedAt           *time.Time  `json:"completed_at,omitempty"`
	UpdatedAt             time.Time   `json:"updated_at"`
}
