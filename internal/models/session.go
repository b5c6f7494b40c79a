package models

import "time"

// Session is the single current-position cursor for one participant within
// one event. It is created lazily on the first StartRound call and mutated
// only by the progression service. Responses are the ground truth; the
// session is a resumable pointer over them.
type Session struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	ParticipantID     uint        `gorm:"not null;uniqueIndex" json:"participant_id"`
	Participant       Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`
	EventID           uint        `gorm:"not null;index" json:"event_id"`
	CurrentRoundID    *uint       `json:"current_round_id,omitempty"`
	CurrentQuestionID *uint       `json:"current_question_id,omitempty"`
	QuestionStartedAt *time.Time  `json:"question_started_at,omitempty"`
	IsOnQuestion      bool        `gorm:"not null;default:false" json:"is_on_question"`
	AnsweredCount     int         `gorm:"not null;default:0" json:"answered_count"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
