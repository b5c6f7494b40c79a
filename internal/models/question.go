package models

type Question struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	RoundID          uint             `gorm:"not null;uniqueIndex:idx_question_code;uniqueIndex:idx_question_order" json:"round_id"`
	Round            Round            `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"-"`
	Code             string           `gorm:"size:50;not null;uniqueIndex:idx_question_code" json:"code"`
	Prompt           string           `gorm:"type:text;not null" json:"prompt"`
	OrderIndex       int              `gorm:"not null;uniqueIndex:idx_question_order" json:"order_index"`
	PositivePoints   int              `gorm:"not null;default:0" json:"positive_points"`
	NegativePoints   int              `gorm:"not null;default:0" json:"negative_points"`
	TimeLimitSeconds *int             `json:"time_limit_seconds,omitempty"`
	AcceptedAnswers  []AcceptedAnswer `gorm:"foreignKey:QuestionID" json:"accepted_answers,omitempty"`
}

type AcceptedAnswer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Value      string `gorm:"size:500;not null" json:"value"`
}

// Accepts reports whether the submitted value is in the accepted-answer set.
// Matching is exact and case-sensitive; any normalization happens at
// authoring time, never here.
func (q *Question) Accepts(answer string) bool {
	for _, a := range q.AcceptedAnswers {
		if a.Value == answer {
			return true
		}
	}
	return false
}
