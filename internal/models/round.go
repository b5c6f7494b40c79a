package models

// Round groups questions under one ordering sequence. Either
// TimeLimitMinutes or UsesEventDuration may be set, never both; with
// neither, questions fall back to their own limits or run untimed.
type Round struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	EventID           uint       `gorm:"not null;uniqueIndex:idx_round_order" json:"event_id"`
	Event             Event      `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	OrderIndex        int        `gorm:"not null;uniqueIndex:idx_round_order" json:"order_index"`
	TimeLimitMinutes  *int       `json:"time_limit_minutes,omitempty"`
	UsesEventDuration bool       `gorm:"not null;default:false" json:"uses_event_duration"`
	Questions         []Question `gorm:"foreignKey:RoundID" json:"questions,omitempty"`
}
