package models

import "time"

// Event is the top-level container. Code is the short join code
// participants log in with; DurationMinutes is the event-wide time budget
// that rounds flagged uses_event_duration inherit.
type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrganizerID     uint      `gorm:"not null;index" json:"organizer_id"`
	Organizer       Organizer `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"-"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Code            string    `gorm:"size:6;not null;uniqueIndex" json:"code"`
	DurationMinutes int       `gorm:"not null;default:0" json:"duration_minutes"`
	Rounds          []Round   `gorm:"foreignKey:EventID" json:"rounds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
