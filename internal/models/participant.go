package models

import "time"

type Participant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;uniqueIndex:idx_participant_email" json:"event_id"`
	Event       Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Email       string    `gorm:"size:255;not null;uniqueIndex:idx_participant_email" json:"email"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
