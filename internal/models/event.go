package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time `gorm:"not null;index" json:"ends_at"`

	IsDraft    bool `gorm:"not null;default:true;index" json:"is_draft"`
	IsArchived bool `gorm:"not null;default:false" json:"is_archived"`

	CreatorID uint `gorm:"not null;index" json:"creator_id"`
	Creator   User `gorm:"foreignKey:CreatorID" json:"-"`
}

// EventParticipant is the explicit join row between an event and an attendee.
// Participation is always written through ParticipantRepository, never through
// an association append, so the row set stays the single source of truth.
type EventParticipant struct {
	EventID   uint      `gorm:"primaryKey" json:"event_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
