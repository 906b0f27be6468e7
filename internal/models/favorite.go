package models

import (
	"time"
)

// EventFavorite marks an event as favorited by a user. Read by the listing
// queries only to derive the is_favorite flag.
type EventFavorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	EventID   uint      `gorm:"primaryKey" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

type JobFavorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	JobID     uint      `gorm:"primaryKey" json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}
