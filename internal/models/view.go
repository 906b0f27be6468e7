package models

import (
	"time"
)

// EventView is a per-viewer checkpoint: how many participants the viewer had
// seen on the event as of their last read. Exactly one of UserID / IPAddress
// identifies the viewer; authenticated views are never keyed by IP.
//
// Postgres treats NULLs as distinct inside unique indexes, so the two
// composite constraints enforce at most one row per identity axis without
// colliding across axes.
type EventView struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventID   uint    `gorm:"not null;uniqueIndex:idx_event_view_user;uniqueIndex:idx_event_view_ip" json:"event_id"`
	Event     Event   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    *uint   `gorm:"uniqueIndex:idx_event_view_user" json:"user_id"`
	IPAddress *string `gorm:"uniqueIndex:idx_event_view_ip" json:"ip_address"`

	// ParticipantsSeen is the live participant count snapshotted at the
	// viewer's last read.
	ParticipantsSeen int64 `gorm:"not null;default:0" json:"participants_seen"`
}

// JobView mirrors EventView for jobs, snapshotting the proposal count.
type JobView struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID     uint    `gorm:"not null;uniqueIndex:idx_job_view_user;uniqueIndex:idx_job_view_ip" json:"job_id"`
	Job       Job     `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    *uint   `gorm:"uniqueIndex:idx_job_view_user" json:"user_id"`
	IPAddress *string `gorm:"uniqueIndex:idx_job_view_ip" json:"ip_address"`

	ProposalsSeen int64 `gorm:"not null;default:0" json:"proposals_seen"`
}
