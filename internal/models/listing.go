package models

import (
	"time"
)

// EventWithCounters is the read-side shape of an event in listing and detail
// responses: the item plus its viewer-dependent counters and flags.
type EventWithCounters struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsDraft     bool      `json:"is_draft"`
	IsArchived  bool      `json:"is_archived"`
	CreatorID   uint      `json:"creator_id"`

	ParticipantsCount    int64 `json:"participants_count"`
	Views                int64 `json:"views"`
	NewParticipantsCount int64 `json:"new_participants_count"`
	IsFavorite           bool  `json:"is_favorite"`
	IsAttending          bool  `json:"is_attending"`
	IsViewed             bool  `json:"is_viewed"`
	BrowsingNow          int64 `json:"browsing_now"`
}

type JobWithCounters struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      *int64    `json:"budget"`
	Currency    string    `json:"currency"`
	IsDraft     bool      `json:"is_draft"`
	IsArchived  bool      `json:"is_archived"`
	AuthorID    uint      `json:"author_id"`

	ProposalsCount    int64 `json:"proposals_count"`
	Views             int64 `json:"views"`
	NewProposalsCount int64 `json:"new_proposals_count"`
	IsFavorite        bool  `json:"is_favorite"`
	HasApplied        bool  `json:"has_applied"`
	IsViewed          bool  `json:"is_viewed"`
	BrowsingNow       int64 `json:"browsing_now"`
}

// EventListResponse is one page of events plus the total over the filtered,
// unpaginated set.
type EventListResponse struct {
	Objects    []EventWithCounters `json:"objects"`
	TotalCount int64               `json:"total_count"`
}

type JobListResponse struct {
	Objects    []JobWithCounters `json:"objects"`
	TotalCount int64             `json:"total_count"`
}
