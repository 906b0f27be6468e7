package repository

import (
	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
)

// The tx argument scopes an operation to a caller-owned transaction; nil
// falls back to the repository's connection. Services that pair a counter
// read with a checkpoint write pass the same tx to both so the pair commits
// or rolls back as one unit.

// EventListingRepositoryInterface defines the counter-aggregation read path for events
type EventListingRepositoryInterface interface {
	FindWithCounters(tx *gorm.DB, eventID uint, viewer models.Viewer) (*EventListingRow, error)
	FindByIDsWithCounters(tx *gorm.DB, ids []uint, viewer models.Viewer) ([]EventListingRow, error)
	ListWithCounters(tx *gorm.DB, p EventListParams) ([]EventListingRow, int64, error)
}

// JobListingRepositoryInterface defines the counter-aggregation read path for jobs
type JobListingRepositoryInterface interface {
	FindWithCounters(tx *gorm.DB, jobID uint, viewer models.Viewer) (*JobListingRow, error)
	FindByIDsWithCounters(tx *gorm.DB, ids []uint, viewer models.Viewer) ([]JobListingRow, error)
	ListWithCounters(tx *gorm.DB, p JobListParams) ([]JobListingRow, int64, error)
}

// EventViewRepositoryInterface defines the contract for event view checkpoints
type EventViewRepositoryInterface interface {
	Find(tx *gorm.DB, eventID uint, viewer models.Viewer) (*models.EventView, error)
	Create(tx *gorm.DB, view *models.EventView) error
	UpdateSeen(tx *gorm.DB, viewID uint, seen int64) error
}

// JobViewRepositoryInterface defines the contract for job view checkpoints
type JobViewRepositoryInterface interface {
	Find(tx *gorm.DB, jobID uint, viewer models.Viewer) (*models.JobView, error)
	Create(tx *gorm.DB, view *models.JobView) error
	UpdateSeen(tx *gorm.DB, viewID uint, seen int64) error
}

// FavoriteRepositoryInterface defines the contract for favorite markers
type FavoriteRepositoryInterface interface {
	AddEventFavorite(userID, eventID uint) error
	RemoveEventFavorite(userID, eventID uint) error
	AddJobFavorite(userID, jobID uint) error
	RemoveJobFavorite(userID, jobID uint) error
}

// ParticipantRepositoryInterface defines the contract for event participation rows
type ParticipantRepositoryInterface interface {
	Add(eventID, userID uint) error
	Remove(eventID, userID uint) error
	CountForEvent(eventID uint) (int64, error)
}

// ProposalRepositoryInterface defines the contract for job proposals
type ProposalRepositoryInterface interface {
	Create(proposal *models.Proposal) error
	Delete(jobID, userID uint) error
	ListForJob(jobID uint) ([]models.Proposal, error)
}

// EventRepositoryInterface defines basic event lookups
type EventRepositoryInterface interface {
	FindByID(id uint) (*models.Event, error)
}

// JobRepositoryInterface defines basic job lookups
type JobRepositoryInterface interface {
	FindByID(id uint) (*models.Job, error)
}
