package repository

import (
	"errors"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCheckpointExists reports that another request already created the view
// checkpoint for the same (item, viewer) pair. Two concurrent first reads
// both try the insert; ON CONFLICT DO NOTHING makes the loser a no-op and
// the post-condition (exactly one row) holds either way, so callers log it
// and move on. The conflict must be absorbed inside the statement: a raised
// unique violation would abort the surrounding transaction and fail every
// later statement in it.
var ErrCheckpointExists = errors.New("view checkpoint already exists")

type EventViewRepository struct {
	db *gorm.DB
}

func NewEventViewRepository(db *gorm.DB) *EventViewRepository {
	return &EventViewRepository{db: db}
}

func (r *EventViewRepository) dbOr(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Find looks the checkpoint up on exactly one identity axis: user id for
// authenticated viewers, IP for anonymous ones.
func (r *EventViewRepository) Find(tx *gorm.DB, eventID uint, viewer models.Viewer) (*models.EventView, error) {
	var view models.EventView
	q := r.dbOr(tx).Where("event_id = ?", eventID)
	if viewer.Authenticated() {
		q = q.Where("user_id = ?", *viewer.UserID)
	} else {
		q = q.Where("user_id IS NULL AND ip_address = ?", viewer.IP)
	}
	if err := q.First(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *EventViewRepository) Create(tx *gorm.DB, view *models.EventView) error {
	res := r.dbOr(tx).Clauses(clause.OnConflict{DoNothing: true}).Create(view)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCheckpointExists
	}
	return nil
}

func (r *EventViewRepository) UpdateSeen(tx *gorm.DB, viewID uint, seen int64) error {
	return r.dbOr(tx).
		Model(&models.EventView{}).
		Where("id = ?", viewID).
		Update("participants_seen", seen).Error
}
