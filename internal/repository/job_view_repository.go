package repository

import (
	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobViewRepository struct {
	db *gorm.DB
}

func NewJobViewRepository(db *gorm.DB) *JobViewRepository {
	return &JobViewRepository{db: db}
}

func (r *JobViewRepository) dbOr(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *JobViewRepository) Find(tx *gorm.DB, jobID uint, viewer models.Viewer) (*models.JobView, error) {
	var view models.JobView
	q := r.dbOr(tx).Where("job_id = ?", jobID)
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

func (r *JobViewRepository) Create(tx *gorm.DB, view *models.JobView) error {
	res := r.dbOr(tx).Clauses(clause.OnConflict{DoNothing: true}).Create(view)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCheckpointExists
	}
	return nil
}

func (r *JobViewRepository) UpdateSeen(tx *gorm.DB, viewID uint, seen int64) error {
	return r.dbOr(tx).
		Model(&models.JobView{}).
		Where("id = ?", viewID).
		Update("proposals_seen", seen).Error
}
