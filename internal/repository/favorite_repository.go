package repository

import (
	"errors"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyMarked reports a duplicate marker insert (favorite, participation,
// proposal). These are explicit join-table writes, so a conflict simply means
// the state the caller wanted already holds.
var ErrAlreadyMarked = errors.New("marker row already exists")

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) AddEventFavorite(userID, eventID uint) error {
	err := r.db.Create(&models.EventFavorite{UserID: userID, EventID: eventID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyMarked
	}
	return err
}

func (r *FavoriteRepository) RemoveEventFavorite(userID, eventID uint) error {
	res := r.db.
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.EventFavorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FavoriteRepository) AddJobFavorite(userID, jobID uint) error {
	err := r.db.Create(&models.JobFavorite{UserID: userID, JobID: jobID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyMarked
	}
	return err
}

func (r *FavoriteRepository) RemoveJobFavorite(userID, jobID uint) error {
	res := r.db.
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.JobFavorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
