package repository

import (
	"errors"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
)

// ParticipantRepository owns the event_participants join table. Rows are
// inserted and deleted explicitly; nothing mutates participation through
// association helpers.
type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Add(eventID, userID uint) error {
	err := r.db.Create(&models.EventParticipant{EventID: eventID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyMarked
	}
	return err
}

func (r *ParticipantRepository) Remove(eventID, userID uint) error {
	res := r.db.
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventParticipant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ParticipantRepository) CountForEvent(eventID uint) (int64, error) {
	var n int64
	err := r.db.
		Model(&models.EventParticipant{}).
		Where("event_id = ?", eventID).
		Count(&n).Error
	return n, err
}
