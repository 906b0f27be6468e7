package repository

import (
	"errors"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(proposal *models.Proposal) error {
	err := r.db.Create(proposal).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyMarked
	}
	return err
}

func (r *ProposalRepository) Delete(jobID, userID uint) error {
	res := r.db.
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Delete(&models.Proposal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProposalRepository) ListForJob(jobID uint) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}
