package models

import (
	"time"

	"gorm.io/gorm"
)

type Job struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Budget is optional; listings can sort by it with NULLs last.
	Budget   *int64 `json:"budget"`
	Currency string `gorm:"size:3" json:"currency"`

	IsDraft    bool `gorm:"not null;default:true;index" json:"is_draft"`
	IsArchived bool `gorm:"not null;default:false" json:"is_archived"`

	AuthorID uint `gorm:"not null;index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"-"`
}

type Proposal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID  uint `gorm:"not null;uniqueIndex:idx_proposal_job_user" json:"job_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_proposal_job_user;index" json:"user_id"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	Price       *int64 `json:"price"`
}
