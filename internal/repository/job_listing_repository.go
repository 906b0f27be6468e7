package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
)

// SortKey selects the listing order. The default is newest-first; budget
// sorts always push NULL budgets to the end regardless of direction.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortBudgetAsc  SortKey = "budget_asc"
	SortBudgetDesc SortKey = "budget_desc"
)

func (k SortKey) orderClause() string {
	switch k {
	case SortBudgetAsc:
		return "jobs.budget ASC NULLS LAST, jobs.created_at DESC, jobs.id DESC"
	case SortBudgetDesc:
		return "jobs.budget DESC NULLS LAST, jobs.created_at DESC, jobs.id DESC"
	default:
		return "jobs.created_at DESC, jobs.id DESC"
	}
}

// JobListingRow mirrors EventListingRow for jobs; proposals are the counted
// sub-collection.
type JobListingRow struct {
	ID          uint      `gorm:"column:id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Budget      *int64    `gorm:"column:budget"`
	Currency    string    `gorm:"column:currency"`
	IsDraft     bool      `gorm:"column:is_draft"`
	IsArchived  bool      `gorm:"column:is_archived"`
	AuthorID    uint      `gorm:"column:author_id"`

	ProposalsCount    int64 `gorm:"column:proposals_count"`
	Views             int64 `gorm:"column:views"`
	NewProposalsCount int64 `gorm:"column:new_proposals_count"`

	CheckpointID  sql.NullInt64 `gorm:"column:checkpoint_id"`
	ProposalsSeen sql.NullInt64 `gorm:"column:proposals_seen"`

	IsViewed   bool `gorm:"column:is_viewed"`
	IsFavorite bool `gorm:"column:is_favorite"`
	HasApplied bool `gorm:"column:has_applied"`

	TotalCount int64 `gorm:"column:total_count"`
}

type JobListParams struct {
	Viewer models.Viewer

	AuthorID   *uint
	AuthorView bool
	IsDraft    *bool
	IsArchived *bool

	FavoritesOnly bool
	Sort          SortKey

	Offset int
	Limit  int

	Scopes []Scope
}

var jobItemColumns = []string{
	"jobs.id",
	"jobs.created_at",
	"jobs.updated_at",
	"jobs.title",
	"jobs.description",
	"jobs.budget",
	"jobs.currency",
	"jobs.is_draft",
	"jobs.is_archived",
	"jobs.author_id",
}

var jobCheckpointColumns = []string{
	"my.id",
	"my.proposals_seen",
}

var jobAggregateSelects = []string{
	"COUNT(DISTINCT pr.id) AS proposals_count",
	"COUNT(DISTINCT av.id) AS views",
	"COUNT(DISTINCT pr.id) - COALESCE(my.proposals_seen, 0) AS new_proposals_count",
}

func jobGroupColumns() []string {
	return append(append([]string{}, jobItemColumns...), jobCheckpointColumns...)
}

func jobListingSelect(withTotal bool) string {
	parts := append([]string{}, jobItemColumns...)
	parts = append(parts,
		"my.id AS checkpoint_id",
		"my.proposals_seen AS proposals_seen",
	)
	parts = append(parts, jobAggregateSelects...)
	parts = append(parts,
		"my.id IS NOT NULL AS is_viewed",
		"EXISTS(SELECT 1 FROM job_favorites jf WHERE jf.job_id = jobs.id AND jf.user_id = ?) AS is_favorite",
		"EXISTS(SELECT 1 FROM proposals myp WHERE myp.job_id = jobs.id AND myp.user_id = ?) AS has_applied",
	)
	if withTotal {
		parts = append(parts, "COUNT(jobs.id) OVER () AS total_count")
	}
	return strings.Join(parts, ", ")
}

func jobViewerJoin(viewer models.Viewer) (string, []interface{}) {
	if viewer.Authenticated() {
		return "LEFT JOIN job_views my ON my.job_id = jobs.id AND my.user_id = ?",
			[]interface{}{*viewer.UserID}
	}
	return "LEFT JOIN job_views my ON my.job_id = jobs.id AND my.user_id IS NULL AND my.ip_address = ?",
		[]interface{}{viewer.IP}
}

type JobListingRepository struct {
	db *gorm.DB
}

func NewJobListingRepository(db *gorm.DB) *JobListingRepository {
	return &JobListingRepository{db: db}
}

func (r *JobListingRepository) dbOr(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *JobListingRepository) base(tx *gorm.DB, viewer models.Viewer, withTotal bool) *gorm.DB {
	joinSQL, joinArgs := jobViewerJoin(viewer)
	var flagUserID interface{}
	if viewer.UserID != nil {
		flagUserID = *viewer.UserID
	}
	return r.dbOr(tx).
		Model(&models.Job{}).
		Select(jobListingSelect(withTotal), flagUserID, flagUserID).
		Joins("LEFT JOIN proposals pr ON pr.job_id = jobs.id").
		Joins("LEFT JOIN job_views av ON av.job_id = jobs.id").
		Joins(joinSQL, joinArgs...).
		Group(strings.Join(jobGroupColumns(), ", "))
}

func (r *JobListingRepository) FindWithCounters(tx *gorm.DB, jobID uint, viewer models.Viewer) (*JobListingRow, error) {
	var row JobListingRow
	err := r.base(tx, viewer, false).
		Where("jobs.id = ?", jobID).
		Scopes(DetailVisibility("jobs", "author_id", viewer.UserID)).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *JobListingRepository) FindByIDsWithCounters(tx *gorm.DB, ids []uint, viewer models.Viewer) ([]JobListingRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []JobListingRow
	err := r.base(tx, viewer, false).
		Where("jobs.id IN ?", ids).
		Scopes(PublicOnly("jobs")).
		Scan(&rows).Error
	return rows, err
}

func (r *JobListingRepository) ListWithCounters(tx *gorm.DB, p JobListParams) ([]JobListingRow, int64, error) {
	filter := func(q *gorm.DB) *gorm.DB {
		switch {
		case p.AuthorView:
			var authorID uint
			if p.Viewer.UserID != nil {
				authorID = *p.Viewer.UserID
			}
			q = q.Scopes(AuthorOnly("jobs", "author_id", authorID, p.IsDraft, p.IsArchived))
		default:
			q = q.Scopes(PublicOnly("jobs"))
			if p.AuthorID != nil {
				q = q.Where("jobs.author_id = ?", *p.AuthorID)
			}
		}

		if p.FavoritesOnly {
			var favUserID interface{}
			if p.Viewer.UserID != nil {
				favUserID = *p.Viewer.UserID
			}
			q = q.Where("EXISTS(SELECT 1 FROM job_favorites ff WHERE ff.job_id = jobs.id AND ff.user_id = ?)", favUserID)
		}
		for _, scope := range p.Scopes {
			q = scope(q)
		}
		return q
	}

	var rows []JobListingRow
	err := filter(r.base(tx, p.Viewer, true)).
		Order(p.Sort.orderClause()).
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	if len(rows) > 0 {
		return rows, rows[0].TotalCount, nil
	}

	var total int64
	if err := filter(r.dbOr(tx).Model(&models.Job{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
