package service

import (
	"errors"
	"log"
	"sort"

	"github.com/DmitriiShilkin/creative-hub/internal/cache"
	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"gorm.io/gorm"
)

// JobReadService mirrors EventReadService for jobs; proposals are the
// counted sub-collection.
type JobReadService struct {
	db          *gorm.DB
	listingRepo repository.JobListingRepositoryInterface
	viewRepo    repository.JobViewRepositoryInterface
	browsing    *cache.BrowsingCache
}

func NewJobReadService(
	db *gorm.DB,
	listingRepo repository.JobListingRepositoryInterface,
	viewRepo repository.JobViewRepositoryInterface,
	browsing *cache.BrowsingCache,
) *JobReadService {
	return &JobReadService{
		db:          db,
		listingRepo: listingRepo,
		viewRepo:    viewRepo,
		browsing:    browsing,
	}
}

func (s *JobReadService) inTx(fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.Transaction(fn)
}

func (s *JobReadService) GetJob(jobID uint, viewer models.Viewer) (*models.JobWithCounters, error) {
	var out *models.JobWithCounters
	err := s.inTx(func(tx *gorm.DB) error {
		row, err := s.listingRepo.FindWithCounters(tx, jobID, viewer)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Kind: "job", IDs: []uint{jobID}}
			}
			return err
		}

		newCount, err := s.applyCheckpoint(tx, row, viewer)
		if err != nil {
			return err
		}

		result := jobRowToResponse(row)
		result.NewProposalsCount = newCount
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.touchBrowsing(jobID, viewer)
	out.BrowsingNow = s.browsingCount(jobID)
	return out, nil
}

func (s *JobReadService) ListJobs(p repository.JobListParams) (*models.JobListResponse, error) {
	rows, total, err := s.listingRepo.ListWithCounters(nil, p)
	if err != nil {
		return nil, err
	}

	resp := &models.JobListResponse{
		Objects:    make([]models.JobWithCounters, 0, len(rows)),
		TotalCount: total,
	}
	for i := range rows {
		job := jobRowToResponse(&rows[i])
		job.BrowsingNow = s.browsingCount(job.ID)
		resp.Objects = append(resp.Objects, job)
	}
	return resp, nil
}

func (s *JobReadService) MarkViewed(jobIDs []uint, viewer models.Viewer) error {
	ids := dedupeIDs(jobIDs)
	if len(ids) == 0 {
		return nil
	}
	return s.inTx(func(tx *gorm.DB) error {
		rows, err := s.listingRepo.FindByIDsWithCounters(tx, ids, viewer)
		if err != nil {
			return err
		}

		found := make(map[uint]bool, len(rows))
		for i := range rows {
			found[rows[i].ID] = true
		}
		var missing []uint
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
			return &NotFoundError{Kind: "job", IDs: missing}
		}

		for i := range rows {
			if _, err := s.applyCheckpoint(tx, &rows[i], viewer); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *JobReadService) applyCheckpoint(tx *gorm.DB, row *repository.JobListingRow, viewer models.Viewer) (int64, error) {
	live := row.ProposalsCount

	if !row.CheckpointID.Valid {
		if !viewer.Resolvable() {
			return 0, nil
		}
		view := &models.JobView{
			JobID:         row.ID,
			ProposalsSeen: live,
		}
		if viewer.Authenticated() {
			view.UserID = viewer.UserID
		} else {
			ip := viewer.IP
			view.IPAddress = &ip
		}
		if err := s.viewRepo.Create(tx, view); err != nil {
			if errors.Is(err, repository.ErrCheckpointExists) {
				log.Printf("job %d: checkpoint already created for %s", row.ID, viewer.Key())
				return 0, nil
			}
			return 0, err
		}
		return 0, nil
	}

	seen := row.ProposalsSeen.Int64
	if seen == live {
		return 0, nil
	}
	if err := s.viewRepo.UpdateSeen(tx, uint(row.CheckpointID.Int64), live); err != nil {
		return 0, err
	}
	// Proposals can be withdrawn, so the difference may be negative; it is
	// reported unclamped.
	return live - seen, nil
}

func (s *JobReadService) touchBrowsing(jobID uint, viewer models.Viewer) {
	if s.browsing == nil || !viewer.Resolvable() {
		return
	}
	if err := s.browsing.Touch(cache.KindJob, jobID, viewer.Key()); err != nil {
		log.Printf("browsing tracker: touch job %d failed: %v", jobID, err)
	}
}

func (s *JobReadService) StopBrowsing(jobID uint, viewer models.Viewer) {
	if s.browsing == nil || !viewer.Resolvable() {
		return
	}
	if err := s.browsing.Forget(cache.KindJob, jobID, viewer.Key()); err != nil {
		log.Printf("browsing tracker: forget job %d failed: %v", jobID, err)
	}
}

func (s *JobReadService) browsingCount(jobID uint) int64 {
	if s.browsing == nil {
		return 0
	}
	n, err := s.browsing.Count(cache.KindJob, jobID)
	if err != nil {
		log.Printf("browsing tracker: count job %d failed: %v", jobID, err)
		return 0
	}
	return n
}

func jobRowToResponse(row *repository.JobListingRow) models.JobWithCounters {
	return models.JobWithCounters{
		ID:                row.ID,
		CreatedAt:         row.CreatedAt,
		Title:             row.Title,
		Description:       row.Description,
		Budget:            row.Budget,
		Currency:          row.Currency,
		IsDraft:           row.IsDraft,
		IsArchived:        row.IsArchived,
		AuthorID:          row.AuthorID,
		ProposalsCount:    row.ProposalsCount,
		Views:             row.Views,
		NewProposalsCount: row.NewProposalsCount,
		IsFavorite:        row.IsFavorite,
		HasApplied:        row.HasApplied,
		IsViewed:          row.IsViewed,
	}
}
