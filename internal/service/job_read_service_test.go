package service

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"gorm.io/gorm"
)

// MockJobStore mirrors MockEventStore for the job read path.
type MockJobStore struct {
	jobs  []repository.JobListingRow
	views map[string]*models.JobView

	nextViewID  uint
	createCalls int
}

func NewMockJobStore() *MockJobStore {
	return &MockJobStore{
		views:      make(map[string]*models.JobView),
		nextViewID: 1,
	}
}

func (m *MockJobStore) AddJob(id uint, proposals int64) {
	m.jobs = append(m.jobs, repository.JobListingRow{
		ID:             id,
		Title:          fmt.Sprintf("Job %d", id),
		ProposalsCount: proposals,
	})
}

func (m *MockJobStore) SetProposals(id uint, proposals int64) {
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			m.jobs[i].ProposalsCount = proposals
		}
	}
}

func (m *MockJobStore) joinCheckpoint(row repository.JobListingRow, viewer models.Viewer) repository.JobListingRow {
	row.NewProposalsCount = row.ProposalsCount
	if !viewer.Resolvable() {
		return row
	}
	if v, ok := m.views[viewerIdentityKey(row.ID, viewer)]; ok {
		row.CheckpointID = sql.NullInt64{Int64: int64(v.ID), Valid: true}
		row.ProposalsSeen = sql.NullInt64{Int64: v.ProposalsSeen, Valid: true}
		row.IsViewed = true
		row.NewProposalsCount = row.ProposalsCount - v.ProposalsSeen
	}
	return row
}

func (m *MockJobStore) FindWithCounters(tx *gorm.DB, jobID uint, viewer models.Viewer) (*repository.JobListingRow, error) {
	for i := range m.jobs {
		if m.jobs[i].ID == jobID {
			row := m.joinCheckpoint(m.jobs[i], viewer)
			return &row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockJobStore) FindByIDsWithCounters(tx *gorm.DB, ids []uint, viewer models.Viewer) ([]repository.JobListingRow, error) {
	var result []repository.JobListingRow
	for _, id := range ids {
		for i := range m.jobs {
			if m.jobs[i].ID == id {
				result = append(result, m.joinCheckpoint(m.jobs[i], viewer))
			}
		}
	}
	return result, nil
}

func (m *MockJobStore) ListWithCounters(tx *gorm.DB, p repository.JobListParams) ([]repository.JobListingRow, int64, error) {
	total := int64(len(m.jobs))
	start := p.Offset
	if start > len(m.jobs) {
		start = len(m.jobs)
	}
	end := len(m.jobs)
	if p.Limit > 0 && start+p.Limit < end {
		end = start + p.Limit
	}
	var page []repository.JobListingRow
	for i := start; i < end; i++ {
		page = append(page, m.joinCheckpoint(m.jobs[i], p.Viewer))
	}
	return page, total, nil
}

func (m *MockJobStore) Find(tx *gorm.DB, jobID uint, viewer models.Viewer) (*models.JobView, error) {
	if v, ok := m.views[viewerIdentityKey(jobID, viewer)]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockJobStore) Create(tx *gorm.DB, view *models.JobView) error {
	m.createCalls++
	key := viewIdentityKey(view.JobID, view.UserID, view.IPAddress)
	if _, ok := m.views[key]; ok {
		return repository.ErrCheckpointExists
	}
	view.ID = m.nextViewID
	m.nextViewID++
	m.views[key] = view
	return nil
}

func (m *MockJobStore) UpdateSeen(tx *gorm.DB, viewID uint, seen int64) error {
	for _, v := range m.views {
		if v.ID == viewID {
			v.ProposalsSeen = seen
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newJobReadServiceForTest(store *MockJobStore) *JobReadService {
	return NewJobReadService(nil, store, store, nil)
}

func TestGetJobFirstViewAndDelta(t *testing.T) {
	store := NewMockJobStore()
	store.AddJob(1, 2)
	service := newJobReadServiceForTest(store)
	viewer := models.AuthenticatedViewer(10, "203.0.113.1")

	result, err := service.GetJob(1, viewer)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if result.NewProposalsCount != 0 {
		t.Errorf("first view new count = %d, want 0", result.NewProposalsCount)
	}

	store.SetProposals(1, 5)
	result, err = service.GetJob(1, viewer)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if result.NewProposalsCount != 3 {
		t.Errorf("new count = %d, want 3", result.NewProposalsCount)
	}

	// Withdrawn proposals surface as a negative delta.
	store.SetProposals(1, 4)
	result, err = service.GetJob(1, viewer)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if result.NewProposalsCount != -1 {
		t.Errorf("new count = %d, want -1", result.NewProposalsCount)
	}
}

func TestGetJobAnonymousCheckpointKeyedByIP(t *testing.T) {
	store := NewMockJobStore()
	store.AddJob(1, 3)
	service := newJobReadServiceForTest(store)

	if _, err := service.GetJob(1, models.AnonymousViewer("203.0.113.7")); err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}

	v, ok := store.views[viewerIdentityKey(1, models.AnonymousViewer("203.0.113.7"))]
	if !ok {
		t.Fatal("expected IP-keyed checkpoint")
	}
	if v.UserID != nil {
		t.Error("anonymous checkpoint must not carry a user id")
	}
	if v.IPAddress == nil || *v.IPAddress != "203.0.113.7" {
		t.Errorf("checkpoint ip = %v, want 203.0.113.7", v.IPAddress)
	}
}

func TestGetJobNotFound(t *testing.T) {
	store := NewMockJobStore()
	service := newJobReadServiceForTest(store)

	_, err := service.GetJob(5, models.AnonymousViewer("203.0.113.1"))
	nf, ok := AsNotFound(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "job" || len(nf.IDs) != 1 || nf.IDs[0] != 5 {
		t.Errorf("got kind %q ids %v, want job [5]", nf.Kind, nf.IDs)
	}
}

func TestMarkJobsViewedMissingIDsFailWholeBatch(t *testing.T) {
	store := NewMockJobStore()
	store.AddJob(1, 3)
	service := newJobReadServiceForTest(store)

	err := service.MarkViewed([]uint{1, 4}, models.AuthenticatedViewer(10, "203.0.113.1"))
	nf, ok := AsNotFound(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(nf.IDs) != 1 || nf.IDs[0] != 4 {
		t.Errorf("ids = %v, want [4]", nf.IDs)
	}
	if len(store.views) != 0 {
		t.Errorf("checkpoint count = %d, want 0", len(store.views))
	}
}

func TestListJobsPaginationTotals(t *testing.T) {
	store := NewMockJobStore()
	for i := uint(1); i <= 5; i++ {
		store.AddJob(i, 0)
	}
	service := newJobReadServiceForTest(store)

	result, err := service.ListJobs(repository.JobListParams{
		Viewer: models.AnonymousViewer("203.0.113.1"),
		Offset: 3,
		Limit:  3,
	})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(result.Objects) != 2 {
		t.Errorf("objects = %d, want 2", len(result.Objects))
	}
	if result.TotalCount != 5 {
		t.Errorf("total = %d, want 5", result.TotalCount)
	}
	if store.createCalls != 0 {
		t.Error("listing must not create checkpoints")
	}
}
