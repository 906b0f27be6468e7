package service

import (
	"testing"

	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"github.com/DmitriiShilkin/creative-hub/internal/testutil"
	"gorm.io/gorm"
)

type MockFavoriteRepository struct {
	eventFavorites map[string]bool
	jobFavorites   map[string]bool
}

func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{
		eventFavorites: make(map[string]bool),
		jobFavorites:   make(map[string]bool),
	}
}

func (m *MockFavoriteRepository) AddEventFavorite(userID, eventID uint) error {
	key := participantKey(eventID, userID)
	if m.eventFavorites[key] {
		return repository.ErrAlreadyMarked
	}
	m.eventFavorites[key] = true
	return nil
}

func (m *MockFavoriteRepository) RemoveEventFavorite(userID, eventID uint) error {
	key := participantKey(eventID, userID)
	if !m.eventFavorites[key] {
		return gorm.ErrRecordNotFound
	}
	delete(m.eventFavorites, key)
	return nil
}

func (m *MockFavoriteRepository) AddJobFavorite(userID, jobID uint) error {
	key := participantKey(jobID, userID)
	if m.jobFavorites[key] {
		return repository.ErrAlreadyMarked
	}
	m.jobFavorites[key] = true
	return nil
}

func (m *MockFavoriteRepository) RemoveJobFavorite(userID, jobID uint) error {
	key := participantKey(jobID, userID)
	if !m.jobFavorites[key] {
		return gorm.ErrRecordNotFound
	}
	delete(m.jobFavorites, key)
	return nil
}

func newFavoriteFixture() (*FavoriteService, *MockFavoriteRepository, *MockEventRepository, *MockJobRepository) {
	favoriteRepo := NewMockFavoriteRepository()
	eventRepo := NewMockEventRepository()
	jobRepo := NewMockJobRepository()
	service := NewFavoriteService(favoriteRepo, eventRepo, jobRepo)
	return service, favoriteRepo, eventRepo, jobRepo
}

func TestAddEventFavorite(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	service, favoriteRepo, eventRepo, _ := newFavoriteFixture()
	eventRepo.Add(helper.CreateTestEvent(1, 2, ""))

	if err := service.AddEventFavorite(10, 1); err != nil {
		t.Fatalf("AddEventFavorite failed: %v", err)
	}
	if !favoriteRepo.eventFavorites[participantKey(1, 10)] {
		t.Error("expected favorite marker")
	}

	if err := service.AddEventFavorite(10, 1); err != ErrAlreadyFavorite {
		t.Errorf("duplicate favorite error = %v, want ErrAlreadyFavorite", err)
	}
}

func TestAddEventFavoriteUnknownEvent(t *testing.T) {
	service, _, _, _ := newFavoriteFixture()

	err := service.AddEventFavorite(10, 42)
	nf, ok := AsNotFound(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "event" || len(nf.IDs) != 1 || nf.IDs[0] != 42 {
		t.Errorf("got kind %q ids %v, want event [42]", nf.Kind, nf.IDs)
	}
}

func TestAddEventFavoriteDraftVisibility(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	service, _, eventRepo, _ := newFavoriteFixture()
	draft := helper.CreateTestEvent(1, 2, "")
	draft.IsDraft = true
	eventRepo.Add(draft)

	// Another user's draft looks nonexistent.
	if _, ok := AsNotFound(service.AddEventFavorite(10, 1)); !ok {
		t.Error("expected NotFoundError for another user's draft")
	}

	// The creator can see their own draft and favorite it.
	if err := service.AddEventFavorite(2, 1); err != nil {
		t.Errorf("creator favoriting own draft failed: %v", err)
	}
}

func TestRemoveEventFavorite(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	service, _, eventRepo, _ := newFavoriteFixture()
	eventRepo.Add(helper.CreateTestEvent(1, 2, ""))

	if err := service.RemoveEventFavorite(10, 1); err != ErrNotFavorite {
		t.Errorf("remove missing favorite error = %v, want ErrNotFavorite", err)
	}

	if err := service.AddEventFavorite(10, 1); err != nil {
		t.Fatalf("AddEventFavorite failed: %v", err)
	}
	if err := service.RemoveEventFavorite(10, 1); err != nil {
		t.Errorf("RemoveEventFavorite failed: %v", err)
	}
}

func TestJobFavoriteRoundTrip(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	service, _, _, jobRepo := newFavoriteFixture()
	jobRepo.Add(helper.CreateTestJob(1, 2, ""))

	if err := service.AddJobFavorite(10, 1); err != nil {
		t.Fatalf("AddJobFavorite failed: %v", err)
	}
	if err := service.AddJobFavorite(10, 1); err != ErrAlreadyFavorite {
		t.Errorf("duplicate favorite error = %v, want ErrAlreadyFavorite", err)
	}
	if err := service.RemoveJobFavorite(10, 1); err != nil {
		t.Errorf("RemoveJobFavorite failed: %v", err)
	}
	if err := service.RemoveJobFavorite(10, 1); err != ErrNotFavorite {
		t.Errorf("second remove error = %v, want ErrNotFavorite", err)
	}
}
