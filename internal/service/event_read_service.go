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

// EventReadService is the read path for events: single reads that upsert the
// viewer's checkpoint, paginated listings, and the explicit batch
// "mark viewed" call. List reads never write; only the single read and the
// batch call touch checkpoints, and each runs inside one transaction so a
// cancelled request leaves no half-written checkpoint behind.
type EventReadService struct {
	db          *gorm.DB
	listingRepo repository.EventListingRepositoryInterface
	viewRepo    repository.EventViewRepositoryInterface
	browsing    *cache.BrowsingCache
}

func NewEventReadService(
	db *gorm.DB,
	listingRepo repository.EventListingRepositoryInterface,
	viewRepo repository.EventViewRepositoryInterface,
	browsing *cache.BrowsingCache,
) *EventReadService {
	return &EventReadService{
		db:          db,
		listingRepo: listingRepo,
		viewRepo:    viewRepo,
		browsing:    browsing,
	}
}

func (s *EventReadService) inTx(fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.Transaction(fn)
}

// GetEvent returns one event with viewer-correct counters and, as a side
// effect, creates or refreshes the viewer's checkpoint.
func (s *EventReadService) GetEvent(eventID uint, viewer models.Viewer) (*models.EventWithCounters, error) {
	var out *models.EventWithCounters
	err := s.inTx(func(tx *gorm.DB) error {
		row, err := s.listingRepo.FindWithCounters(tx, eventID, viewer)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Kind: "event", IDs: []uint{eventID}}
			}
			return err
		}

		newCount, err := s.applyCheckpoint(tx, row, viewer)
		if err != nil {
			return err
		}

		result := eventRowToResponse(row)
		result.NewParticipantsCount = newCount
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.touchBrowsing(eventID, viewer)
	out.BrowsingNow = s.browsingCount(eventID)
	return out, nil
}

// ListEvents returns one page of events. No checkpoints are written; the
// per-row new counts are relative to whatever checkpoint each viewer already
// has (the full live count when they have none).
func (s *EventReadService) ListEvents(p repository.EventListParams) (*models.EventListResponse, error) {
	rows, total, err := s.listingRepo.ListWithCounters(nil, p)
	if err != nil {
		return nil, err
	}

	resp := &models.EventListResponse{
		Objects:    make([]models.EventWithCounters, 0, len(rows)),
		TotalCount: total,
	}
	for i := range rows {
		ev := eventRowToResponse(&rows[i])
		ev.BrowsingNow = s.browsingCount(ev.ID)
		resp.Objects = append(resp.Objects, ev)
	}
	return resp, nil
}

// MarkViewed upserts the viewer's checkpoint for every requested event in one
// transaction. If any id is unknown or not publicly visible the whole batch
// fails with the full list of missing ids and nothing is written.
func (s *EventReadService) MarkViewed(eventIDs []uint, viewer models.Viewer) error {
	ids := dedupeIDs(eventIDs)
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
			return &NotFoundError{Kind: "event", IDs: missing}
		}

		for i := range rows {
			if _, err := s.applyCheckpoint(tx, &rows[i], viewer); err != nil {
				return err
			}
		}
		return nil
	})
}

// applyCheckpoint implements the per-item checkpoint rules: create on first
// resolvable view (reporting zero new), refresh when the live count moved
// (reporting the raw signed difference), and leave matching checkpoints
// untouched. Participants can leave an event, so the difference may be
// negative; it is passed through unclamped.
func (s *EventReadService) applyCheckpoint(tx *gorm.DB, row *repository.EventListingRow, viewer models.Viewer) (int64, error) {
	live := row.ParticipantsCount

	if !row.CheckpointID.Valid {
		if !viewer.Resolvable() {
			return 0, nil
		}
		view := &models.EventView{
			EventID:          row.ID,
			ParticipantsSeen: live,
		}
		if viewer.Authenticated() {
			view.UserID = viewer.UserID
		} else {
			ip := viewer.IP
			view.IPAddress = &ip
		}
		if err := s.viewRepo.Create(tx, view); err != nil {
			if errors.Is(err, repository.ErrCheckpointExists) {
				// Benign first-view race: a concurrent request inserted the
				// checkpoint between our read and write.
				log.Printf("event %d: checkpoint already created for %s", row.ID, viewer.Key())
				return 0, nil
			}
			return 0, err
		}
		return 0, nil
	}

	seen := row.ParticipantsSeen.Int64
	if seen == live {
		return 0, nil
	}
	if err := s.viewRepo.UpdateSeen(tx, uint(row.CheckpointID.Int64), live); err != nil {
		return 0, err
	}
	return live - seen, nil
}

func (s *EventReadService) touchBrowsing(eventID uint, viewer models.Viewer) {
	if s.browsing == nil || !viewer.Resolvable() {
		return
	}
	if err := s.browsing.Touch(cache.KindEvent, eventID, viewer.Key()); err != nil {
		log.Printf("browsing tracker: touch event %d failed: %v", eventID, err)
	}
}

// StopBrowsing drops the viewer's presence entry ahead of its TTL when the
// client reports leaving the page. Best-effort like the rest of the tracker.
func (s *EventReadService) StopBrowsing(eventID uint, viewer models.Viewer) {
	if s.browsing == nil || !viewer.Resolvable() {
		return
	}
	if err := s.browsing.Forget(cache.KindEvent, eventID, viewer.Key()); err != nil {
		log.Printf("browsing tracker: forget event %d failed: %v", eventID, err)
	}
}

func (s *EventReadService) browsingCount(eventID uint) int64 {
	if s.browsing == nil {
		return 0
	}
	n, err := s.browsing.Count(cache.KindEvent, eventID)
	if err != nil {
		log.Printf("browsing tracker: count event %d failed: %v", eventID, err)
		return 0
	}
	return n
}

func eventRowToResponse(row *repository.EventListingRow) models.EventWithCounters {
	return models.EventWithCounters{
		ID:                   row.ID,
		CreatedAt:            row.CreatedAt,
		Title:                row.Title,
		Description:          row.Description,
		StartsAt:             row.StartsAt,
		EndsAt:               row.EndsAt,
		IsDraft:              row.IsDraft,
		IsArchived:           row.IsArchived,
		CreatorID:            row.CreatorID,
		ParticipantsCount:    row.ParticipantsCount,
		Views:                row.Views,
		NewParticipantsCount: row.NewParticipantsCount,
		IsFavorite:           row.IsFavorite,
		IsAttending:          row.IsAttending,
		IsViewed:             row.IsViewed,
	}
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
