package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"gorm.io/gorm"
)

// EventListingRow is the denormalized read shape of one event in the counter
// queries: the event columns, the live aggregates and the current viewer's
// checkpoint. One row per event, always — the participant and view joins are
// collapsed by the grouped aggregates, never returned raw.
type EventListingRow struct {
	ID          uint      `gorm:"column:id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	StartsAt    time.Time `gorm:"column:starts_at"`
	EndsAt      time.Time `gorm:"column:ends_at"`
	IsDraft     bool      `gorm:"column:is_draft"`
	IsArchived  bool      `gorm:"column:is_archived"`
	CreatorID   uint      `gorm:"column:creator_id"`

	ParticipantsCount    int64 `gorm:"column:participants_count"`
	Views                int64 `gorm:"column:views"`
	NewParticipantsCount int64 `gorm:"column:new_participants_count"`

	CheckpointID     sql.NullInt64 `gorm:"column:checkpoint_id"`
	ParticipantsSeen sql.NullInt64 `gorm:"column:participants_seen"`

	IsViewed    bool `gorm:"column:is_viewed"`
	IsFavorite  bool `gorm:"column:is_favorite"`
	IsAttending bool `gorm:"column:is_attending"`

	TotalCount int64 `gorm:"column:total_count"`
}

// EventListParams drives one page of the event listing.
type EventListParams struct {
	Viewer models.Viewer

	// AuthorID restricts the public listing to one creator's published items.
	AuthorID *uint

	// AuthorView switches to the creator's own listing: drafts and archived
	// items included, optionally narrowed by IsDraft / IsArchived. The viewer
	// must be the author.
	AuthorView bool
	IsDraft    *bool
	IsArchived *bool

	FavoritesOnly bool
	UpcomingOnly  bool

	Offset int
	Limit  int

	// Scopes carries externally built filter predicates.
	Scopes []Scope
}

// Column lists shared by the select and group-by clauses. Every selected
// non-aggregate column must be listed in eventGroupColumns or the grouped
// query either errors out or fans out into duplicated rows; the shape test
// pins this down.
var eventItemColumns = []string{
	"events.id",
	"events.created_at",
	"events.updated_at",
	"events.title",
	"events.description",
	"events.starts_at",
	"events.ends_at",
	"events.is_draft",
	"events.is_archived",
	"events.creator_id",
}

var eventCheckpointColumns = []string{
	"my.id",
	"my.participants_seen",
}

var eventAggregateSelects = []string{
	"COUNT(DISTINCT ep.user_id) AS participants_count",
	"COUNT(DISTINCT av.id) AS views",
	"COUNT(DISTINCT ep.user_id) - COALESCE(my.participants_seen, 0) AS new_participants_count",
}

func eventGroupColumns() []string {
	return append(append([]string{}, eventItemColumns...), eventCheckpointColumns...)
}

func eventListingSelect(withTotal bool) string {
	parts := append([]string{}, eventItemColumns...)
	parts = append(parts,
		"my.id AS checkpoint_id",
		"my.participants_seen AS participants_seen",
	)
	parts = append(parts, eventAggregateSelects...)
	parts = append(parts,
		"my.id IS NOT NULL AS is_viewed",
		"EXISTS(SELECT 1 FROM event_favorites ef WHERE ef.event_id = events.id AND ef.user_id = ?) AS is_favorite",
		"EXISTS(SELECT 1 FROM event_participants ap WHERE ap.event_id = events.id AND ap.user_id = ?) AS is_attending",
	)
	if withTotal {
		parts = append(parts, "COUNT(events.id) OVER () AS total_count")
	}
	return strings.Join(parts, ", ")
}

// eventViewerJoin joins the current viewer's checkpoint on exactly one
// identity axis: user id when authenticated, otherwise anonymous rows for the
// viewer's IP. Joining both axes at once could match two checkpoint rows for
// a viewer who browsed anonymously before logging in, fanning the item out.
func eventViewerJoin(viewer models.Viewer) (string, []interface{}) {
	if viewer.Authenticated() {
		return "LEFT JOIN event_views my ON my.event_id = events.id AND my.user_id = ?",
			[]interface{}{*viewer.UserID}
	}
	return "LEFT JOIN event_views my ON my.event_id = events.id AND my.user_id IS NULL AND my.ip_address = ?",
		[]interface{}{viewer.IP}
}

type EventListingRepository struct {
	db *gorm.DB
}

func NewEventListingRepository(db *gorm.DB) *EventListingRepository {
	return &EventListingRepository{db: db}
}

func (r *EventListingRepository) dbOr(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *EventListingRepository) base(tx *gorm.DB, viewer models.Viewer, withTotal bool) *gorm.DB {
	joinSQL, joinArgs := eventViewerJoin(viewer)
	var flagUserID interface{}
	if viewer.UserID != nil {
		flagUserID = *viewer.UserID
	}
	return r.dbOr(tx).
		Model(&models.Event{}).
		Select(eventListingSelect(withTotal), flagUserID, flagUserID).
		Joins("LEFT JOIN event_participants ep ON ep.event_id = events.id").
		Joins("LEFT JOIN event_views av ON av.event_id = events.id").
		Joins(joinSQL, joinArgs...).
		Group(strings.Join(eventGroupColumns(), ", "))
}

// FindWithCounters returns one event with live counters and the viewer's
// checkpoint, or gorm.ErrRecordNotFound when the id does not exist or the
// item is a draft belonging to someone else.
func (r *EventListingRepository) FindWithCounters(tx *gorm.DB, eventID uint, viewer models.Viewer) (*EventListingRow, error) {
	var row EventListingRow
	err := r.base(tx, viewer, false).
		Where("events.id = ?", eventID).
		Scopes(DetailVisibility("events", "creator_id", viewer.UserID)).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// FindByIDsWithCounters returns the publicly visible subset of the requested
// events with counters and checkpoints. Callers compare the result against
// the requested set to report missing ids.
func (r *EventListingRepository) FindByIDsWithCounters(tx *gorm.DB, ids []uint, viewer models.Viewer) ([]EventListingRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []EventListingRow
	err := r.base(tx, viewer, false).
		Where("events.id IN ?", ids).
		Scopes(PublicOnly("events")).
		Scan(&rows).Error
	return rows, err
}

// ListWithCounters returns one page plus the total over the filtered,
// unpaginated set (window function, so the total honors the same WHERE
// clause as the page).
func (r *EventListingRepository) ListWithCounters(tx *gorm.DB, p EventListParams) ([]EventListingRow, int64, error) {
	// The filters touch only event columns and EXISTS subqueries, so the
	// same closure scopes both the page query and the fallback count.
	filter := func(q *gorm.DB) *gorm.DB {
		switch {
		case p.AuthorView:
			var authorID uint
			if p.Viewer.UserID != nil {
				authorID = *p.Viewer.UserID
			}
			q = q.Scopes(AuthorOnly("events", "creator_id", authorID, p.IsDraft, p.IsArchived))
		default:
			q = q.Scopes(PublicOnly("events"))
			if p.AuthorID != nil {
				q = q.Where("events.creator_id = ?", *p.AuthorID)
			}
		}

		if p.UpcomingOnly {
			q = q.Where("events.ends_at > NOW()")
		}
		if p.FavoritesOnly {
			var favUserID interface{}
			if p.Viewer.UserID != nil {
				favUserID = *p.Viewer.UserID
			}
			q = q.Where("EXISTS(SELECT 1 FROM event_favorites ff WHERE ff.event_id = events.id AND ff.user_id = ?)", favUserID)
		}
		for _, scope := range p.Scopes {
			q = scope(q)
		}
		return q
	}

	var rows []EventListingRow
	err := filter(r.base(tx, p.Viewer, true)).
		Order("events.created_at DESC, events.id DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	if len(rows) > 0 {
		return rows, rows[0].TotalCount, nil
	}

	// An empty page past the end of a non-empty set has no row to carry the
	// window total, so count the filtered set directly.
	var total int64
	if err := filter(r.dbOr(tx).Model(&models.Event{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
