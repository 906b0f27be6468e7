package repository

import (
	"gorm.io/gorm"
)

// Scope is a composable query predicate. External concerns (city filters,
// search, specialization filters) hand these to the listing repositories
// instead of touching the query builders directly.
type Scope func(*gorm.DB) *gorm.DB

// PublicOnly hides drafts from a public feed. Archived items stay visible:
// once published, an item remains in the feed even after archiving.
func PublicOnly(table string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table + ".is_draft = false")
	}
}

// DetailVisibility is the single-item read predicate: drafts are readable
// only by their creator.
func DetailVisibility(table, creatorColumn string, viewerUserID *uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if viewerUserID == nil {
			return db.Where(table + ".is_draft = false")
		}
		return db.Where(table+".is_draft = false OR "+table+"."+creatorColumn+" = ?", *viewerUserID)
	}
}

// AuthorOnly scopes the author view to the author's own items; drafts and
// archived items are included and can be narrowed with the optional filters.
func AuthorOnly(table, creatorColumn string, authorID uint, isDraft, isArchived *bool) Scope {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where(table+"."+creatorColumn+" = ?", authorID)
		if isDraft != nil {
			db = db.Where(table+".is_draft = ?", *isDraft)
		}
		if isArchived != nil {
			db = db.Where(table+".is_archived = ?", *isArchived)
		}
		return db
	}
}

// CanView is the in-memory counterpart of DetailVisibility, used where the
// item is already loaded.
func CanView(isDraft bool, creatorID uint, viewerUserID *uint) bool {
	if !isDraft {
		return true
	}
	return viewerUserID != nil && *viewerUserID == creatorID
}
