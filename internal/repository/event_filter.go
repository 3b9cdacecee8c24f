package repository

import (
	"time"

	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
)

// EventFilter narrows the event list. Zero-valued fields are ignored and all set fields must match.
type EventFilter struct {
	// From keeps events at or after this instant
	From *time.Time
	// Text is a case-insensitive substring of title or location
	Text string
	// Date keeps events on this calendar day (UTC)
	Date *time.Time
	Type domain.EventType
	CreatorID uint
}

// Scopes returns the GORM scopes implementing the filter
func (f EventFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if f.From != nil {
		from := f.From.UTC()
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("events.datetime >= ?", from)
		})
	}
	if f.Text != "" {
		pattern := likePattern(f.Text, false)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(`(LOWER(events.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(events.location) LIKE LOWER(?) ESCAPE '\')`, pattern, pattern)
		})
	}
	if f.Date != nil {
		start, end := DayRange(*f.Date)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("events.datetime >= ? AND events.datetime < ?", start, end)
		})
	}
	if f.Type != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("events.type = ?", f.Type)
		})
	}
	if f.CreatorID != 0 {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("events.creator_id = ?", f.CreatorID)
		})
	}

	return scopes
}

// DayRange returns the half-open UTC interval [start, start+24h) containing t's calendar date
func DayRange(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// chronological orders by datetime then id so ties are stable
func chronological(db *gorm.DB) *gorm.DB {
	return db.Order("events.datetime ASC").Order("events.id ASC")
}
