package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by repositories alongside gorm.ErrRecordNotFound
var (
	ErrEventFull           = errors.New("event is full")
	ErrAlreadyJoined       = errors.New("already joined")
	ErrNotJoined           = errors.New("not joined")
	ErrCapacityBelowRoster = errors.New("capacity below current roster")
	ErrDuplicateEmail      = errors.New("email already registered")
)

// isUniqueViolation recognizes unique/primary key conflicts from postgres and sqlite
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// likePattern escapes LIKE wildcards so s matches as a literal substring.
// Callers compare LOWER(column) with LOWER(pattern) so both sides fold the same way:
// postgres folds all letters, SQLite only ASCII, so there "über" does not find "Über".
func likePattern(s string, prefixOnly bool) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	escaped := r.Replace(s)
	if prefixOnly {
		return escaped + "%"
	}
	return "%" + escaped + "%"
}
