package domain

import (
	"errors"
	"regexp"
)

var ErrDayNotFound = errors.New("day not found")
var ErrUnavailable = errors.New("schedule data unavailable")

// idPattern is the accepted shape for catalog identifiers. Anything outside it
// is treated as "no selection" by the query service, never as an error.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether s is a well-formed catalog identifier.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}

// Day is a parent selection in the cascading dropdown (e.g. "Monday").
// The catalog is read-only from this service's perspective.
type Day struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

// Schedule is a dependent record belonging to exactly one Day.
// SortOrder defines the total order within a day; ties break by ID.
type Schedule struct {
	ID        string `json:"id"`
	DayID     string `json:"day_id"`
	Label     string `json:"label"`
	Time      string `json:"time"`
	SortOrder int    `json:"sort_order"`
}
