// Package lifecycle computes tournament status from wall-clock time and data
// presence. It is deliberately pure: every input is a parameter, so the state
// machine can be tested without touching the database or the sheet source.
package lifecycle

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a tournament.
type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusActive    Status = "ACTIVE"
	StatusClosed    Status = "CLOSED"
	StatusCompleted Status = "COMPLETED"
)

// timeLayouts are the accepted sheet time formats, tried in order. Times are
// naive wall-clock values; no timezone arithmetic is applied anywhere.
var timeLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"2006-01-02 15:04:05",
}

// ParseTime parses a sheet time cell. The zero time with ok=false means the
// cell was empty or unparseable.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Compute derives the status of a tournament. Terminal raw statuses are
// sticky: a manual CLOSED or COMPLETED in the sheet always wins. Otherwise
// the close and start instants gate CLOSED and ACTIVE, and a tournament
// without a bracket tab can never become ACTIVE.
func Compute(rawStatus string, start, close *time.Time, sheetName string, now time.Time) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(rawStatus))) {
	case StatusCompleted:
		return StatusCompleted
	case StatusClosed:
		return StatusClosed
	}
	if close != nil && !now.Before(*close) {
		return StatusClosed
	}
	if start != nil && !now.Before(*start) && strings.TrimSpace(sheetName) != "" {
		return StatusActive
	}
	return StatusPlanned
}
