package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

// tournamentsTab is the tab listing one row per tournament.
const tournamentsTab = "tournaments"

// Fixed column order of the tournaments tab.
const (
	colID = iota
	colName
	colDates
	colStatus
	colSheetName
	colStartingRound
	colType
	colStart
	colClose
	colTag
	colSurface
	colDefendingChampion
	colDescription
	colMatchesCount
	colMonth
	colImageURL
)

// parseTournamentRow parses one row of the tournaments tab. skip=true means
// the row is not a tournament at all (header, separator, anything whose first
// column is not a positive integer); an error means a tournament row that
// could not be understood.
func parseTournamentRow(row []string) (t *tournament.Tournament, skip bool, err error) {
	id, convErr := strconv.ParseInt(strings.TrimSpace(col(row, colID)), 10, 64)
	if convErr != nil || id <= 0 {
		return nil, true, nil
	}

	name := strings.TrimSpace(col(row, colName))
	if name == "" {
		return nil, false, fmt.Errorf("tournament %d has no name", id)
	}

	t = &tournament.Tournament{
		ID:                id,
		Name:              name,
		Dates:             strings.TrimSpace(col(row, colDates)),
		RawStatus:         strings.TrimSpace(col(row, colStatus)),
		SheetName:         strings.TrimSpace(col(row, colSheetName)),
		Type:              strings.TrimSpace(col(row, colType)),
		Tag:               strings.TrimSpace(col(row, colTag)),
		Surface:           strings.TrimSpace(col(row, colSurface)),
		DefendingChampion: strings.TrimSpace(col(row, colDefendingChampion)),
		Description:       strings.TrimSpace(col(row, colDescription)),
		Month:             strings.TrimSpace(col(row, colMonth)),
		ImageURL:          strings.TrimSpace(col(row, colImageURL)),
	}

	if start, ok := lifecycle.ParseTime(col(row, colStart)); ok {
		t.StartsAt = &start
	}
	if close, ok := lifecycle.ParseTime(col(row, colClose)); ok {
		t.ClosesAt = &close
	}
	if count, err := strconv.Atoi(strings.TrimSpace(col(row, colMatchesCount))); err == nil {
		t.MatchesCount = count
	}

	t.DrawSize = inferDrawSize(t.Type, t.Tag)
	// An explicit starting-round column corrects a mis-tagged tournament.
	if round, ok := draw.ParseRound(strings.TrimSpace(col(row, colStartingRound))); ok {
		if size, ok := draw.DrawSizeForRound(round); ok && size >= 32 {
			t.DrawSize = size
		}
	}
	start, _ := draw.StartingRound(t.DrawSize)
	t.StartingRound = start

	return t, false, nil
}

// inferDrawSize guesses the bracket size from the tournament type and tag:
// a 1000-level event plays 64, a slam 128, everything else 32.
func inferDrawSize(tournamentType, tag string) int {
	lower := strings.ToLower(tournamentType)
	switch {
	case strings.Contains(lower, "slam") || strings.Contains(tag, "ТБШ"):
		return 128
	case strings.Contains(lower, "1000"):
		return 64
	default:
		return 32
	}
}

func col(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
