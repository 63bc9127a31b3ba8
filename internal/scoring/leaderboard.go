package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// Category filters tournaments for the global leaderboard views.
type Category string

const (
	CategoryOverall   Category = "Overall"
	CategoryATP250    Category = "ATP-250"
	CategoryATP500    Category = "ATP-500"
	CategoryATP1000   Category = "ATP-1000"
	CategoryGrandSlam Category = "Grand Slam"
)

// grandSlamTag is the sheet's marker for a Grand Slam tournament.
const grandSlamTag = "ТБШ"

// Matches reports whether a tournament with the given type string and tag
// belongs to the category. ATP categories match on the digit part of the
// type, case-insensitively, so "atp 250" and "ATP-250" both qualify.
func (c Category) Matches(tournamentType, tag string) bool {
	switch c {
	case "", CategoryOverall:
		return true
	case CategoryGrandSlam:
		return strings.Contains(tag, grandSlamTag) ||
			strings.Contains(strings.ToLower(tournamentType), "slam")
	default:
		digits := digitsOf(string(c))
		if digits == "" {
			return false
		}
		return strings.Contains(strings.ToLower(tournamentType), digits)
	}
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GlobalEntry is one row of a cross-tournament leaderboard view.
type GlobalEntry struct {
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name,omitempty"`
	Rank         int    `json:"rank"`
	Score        int    `json:"score"`
	CorrectPicks int    `json:"correct_picks"`
}

// GlobalLeaderboard sums each user's cached scores across the tournaments of
// one category and ranks the sums. Computed on demand, never persisted.
func (s *Service) GlobalLeaderboard(category Category) ([]GlobalEntry, error) {
	rows, err := s.store.GetAllScores()
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	byUser := make(map[int64]*GlobalEntry)
	for _, row := range rows {
		if !category.Matches(row.TournamentType, row.TournamentTag) {
			continue
		}
		entry, ok := byUser[row.UserID]
		if !ok {
			entry = &GlobalEntry{UserID: row.UserID, UserName: row.UserName}
			byUser[row.UserID] = entry
		}
		entry.Score += row.Score
		entry.CorrectPicks += row.CorrectPicks
	}

	entries := make([]GlobalEntry, 0, len(byUser))
	for _, e := range byUser {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].CorrectPicks != entries[j].CorrectPicks {
			return entries[i].CorrectPicks > entries[j].CorrectPicks
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
