// Package scoring recomputes per-tournament user scores from the draw and
// rebuilds leaderboards. Scores are derived data: every computation here is a
// pure function of picks plus draw, cached in the store.
package scoring

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/metrics"
	"github.com/nvoropaev/bracketeer/internal/names"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

// weights double per round: a correct Champion pick is worth the whole early
// bracket combined.
var weights = map[draw.Round]int{
	draw.R128:     1,
	draw.R64:      2,
	draw.R32:      4,
	draw.R16:      8,
	draw.QF:       16,
	draw.SF:       32,
	draw.F:        64,
	draw.Champion: 128,
}

// Weight returns the points a correct pick earns at the given round.
func Weight(r draw.Round) int {
	return weights[r]
}

// Store defines the database operations required by the scoring engine.
type Store interface {
	GetDrawMatches(tournamentID int64) ([]draw.Match, error)
	GetTournamentPicks(tournamentID int64) ([]tournament.UserPick, error)
	UpsertScore(s tournament.UserScore) error
	GetScores(tournamentID int64) ([]tournament.UserScore, error)
	GetAllScores() ([]tournament.ScoreRow, error)
	ReplaceLeaderboard(tournamentID int64, entries []tournament.LeaderboardEntry) error
}

// Service is the scoring engine.
type Service struct {
	store   Store
	metrics metrics.Metrics
}

// New creates a new scoring Service.
func New(store Store, metrics metrics.Metrics) *Service {
	return &Service{store: store, metrics: metrics}
}

type slotKey struct {
	round  draw.Round
	number int
}

// Recompute rebuilds every user's cached score for one tournament from the
// decided draw matches and the users' picks.
func (s *Service) Recompute(tournamentID int64) error {
	start := time.Now()
	defer func() {
		s.metrics.ObserveScoringDuration(time.Since(start).Seconds())
	}()

	matches, err := s.store.GetDrawMatches(tournamentID)
	if err != nil {
		return fmt.Errorf("failed to load draw: %w", err)
	}
	winners := make(map[slotKey]string)
	for _, m := range matches {
		if m.Winner != "" {
			winners[slotKey{m.Round, m.MatchNumber}] = m.Winner
		}
	}

	picks, err := s.store.GetTournamentPicks(tournamentID)
	if err != nil {
		return fmt.Errorf("failed to load picks: %w", err)
	}

	totals := make(map[int64]*tournament.UserScore)
	for _, p := range picks {
		total, ok := totals[p.UserID]
		if !ok {
			total = &tournament.UserScore{UserID: p.UserID, TournamentID: tournamentID}
			totals[p.UserID] = total
		}
		winner, decided := winners[slotKey{p.Round, p.MatchNumber}]
		if !decided {
			continue
		}
		// same_player rather than plain equality: a pick of "Sinner" must
		// score against a winner recorded as "Jannik Sinner".
		if names.SamePlayer(p.PredictedWinner, winner) {
			total.Score += Weight(p.Round)
			total.CorrectPicks++
		}
	}

	for _, total := range totals {
		if err := s.store.UpsertScore(*total); err != nil {
			return fmt.Errorf("failed to upsert score for user %d: %w", total.UserID, err)
		}
	}
	log.Debug("Recomputed scores", "tournamentID", tournamentID, "users", len(totals), "decided_matches", len(winners))
	return nil
}

// RebuildLeaderboard replaces the tournament's leaderboard with dense 1-based
// ranks over (score desc, correct_picks desc). Delete and insert happen in
// one transaction inside the store.
func (s *Service) RebuildLeaderboard(tournamentID int64) error {
	scores, err := s.store.GetScores(tournamentID)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	entries := make([]tournament.LeaderboardEntry, 0, len(scores))
	for i, sc := range scores {
		entries = append(entries, tournament.LeaderboardEntry{
			TournamentID: tournamentID,
			UserID:       sc.UserID,
			Rank:         i + 1,
			Score:        sc.Score,
			CorrectPicks: sc.CorrectPicks,
		})
	}
	if err := s.store.ReplaceLeaderboard(tournamentID, entries); err != nil {
		return fmt.Errorf("failed to replace leaderboard: %w", err)
	}
	s.metrics.IncLeaderboardRebuilds()
	return nil
}
