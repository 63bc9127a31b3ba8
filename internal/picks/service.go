// Package picks validates and persists user predictions, enforcing the
// tournament lifecycle gate: picks are writable only while ACTIVE.
package picks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
	"github.com/nvoropaev/bracketeer/internal/metrics"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

var (
	// ErrMalformed means the pick request itself is invalid.
	ErrMalformed = errors.New("malformed pick")
	// ErrTournamentNotFound means the referenced tournament does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrPicksClosed means the tournament is not ACTIVE.
	ErrPicksClosed = errors.New("picks are closed")
	// ErrMatchDecided means the slot already has a winner.
	ErrMatchDecided = errors.New("match already decided")
)

// placeholder used for player snapshots when the bracket slot is not known
// yet; deep rounds can be predicted before the draw fills in.
const placeholder = "TBD"

// Request is one slot prediction as submitted by the client.
type Request struct {
	TournamentID    int64  `json:"tournament_id"`
	Round           string `json:"round"`
	MatchNumber     int    `json:"match_number"`
	PredictedWinner string `json:"predicted_winner"`
}

// Store defines the database operations required by the pick service.
type Store interface {
	GetTournament(id int64) (*tournament.Tournament, error)
	GetDrawMatches(tournamentID int64) ([]draw.Match, error)
	UpsertPick(p tournament.UserPick) error
	GetUserPicks(userID, tournamentID int64) ([]tournament.UserPick, error)
}

// Service validates and persists picks.
type Service struct {
	store   Store
	metrics metrics.Metrics
}

// New creates a new pick Service.
func New(store Store, metrics metrics.Metrics) *Service {
	return &Service{store: store, metrics: metrics}
}

// Save validates and persists a batch of picks for one user. The batch fails
// fast: the first invalid pick aborts, already-persisted picks stay.
func (s *Service) Save(userID int64, reqs []Request) ([]tournament.UserPick, error) {
	saved := make([]tournament.UserPick, 0, len(reqs))
	for _, req := range reqs {
		pick, err := s.saveOne(userID, req)
		if err != nil {
			s.metrics.IncPicksRejected()
			return saved, err
		}
		s.metrics.IncPicksSaved()
		saved = append(saved, *pick)
	}
	return saved, nil
}

func (s *Service) saveOne(userID int64, req Request) (*tournament.UserPick, error) {
	round, ok := draw.ParseRound(strings.TrimSpace(req.Round))
	if !ok {
		return nil, fmt.Errorf("%w: unknown round %q", ErrMalformed, req.Round)
	}
	if req.MatchNumber < 1 || req.MatchNumber > round.MatchCount() {
		return nil, fmt.Errorf("%w: match number %d out of range for %s", ErrMalformed, req.MatchNumber, round)
	}
	if strings.TrimSpace(req.PredictedWinner) == "" {
		return nil, fmt.Errorf("%w: empty predicted winner", ErrMalformed)
	}

	t, err := s.store.GetTournament(req.TournamentID)
	if err != nil {
		if errors.Is(err, tournament.ErrNotFound) {
			return nil, fmt.Errorf("%w: tournament %d", ErrTournamentNotFound, req.TournamentID)
		}
		return nil, err
	}
	if t.Status != lifecycle.StatusActive {
		return nil, fmt.Errorf("%w: tournament %d is %s", ErrPicksClosed, t.ID, t.Status)
	}

	// Snapshot the slot's players; a slot the draw does not know yet gets
	// placeholder snapshots instead of a rejection.
	player1, player2 := placeholder, placeholder
	matches, err := s.store.GetDrawMatches(req.TournamentID)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m.Round != round || m.MatchNumber != req.MatchNumber {
			continue
		}
		if m.Winner != "" {
			return nil, fmt.Errorf("%w: %s match %d", ErrMatchDecided, round, req.MatchNumber)
		}
		if m.Player1 != "" {
			player1 = m.Player1
		}
		if m.Player2 != "" {
			player2 = m.Player2
		}
		break
	}

	pick := tournament.UserPick{
		UserID:          userID,
		TournamentID:    req.TournamentID,
		Round:           round,
		MatchNumber:     req.MatchNumber,
		PredictedWinner: strings.TrimSpace(req.PredictedWinner),
		Player1:         player1,
		Player2:         player2,
	}
	if err := s.store.UpsertPick(pick); err != nil {
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}
	log.Debug("Saved pick", "userID", userID, "tournamentID", pick.TournamentID, "round", pick.Round, "match", pick.MatchNumber)
	return &pick, nil
}

// ForUser returns the user's picks for one tournament.
func (s *Service) ForUser(userID, tournamentID int64) ([]tournament.UserPick, error) {
	return s.store.GetUserPicks(userID, tournamentID)
}
