// Package ingest drives the sync cycle: it reads the tournaments tab, upserts
// tournament metadata, rebuilds each visible draw and triggers rescoring. A
// failing tournament never takes the rest of the cycle down with it.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
	"github.com/nvoropaev/bracketeer/internal/metrics"
	"github.com/nvoropaev/bracketeer/internal/sheets"
	"github.com/nvoropaev/bracketeer/internal/telegram"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

// Store defines the database operations the orchestrator needs.
type Store interface {
	UpsertTournament(t *tournament.Tournament) error
	GetTournament(id int64) (*tournament.Tournament, error)
	SetTournamentStatus(id int64, status lifecycle.Status) error
	UpsertDraw(tournamentID int64, matches []draw.Match) error
}

// Scoring is the slice of the scoring engine the orchestrator calls after
// every draw rebuild.
type Scoring interface {
	Recompute(tournamentID int64) error
	RebuildLeaderboard(tournamentID int64) error
}

// Orchestrator runs the periodic sync against the configured spreadsheet.
type Orchestrator struct {
	source        sheets.Source
	store         Store
	scoring       Scoring
	metrics       metrics.Metrics
	notifier      telegram.Notifier
	spreadsheetID string
	now           func() time.Time
}

// New creates an Orchestrator.
func New(source sheets.Source, store Store, scoring Scoring, metrics metrics.Metrics, notifier telegram.Notifier, spreadsheetID string) *Orchestrator {
	return &Orchestrator{
		source:        source,
		store:         store,
		scoring:       scoring,
		metrics:       metrics,
		notifier:      notifier,
		spreadsheetID: spreadsheetID,
		now:           time.Now,
	}
}

// RunCycle performs one full sync pass. An error is returned only when the
// tournaments tab itself cannot be read; per-tournament failures are logged,
// counted and skipped. Cancellation is honored between tournaments, never in
// the middle of one.
func (o *Orchestrator) RunCycle(ctx context.Context) error {
	runID := uuid.NewString()
	o.metrics.IncSyncCycles()
	log.Info("Sync cycle started", "runID", runID)

	rows, err := o.source.GetRows(o.spreadsheetID, tournamentsTab)
	if err != nil {
		return fmt.Errorf("failed to read tournaments tab: %w", err)
	}

	now := o.now()
	var visible []*tournament.Tournament
	for i, row := range rows {
		t, skip, err := parseTournamentRow(row)
		if skip {
			continue
		}
		if err != nil {
			log.Warn("Skipping unparseable tournament row", "runID", runID, "row", i, "error", err)
			o.metrics.IncRowsFailed()
			continue
		}
		o.metrics.IncRowsParsed()

		t.Status = lifecycle.Compute(t.RawStatus, t.StartsAt, t.ClosesAt, t.SheetName, now)
		// A tournament completed by an earlier champion observation stays
		// COMPLETED even when the sheet's status column never says so.
		if existing, err := o.store.GetTournament(t.ID); err == nil && existing.Status == lifecycle.StatusCompleted {
			t.Status = lifecycle.StatusCompleted
		}
		if err := o.store.UpsertTournament(t); err != nil {
			log.Error("Failed to upsert tournament", "runID", runID, "tournamentID", t.ID, "error", err)
			o.metrics.IncTournamentsFailed()
			continue
		}
		if t.Status != lifecycle.StatusPlanned && t.SheetName != "" {
			visible = append(visible, t)
		}
	}

	for _, t := range visible {
		select {
		case <-ctx.Done():
			log.Info("Sync cycle interrupted", "runID", runID)
			return ctx.Err()
		default:
		}
		if err := o.ingestTournament(t); err != nil {
			log.Error("Failed to sync tournament", "runID", runID, "tournamentID", t.ID, "name", t.Name, "error", err)
			o.metrics.IncTournamentsFailed()
			continue
		}
		o.metrics.IncTournamentsSynced()
	}

	log.Info("Sync cycle finished", "runID", runID, "tournaments", len(visible))
	return nil
}

// ingestTournament rebuilds one tournament's draw from its sheet tab and
// recomputes scores and the leaderboard.
func (o *Orchestrator) ingestTournament(t *tournament.Tournament) error {
	grid, err := o.source.GetRows(o.spreadsheetID, t.SheetName)
	if err != nil {
		return fmt.Errorf("failed to read draw tab %q: %w", t.SheetName, err)
	}

	bracket, err := draw.Build(grid, t.DrawSize)
	if err != nil {
		return fmt.Errorf("failed to build draw: %w", err)
	}

	matches := bracket.Matches
	if bracket.Champion != "" {
		matches = append(matches, draw.Match{
			Round:       draw.Champion,
			MatchNumber: 1,
			Player1:     bracket.Champion,
			Winner:      bracket.Champion,
		})
	}
	if err := o.store.UpsertDraw(t.ID, matches); err != nil {
		return fmt.Errorf("failed to persist draw: %w", err)
	}

	if bracket.Champion != "" && t.Status != lifecycle.StatusCompleted {
		if err := o.store.SetTournamentStatus(t.ID, lifecycle.StatusCompleted); err != nil {
			return fmt.Errorf("failed to complete tournament: %w", err)
		}
		t.Status = lifecycle.StatusCompleted
		if err := o.notifier.SendMessage(fmt.Sprintf("🏆 %s is over: %s takes the title", t.Name, bracket.Champion)); err != nil {
			log.Warn("Failed to send champion notification", "tournamentID", t.ID, "error", err)
		}
	}

	if err := o.scoring.Recompute(t.ID); err != nil {
		return fmt.Errorf("failed to recompute scores: %w", err)
	}
	if err := o.scoring.RebuildLeaderboard(t.ID); err != nil {
		return fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}
	return nil
}

// Run executes one cycle immediately, then repeats on the given interval
// until the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context, interval time.Duration) {
	log.Info("Sync scheduler started", "interval", interval)
	if err := o.RunCycle(ctx); err != nil {
		log.Error("Sync cycle failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Sync scheduler stopped")
			return
		case <-ticker.C:
			if err := o.RunCycle(ctx); err != nil {
				log.Error("Sync cycle failed", "error", err)
			}
		}
	}
}
