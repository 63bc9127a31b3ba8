package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
	"github.com/nvoropaev/bracketeer/internal/metrics"
	"github.com/nvoropaev/bracketeer/internal/sheets"
	"github.com/nvoropaev/bracketeer/internal/telegram"
	"github.com/nvoropaev/bracketeer/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringStub struct {
	RecomputeCalls []int64
	RebuildCalls   []int64
	RecomputeErr   error
	RebuildErr     error
}

func (s *scoringStub) Recompute(tournamentID int64) error {
	s.RecomputeCalls = append(s.RecomputeCalls, tournamentID)
	return s.RecomputeErr
}

func (s *scoringStub) RebuildLeaderboard(tournamentID int64) error {
	s.RebuildCalls = append(s.RebuildCalls, tournamentID)
	return s.RebuildErr
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// tournamentRow builds a tournaments-tab row in column order.
func tournamentRow(id, name, status, sheet, round, typ, start, close, tag string) []string {
	return []string{id, name, "Jun 1-14", status, sheet, round, typ, start, close, tag, "Clay", "", "", "31", "June", ""}
}

// drawTab is a minimal 32-draw tab carrying only the Final and, optionally,
// the champion cell.
func drawTab(p1, p2, champion string) [][]string {
	grid := make([][]string, 40)
	for i := range grid {
		grid[i] = make([]string, 4)
	}
	grid[0][0] = "F"
	grid[0][2] = "Champion"
	grid[31][0] = p1
	grid[32][0] = p2
	grid[1][2] = champion
	return grid
}

func newTestOrchestrator(source *sheets.MockSource) (*Orchestrator, *tournament.MockStore, *scoringStub, *metrics.Mock, *telegram.MockNotifier) {
	store := tournament.NewMock()
	scoring := &scoringStub{}
	m := metrics.NewMock()
	notifier := &telegram.MockNotifier{}
	o := New(source, store, scoring, m, notifier, "sheet-id")
	o.now = func() time.Time { return testNow }
	return o, store, scoring, m, notifier
}

func TestParseTournamentRow(t *testing.T) {
	t.Run("header rows are skipped", func(t *testing.T) {
		for _, row := range [][]string{
			{"id", "name"},
			{"", "Roland Garros"},
			{"-3", "Negative"},
			{},
		} {
			_, skip, err := parseTournamentRow(row)
			assert.True(t, skip)
			assert.NoError(t, err)
		}
	})

	t.Run("full row", func(t *testing.T) {
		parsed, skip, err := parseTournamentRow(tournamentRow(
			"7", "Roland Garros", "", "RG25", "", "Grand Slam", "25.05.2025", "25.05.2025 11:00", "ТБШ"))
		require.NoError(t, err)
		require.False(t, skip)
		assert.Equal(t, int64(7), parsed.ID)
		assert.Equal(t, "Roland Garros", parsed.Name)
		assert.Equal(t, "RG25", parsed.SheetName)
		assert.Equal(t, 128, parsed.DrawSize)
		assert.Equal(t, draw.R128, parsed.StartingRound)
		assert.Equal(t, 31, parsed.MatchesCount)
		require.NotNil(t, parsed.StartsAt)
		assert.Equal(t, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), *parsed.StartsAt)
		require.NotNil(t, parsed.ClosesAt)
		assert.Equal(t, 11, parsed.ClosesAt.Hour())
	})

	t.Run("missing name is an error", func(t *testing.T) {
		_, skip, err := parseTournamentRow([]string{"5"})
		assert.False(t, skip)
		assert.Error(t, err)
	})

	t.Run("draw size inference", func(t *testing.T) {
		tests := []struct {
			typ, round, tag string
			size            int
			starting        draw.Round
		}{
			{"ATP 250", "", "", 32, draw.R32},
			{"ATP 500", "", "", 32, draw.R32},
			{"ATP 1000", "", "", 64, draw.R64},
			{"Grand Slam", "", "", 128, draw.R128},
			{"ATP 250", "", "ТБШ", 128, draw.R128},
			// Explicit starting round wins over the type heuristic.
			{"ATP 1000", "R32", "", 32, draw.R32},
			{"ATP 250", "R64", "", 64, draw.R64},
		}
		for _, tc := range tests {
			parsed, skip, err := parseTournamentRow(tournamentRow("1", "X", "", "", tc.round, tc.typ, "", "", tc.tag))
			require.NoError(t, err)
			require.False(t, skip)
			assert.Equal(t, tc.size, parsed.DrawSize, "type=%s round=%s tag=%s", tc.typ, tc.round, tc.tag)
			assert.Equal(t, tc.starting, parsed.StartingRound)
		}
	})
}

func TestRunCycleUpsertsAndIngestsVisible(t *testing.T) {
	source := sheets.NewMock()
	source.Tabs[tournamentsTab] = [][]string{
		{"id", "name", "dates"},
		tournamentRow("1", "Halle", "", "HAL25", "", "ATP 500", "01.06.2025", "", ""),
		tournamentRow("2", "Next Month", "", "", "", "ATP 250", "01.08.2025", "", ""),
	}
	source.Tabs["HAL25"] = drawTab("Zverev", "Medvedev", "")

	o, store, scoring, m, _ := newTestOrchestrator(source)
	require.NoError(t, o.RunCycle(context.Background()))

	require.Len(t, store.UpsertTournamentCalls, 2)
	assert.Equal(t, lifecycle.StatusActive, store.UpsertTournamentCalls[0].Status)
	assert.Equal(t, lifecycle.StatusPlanned, store.UpsertTournamentCalls[1].Status)

	// Only the active tournament with a sheet gets its draw rebuilt.
	require.Len(t, store.UpsertDrawCalls, 1)
	assert.Equal(t, int64(1), store.UpsertDrawCalls[0].TournamentID)
	assert.Equal(t, []int64{1}, scoring.RecomputeCalls)
	assert.Equal(t, []int64{1}, scoring.RebuildCalls)
	assert.Equal(t, 1, m.SyncCycles())
	assert.Equal(t, 2, m.RowsParsed())
	assert.Equal(t, 1, m.TournamentsSynced())
	assert.Equal(t, 0, m.TournamentsFailed())
}

func TestRunCycleCompletesTournament(t *testing.T) {
	source := sheets.NewMock()
	source.Tabs[tournamentsTab] = [][]string{
		tournamentRow("4", "Queen's", "", "QUE25", "", "ATP 500", "01.06.2025", "", ""),
	}
	source.Tabs["QUE25"] = drawTab("Alcaraz", "Draper", "Alcaraz")

	o, store, scoring, _, notifier := newTestOrchestrator(source)
	require.NoError(t, o.RunCycle(context.Background()))

	require.Len(t, store.UpsertDrawCalls, 1)
	matches := store.UpsertDrawCalls[0].Matches
	last := matches[len(matches)-1]
	assert.Equal(t, draw.Champion, last.Round)
	assert.Equal(t, 1, last.MatchNumber)
	assert.Equal(t, "Alcaraz", last.Winner)

	require.Len(t, store.SetTournamentStatusCalls, 1)
	assert.Equal(t, lifecycle.StatusCompleted, store.SetTournamentStatusCalls[0].Status)
	require.Len(t, notifier.Messages, 1)
	assert.Contains(t, notifier.Messages[0], "Alcaraz")
	assert.Equal(t, []int64{4}, scoring.RecomputeCalls)
}

func TestRunCycleAnnouncesChampionOnce(t *testing.T) {
	// The raw status column stays blank even after the champion is known;
	// only the stored status remembers the completion across cycles.
	source := sheets.NewMock()
	source.Tabs[tournamentsTab] = [][]string{
		tournamentRow("4", "Queen's", "", "QUE25", "", "ATP 500", "01.06.2025", "", ""),
	}
	source.Tabs["QUE25"] = drawTab("Alcaraz", "Draper", "Alcaraz")

	o, store, _, _, notifier := newTestOrchestrator(source)
	saved := map[int64]*tournament.Tournament{}
	store.UpsertTournamentFunc = func(tr *tournament.Tournament) error {
		clone := *tr
		saved[tr.ID] = &clone
		return nil
	}
	store.GetTournamentFunc = func(id int64) (*tournament.Tournament, error) {
		if tr, ok := saved[id]; ok {
			return tr, nil
		}
		return nil, tournament.ErrNotFound
	}
	store.SetTournamentStatusFunc = func(id int64, status lifecycle.Status) error {
		if tr, ok := saved[id]; ok {
			tr.Status = status
		}
		return nil
	}

	require.NoError(t, o.RunCycle(context.Background()))
	require.NoError(t, o.RunCycle(context.Background()))

	assert.Len(t, notifier.Messages, 1, "champion must be announced once")
	require.Len(t, store.SetTournamentStatusCalls, 1)
	// The second cycle's upsert keeps the stored COMPLETED status instead of
	// recomputing it back to ACTIVE.
	require.Len(t, store.UpsertTournamentCalls, 2)
	assert.Equal(t, lifecycle.StatusCompleted, store.UpsertTournamentCalls[1].Status)
}

func TestRunCycleDoesNotRenotifyCompleted(t *testing.T) {
	source := sheets.NewMock()
	source.Tabs[tournamentsTab] = [][]string{
		tournamentRow("4", "Queen's", "COMPLETED", "QUE25", "", "ATP 500", "01.06.2025", "", ""),
	}
	source.Tabs["QUE25"] = drawTab("Alcaraz", "Draper", "Alcaraz")

	o, store, _, _, notifier := newTestOrchestrator(source)
	require.NoError(t, o.RunCycle(context.Background()))

	assert.Empty(t, store.SetTournamentStatusCalls)
	assert.Empty(t, notifier.Messages)
	// The draw, champion row included, still gets refreshed.
	require.Len(t, store.UpsertDrawCalls, 1)
}

func TestRunCycleIsolatesTournamentFailures(t *testing.T) {
	source := sheets.NewMock()
	source.Tabs[tournamentsTab] = [][]string{
		tournamentRow("1", "Broken", "", "MISSING", "", "ATP 250", "01.06.2025", "", ""),
		tournamentRow("2", "Fine", "", "OK25", "", "ATP 250", "01.06.2025", "", ""),
	}
	source.Tabs["OK25"] = drawTab("Rune", "Ruud", "")

	o, store, _, m, _ := newTestOrchestrator(source)
	require.NoError(t, o.RunCycle(context.Background()))

	require.Len(t, store.UpsertDrawCalls, 1)
	assert.Equal(t, int64(2), store.UpsertDrawCalls[0].TournamentID)
	assert.Equal(t, 1, m.TournamentsFailed())
	assert.Equal(t, 1, m.TournamentsSynced())
}

func TestRunCycleCountsBadRows(t *testing.T) {
	source := sheets.NewMock()
	source.Tabs[tournamentsTab] = [][]string{
		{"3"}, // id without a name
		tournamentRow("4", "Fine", "", "", "", "ATP 250", "", "", ""),
	}

	o, store, _, m, _ := newTestOrchestrator(source)
	require.NoError(t, o.RunCycle(context.Background()))

	assert.Equal(t, 1, m.RowsFailed())
	assert.Equal(t, 1, m.RowsParsed())
	require.Len(t, store.UpsertTournamentCalls, 1)
}

func TestRunCycleFailsWhenTabUnreadable(t *testing.T) {
	source := sheets.NewMock()
	source.Err = sheets.ErrSheetNotFound

	o, _, _, _, _ := newTestOrchestrator(source)
	assert.ErrorIs(t, o.RunCycle(context.Background()), sheets.ErrSheetNotFound)
}

func TestRunCycleHonorsCancellation(t *testing.T) {
	source := sheets.NewMock()
	source.Tabs[tournamentsTab] = [][]string{
		tournamentRow("1", "Halle", "", "HAL25", "", "ATP 500", "01.06.2025", "", ""),
	}
	source.Tabs["HAL25"] = drawTab("Zverev", "Medvedev", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o, store, _, _, _ := newTestOrchestrator(source)
	assert.ErrorIs(t, o.RunCycle(ctx), context.Canceled)
	// Metadata is already written; only the draw rebuild is abandoned.
	assert.Len(t, store.UpsertTournamentCalls, 1)
	assert.Empty(t, store.UpsertDrawCalls)
}
