package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	syncCycles          int
	tournamentsSynced   int
	tournamentsFailed   int
	rowsParsed          int
	rowsFailed          int
	picksSaved          int
	picksRejected       int
	leaderboardRebuilds int
	scoringDurations    []float64
	startupTime         float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{scoringDurations: make([]float64, 0)}
}

func (m *Mock) IncSyncCycles() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncCycles++
}

func (m *Mock) IncTournamentsSynced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsSynced++
}

func (m *Mock) IncTournamentsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsFailed++
}

func (m *Mock) IncRowsParsed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rowsParsed++
}

func (m *Mock) IncRowsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rowsFailed++
}

func (m *Mock) IncPicksSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picksSaved++
}

func (m *Mock) IncPicksRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picksRejected++
}

func (m *Mock) IncLeaderboardRebuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardRebuilds++
}

func (m *Mock) ObserveScoringDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoringDurations = append(m.scoringDurations, seconds)
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// SyncCycles returns the number of times IncSyncCycles was called.
func (m *Mock) SyncCycles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncCycles
}

// TournamentsSynced returns the number of times IncTournamentsSynced was called.
func (m *Mock) TournamentsSynced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsSynced
}

// TournamentsFailed returns the number of times IncTournamentsFailed was called.
func (m *Mock) TournamentsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsFailed
}

// RowsParsed returns the number of times IncRowsParsed was called.
func (m *Mock) RowsParsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rowsParsed
}

// RowsFailed returns the number of times IncRowsFailed was called.
func (m *Mock) RowsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rowsFailed
}

// PicksSaved returns the number of times IncPicksSaved was called.
func (m *Mock) PicksSaved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.picksSaved
}

// PicksRejected returns the number of times IncPicksRejected was called.
func (m *Mock) PicksRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.picksRejected
}

// LeaderboardRebuilds returns the number of times IncLeaderboardRebuilds was called.
func (m *Mock) LeaderboardRebuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardRebuilds
}
