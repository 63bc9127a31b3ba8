package tournament

import (
	"sync"

	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertTournamentFunc    func(t *Tournament) error
	GetTournamentFunc       func(id int64) (*Tournament, error)
	ListTournamentsFunc     func() ([]Tournament, error)
	SetTournamentStatusFunc func(id int64, status lifecycle.Status) error
	UpsertDrawFunc          func(tournamentID int64, matches []draw.Match) error
	GetDrawMatchesFunc      func(tournamentID int64) ([]draw.Match, error)
	UpsertUserFunc          func(u User) error
	UpsertPickFunc          func(p UserPick) error
	GetUserPicksFunc        func(userID, tournamentID int64) ([]UserPick, error)
	GetTournamentPicksFunc  func(tournamentID int64) ([]UserPick, error)
	UpsertScoreFunc         func(s UserScore) error
	GetScoresFunc           func(tournamentID int64) ([]UserScore, error)
	GetAllScoresFunc        func() ([]ScoreRow, error)
	ReplaceLeaderboardFunc  func(tournamentID int64, entries []LeaderboardEntry) error
	GetLeaderboardFunc      func(tournamentID int64) ([]LeaderboardEntry, error)

	// Call records
	UpsertTournamentCalls    []*Tournament
	SetTournamentStatusCalls []struct {
		ID     int64
		Status lifecycle.Status
	}
	UpsertDrawCalls []struct {
		TournamentID int64
		Matches      []draw.Match
	}
	UpsertUserCalls    []User
	UpsertPickCalls    []UserPick
	UpsertScoreCalls   []UserScore
	ReplaceLeaderboardCalls []struct {
		TournamentID int64
		Entries      []LeaderboardEntry
	}
}

var _ Store = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertTournament(t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertTournamentCalls = append(m.UpsertTournamentCalls, t)
	if m.UpsertTournamentFunc != nil {
		return m.UpsertTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(id int64) (*Tournament, error) {
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListTournaments() ([]Tournament, error) {
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc()
	}
	return nil, nil
}

func (m *MockStore) SetTournamentStatus(id int64, status lifecycle.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetTournamentStatusCalls = append(m.SetTournamentStatusCalls, struct {
		ID     int64
		Status lifecycle.Status
	}{id, status})
	if m.SetTournamentStatusFunc != nil {
		return m.SetTournamentStatusFunc(id, status)
	}
	return nil
}

func (m *MockStore) UpsertDraw(tournamentID int64, matches []draw.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertDrawCalls = append(m.UpsertDrawCalls, struct {
		TournamentID int64
		Matches      []draw.Match
	}{tournamentID, matches})
	if m.UpsertDrawFunc != nil {
		return m.UpsertDrawFunc(tournamentID, matches)
	}
	return nil
}

func (m *MockStore) GetDrawMatches(tournamentID int64) ([]draw.Match, error) {
	if m.GetDrawMatchesFunc != nil {
		return m.GetDrawMatchesFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) UpsertUser(u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertUserCalls = append(m.UpsertUserCalls, u)
	if m.UpsertUserFunc != nil {
		return m.UpsertUserFunc(u)
	}
	return nil
}

func (m *MockStore) UpsertPick(p UserPick) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPickCalls = append(m.UpsertPickCalls, p)
	if m.UpsertPickFunc != nil {
		return m.UpsertPickFunc(p)
	}
	return nil
}

func (m *MockStore) GetUserPicks(userID, tournamentID int64) ([]UserPick, error) {
	if m.GetUserPicksFunc != nil {
		return m.GetUserPicksFunc(userID, tournamentID)
	}
	return nil, nil
}

func (m *MockStore) GetTournamentPicks(tournamentID int64) ([]UserPick, error) {
	if m.GetTournamentPicksFunc != nil {
		return m.GetTournamentPicksFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) UpsertScore(s UserScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertScoreCalls = append(m.UpsertScoreCalls, s)
	if m.UpsertScoreFunc != nil {
		return m.UpsertScoreFunc(s)
	}
	return nil
}

func (m *MockStore) GetScores(tournamentID int64) ([]UserScore, error) {
	if m.GetScoresFunc != nil {
		return m.GetScoresFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) GetAllScores() ([]ScoreRow, error) {
	if m.GetAllScoresFunc != nil {
		return m.GetAllScoresFunc()
	}
	return nil, nil
}

func (m *MockStore) ReplaceLeaderboard(tournamentID int64, entries []LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceLeaderboardCalls = append(m.ReplaceLeaderboardCalls, struct {
		TournamentID int64
		Entries      []LeaderboardEntry
	}{tournamentID, entries})
	if m.ReplaceLeaderboardFunc != nil {
		return m.ReplaceLeaderboardFunc(tournamentID, entries)
	}
	return nil
}

func (m *MockStore) GetLeaderboard(tournamentID int64) ([]LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(tournamentID)
	}
	return nil, nil
}
