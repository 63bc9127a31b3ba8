package tournament

import (
	"errors"

	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
)

// ErrNotFound is returned by lookups when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for tournaments, draws, picks,
// scores and leaderboards.
type Store interface {
	UpsertTournament(t *Tournament) error
	GetTournament(id int64) (*Tournament, error)
	ListTournaments() ([]Tournament, error)
	SetTournamentStatus(id int64, status lifecycle.Status) error

	UpsertDraw(tournamentID int64, matches []draw.Match) error
	GetDrawMatches(tournamentID int64) ([]draw.Match, error)

	UpsertUser(u User) error

	UpsertPick(p UserPick) error
	GetUserPicks(userID, tournamentID int64) ([]UserPick, error)
	GetTournamentPicks(tournamentID int64) ([]UserPick, error)

	UpsertScore(s UserScore) error
	GetScores(tournamentID int64) ([]UserScore, error)
	GetAllScores() ([]ScoreRow, error)

	ReplaceLeaderboard(tournamentID int64, entries []LeaderboardEntry) error
	GetLeaderboard(tournamentID int64) ([]LeaderboardEntry, error)
}
