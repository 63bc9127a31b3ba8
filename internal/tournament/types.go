package tournament

import (
	"time"

	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
)

// Tournament is one event row from the tournaments tab.
type Tournament struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Dates             string           `json:"dates"`
	RawStatus         string           `json:"-"`
	Status            lifecycle.Status `json:"status"`
	StartingRound     draw.Round       `json:"starting_round"`
	DrawSize          int              `json:"draw_size"`
	Type              string           `json:"type"`
	SheetName         string           `json:"-"`
	StartsAt          *time.Time       `json:"starts_at,omitempty"`
	ClosesAt          *time.Time       `json:"closes_at,omitempty"`
	Tag               string           `json:"tag,omitempty"`
	Surface           string           `json:"surface,omitempty"`
	DefendingChampion string           `json:"defending_champion,omitempty"`
	Description       string           `json:"description,omitempty"`
	MatchesCount      int              `json:"matches_count,omitempty"`
	Month             string           `json:"month,omitempty"`
	ImageURL          string           `json:"image_url,omitempty"`
}

// User carries the display fields of an authenticated mini-app user. The
// engine itself only ever reads the ID.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// UserPick is one user's prediction for one bracket slot, with a snapshot of
// the players as they were known at pick time.
type UserPick struct {
	UserID          int64      `json:"user_id"`
	TournamentID    int64      `json:"tournament_id"`
	Round           draw.Round `json:"round"`
	MatchNumber     int        `json:"match_number"`
	PredictedWinner string     `json:"predicted_winner"`
	Player1         string     `json:"player1"`
	Player2         string     `json:"player2"`
}

// UserScore is the cached per-tournament total for one user. Derived data:
// always recomputable from picks plus the draw.
type UserScore struct {
	UserID       int64 `json:"user_id"`
	TournamentID int64 `json:"tournament_id"`
	Score        int   `json:"score"`
	CorrectPicks int   `json:"correct_picks"`
}

// ScoreRow is a UserScore joined with the tournament fields needed for
// category filtering and the user's display name.
type ScoreRow struct {
	UserScore
	TournamentType string
	TournamentTag  string
	UserName       string
}

// LeaderboardEntry is one ranked row of a tournament leaderboard.
type LeaderboardEntry struct {
	TournamentID int64  `json:"tournament_id"`
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name,omitempty"`
	Rank         int    `json:"rank"`
	Score        int    `json:"score"`
	CorrectPicks int    `json:"correct_picks"`
}
