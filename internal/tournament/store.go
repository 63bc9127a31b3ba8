package tournament

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/lifecycle"
)

// store handles all database operations for the engine.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new Store backed by the given database handle.
func New(db *sql.DB) Store {
	return &store{db: db}
}

// timeLayout is the naive wall-clock storage format. Instants round-trip
// through this layout without any timezone conversion.
const timeLayout = "2006-01-02 15:04:05"

func timeToCell(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func cellToTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// UpsertTournament inserts or updates one tournament row. The upsert is
// keyed on the stable sheet id and overwrites every attribute, including the
// computed status.
func (s *store) UpsertTournament(t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tournaments (id, name, dates, raw_status, status, starting_round, draw_size, type, sheet_name, starts_at, closes_at, tag, surface, defending_champion, description, matches_count, month, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			dates = excluded.dates,
			raw_status = excluded.raw_status,
			status = excluded.status,
			starting_round = excluded.starting_round,
			draw_size = excluded.draw_size,
			type = excluded.type,
			sheet_name = excluded.sheet_name,
			starts_at = excluded.starts_at,
			closes_at = excluded.closes_at,
			tag = excluded.tag,
			surface = excluded.surface,
			defending_champion = excluded.defending_champion,
			description = excluded.description,
			matches_count = excluded.matches_count,
			month = excluded.month,
			image_url = excluded.image_url;
	`, t.ID, t.Name, t.Dates, t.RawStatus, string(t.Status), string(t.StartingRound), t.DrawSize, t.Type, t.SheetName,
		timeToCell(t.StartsAt), timeToCell(t.ClosesAt), t.Tag, t.Surface, t.DefendingChampion, t.Description, t.MatchesCount, t.Month, t.ImageURL)
	return err
}

const tournamentColumns = `id, name, dates, raw_status, status, starting_round, draw_size, type, sheet_name, starts_at, closes_at, tag, surface, defending_champion, description, matches_count, month, image_url`

func scanTournament(scanner interface{ Scan(...any) error }) (*Tournament, error) {
	var t Tournament
	var status, startingRound string
	var startsAt, closesAt sql.NullString
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Dates, &t.RawStatus, &status, &startingRound, &t.DrawSize, &t.Type, &t.SheetName,
		&startsAt, &closesAt, &t.Tag, &t.Surface, &t.DefendingChampion, &t.Description, &t.MatchesCount, &t.Month, &t.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	t.Status = lifecycle.Status(status)
	t.StartingRound = draw.Round(startingRound)
	t.StartsAt = cellToTime(startsAt)
	t.ClosesAt = cellToTime(closesAt)
	return &t, nil
}

func (s *store) GetTournament(id int64) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+tournamentColumns+` FROM tournaments WHERE id = ?`, id)
	t, err := scanTournament(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *store) ListTournaments() ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY starts_at IS NULL, starts_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *store) SetTournamentStatus(id int64, status lifecycle.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE tournaments SET status = ? WHERE id = ?`, string(status), id)
	return err
}

// UpsertDraw writes a full set of parsed matches for one tournament. Each row
// runs inside its own savepoint so one bad row rolls back only itself and the
// rest of the draw still lands.
func (s *store) UpsertDraw(tournamentID int64, matches []draw.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO draw_matches (tournament_id, round, match_number, player1, player2, winner, set1, set2, set3, set4, set5)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tournament_id, round, match_number) DO UPDATE SET
			player1 = excluded.player1,
			player2 = excluded.player2,
			winner = excluded.winner,
			set1 = excluded.set1,
			set2 = excluded.set2,
			set3 = excluded.set3,
			set4 = excluded.set4,
			set5 = excluded.set5;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, m := range matches {
		if _, err := tx.Exec(`SAVEPOINT draw_row`); err != nil {
			tx.Rollback()
			return err
		}
		var sets [5]any
		for i := range sets {
			if i < len(m.Sets) && m.Sets[i] != "" {
				sets[i] = m.Sets[i]
			}
		}
		_, err := stmt.Exec(tournamentID, string(m.Round), m.MatchNumber, m.Player1, m.Player2, nullable(m.Winner),
			sets[0], sets[1], sets[2], sets[3], sets[4])
		if err != nil {
			log.Error("Failed to upsert draw match, rolling back row", "error", err,
				"tournamentID", tournamentID, "round", m.Round, "match", m.MatchNumber)
			if _, err := tx.Exec(`ROLLBACK TO draw_row`); err != nil {
				tx.Rollback()
				return err
			}
		}
		if _, err := tx.Exec(`RELEASE draw_row`); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func (s *store) GetDrawMatches(tournamentID int64) ([]draw.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// round is stored as text, so an ORDER BY on the column itself would be
	// alphabetical. Rank rounds explicitly to keep the bracket order stable.
	rows, err := s.db.Query(`
		SELECT round, match_number, player1, player2, winner, set1, set2, set3, set4, set5
		FROM draw_matches
		WHERE tournament_id = ?
		ORDER BY CASE round
			WHEN 'R128' THEN 0
			WHEN 'R64' THEN 1
			WHEN 'R32' THEN 2
			WHEN 'R16' THEN 3
			WHEN 'QF' THEN 4
			WHEN 'SF' THEN 5
			WHEN 'F' THEN 6
			WHEN 'Champion' THEN 7
			ELSE 8
		END, match_number
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []draw.Match
	for rows.Next() {
		var m draw.Match
		var round string
		var winner sql.NullString
		var sets [5]sql.NullString
		err := rows.Scan(&round, &m.MatchNumber, &m.Player1, &m.Player2, &winner,
			&sets[0], &sets[1], &sets[2], &sets[3], &sets[4])
		if err != nil {
			log.Error("Failed to scan draw match row", "error", err, "tournamentID", tournamentID)
			continue
		}
		m.Round = draw.Round(round)
		m.Winner = winner.String
		for _, set := range sets {
			if set.Valid && set.String != "" {
				m.Sets = append(m.Sets, set.String)
			}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) UpsertUser(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO users (id, first_name, last_name, username, photo_url, language_code)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			username = excluded.username,
			photo_url = excluded.photo_url,
			language_code = excluded.language_code;
	`, u.ID, u.FirstName, u.LastName, u.Username, u.PhotoURL, u.LanguageCode)
	return err
}

// UpsertPick replaces a user's prediction for one slot. Concurrent writers of
// the same slot serialize on the upsert conflict target, last write wins.
func (s *store) UpsertPick(p UserPick) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO user_picks (user_id, tournament_id, round, match_number, predicted_winner, player1, player2)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, tournament_id, round, match_number) DO UPDATE SET
			predicted_winner = excluded.predicted_winner,
			player1 = excluded.player1,
			player2 = excluded.player2;
	`, p.UserID, p.TournamentID, string(p.Round), p.MatchNumber, p.PredictedWinner, p.Player1, p.Player2)
	return err
}

func (s *store) scanPicks(rows *sql.Rows) ([]UserPick, error) {
	defer rows.Close()
	var picks []UserPick
	for rows.Next() {
		var p UserPick
		var round string
		if err := rows.Scan(&p.UserID, &p.TournamentID, &round, &p.MatchNumber, &p.PredictedWinner, &p.Player1, &p.Player2); err != nil {
			log.Error("Failed to scan pick row", "error", err)
			continue
		}
		p.Round = draw.Round(round)
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

func (s *store) GetUserPicks(userID, tournamentID int64) ([]UserPick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT user_id, tournament_id, round, match_number, predicted_winner, player1, player2
		FROM user_picks
		WHERE user_id = ? AND tournament_id = ?
	`, userID, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.scanPicks(rows)
}

func (s *store) GetTournamentPicks(tournamentID int64) ([]UserPick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT user_id, tournament_id, round, match_number, predicted_winner, player1, player2
		FROM user_picks
		WHERE tournament_id = ?
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.scanPicks(rows)
}

func (s *store) UpsertScore(sc UserScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO user_scores (user_id, tournament_id, score, correct_picks)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, tournament_id) DO UPDATE SET
			score = excluded.score,
			correct_picks = excluded.correct_picks;
	`, sc.UserID, sc.TournamentID, sc.Score, sc.CorrectPicks)
	return err
}

func (s *store) GetScores(tournamentID int64) ([]UserScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT user_id, tournament_id, score, correct_picks
		FROM user_scores
		WHERE tournament_id = ?
		ORDER BY score DESC, correct_picks DESC, user_id
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []UserScore
	for rows.Next() {
		var sc UserScore
		if err := rows.Scan(&sc.UserID, &sc.TournamentID, &sc.Score, &sc.CorrectPicks); err != nil {
			log.Error("Failed to scan score row", "error", err)
			continue
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// GetAllScores returns every cached score joined with the tournament fields
// needed for category filtering.
func (s *store) GetAllScores() ([]ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT sc.user_id, sc.tournament_id, sc.score, sc.correct_picks, t.type, t.tag,
			COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(u.username, '')
		FROM user_scores sc
		JOIN tournaments t ON t.id = sc.tournament_id
		LEFT JOIN users u ON u.id = sc.user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var r ScoreRow
		var first, last, username string
		if err := rows.Scan(&r.UserID, &r.TournamentID, &r.Score, &r.CorrectPicks, &r.TournamentType, &r.TournamentTag, &first, &last, &username); err != nil {
			log.Error("Failed to scan score row", "error", err)
			continue
		}
		r.UserName = displayName(first, last, username)
		out = append(out, r)
	}
	return out, rows.Err()
}

func displayName(first, last, username string) string {
	full := strings.TrimSpace(first + " " + last)
	if full != "" {
		return full
	}
	return username
}

// ReplaceLeaderboard swaps the whole leaderboard of one tournament in a
// single transaction so readers never observe a partial ranking.
func (s *store) ReplaceLeaderboard(tournamentID int64, entries []LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM leaderboard_entries WHERE tournament_id = ?`, tournamentID); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO leaderboard_entries (tournament_id, user_id, rank, score, correct_picks)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.TournamentID != tournamentID {
			tx.Rollback()
			return fmt.Errorf("leaderboard entry for tournament %d in rebuild of %d", e.TournamentID, tournamentID)
		}
		if _, err := stmt.Exec(e.TournamentID, e.UserID, e.Rank, e.Score, e.CorrectPicks); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) GetLeaderboard(tournamentID int64) ([]LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT e.tournament_id, e.user_id, e.rank, e.score, e.correct_picks,
			COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(u.username, '')
		FROM leaderboard_entries e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.tournament_id = ?
		ORDER BY e.rank
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var first, last, username string
		if err := rows.Scan(&e.TournamentID, &e.UserID, &e.Rank, &e.Score, &e.CorrectPicks, &first, &last, &username); err != nil {
			log.Error("Failed to scan leaderboard row", "error", err)
			continue
		}
		e.UserName = displayName(first, last, username)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
