package draw

import (
	"fmt"
	"strings"

	"github.com/nvoropaev/bracketeer/internal/names"
)

// Match is one node of the bracket as parsed from the sheet.
type Match struct {
	Round       Round
	MatchNumber int // 1-based
	Player1     string
	Player2     string
	Winner      string // empty until decided
	Sets        []string
}

// Bracket is the parsed result of one tournament tab.
type Bracket struct {
	Matches  []Match
	Champion string // raw champion cell, empty when not yet known
}

// maxSets is the most set-score columns a match can carry.
const maxSets = 5

// Build parses a bracket grid into matches, inferring winners. The first row
// of the grid is the header naming the rounds; rounds missing from the header
// are skipped. A failure to build is a failure of the whole tab, individual
// empty cells are not errors.
func Build(grid [][]string, drawSize int) (*Bracket, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("empty bracket grid")
	}

	roundCols := make(map[Round]int)
	headerCols := make(map[int]bool)
	for c, raw := range grid[0] {
		token := strings.TrimSpace(raw)
		round, ok := ParseRound(token)
		if !ok {
			continue
		}
		roundCols[round] = c
		headerCols[c] = true
	}
	if len(roundCols) == 0 {
		return nil, fmt.Errorf("no round headers found in bracket grid")
	}

	bracket := &Bracket{}
	if champCol, ok := roundCols[Champion]; ok {
		bracket.Champion = firstNonEmptyInColumn(grid, champCol)
	}

	for _, round := range RoundsFor(drawSize) {
		col, ok := roundCols[round]
		if !ok {
			continue
		}
		rows, err := MatchRowIndices(round, drawSize)
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			m := Match{
				Round:       round,
				MatchNumber: i + 1,
				Player1:     cell(grid, row, col),
				Player2:     cell(grid, row+1, col),
				Sets:        setScores(grid, row, col, headerCols),
			}
			m.Winner = inferWinner(grid, roundCols, drawSize, round, i, m, bracket.Champion)
			bracket.Matches = append(bracket.Matches, m)
		}
	}
	return bracket, nil
}

// inferWinner applies the winner precedence: a BYE advances the opponent,
// otherwise presence in the next round decides, and the Final falls back to
// the Champion cell.
func inferWinner(grid [][]string, roundCols map[Round]int, drawSize int, round Round, matchIdx int, m Match, champion string) string {
	n1, n2 := names.Normalize(m.Player1), names.Normalize(m.Player2)
	if n1 == names.Bye && n2 != names.TBD && n2 != names.Bye {
		return m.Player2
	}
	if n2 == names.Bye && n1 != names.TBD && n1 != names.Bye {
		return m.Player1
	}

	if round != F {
		if next, col, ok := nextPresentRound(roundCols, round); ok {
			rows, err := MatchRowIndices(next, drawSize)
			if err == nil && matchIdx/2 < len(rows) {
				row := rows[matchIdx/2]
				for _, candidate := range []string{cell(grid, row, col), cell(grid, row+1, col)} {
					if names.Normalize(candidate) == names.TBD {
						continue
					}
					if w, ok := pickSide(candidate, m); ok {
						return w
					}
				}
			}
		}
		return ""
	}

	if names.Normalize(champion) != names.TBD {
		if w, ok := pickSide(champion, m); ok {
			return w
		}
	}
	return ""
}

// pickSide matches a candidate name against the two players of a match,
// player1 first.
func pickSide(candidate string, m Match) (string, bool) {
	if names.Normalize(m.Player1) != names.TBD && names.SamePlayer(candidate, m.Player1) {
		return m.Player1, true
	}
	if names.Normalize(m.Player2) != names.TBD && names.SamePlayer(candidate, m.Player2) {
		return m.Player2, true
	}
	return "", false
}

// nextPresentRound walks the canonical order past the given round and returns
// the first round that actually has a header column.
func nextPresentRound(roundCols map[Round]int, round Round) (Round, int, bool) {
	r := round
	for {
		next, ok := r.Next()
		if !ok {
			return "", 0, false
		}
		if col, present := roundCols[next]; present {
			return next, col, true
		}
		r = next
	}
}

// setScores reads up to five score cells to the right of the round column.
// A score column ends at the next round header and never reads past the row.
func setScores(grid [][]string, row, col int, headerCols map[int]bool) []string {
	var sets []string
	for k := 1; k <= maxSets; k++ {
		c := col + k
		if headerCols[c] {
			break
		}
		s := cell(grid, row, c)
		if s == "" {
			s = cell(grid, row+1, c)
		}
		if s == "" {
			continue
		}
		sets = append(sets, s)
	}
	return sets
}

func firstNonEmptyInColumn(grid [][]string, col int) string {
	for r := 1; r < len(grid); r++ {
		if v := cell(grid, r, col); v != "" {
			return v
		}
	}
	return ""
}

// cell returns the trimmed value at (row, col), or "" when the coordinates
// fall outside the ragged grid.
func cell(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	r := grid[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}
