package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGrid builds an empty bracket grid with a header row for a 32 draw:
// each round column is followed by five score columns.
func testGrid(t *testing.T) [][]string {
	t.Helper()
	const rows, cols = 70, 40
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
	}
	grid[0][0] = "R32"
	grid[0][6] = "R16"
	grid[0][12] = "QF"
	grid[0][18] = "SF"
	grid[0][24] = "F"
	grid[0][30] = "Champion"
	return grid
}

func matchByKey(t *testing.T, b *Bracket, round Round, number int) Match {
	t.Helper()
	for _, m := range b.Matches {
		if m.Round == round && m.MatchNumber == number {
			return m
		}
	}
	t.Fatalf("match %s/%d not found", round, number)
	return Match{}
}

func TestBuildByeAdvancesOpponent(t *testing.T) {
	grid := testGrid(t)
	grid[1][0] = "Medvedev"
	grid[2][0] = "BYE"

	bracket, err := Build(grid, 32)
	require.NoError(t, err)

	m := matchByKey(t, bracket, R32, 1)
	assert.Equal(t, "Medvedev", m.Winner)
}

func TestBuildWinnerFromNextRound(t *testing.T) {
	grid := testGrid(t)
	// R32 match 2 occupies rows 5-6; its winner shows up as the second
	// player of R16 match 1 (rows 3-4).
	grid[5][0] = "Alcaraz"
	grid[6][0] = "Djokovic (2)"
	grid[5][1] = "6:4"
	grid[5][2] = "7:6"
	grid[4][6] = "Alcaraz"

	bracket, err := Build(grid, 32)
	require.NoError(t, err)

	m := matchByKey(t, bracket, R32, 2)
	assert.Equal(t, "Alcaraz", m.Winner)
	assert.Equal(t, []string{"6:4", "7:6"}, m.Sets)

	// The sibling match has no data and stays undecided.
	sibling := matchByKey(t, bracket, R32, 3)
	assert.Empty(t, sibling.Winner)
}

func TestBuildWinnerToleratesSpelling(t *testing.T) {
	grid := testGrid(t)
	grid[1][0] = "Jannik Sinner (1)"
	grid[2][0] = "Rune"
	grid[3][6] = "Sinner"

	bracket, err := Build(grid, 32)
	require.NoError(t, err)

	m := matchByKey(t, bracket, R32, 1)
	assert.Equal(t, "Jannik Sinner (1)", m.Winner, "fuzzy name identity should resolve the winner")
}

func TestBuildFinalUsesChampion(t *testing.T) {
	grid := testGrid(t)
	grid[31][24] = "Alcaraz"
	grid[32][24] = "Sinner"
	grid[31][30] = "Jannik Sinner"

	bracket, err := Build(grid, 32)
	require.NoError(t, err)

	assert.Equal(t, "Jannik Sinner", bracket.Champion)
	final := matchByKey(t, bracket, F, 1)
	assert.Equal(t, "Sinner", final.Winner)
}

func TestBuildSkipsMissingRounds(t *testing.T) {
	grid := testGrid(t)
	// Drop the R16 header; winners of R32 must then be inferred from QF.
	grid[0][6] = ""
	// R32 match 1 (rows 1-2) feeds QF match 1 (rows 7-8) once R16 is gone.
	grid[1][0] = "Medvedev"
	grid[2][0] = "Zverev"
	grid[7][12] = "Zverev"

	bracket, err := Build(grid, 32)
	require.NoError(t, err)

	for _, m := range bracket.Matches {
		assert.NotEqual(t, R16, m.Round, "R16 must be skipped when absent from the header")
	}
	m := matchByKey(t, bracket, R32, 1)
	assert.Equal(t, "Zverev", m.Winner)
}

func TestBuildProducesFullRounds(t *testing.T) {
	bracket, err := Build(testGrid(t), 32)
	require.NoError(t, err)

	counts := map[Round]int{}
	for _, m := range bracket.Matches {
		counts[m.Round]++
	}
	assert.Equal(t, map[Round]int{R32: 16, R16: 8, QF: 4, SF: 2, F: 1}, counts)
}

func TestBuildRejectsUselessGrids(t *testing.T) {
	_, err := Build(nil, 32)
	assert.Error(t, err)

	_, err = Build([][]string{{"Player", "Score"}}, 32)
	assert.Error(t, err, "grid without round headers")
}

func TestBuildScoreColumnsStopAtNextHeader(t *testing.T) {
	grid := testGrid(t)
	// Put the R16 header immediately after two score columns of R32.
	grid[0][6] = ""
	grid[0][3] = "R16"
	grid[1][0] = "Fritz"
	grid[2][0] = "Paul"
	grid[1][1] = "6:2"
	grid[1][2] = "6:3"
	grid[1][4] = "not-a-score"

	bracket, err := Build(grid, 32)
	require.NoError(t, err)

	m := matchByKey(t, bracket, R32, 1)
	assert.Equal(t, []string{"6:2", "6:3"}, m.Sets, "columns past a round header belong to that round")
}
