package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRowIndices(t *testing.T) {
	tests := []struct {
		name     string
		round    Round
		drawSize int
		first    int
		step     int
		count    int
	}{
		{"R32 in a 32 draw", R32, 32, 1, 4, 16},
		{"R16 in a 32 draw", R16, 32, 3, 8, 8},
		{"QF in a 32 draw", QF, 32, 7, 16, 4},
		{"SF in a 32 draw", SF, 32, 15, 32, 2},
		{"F in a 32 draw", F, 32, 31, 64, 1},
		{"R64 in a 64 draw", R64, 64, 1, 4, 32},
		{"F in a 64 draw", F, 64, 63, 128, 1},
		{"R128 in a 128 draw", R128, 128, 1, 4, 64},
		{"F in a 128 draw", F, 128, 127, 256, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := MatchRowIndices(tt.round, tt.drawSize)
			require.NoError(t, err)
			require.Len(t, rows, tt.count)
			for i, row := range rows {
				assert.Equal(t, tt.first+i*tt.step, row)
			}
		})
	}
}

func TestMatchRowIndicesErrors(t *testing.T) {
	_, err := MatchRowIndices(R32, 48)
	assert.Error(t, err, "unsupported draw size")

	_, err = MatchRowIndices(R128, 32)
	assert.Error(t, err, "R128 does not exist in a 32 draw")
}

func TestFeederAlignment(t *testing.T) {
	// Match i of a round must sit between the two rows of match i/2 of the
	// next round, for every draw size.
	for _, drawSize := range []int{32, 64, 128} {
		rounds := RoundsFor(drawSize)
		for ri := 0; ri < len(rounds)-1; ri++ {
			cur, err := MatchRowIndices(rounds[ri], drawSize)
			require.NoError(t, err)
			next, err := MatchRowIndices(rounds[ri+1], drawSize)
			require.NoError(t, err)
			step := cur[1] - cur[0]
			for i, row := range cur {
				nextRow := next[i/2]
				diff := row - nextRow
				if diff < 0 {
					diff = -diff
				}
				assert.Equal(t, step/2, diff,
					"draw %d: %s match %d at row %d should sit beside %s match %d at row %d",
					drawSize, rounds[ri], i+1, row, rounds[ri+1], i/2+1, nextRow)
			}
		}
	}
}

func TestRoundsFor(t *testing.T) {
	assert.Equal(t, []Round{R32, R16, QF, SF, F}, RoundsFor(32))
	assert.Equal(t, []Round{R64, R32, R16, QF, SF, F}, RoundsFor(64))
	assert.Equal(t, []Round{R128, R64, R32, R16, QF, SF, F}, RoundsFor(128))
	assert.Nil(t, RoundsFor(48))
}

func TestMatchCountHalving(t *testing.T) {
	// Each round halves the match count of the previous one.
	for i := 1; i < len(Order); i++ {
		assert.Equal(t, Order[i-1].MatchCount(), Order[i].MatchCount()*2)
	}
	assert.Equal(t, 1, Champion.MatchCount())
}
