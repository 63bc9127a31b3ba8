package draw

import "fmt"

// rowLayout describes where a round's matches sit in the sheet grid:
// match i (0-based) starts at row base+i*step and spans two rows.
type rowLayout struct {
	base, step int
}

// The grid geometry is fixed per draw size. The header row is row 0, the
// first match of the opening round starts at row 1, and every later round
// doubles the spacing so each match lines up between its two feeders.
var layouts = map[int]map[Round]rowLayout{
	128: {
		R128: {1, 4},
		R64:  {3, 8},
		R32:  {7, 16},
		R16:  {15, 32},
		QF:   {31, 64},
		SF:   {63, 128},
		F:    {127, 256},
	},
	64: {
		R64: {1, 4},
		R32: {3, 8},
		R16: {7, 16},
		QF:  {15, 32},
		SF:  {31, 64},
		F:   {63, 128},
	},
	32: {
		R32: {1, 4},
		R16: {3, 8},
		QF:  {7, 16},
		SF:  {15, 32},
		F:   {31, 64},
	},
}

// MatchRowIndices returns the 0-based grid row where each match of the round
// begins, for the given draw size. The match occupies that row and the next.
func MatchRowIndices(round Round, drawSize int) ([]int, error) {
	layout, ok := layouts[drawSize]
	if !ok {
		return nil, fmt.Errorf("unsupported draw size %d", drawSize)
	}
	l, ok := layout[round]
	if !ok {
		return nil, fmt.Errorf("round %s does not exist in a draw of %d", round, drawSize)
	}
	rows := make([]int, round.MatchCount())
	for i := range rows {
		rows[i] = l.base + i*l.step
	}
	return rows, nil
}

// RoundsFor lists the playable rounds of a draw size in canonical order.
func RoundsFor(drawSize int) []Round {
	start, ok := StartingRound(drawSize)
	if !ok {
		return nil
	}
	return Order[start.Index():]
}
