// Package draw models the bracket: rounds, the sheet geometry of each draw
// size, and the builder that turns a raw bracket grid into matches with
// inferred winners.
package draw

// Round is one level of the bracket tree.
type Round string

const (
	R128     Round = "R128"
	R64      Round = "R64"
	R32      Round = "R32"
	R16      Round = "R16"
	QF       Round = "QF"
	SF       Round = "SF"
	F        Round = "F"
	Champion Round = "Champion"
)

// Order lists the playable rounds in canonical order, earliest first.
// Champion is a synthetic round and deliberately not part of it.
var Order = []Round{R128, R64, R32, R16, QF, SF, F}

var matchCounts = map[Round]int{
	R128:     64,
	R64:      32,
	R32:      16,
	R16:      8,
	QF:       4,
	SF:       2,
	F:        1,
	Champion: 1,
}

// ParseRound maps a header token to a Round.
func ParseRound(s string) (Round, bool) {
	switch Round(s) {
	case R128, R64, R32, R16, QF, SF, F, Champion:
		return Round(s), true
	}
	return "", false
}

// MatchCount returns how many matches a round holds in a full bracket.
func (r Round) MatchCount() int {
	return matchCounts[r]
}

// Index returns the position of a round in the canonical order, with R128 at
// 0 and Champion at 7.
func (r Round) Index() int {
	for i, round := range Order {
		if round == r {
			return i
		}
	}
	if r == Champion {
		return len(Order)
	}
	return -1
}

// Next returns the round that follows r in the canonical order. The Final has
// no next playable round.
func (r Round) Next() (Round, bool) {
	idx := r.Index()
	if idx < 0 || idx >= len(Order)-1 {
		return "", false
	}
	return Order[idx+1], true
}

// StartingRound returns the first round of a bracket of the given size.
func StartingRound(drawSize int) (Round, bool) {
	switch drawSize {
	case 128:
		return R128, true
	case 64:
		return R64, true
	case 32:
		return R32, true
	case 16:
		return R16, true
	}
	return "", false
}

// DrawSizeForRound is the inverse of StartingRound.
func DrawSizeForRound(r Round) (int, bool) {
	switch r {
	case R128:
		return 128, true
	case R64:
		return 64, true
	case R32:
		return 32, true
	case R16:
		return 16, true
	}
	return 0, false
}
