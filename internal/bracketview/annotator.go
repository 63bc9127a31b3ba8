// Package bracketview annotates a user's bracket against the canonical draw:
// each slot gets a pick status and an eliminated flag telling the UI that the
// picked player can no longer reach it.
package bracketview

import (
	"github.com/nvoropaev/bracketeer/internal/draw"
	"github.com/nvoropaev/bracketeer/internal/names"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

// PickStatus is the verdict for one slot.
type PickStatus string

const (
	StatusCorrect   PickStatus = "CORRECT"
	StatusIncorrect PickStatus = "INCORRECT"
	StatusPending   PickStatus = "PENDING"
	StatusNoPick    PickStatus = "NO_PICK"
)

// Slot is one annotated bracket node.
type Slot struct {
	Round           draw.Round `json:"round"`
	MatchNumber     int        `json:"match_number"`
	PredictedWinner string     `json:"predicted_winner"`
	Player1         string     `json:"player1"`
	Player2         string     `json:"player2"`
	Status          PickStatus `json:"status"`
	IsEliminated    bool       `json:"is_eliminated"`
}

type slotKey struct {
	round  draw.Round
	number int
}

// Annotate labels every pick of one user against the draw. Every slot gets
// exactly one status; NO_PICK slots are never flagged eliminated.
func Annotate(picks []tournament.UserPick, matches []draw.Match) []Slot {
	eliminated := eliminatedPlayers(matches)
	winners := make(map[slotKey]string)
	players := make(map[slotKey][2]string)
	for _, m := range matches {
		key := slotKey{m.Round, m.MatchNumber}
		players[key] = [2]string{m.Player1, m.Player2}
		if m.Winner != "" {
			winners[key] = m.Winner
		}
	}

	slots := make([]Slot, 0, len(picks))
	for _, p := range picks {
		slot := Slot{
			Round:           p.Round,
			MatchNumber:     p.MatchNumber,
			PredictedWinner: p.PredictedWinner,
			Player1:         p.Player1,
			Player2:         p.Player2,
		}
		pick := names.Normalize(p.PredictedWinner)
		key := slotKey{p.Round, p.MatchNumber}

		switch {
		case pick == names.TBD:
			slot.Status = StatusNoPick
		case pick == names.Bye:
			slot.Status = StatusCorrect
		default:
			if winner, decided := winners[key]; decided {
				if names.SamePlayer(p.PredictedWinner, winner) {
					slot.Status = StatusCorrect
				} else {
					slot.Status = StatusIncorrect
					// The pick is eliminated from this slot when the player
					// never even reached it.
					real := players[key]
					slot.IsEliminated = !names.SamePlayer(p.PredictedWinner, real[0]) &&
						!names.SamePlayer(p.PredictedWinner, real[1])
				}
			} else if isEliminated(p.PredictedWinner, eliminated) {
				slot.Status = StatusIncorrect
				slot.IsEliminated = true
			} else {
				slot.Status = StatusPending
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// eliminatedPlayers collects every player who lost a decided match.
func eliminatedPlayers(matches []draw.Match) []string {
	var out []string
	for _, m := range matches {
		if m.Winner == "" {
			continue
		}
		for _, player := range []string{m.Player1, m.Player2} {
			n := names.Normalize(player)
			if n == names.TBD || n == names.Bye {
				continue
			}
			if !names.SamePlayer(player, m.Winner) {
				out = append(out, player)
			}
		}
	}
	return out
}

func isEliminated(pick string, eliminated []string) bool {
	for _, loser := range eliminated {
		if names.SamePlayer(pick, loser) {
			return true
		}
	}
	return false
}
