// Package names canonicalizes player names so the same player can be matched
// across rounds even when the sheet spells them differently ("J. Sinner",
// "Sinner (1)", "Jannik Sinner").
package names

import "strings"

const (
	// TBD is the canonical form of an empty or unknown player cell.
	TBD = "tbd"
	// Bye is the canonical form of a bye placeholder.
	Bye = "bye"
)

// Normalize reduces a raw player cell to its canonical form: lowercased,
// seed annotations stripped, every non-ASCII-letter removed. Empty input and
// anything that normalizes to nothing collapse to TBD.
func Normalize(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" || trimmed == TBD {
		return TBD
	}
	if trimmed == Bye {
		return Bye
	}
	// Drop a parenthesized suffix such as "(5)" before filtering characters,
	// so a seed number never leaks into the canonical name.
	if idx := strings.Index(trimmed, "("); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	var b strings.Builder
	for _, r := range trimmed {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return TBD
	}
	return b.String()
}

// SamePlayer reports whether two raw names refer to the same player.
// Exact canonical equality always matches; beyond that, one canonical name
// containing the other is accepted when both are long enough that a
// substring hit is unlikely to be accidental.
func SamePlayer(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	if len(na) > 3 && len(nb) > 3 {
		return strings.Contains(na, nb) || strings.Contains(nb, na)
	}
	return false
}
