// Package award defines the total order over clear-lamp labels and the
// strict-improvement rule used for best-award selection.
package award

// lampRanks orders lamps from worst to best. FAILED and NO PLAY share the
// floor; unknown labels (including the empty string) also rank at the floor
// and can never displace a known lamp.
var lampRanks = map[string]int{
	"F-COMBO":   6,
	"EXH-CLEAR": 5,
	"H-CLEAR":   4,
	"CLEAR":     3,
	"E-CLEAR":   2,
	"A-CLEAR":   1,
	"FAILED":    0,
	"NO PLAY":   0,
}

// Rank returns the position of label in the lamp order. Labels outside the
// closed set rank at the floor.
func Rank(label string) int {
	return lampRanks[label]
}

// IsImprovement reports whether newLabel strictly outranks oldLabel. Equal
// ranks are not an improvement, so the first-seen label of a rank wins.
func IsImprovement(newLabel, oldLabel string) bool {
	return Rank(newLabel) > Rank(oldLabel)
}

// Derive computes the per-row clear award: the reported lamp counts as an
// award only when it strictly outranks the best lamp the source already knew
// about, otherwise the row carries no award.
func Derive(lamp, bestKnown string) string {
	if Rank(lamp) > Rank(bestKnown) {
		return lamp
	}
	return ""
}
