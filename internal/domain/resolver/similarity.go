package resolver

import "math"

// similarity returns a normalized edit similarity in [0, 1]: 1 minus the
// Levenshtein distance over the longer rune length. Two empty strings are
// identical.
func similarity(a, b string) float64 {
	dist := levenshteinDistance(a, b)
	denom := max(len([]rune(a)), len([]rune(b)))
	if denom == 0 {
		return 1
	}
	return math.Max(0, 1-float64(dist)/float64(denom))
}

func levenshteinDistance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if string(ar) == string(br) {
		return 0
	}
	if len(ar) < len(br) {
		ar, br = br, ar
	}
	if len(br) == 0 {
		return len(ar)
	}
	prev := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ar {
		curr := make([]int, len(br)+1)
		curr[0] = i + 1
		for j, cb := range br {
			ins := curr[j] + 1
			del := prev[j+1] + 1
			sub := prev[j]
			if ca != cb {
				sub++
			}
			curr[j+1] = min(ins, min(del, sub))
		}
		prev = curr
	}
	return prev[len(prev)-1]
}
