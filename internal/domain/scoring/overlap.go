package scoring

import "strings"

// Overlaps is the bidirectional case-insensitive substring overlap predicate used by
// every tag-matching dimension: a and b overlap iff, lowercased, one contains the other.
//
// It is intentionally permissive and not word-boundary aware, so "vibrant" overlaps
// "vibrantly" and "art" overlaps "smart". Empty strings never overlap anything.
func Overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// overlapsAny reports whether term overlaps at least one element of terms.
func overlapsAny(term string, terms []string) bool {
	for _, t := range terms {
		if Overlaps(term, t) {
			return true
		}
	}
	return false
}

// coverage returns the fraction of wanted terms that overlap at least one of have.
// An empty wanted list yields 0.
func coverage(wanted, have []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	matched := 0
	for _, w := range wanted {
		if overlapsAny(w, have) {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}
