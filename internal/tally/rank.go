package tally

import "sort"

// Entry is one labelled counter in a ranked list.
type Entry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Rank orders counts by descending value. Equal counts are ordered by label
// so the result is the same on every call.
func Rank(counts map[string]int) []Entry {
	out := make([]Entry, 0, len(counts))
	for label, n := range counts {
		out = append(out, Entry{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Share returns value as a percentage of total, 0 when total is 0.
func Share(value, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(value) / float64(total) * 100
}
