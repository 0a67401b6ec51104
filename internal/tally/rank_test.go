package tally

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]int
		want []Entry
	}{
		{name: "empty", in: map[string]int{}, want: []Entry{}},
		{
			name: "descending",
			in:   map[string]int{"No Budget": 1, "Too Busy": 5, "Not Interested": 3},
			want: []Entry{{"Too Busy", 5}, {"Not Interested", 3}, {"No Budget", 1}},
		},
		{
			name: "ties by label",
			in:   map[string]int{"b": 2, "a": 2, "c": 4},
			want: []Entry{{"c", 4}, {"a", 2}, {"b", 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Rank(tt.in)); diff != "" {
				t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTopObjectionsAndPeaks(t *testing.T) {
	s := Compute(sampleLogs())
	top := s.TopObjections()
	if len(top) != 2 || top[0].Label != "Too Busy" || top[0].Count != 2 {
		t.Fatalf("unexpected top objections: %v", top)
	}
	peaks := s.TopInterestPeaks()
	if len(peaks) != 1 || peaks[0].Count != 2 {
		t.Fatalf("unexpected top peaks: %v", peaks)
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		value, total int
		want         float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 4, 25},
		{4, 4, 100},
	}
	for _, tt := range tests {
		if got := Share(tt.value, tt.total); got != tt.want {
			t.Errorf("Share(%d, %d) = %v, want %v", tt.value, tt.total, got, tt.want)
		}
	}
}
