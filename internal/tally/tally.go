// Package tally aggregates call logs into the counters shown on the
// sentiment report.
//
// Compute is a pure function of its input: every call builds a new Summary
// from the full snapshot of logs and nothing is carried between calls.
package tally

import (
	"outreach/internal/core"
)

// Summary is the aggregate read-model of a set of call logs. Attention and
// Sentiments always carry their three known keys; Objections and InterestPeaks
// only hold labels that were actually logged.
type Summary struct {
	TotalCalls     int            `json:"totalCalls"`
	TotalConnected int            `json:"totalConnected"`
	MeetingBooked  int            `json:"meetingBooked"`
	Attention      map[string]int `json:"attention"`
	Objections     map[string]int `json:"objections"`
	InterestPeaks  map[string]int `json:"interestPeaks"`
	Sentiments     map[string]int `json:"sentiments"`
}

// Empty returns the summary of zero logs.
func Empty() Summary {
	return Summary{
		Attention: map[string]int{
			core.AttentionEngaged:    0,
			core.AttentionNotEngaged: 0,
			core.AttentionHungUp:     0,
		},
		Objections:    map[string]int{},
		InterestPeaks: map[string]int{},
		Sentiments: map[string]int{
			core.SentimentPositive: 0,
			core.SentimentNeutral:  0,
			core.SentimentNegative: 0,
		},
	}
}

// Compute tallies logs in a single pass. Absent optional fields are skipped;
// unknown attention or sentiment values are counted under their own key.
func Compute(logs []core.CallLog) Summary {
	s := Empty()
	s.TotalCalls = len(logs)

	for _, l := range logs {
		if v := core.Value(l.HookAttention); v != "" {
			s.Attention[v]++
		}
		for _, o := range l.Objections {
			s.Objections[o]++
		}
		if l.Outcome == core.OutcomeMeetingBooked {
			s.MeetingBooked++
		}
		if l.CallResult == core.ResultConnected {
			s.TotalConnected++
		}
		if v := core.Value(l.HookInterestPeak); v != "" && v != core.InterestPeakNone {
			s.InterestPeaks[v]++
		}
		if v := core.Value(l.ProspectSentiment); v != "" {
			s.Sentiments[v]++
		}
	}

	return s
}

// Merge adds two summaries counter by counter into a new value. Merging the
// summaries of A and B equals computing the summary of A followed by B.
func Merge(a, b Summary) Summary {
	s := Empty()
	s.TotalCalls = a.TotalCalls + b.TotalCalls
	s.TotalConnected = a.TotalConnected + b.TotalConnected
	s.MeetingBooked = a.MeetingBooked + b.MeetingBooked
	addCounts(s.Attention, a.Attention, b.Attention)
	addCounts(s.Objections, a.Objections, b.Objections)
	addCounts(s.InterestPeaks, a.InterestPeaks, b.InterestPeaks)
	addCounts(s.Sentiments, a.Sentiments, b.Sentiments)
	return s
}

func addCounts(dst map[string]int, srcs ...map[string]int) {
	for _, src := range srcs {
		for k, v := range src {
			dst[k] += v
		}
	}
}

// CallToMeetingRate is the percentage of connected calls that booked a
// meeting, or 0 when nothing connected.
func (s Summary) CallToMeetingRate() float64 {
	if s.TotalConnected == 0 {
		return 0
	}
	return float64(s.MeetingBooked) / float64(s.TotalConnected) * 100
}

// TopObjections lists objections by descending count.
func (s Summary) TopObjections() []Entry {
	return Rank(s.Objections)
}

// TopInterestPeaks lists interest peaks by descending count.
func (s Summary) TopInterestPeaks() []Entry {
	return Rank(s.InterestPeaks)
}
