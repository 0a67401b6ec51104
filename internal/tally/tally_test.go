package tally

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"outreach/internal/core"
)

func str(s string) *string { return &s }

func sampleLogs() []core.CallLog {
	return []core.CallLog{
		{
			CallResult:        core.ResultConnected,
			Outcome:           core.OutcomeMeetingBooked,
			HookAttention:     str(core.AttentionEngaged),
			HookInterestPeak:  str(`At "Competitor Name"`),
			ProspectSentiment: str(core.SentimentPositive),
		},
		{
			CallResult:        core.ResultConnected,
			Outcome:           core.OutcomeListened,
			HookAttention:     str(core.AttentionNotEngaged),
			HookInterestPeak:  str(core.InterestPeakNone),
			ProspectSentiment: str(core.SentimentNeutral),
			Objections:        []string{"Too Busy", "No Budget"},
		},
		{
			CallResult: core.ResultGatekeeper,
			Outcome:    core.OutcomeHungUp,
			Objections: []string{"Too Busy"},
		},
		{
			CallResult:        core.ResultConnected,
			Outcome:           core.OutcomeHungUp,
			HookAttention:     str(core.AttentionHungUp),
			ProspectSentiment: str(core.SentimentNegative),
			HookInterestPeak:  str(`At "Competitor Name"`),
		},
		{CallResult: core.ResultNoAnswer},
		{},
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)
	want := Summary{
		Attention:     map[string]int{"Engaged": 0, "Not-engaged": 0, "Hung-up": 0},
		Objections:    map[string]int{},
		InterestPeaks: map[string]int{},
		Sentiments:    map[string]int{"Positive": 0, "Neutral": 0, "Negative": 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Compute(nil) mismatch (-want +got):\n%s", diff)
	}
	if rate := got.CallToMeetingRate(); rate != 0 {
		t.Fatalf("rate = %v, want 0", rate)
	}
}

func TestComputeSingleMeeting(t *testing.T) {
	got := Compute([]core.CallLog{{
		CallResult:        core.ResultConnected,
		Outcome:           core.OutcomeMeetingBooked,
		HookAttention:     str(core.AttentionEngaged),
		ProspectSentiment: str(core.SentimentPositive),
	}})

	if got.TotalCalls != 1 || got.TotalConnected != 1 || got.MeetingBooked != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.Attention["Engaged"] != 1 || got.Sentiments["Positive"] != 1 {
		t.Fatalf("unexpected counters: %+v", got)
	}
	if rate := got.CallToMeetingRate(); rate != 100 {
		t.Fatalf("rate = %v, want 100", rate)
	}
}

func TestComputeObjections(t *testing.T) {
	got := Compute([]core.CallLog{
		{Objections: []string{"Too Busy"}},
		{Objections: []string{"Too Busy", "No Budget"}},
	})
	want := map[string]int{"Too Busy": 2, "No Budget": 1}
	if diff := cmp.Diff(want, got.Objections); diff != "" {
		t.Fatalf("objections mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeObjectionMultiplicity(t *testing.T) {
	got := Compute([]core.CallLog{{Objections: []string{"Too Busy", "Too Busy"}}})
	if got.Objections["Too Busy"] != 2 {
		t.Fatalf("duplicate objection should count twice, got %d", got.Objections["Too Busy"])
	}
}

func TestComputeInterestPeakNA(t *testing.T) {
	got := Compute([]core.CallLog{
		{HookInterestPeak: str("N/A")},
		{HookInterestPeak: str("")},
		{HookInterestPeak: nil},
	})
	if len(got.InterestPeaks) != 0 {
		t.Fatalf("expected no interest peaks, got %v", got.InterestPeaks)
	}
}

func TestComputeConnectedWithoutOutcome(t *testing.T) {
	got := Compute([]core.CallLog{{CallResult: core.ResultConnected}})
	if got.TotalConnected != 1 || got.MeetingBooked != 0 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if rate := got.CallToMeetingRate(); rate != 0 {
		t.Fatalf("rate = %v, want 0", rate)
	}
}

func TestComputeUnknownKeysAccepted(t *testing.T) {
	got := Compute([]core.CallLog{
		{HookAttention: str("Distracted"), ProspectSentiment: str("Postive")},
	})
	if got.Attention["Distracted"] != 1 {
		t.Fatalf("unknown attention key dropped: %v", got.Attention)
	}
	if got.Sentiments["Postive"] != 1 {
		t.Fatalf("unknown sentiment key dropped: %v", got.Sentiments)
	}
	if len(got.Attention) != 4 || len(got.Sentiments) != 4 {
		t.Fatalf("seeded keys should remain: %v %v", got.Attention, got.Sentiments)
	}
}

func TestComputeCountConservation(t *testing.T) {
	logs := sampleLogs()
	for n := 0; n <= len(logs); n++ {
		if got := Compute(logs[:n]).TotalCalls; got != n {
			t.Fatalf("TotalCalls = %d, want %d", got, n)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	logs := sampleLogs()
	first := Compute(logs)
	second := Compute(logs)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated Compute differs (-first +second):\n%s", diff)
	}

	// Mutating one result must not leak into the next.
	first.Objections["Too Busy"] = 99
	if Compute(logs).Objections["Too Busy"] != 2 {
		t.Fatalf("summary maps are shared between calls")
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	logs := sampleLogs()
	want := Compute(logs)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]core.CallLog(nil), logs...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if diff := cmp.Diff(want, Compute(shuffled)); diff != "" {
			t.Fatalf("permutation %d changed the summary (-want +got):\n%s", i, diff)
		}
	}
}

func TestMergeAdditive(t *testing.T) {
	logs := append(sampleLogs(), core.CallLog{HookAttention: str("Distracted")})
	for split := 0; split <= len(logs); split++ {
		a, b := logs[:split], logs[split:]
		got := Merge(Compute(a), Compute(b))
		want := Compute(logs)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("split %d: merge differs from whole (-want +got):\n%s", split, diff)
		}
	}
}

func TestSampleSummary(t *testing.T) {
	got := Compute(sampleLogs())
	want := Summary{
		TotalCalls:     6,
		TotalConnected: 3,
		MeetingBooked:  1,
		Attention:      map[string]int{"Engaged": 1, "Not-engaged": 1, "Hung-up": 1},
		Objections:     map[string]int{"Too Busy": 2, "No Budget": 1},
		InterestPeaks:  map[string]int{`At "Competitor Name"`: 2},
		Sentiments:     map[string]int{"Positive": 1, "Neutral": 1, "Negative": 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	rate := got.CallToMeetingRate()
	if rate < 33.33 || rate > 33.34 {
		t.Fatalf("rate = %v, want ~33.33", rate)
	}
}
