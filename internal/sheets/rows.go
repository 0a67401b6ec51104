package sheets

import (
	"fmt"
	"strings"
	"time"

	"outreach/internal/core"
	"outreach/internal/tally"
)

// CallLogHeader names the columns written by CallLogRow.
var CallLogHeader = []any{
	"Logged At", "Business", "Location", "Script", "Result", "Attention",
	"Interest Peak", "Sentiment", "Objections", "Raw Objection", "Outcome", "Notes",
}

// CallLogRow flattens a call log into spreadsheet cells. Absent optional
// fields become empty cells.
func CallLogRow(p core.Prospect, l core.CallLog) []any {
	return []any{
		l.CreatedAt.UTC().Format(time.RFC3339),
		p.BusinessName,
		p.Location,
		l.ScriptUsed,
		l.CallResult,
		core.Value(l.HookAttention),
		core.Value(l.HookInterestPeak),
		core.Value(l.ProspectSentiment),
		strings.Join(l.Objections, "; "),
		l.RawObjection,
		l.Outcome,
		l.Notes,
	}
}

// DigestRow renders the headline counters of a summary. The rate keeps one
// decimal place, as on the report page.
func DigestRow(at time.Time, s tally.Summary) []any {
	var top string
	if ranked := s.TopObjections(); len(ranked) > 0 {
		top = ranked[0].Label
	}
	return []any{
		at.UTC().Format(time.RFC3339),
		s.TotalCalls,
		s.TotalConnected,
		s.MeetingBooked,
		fmt.Sprintf("%.1f", s.CallToMeetingRate()),
		top,
	}
}
