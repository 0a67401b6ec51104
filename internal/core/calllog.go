package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ResultConnected  = "Connected"
	ResultNoAnswer   = "No Answer"
	ResultGatekeeper = "Gatekeeper"

	AttentionEngaged    = "Engaged"
	AttentionNotEngaged = "Not-engaged"
	AttentionHungUp     = "Hung-up"

	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"

	OutcomeMeetingBooked = "Meeting Booked"
	OutcomeListened      = "Listened (No Meeting)"
	OutcomeHungUp        = "Hung Up"

	// InterestPeakNone marks a call where no part of the hook landed.
	InterestPeakNone = "N/A"
)

// Option vocabularies offered by the post-call form.
var (
	CallResults   = []string{ResultConnected, ResultNoAnswer, ResultGatekeeper}
	Attentions    = []string{AttentionEngaged, AttentionNotEngaged, AttentionHungUp}
	Sentiments    = []string{SentimentPositive, SentimentNeutral, SentimentNegative}
	Outcomes      = []string{OutcomeMeetingBooked, OutcomeListened, OutcomeHungUp}
	LeakLevels    = []LeakLevel{LeakHigh, LeakMedium, LeakLow}
	InterestPeaks = []string{
		InterestPeakNone,
		`At "Competition Report"`,
		`At "Competitor Name"`,
		`At "Pain Data (reviews)"`,
		`At 'The ''Tool-First'' Idea'`,
	}
	Objections = []string{
		"Too Busy",
		"No Budget",
		"Son/Nephew Does Website",
		"Happy with Directory",
		"Doesn't Trust Call",
		"Not Interested",
	}
)

// CallLog is one logged outreach attempt. HookAttention, HookInterestPeak and
// ProspectSentiment are optional; nil means the caller did not record them.
type CallLog struct {
	ID                int64
	ProspectID        int64
	ScriptUsed        string
	CallResult        string
	HookAttention     *string
	HookInterestPeak  *string
	ProspectSentiment *string
	Objections        []string
	RawObjection      string
	Outcome           string
	Notes             string
	CreatedAt         time.Time
}

var (
	ErrMissingProspect   = errors.New("missing prospect")
	ErrInvalidCallResult = errors.New("invalid call result")
)

// Opt returns a pointer to s, or nil when s is blank.
func Opt(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional field, returning "" when absent.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (l CallLog) Validate() error {
	if l.ProspectID <= 0 {
		return ErrMissingProspect
	}
	if !contains(CallResults, l.CallResult) {
		return fmt.Errorf("%w: %q", ErrInvalidCallResult, l.CallResult)
	}
	if len(l.ScriptUsed) > maxContentLength {
		return fmt.Errorf("%w: script used (max %d characters)", ErrFieldTooLong, maxContentLength)
	}
	if len(l.RawObjection) > maxFieldLength {
		return fmt.Errorf("%w: raw objection (max %d characters)", ErrFieldTooLong, maxFieldLength)
	}
	if len(l.Notes) > maxContentLength {
		return fmt.Errorf("%w: notes (max %d characters)", ErrFieldTooLong, maxContentLength)
	}
	for _, o := range l.Objections {
		if len(o) > maxNameLength {
			return fmt.Errorf("%w: objection (max %d characters)", ErrFieldTooLong, maxNameLength)
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
