package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusPending       ProspectStatus = "Pending"
	StatusContacted     ProspectStatus = "Contacted"
	StatusMeetingBooked ProspectStatus = "Meeting Booked"
)

const (
	LeakHigh   LeakLevel = "High"
	LeakMedium LeakLevel = "Medium"
	LeakLow    LeakLevel = "Low"
)

type (
	ProspectStatus string

	// LeakLevel grades one business weakness (traffic, trust, enquiry).
	LeakLevel string

	Leaks struct {
		Traffic LeakLevel // SEO
		Trust   LeakLevel // Reviews
		Enquiry LeakLevel // Lead capture
	}

	Prospect struct {
		ID           int64
		BusinessName string
		Website      string
		Phone        string
		Location     string
		Competitor   string
		PainData     string // Short proof line used in the hook, e.g. "4.1 stars vs 5.0"
		Leaks        Leaks
		Status       ProspectStatus
		CreatedAt    time.Time
	}

	// Script is a named opening used for A/B testing hooks.
	Script struct {
		ID        int64
		Name      string
		Content   string
		CreatedAt time.Time
	}
)

const (
	maxNameLength    = 200
	maxFieldLength   = 500
	maxContentLength = 10000
)

var (
	ErrEmptyBusinessName = errors.New("empty business name")
	ErrInvalidLeakLevel  = errors.New("invalid leak level")
	ErrInvalidStatus     = errors.New("invalid prospect status")
	ErrEmptyScriptName   = errors.New("empty script name")
	ErrEmptyScriptBody   = errors.New("empty script content")
	ErrFieldTooLong      = errors.New("field too long")
)

// DefaultLeaks is what a new prospect starts with.
func DefaultLeaks() Leaks {
	return Leaks{Traffic: LeakMedium, Trust: LeakMedium, Enquiry: LeakMedium}
}

func (l LeakLevel) Validate() error {
	switch l {
	case LeakHigh, LeakMedium, LeakLow:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLeakLevel, string(l))
	}
}

func (l Leaks) Validate() error {
	for _, lvl := range []LeakLevel{l.Traffic, l.Trust, l.Enquiry} {
		if err := lvl.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Strings renders the leaks in their stored form: "Traffic: High", "Trust: Medium", "Enquiry: Low".
func (l Leaks) Strings() []string {
	return []string{
		"Traffic: " + string(l.Traffic),
		"Trust: " + string(l.Trust),
		"Enquiry: " + string(l.Enquiry),
	}
}

// ParseLeaks is the inverse of Leaks.Strings. Missing or malformed entries
// fall back to Medium.
func ParseLeaks(in []string) Leaks {
	out := DefaultLeaks()
	for _, s := range in {
		name, level, ok := strings.Cut(s, ": ")
		if !ok {
			continue
		}
		lvl := LeakLevel(strings.TrimSpace(level))
		if lvl.Validate() != nil {
			continue
		}
		switch strings.TrimSpace(name) {
		case "Traffic":
			out.Traffic = lvl
		case "Trust":
			out.Trust = lvl
		case "Enquiry":
			out.Enquiry = lvl
		}
	}
	return out
}

func (s ProspectStatus) Validate() error {
	switch s {
	case StatusPending, StatusContacted, StatusMeetingBooked:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
}

// StatusAfterCall returns the prospect status implied by a call outcome.
func StatusAfterCall(outcome string) ProspectStatus {
	if outcome == OutcomeMeetingBooked {
		return StatusMeetingBooked
	}
	return StatusContacted
}

func (p Prospect) Validate() error {
	if strings.TrimSpace(p.BusinessName) == "" {
		return ErrEmptyBusinessName
	}
	if len(p.BusinessName) > maxNameLength {
		return fmt.Errorf("%w: business name (max %d characters)", ErrFieldTooLong, maxNameLength)
	}
	fields := map[string]string{
		"website":    p.Website,
		"phone":      p.Phone,
		"location":   p.Location,
		"competitor": p.Competitor,
		"pain data":  p.PainData,
	}
	for name, v := range fields {
		if len(v) > maxFieldLength {
			return fmt.Errorf("%w: %s (max %d characters)", ErrFieldTooLong, name, maxFieldLength)
		}
	}
	if err := p.Leaks.Validate(); err != nil {
		return err
	}
	if p.Status != "" {
		if err := p.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s Script) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyScriptName
	}
	if len(s.Name) > maxNameLength {
		return fmt.Errorf("%w: script name (max %d characters)", ErrFieldTooLong, maxNameLength)
	}
	if strings.TrimSpace(s.Content) == "" {
		return ErrEmptyScriptBody
	}
	if len(s.Content) > maxContentLength {
		return fmt.Errorf("%w: script content (max %d characters)", ErrFieldTooLong, maxContentLength)
	}
	return nil
}
