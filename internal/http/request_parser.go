package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"outreach/internal/core"
)

// maxBodyBytes caps form and JSON bodies.
const maxBodyBytes = 1 << 20

var errInvalidID = errors.New("invalid id")

// RequestBodyParser reads a JSON or form-encoded body once and serves
// sanitized values from it.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse decodes the body as JSON when it looks like JSON, else as a form.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// GetAll returns every non-empty value for key. JSON arrays and repeated
// form fields are both accepted.
func (p *RequestBodyParser) GetAll(key string) []string {
	var raw []string
	if p.jsonData != nil {
		switch v := p.jsonData[key].(type) {
		case []any:
			for _, item := range v {
				raw = append(raw, stringValue(item))
			}
		case nil:
		default:
			raw = append(raw, stringValue(v))
		}
	} else if p.formData != nil {
		raw = p.formData[key]
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s := sanitizeInput(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput trims whitespace and drops control characters other than
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// pathID reads a positive integer path value.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, r.PathValue(name))
	}
	return id, nil
}

// ParseProspect builds a prospect from the prospect form. Missing leak
// levels default to Medium; an unknown level is kept so validation rejects it.
func ParseProspect(p *RequestBodyParser) core.Prospect {
	leaks := core.DefaultLeaks()
	for field, dst := range map[string]*core.LeakLevel{
		"leak_traffic": &leaks.Traffic,
		"leak_trust":   &leaks.Trust,
		"leak_enquiry": &leaks.Enquiry,
	} {
		if v := p.Get(field); v != "" {
			*dst = core.LeakLevel(v)
		}
	}

	return core.Prospect{
		BusinessName: p.Get("business_name"),
		Website:      p.Get("website"),
		Phone:        p.Get("phone"),
		Location:     p.Get("location"),
		Competitor:   p.Get("competitor"),
		PainData:     p.Get("pain_data"),
		Leaks:        leaks,
		Status:       core.ProspectStatus(p.Get("status")),
	}
}

// ParseCallLog builds a call log from the post-call form. Blank optional
// fields stay nil.
func ParseCallLog(p *RequestBodyParser, prospectID int64) core.CallLog {
	return core.CallLog{
		ProspectID:        prospectID,
		ScriptUsed:        p.Get("script_used"),
		CallResult:        p.Get("call_result"),
		HookAttention:     core.Opt(p.Get("hook_attention")),
		HookInterestPeak:  core.Opt(p.Get("hook_interest_peak")),
		ProspectSentiment: core.Opt(p.Get("prospect_sentiment")),
		Objections:        p.GetAll("objections"),
		RawObjection:      p.Get("raw_objection"),
		Outcome:           p.Get("outcome"),
		Notes:             p.Get("notes"),
	}
}

func ParseScript(p *RequestBodyParser) core.Script {
	return core.Script{
		Name:    p.Get("name"),
		Content: p.Get("content"),
	}
}
