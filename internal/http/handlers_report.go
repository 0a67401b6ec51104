package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"outreach/internal/core"
	applog "outreach/internal/log"
	"outreach/internal/tally"
)

// barRow is one labelled bar on the report, sized as a share of connected
// calls.
type barRow struct {
	Label string
	Count int
	Share float64
}

type reportView struct {
	Summary          tally.Summary
	Rate             float64
	Attention        []barRow
	Sentiments       []barRow
	TopObjections    []tally.Entry
	TopInterestPeaks []tally.Entry
	Error            string
}

// reportResponse is the JSON shape of /api/report.
type reportResponse struct {
	tally.Summary
	CallToMeetingRate float64       `json:"callToMeetingRate"`
	TopObjections     []tally.Entry `json:"topObjections"`
	TopInterestPeaks  []tally.Entry `json:"topInterestPeaks"`
}

// bars lists the known keys in their display order followed by any other
// keys by descending count.
func bars(counts map[string]int, known []string, total int) []barRow {
	rows := make([]barRow, 0, len(counts))
	seen := make(map[string]bool, len(known))
	for _, k := range known {
		seen[k] = true
		rows = append(rows, barRow{Label: k, Count: counts[k], Share: tally.Share(counts[k], total)})
	}
	for _, e := range tally.Rank(counts) {
		if seen[e.Label] {
			continue
		}
		rows = append(rows, barRow{Label: e.Label, Count: e.Count, Share: tally.Share(e.Count, total)})
	}
	return rows
}

func newReportView(s tally.Summary) reportView {
	return reportView{
		Summary:          s,
		Rate:             s.CallToMeetingRate(),
		Attention:        bars(s.Attention, core.Attentions, s.TotalConnected),
		Sentiments:       bars(s.Sentiments, core.Sentiments, s.TotalConnected),
		TopObjections:    s.TopObjections(),
		TopInterestPeaks: s.TopInterestPeaks(),
	}
}

// summaryFor tallies every call, or one prospect's calls when prospect_id
// is set.
func (s *Server) summaryFor(ctx context.Context, r *http.Request) (tally.Summary, error) {
	raw := r.URL.Query().Get("prospect_id")
	if raw == "" {
		return s.app.Report(ctx)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return tally.Summary{}, errInvalidID
	}
	return s.app.ProspectReport(ctx, id)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaryFor(r.Context(), r)
	if err != nil {
		status := statusFor(err)
		if status != http.StatusBadGateway {
			s.writeError(w, r, err, applog.OpReport)
			return
		}
		applog.NewStructuredLogger(applog.FromContext(r.Context())).
			LogError(r.Context(), "Report unavailable", err, applog.ComponentOutreach, applog.OpReport, nil)
		s.render(w, r, status, "report.html", reportView{Error: "Could not load call logs. Please try again."})
		return
	}

	s.render(w, r, http.StatusOK, "report.html", newReportView(summary))
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaryFor(r.Context(), r)
	if err != nil {
		status := statusFor(err)
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Report request failed",
			applog.FieldError, err, applog.FieldStatusCode, status)
		msg := http.StatusText(status)
		if status == http.StatusBadGateway {
			msg = "fetch call logs failed"
		}
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Summary:           summary,
		CallToMeetingRate: summary.CallToMeetingRate(),
		TopObjections:     summary.TopObjections(),
		TopInterestPeaks:  summary.TopInterestPeaks(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
