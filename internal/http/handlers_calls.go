package http

import (
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"outreach/internal/core"
	applog "outreach/internal/log"
	"outreach/internal/tally"
)

// callOptions are the vocabularies offered by the post-call form.
type callOptions struct {
	CallResults   []string
	Attentions    []string
	InterestPeaks []string
	Sentiments    []string
	Objections    []string
	Outcomes      []string
}

var postCallOptions = callOptions{
	CallResults:   core.CallResults,
	Attentions:    core.Attentions,
	InterestPeaks: core.InterestPeaks,
	Sentiments:    core.Sentiments,
	Objections:    core.Objections,
	Outcomes:      core.Outcomes,
}

type callSuitView struct {
	Prospect core.Prospect
	Pitch    core.Pitch
	Scripts  []core.Script
	History  tally.Summary
	Rate     float64
	Options  callOptions
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// handleCallSuit shows the pitch, the script library and the post-call form
// for one prospect, with the tally of its earlier calls.
func (s *Server) handleCallSuit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, applog.OpRead)
		return
	}

	view := callSuitView{Options: postCallOptions}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		p, pitch, scripts, err := s.app.CallSuit(ctx, id)
		if err != nil {
			return err
		}
		view.Prospect, view.Pitch, view.Scripts = p, pitch, scripts
		return nil
	})
	g.Go(func() error {
		history, err := s.app.ProspectReport(ctx, id)
		if err != nil {
			return err
		}
		view.History = history
		view.Rate = history.CallToMeetingRate()
		return nil
	})
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err, applog.OpRead)
		return
	}

	s.render(w, r, http.StatusOK, "call_suit.html", view)
}

func (s *Server) handleLogCall(w http.ResponseWriter, r *http.Request) {
	prospectID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, applog.OpLogCall)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	saved, err := s.app.LogCall(r.Context(), ParseCallLog(parser, prospectID))
	if err != nil {
		s.writeError(w, r, err, applog.OpLogCall)
		return
	}

	s.recordCallLogged()
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogCallLogged(r.Context(), saved.ID, saved.ProspectID, saved.CallResult, saved.Outcome)

	if parser.IsJSON() {
		writeJSON(w, http.StatusCreated, newCallLogResponse(saved))
		return
	}
	if !isHTMX(r) {
		http.Redirect(w, r, "/prospects/"+itoa(prospectID)+"/call", http.StatusSeeOther)
		return
	}

	msg := fmt.Sprintf("Call logged (#%d): %s", saved.ID, saved.CallResult)
	if saved.Outcome != "" {
		msg += ", " + saved.Outcome
	}
	SuccessResponse(msg).
		TriggerCallLogged(saved.ProspectID, saved.ID).
		TriggerFormReset().
		TriggerSuccessNotification("Call logged").
		Write(w)
}

// callLogResponse is the JSON answer to a call logged with a JSON body.
type callLogResponse struct {
	ID                int64    `json:"id"`
	ProspectID        int64    `json:"prospectId"`
	ScriptUsed        string   `json:"scriptUsed,omitempty"`
	CallResult        string   `json:"callResult"`
	HookAttention     *string  `json:"hookAttention"`
	HookInterestPeak  *string  `json:"hookInterestPeak"`
	ProspectSentiment *string  `json:"prospectSentiment"`
	Objections        []string `json:"objections"`
	Outcome           string   `json:"outcome,omitempty"`
	CreatedAt         int64    `json:"createdAt"`
}

func newCallLogResponse(l core.CallLog) callLogResponse {
	objections := l.Objections
	if objections == nil {
		objections = []string{}
	}
	return callLogResponse{
		ID:                l.ID,
		ProspectID:        l.ProspectID,
		ScriptUsed:        l.ScriptUsed,
		CallResult:        l.CallResult,
		HookAttention:     l.HookAttention,
		HookInterestPeak:  l.HookInterestPeak,
		ProspectSentiment: l.ProspectSentiment,
		Objections:        objections,
		Outcome:           l.Outcome,
		CreatedAt:         l.CreatedAt.Unix(),
	}
}
