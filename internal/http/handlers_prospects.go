package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"outreach/internal/core"
	applog "outreach/internal/log"
	"outreach/internal/tally"
)

type dashboardView struct {
	Prospects   []core.Prospect
	Summary     tally.Summary
	Rate        float64
	ReportError string
}

type prospectFormView struct {
	Title      string
	Action     string
	IsNew      bool
	Prospect   core.Prospect
	LeakLevels []core.LeakLevel
	Statuses   []core.ProspectStatus
	Error      string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleDashboard loads the prospect list and the headline tally in
// parallel. A failed tally still renders the list with an error banner.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var view dashboardView

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		prospects, err := s.app.ListProspects(ctx)
		view.Prospects = prospects
		return err
	})
	g.Go(func() error {
		summary, err := s.app.Report(ctx)
		if err != nil {
			applog.FromContext(ctx).WarnContext(ctx, "Dashboard tally unavailable", applog.FieldError, err)
			view.ReportError = "Could not load call logs. Please try again."
			summary = tally.Empty()
		}
		view.Summary = summary
		view.Rate = summary.CallToMeetingRate()
		return nil
	})
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err, applog.OpList)
		return
	}

	s.render(w, r, http.StatusOK, "dashboard.html", view)
}

func newProspectForm() prospectFormView {
	return prospectFormView{
		Title:      "New prospect",
		Action:     "/prospects",
		IsNew:      true,
		Prospect:   core.Prospect{Leaks: core.DefaultLeaks(), Status: core.StatusPending},
		LeakLevels: core.LeakLevels,
		Statuses:   []core.ProspectStatus{core.StatusPending, core.StatusContacted, core.StatusMeetingBooked},
	}
}

func editProspectForm(p core.Prospect) prospectFormView {
	view := newProspectForm()
	view.Title = "Edit " + p.BusinessName
	view.Action = "/prospects/" + itoa(p.ID)
	view.IsNew = false
	view.Prospect = p
	return view
}

func (s *Server) handleNewProspect(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "prospect_form.html", newProspectForm())
}

func (s *Server) handleCreateProspect(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	p := ParseProspect(parser)
	created, err := s.app.CreateProspect(r.Context(), p)
	if err != nil {
		if statusFor(err) == http.StatusUnprocessableEntity && !isHTMX(r) {
			view := newProspectForm()
			view.Prospect = p
			view.Error = err.Error()
			s.render(w, r, http.StatusUnprocessableEntity, "prospect_form.html", view)
			return
		}
		s.writeError(w, r, err, applog.OpCreate)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Prospect created",
		applog.NewFields().WithProspect(created.ID, created.BusinessName).WithOperation(applog.OpCreate).ToSlice()...)

	redirectAfterPost(w, r, NewHTMXResponse().
		TriggerProspectSaved(created.ID).
		TriggerSuccessNotification("Prospect added"), "/dashboard")
}

func (s *Server) handleEditProspect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, applog.OpRead)
		return
	}
	p, err := s.app.GetProspect(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, applog.OpRead)
		return
	}
	s.render(w, r, http.StatusOK, "prospect_form.html", editProspectForm(p))
}

func (s *Server) handleUpdateProspect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, applog.OpUpdate)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	p := ParseProspect(parser)
	p.ID = id
	if err := s.app.UpdateProspect(r.Context(), p); err != nil {
		if statusFor(err) == http.StatusUnprocessableEntity && !isHTMX(r) {
			view := editProspectForm(p)
			view.Error = err.Error()
			s.render(w, r, http.StatusUnprocessableEntity, "prospect_form.html", view)
			return
		}
		s.writeError(w, r, err, applog.OpUpdate)
		return
	}

	redirectAfterPost(w, r, NewHTMXResponse().
		TriggerProspectSaved(id).
		TriggerSuccessNotification("Prospect updated"), "/dashboard")
}

func (s *Server) handleDeleteProspect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, applog.OpDelete)
		return
	}
	if err := s.app.DeleteProspect(r.Context(), id); err != nil {
		s.writeError(w, r, err, applog.OpDelete)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Prospect deleted",
		applog.FieldProspectID, id, applog.FieldOperation, applog.OpDelete)

	redirectAfterPost(w, r, NewHTMXResponse().
		TriggerProspectDeleted(id).
		TriggerSuccessNotification("Prospect deleted"), "/dashboard")
}
