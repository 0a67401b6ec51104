package http

import (
	"context"
	"net/http"

	"outreach/internal/core"
	applog "outreach/internal/log"
)

type scriptsView struct {
	Scripts []core.Script
	Draft   core.Script
	Error   string
}

// listScripts reads the script library through the cache. The returned
// slice is a copy.
func (s *Server) listScripts(ctx context.Context) ([]core.Script, error) {
	scripts, err := s.scripts.GetOrLoad(ctx, scriptsCacheKey, s.app.ListScripts)
	if err != nil {
		return nil, err
	}
	return append([]core.Script(nil), scripts...), nil
}

func (s *Server) invalidateScripts() {
	s.scripts.Delete(scriptsCacheKey)
}

func (s *Server) handleScripts(w http.ResponseWriter, r *http.Request) {
	scripts, err := s.listScripts(r.Context())
	if err != nil {
		s.writeError(w, r, err, applog.OpList)
		return
	}
	s.render(w, r, http.StatusOK, "scripts.html", scriptsView{Scripts: scripts})
}

func (s *Server) handleCreateScript(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	draft := ParseScript(parser)
	created, err := s.app.CreateScript(r.Context(), draft)
	if err != nil {
		if statusFor(err) == http.StatusUnprocessableEntity && !isHTMX(r) {
			scripts, listErr := s.listScripts(r.Context())
			if listErr != nil {
				s.writeError(w, r, listErr, applog.OpList)
				return
			}
			s.render(w, r, http.StatusUnprocessableEntity, "scripts.html",
				scriptsView{Scripts: scripts, Draft: draft, Error: err.Error()})
			return
		}
		s.writeError(w, r, err, applog.OpCreate)
		return
	}
	s.invalidateScripts()

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Script created",
		applog.FieldScriptID, created.ID, "name", created.Name)

	redirectAfterPost(w, r, NewHTMXResponse().
		TriggerScriptsChanged().
		TriggerSuccessNotification("Script saved"), "/scripts")
}

func (s *Server) handleDeleteScript(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, applog.OpDelete)
		return
	}
	if err := s.app.DeleteScript(r.Context(), id); err != nil {
		s.writeError(w, r, err, applog.OpDelete)
		return
	}
	s.invalidateScripts()

	redirectAfterPost(w, r, NewHTMXResponse().
		TriggerScriptsChanged().
		TriggerSuccessNotification("Script deleted"), "/scripts")
}
