package http

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"outreach/internal/core"
	applog "outreach/internal/log"
	"outreach/internal/records"
	"outreach/internal/services"
	"outreach/internal/tally"
	appweb "outreach/web"
)

var templateFuncs = template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"share": func(value, total int) float64 {
		return tally.Share(value, total)
	},
	"join":  strings.Join,
	"value": core.Value,
	"leaks": func(l core.Leaks) string { return strings.Join(l.Strings(), ", ") },
	"date":  func(p core.Prospect) string { return p.CreatedAt.Format("2006-01-02") },
	"has": func(set []string, v string) bool {
		for _, s := range set {
			if s == v {
				return true
			}
		}
		return false
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
}

// render executes name into a buffer first so a template error never
// leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded",
			applog.FieldPath, r.URL.Path,
			applog.FieldComponent, applog.ComponentTemplate)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			applog.FieldError, err,
			"template", name,
			applog.FieldOperation, applog.OpRender)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var validationErrors = []error{
	core.ErrEmptyBusinessName,
	core.ErrInvalidLeakLevel,
	core.ErrInvalidStatus,
	core.ErrEmptyScriptName,
	core.ErrEmptyScriptBody,
	core.ErrFieldTooLong,
	core.ErrMissingProspect,
	core.ErrInvalidCallResult,
	errInvalidID,
}

// statusFor maps an application error to an HTTP status.
func statusFor(err error) int {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	switch {
	case errors.Is(err, records.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes an HTML fragment with a message safe to
// show the user. Internal details stay in the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	status := statusFor(err)

	var msg string
	var resp *HTMXResponseBuilder
	switch status {
	case http.StatusUnprocessableEntity:
		msg = "Invalid input: " + err.Error()
		resp = UnprocessableEntityError(msg)
	case http.StatusNotFound:
		msg = "Not found"
		resp = NotFoundError(msg)
	case http.StatusBadGateway:
		msg = "Could not load call logs. Please try again."
		resp = BadGatewayError(msg)
	default:
		msg = "Something went wrong. Please try again."
		resp = InternalServerError(msg)
	}

	logger := applog.FromContext(r.Context())
	if status >= 500 {
		applog.NewStructuredLogger(logger).LogError(r.Context(), "Request failed", err, applog.ComponentHTTP, operation, nil)
	} else {
		logger.WarnContext(r.Context(), "Request rejected",
			applog.FieldError, err,
			applog.FieldOperation, operation,
			applog.FieldStatusCode, status)
	}

	resp.TriggerErrorNotification(msg).Write(w)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirectAfterPost sends htmx clients an HX-Redirect and everyone else a 303.
func redirectAfterPost(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, url string) {
	if isHTMX(r) {
		b.Redirect(url).Write(w)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
