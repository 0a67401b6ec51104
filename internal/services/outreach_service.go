package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"outreach/internal/core"
	"outreach/internal/records"
	"outreach/internal/tally"
)

// ErrFetchFailed wraps any error raised while reading the call log history
// for a report. No partial summary accompanies it.
var ErrFetchFailed = errors.New("fetch call logs failed")

// EventPublisher announces logged calls to downstream consumers.
type EventPublisher interface {
	PublishCallLogged(ctx context.Context, logID, prospectID int64, outcome string) error
	Close() error
}

// OutreachService orchestrates prospect, call log and script operations
// across the record store and the event publisher.
type OutreachService struct {
	store     records.Store
	publisher EventPublisher
	caller    core.Caller
}

func NewOutreachService(store records.Store, publisher EventPublisher, caller core.Caller) *OutreachService {
	return &OutreachService{
		store:     store,
		publisher: publisher,
		caller:    caller,
	}
}

func (s *OutreachService) ListProspects(ctx context.Context) ([]core.Prospect, error) {
	return s.store.ListProspects(ctx)
}

func (s *OutreachService) GetProspect(ctx context.Context, id int64) (core.Prospect, error) {
	return s.store.GetProspect(ctx, id)
}

func (s *OutreachService) CreateProspect(ctx context.Context, p core.Prospect) (core.Prospect, error) {
	if err := p.Validate(); err != nil {
		return core.Prospect{}, err
	}
	created, err := s.store.CreateProspect(ctx, p)
	if err != nil {
		return core.Prospect{}, fmt.Errorf("save prospect: %w", err)
	}
	return created, nil
}

func (s *OutreachService) UpdateProspect(ctx context.Context, p core.Prospect) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateProspect(ctx, p); err != nil {
		return fmt.Errorf("update prospect: %w", err)
	}
	return nil
}

// DeleteProspect removes the prospect and every call logged against it.
func (s *OutreachService) DeleteProspect(ctx context.Context, id int64) error {
	if err := s.store.DeleteProspect(ctx, id); err != nil {
		return fmt.Errorf("delete prospect: %w", err)
	}
	return nil
}

// CallSuit returns what the caller needs on screen before dialling: the
// prospect, the pitch built for it and the script library.
func (s *OutreachService) CallSuit(ctx context.Context, id int64) (core.Prospect, core.Pitch, []core.Script, error) {
	p, err := s.store.GetProspect(ctx, id)
	if err != nil {
		return core.Prospect{}, core.Pitch{}, nil, err
	}
	scripts, err := s.store.ListScripts(ctx)
	if err != nil {
		return core.Prospect{}, core.Pitch{}, nil, fmt.Errorf("list scripts: %w", err)
	}
	return p, core.BuildPitch(p, s.caller), scripts, nil
}

// LogCall saves a call log, moves the prospect to the status implied by the
// outcome and publishes a call.logged event.
func (s *OutreachService) LogCall(ctx context.Context, l core.CallLog) (core.CallLog, error) {
	if err := l.Validate(); err != nil {
		return core.CallLog{}, err
	}
	if _, err := s.store.GetProspect(ctx, l.ProspectID); err != nil {
		return core.CallLog{}, err
	}

	saved, err := s.store.CreateCallLog(ctx, l)
	if err != nil {
		return core.CallLog{}, fmt.Errorf("save call log: %w", err)
	}

	status := core.StatusAfterCall(saved.Outcome)
	if err := s.store.UpdateProspectStatus(ctx, saved.ProspectID, status); err != nil {
		return saved, fmt.Errorf("update prospect status: %w", err)
	}

	if err := s.publishCallLogged(ctx, saved); err != nil {
		slog.ErrorContext(ctx, "Failed to publish call logged message",
			"log_id", saved.ID, "prospect_id", saved.ProspectID, "error", err)
		// The log is saved; export catches up from the store.
	}

	return saved, nil
}

func (s *OutreachService) publishCallLogged(ctx context.Context, l core.CallLog) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Event publisher not available, skipping call logged message")
		return nil
	}
	return s.publisher.PublishCallLogged(ctx, l.ID, l.ProspectID, l.Outcome)
}

// Report fetches the full call log history once and tallies it.
func (s *OutreachService) Report(ctx context.Context) (tally.Summary, error) {
	logs, err := s.store.ListCallLogs(ctx)
	if err != nil {
		return tally.Summary{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return tally.Compute(logs), nil
}

// ProspectReport tallies the calls logged against a single prospect.
func (s *OutreachService) ProspectReport(ctx context.Context, id int64) (tally.Summary, error) {
	if _, err := s.store.GetProspect(ctx, id); err != nil {
		return tally.Summary{}, err
	}
	logs, err := s.store.ListCallLogsByProspect(ctx, id)
	if err != nil {
		return tally.Summary{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return tally.Compute(logs), nil
}

func (s *OutreachService) ListScripts(ctx context.Context) ([]core.Script, error) {
	return s.store.ListScripts(ctx)
}

func (s *OutreachService) CreateScript(ctx context.Context, sc core.Script) (core.Script, error) {
	if err := sc.Validate(); err != nil {
		return core.Script{}, err
	}
	created, err := s.store.CreateScript(ctx, sc)
	if err != nil {
		return core.Script{}, fmt.Errorf("save script: %w", err)
	}
	return created, nil
}

func (s *OutreachService) DeleteScript(ctx context.Context, id int64) error {
	if err := s.store.DeleteScript(ctx, id); err != nil {
		return fmt.Errorf("delete script: %w", err)
	}
	return nil
}

// Close closes both the store and the publisher.
func (s *OutreachService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close outreach service: %w", errors.Join(errs...))
	}

	return nil
}
