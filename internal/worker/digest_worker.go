package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outreach/internal/records"
	"outreach/internal/sheets"
	"outreach/internal/tally"
)

// DigestWorker periodically tallies the full call history, logs the headline
// numbers and appends them to the digest sheet when a writer is configured.
type DigestWorker struct {
	logs     records.CallLogStore
	writer   sheets.DigestWriter
	interval time.Duration
	now      func() time.Time
}

func NewDigestWorker(logs records.CallLogStore, writer sheets.DigestWriter, interval time.Duration) *DigestWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &DigestWorker{
		logs:     logs,
		writer:   writer,
		interval: interval,
		now:      time.Now,
	}
}

// Run emits a digest immediately and then on every tick until ctx is done.
func (w *DigestWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Digest worker started", "interval", w.interval)

	for {
		if _, err := w.Digest(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to build digest", "error", err)
		}
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Digest worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Digest computes one summary over every logged call.
func (w *DigestWorker) Digest(ctx context.Context) (tally.Summary, error) {
	logs, err := w.logs.ListCallLogs(ctx)
	if err != nil {
		return tally.Summary{}, fmt.Errorf("list call logs: %w", err)
	}
	s := tally.Compute(logs)

	attrs := []any{
		"total_calls", s.TotalCalls,
		"total_connected", s.TotalConnected,
		"meetings_booked", s.MeetingBooked,
		"call_to_meeting_rate", fmt.Sprintf("%.1f", s.CallToMeetingRate()),
	}
	if top := s.TopObjections(); len(top) > 0 {
		attrs = append(attrs, "top_objection", top[0].Label, "top_objection_count", top[0].Count)
	}
	slog.InfoContext(ctx, "Call tally digest", attrs...)

	if w.writer != nil {
		if _, err := w.writer.AppendDigest(ctx, w.now(), s); err != nil {
			return s, fmt.Errorf("append digest: %w", err)
		}
	}
	return s, nil
}
