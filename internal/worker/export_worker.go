package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"outreach/internal/amqp"
	"outreach/internal/records"
	"outreach/internal/sheets"
)

// ExportWorker copies logged calls to the spreadsheet.
type ExportWorker struct {
	store    records.Store
	exporter sheets.CallLogExporter
}

func NewExportWorker(store records.Store, exporter sheets.CallLogExporter) *ExportWorker {
	return &ExportWorker{store: store, exporter: exporter}
}

// HandleCallLogged exports the call named by msg. A log or prospect that no
// longer exists is skipped so the message is acked rather than requeued.
func (w *ExportWorker) HandleCallLogged(ctx context.Context, msg *amqp.CallLoggedMessage) error {
	slog.InfoContext(ctx, "Processing call logged message",
		"log_id", msg.LogID,
		"prospect_id", msg.ProspectID)

	l, err := w.store.GetCallLog(ctx, msg.LogID)
	if errors.Is(err, records.ErrNotFound) {
		slog.WarnContext(ctx, "Call log no longer exists, skipping export", "log_id", msg.LogID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get call log from storage: %w", err)
	}

	p, err := w.store.GetProspect(ctx, l.ProspectID)
	if errors.Is(err, records.ErrNotFound) {
		slog.WarnContext(ctx, "Prospect no longer exists, skipping export",
			"log_id", msg.LogID, "prospect_id", l.ProspectID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get prospect from storage: %w", err)
	}

	ref, err := w.exporter.AppendCallLog(ctx, p, l)
	if err != nil {
		return fmt.Errorf("export call log: %w", err)
	}

	slog.InfoContext(ctx, "Exported call log",
		"log_id", l.ID,
		"business_name", p.BusinessName,
		"sheets_ref", ref)

	return nil
}
