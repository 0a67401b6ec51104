package sheets

import (
	"context"
	"time"

	"outreach/internal/core"
	"outreach/internal/tally"
)

// Ports for outbound spreadsheet adapters.
type (
	// CallLogExporter appends one row per logged call.
	CallLogExporter interface {
		AppendCallLog(ctx context.Context, p core.Prospect, l core.CallLog) (rowRef string, err error)
	}

	// DigestWriter appends a periodic tally snapshot.
	DigestWriter interface {
		AppendDigest(ctx context.Context, at time.Time, s tally.Summary) (rowRef string, err error)
	}

	Exporter interface {
		CallLogExporter
		DigestWriter
	}
)
