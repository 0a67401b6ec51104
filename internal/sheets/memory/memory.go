package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"outreach/internal/core"
	"outreach/internal/sheets"
	"outreach/internal/tally"
)

// DefaultMaxRows bounds each row list kept by New.
const DefaultMaxRows = 1000

// Exporter collects rows in memory. The worker uses it when no spreadsheet
// is configured, and tests use it to observe exports. Only the most recent
// maxRows rows of each kind are kept; row refs keep counting past the cap.
type Exporter struct {
	mu         sync.Mutex
	maxRows    int
	calls      [][]any
	digests    [][]any
	callsSeen  int
	digestSeen int
}

var _ sheets.Exporter = (*Exporter)(nil)

func New() *Exporter {
	return NewWithLimit(DefaultMaxRows)
}

// NewWithLimit keeps at most maxRows rows of each kind. A limit below 1
// means DefaultMaxRows.
func NewWithLimit(maxRows int) *Exporter {
	if maxRows < 1 {
		maxRows = DefaultMaxRows
	}
	return &Exporter{maxRows: maxRows}
}

func (e *Exporter) AppendCallLog(_ context.Context, p core.Prospect, l core.CallLog) (string, error) {
	if err := l.Validate(); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = e.appendCapped(e.calls, sheets.CallLogRow(p, l))
	e.callsSeen++
	return fmt.Sprintf("mem:calls:%d", e.callsSeen), nil
}

func (e *Exporter) AppendDigest(_ context.Context, at time.Time, s tally.Summary) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.digests = e.appendCapped(e.digests, sheets.DigestRow(at, s))
	e.digestSeen++
	return fmt.Sprintf("mem:digest:%d", e.digestSeen), nil
}

func (e *Exporter) appendCapped(rows [][]any, row []any) [][]any {
	rows = append(rows, row)
	if over := len(rows) - e.maxRows; over > 0 {
		// Shift in place; dropped rows must not stay reachable.
		rows = append(rows[:0], rows[over:]...)
	}
	return rows
}

// CallRows returns a copy of the exported call rows.
func (e *Exporter) CallRows() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]any(nil), e.calls...)
}

// DigestRows returns a copy of the exported digest rows.
func (e *Exporter) DigestRows() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]any(nil), e.digests...)
}
