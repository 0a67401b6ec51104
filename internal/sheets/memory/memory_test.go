package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"outreach/internal/core"
	"outreach/internal/tally"
)

func TestExporterAppend(t *testing.T) {
	ctx := context.Background()
	e := New()

	ref, err := e.AppendCallLog(ctx, core.Prospect{BusinessName: "Apex"}, core.CallLog{ProspectID: 1, CallResult: core.ResultConnected})
	if err != nil || ref != "mem:calls:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}
	if _, err := e.AppendCallLog(ctx, core.Prospect{}, core.CallLog{}); err == nil {
		t.Fatal("expected validation error for empty log")
	}

	ref, err = e.AppendDigest(ctx, time.Now(), tally.Compute(nil))
	if err != nil || ref != "mem:digest:1" {
		t.Fatalf("unexpected digest: ref=%q err=%v", ref, err)
	}

	if len(e.CallRows()) != 1 || len(e.DigestRows()) != 1 {
		t.Fatalf("rows: calls=%d digests=%d", len(e.CallRows()), len(e.DigestRows()))
	}
}

func TestExporterKeepsMostRecentRows(t *testing.T) {
	ctx := context.Background()
	e := NewWithLimit(2)

	var ref string
	for i := 1; i <= 5; i++ {
		var err error
		ref, err = e.AppendCallLog(ctx, core.Prospect{BusinessName: fmt.Sprintf("P%d", i)},
			core.CallLog{ProspectID: int64(i), CallResult: core.ResultNoAnswer})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if _, err := e.AppendDigest(ctx, time.Unix(int64(i), 0), tally.Compute(nil)); err != nil {
			t.Fatalf("digest %d: %v", i, err)
		}
	}

	if ref != "mem:calls:5" {
		t.Errorf("ref = %q, want mem:calls:5", ref)
	}
	rows := e.CallRows()
	if len(rows) != 2 {
		t.Fatalf("kept %d call rows, want 2", len(rows))
	}
	if !containsValue(rows[0], "P4") || !containsValue(rows[1], "P5") {
		t.Errorf("expected the two newest rows, got %v", rows)
	}
	if n := len(e.DigestRows()); n != 2 {
		t.Errorf("kept %d digest rows, want 2", n)
	}
}

func TestNewWithLimitDefaults(t *testing.T) {
	if e := NewWithLimit(0); e.maxRows != DefaultMaxRows {
		t.Errorf("maxRows = %d, want %d", e.maxRows, DefaultMaxRows)
	}
}

func containsValue(row []any, want string) bool {
	for _, v := range row {
		if v == want {
			return true
		}
	}
	return false
}
