package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"outreach/internal/core"
	"outreach/internal/records"
)

func newProspect(name string) core.Prospect {
	return core.Prospect{BusinessName: name, Competitor: "Plumb Leak", Leaks: core.DefaultLeaks()}
}

func TestProspectLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	a, err := s.CreateProspect(ctx, newProspect("Apex"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == 0 || a.Status != core.StatusPending || a.CreatedAt.IsZero() {
		t.Fatalf("unexpected defaults: %+v", a)
	}
	b, _ := s.CreateProspect(ctx, newProspect("Bolt"))

	list, _ := s.ListProspects(ctx)
	if len(list) != 2 || list[0].ID != b.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	a.Phone = "011 555 0101"
	if err := s.UpdateProspect(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.UpdateProspectStatus(ctx, a.ID, core.StatusContacted); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, _ := s.GetProspect(ctx, a.ID)
	if got.Phone != "011 555 0101" || got.Status != core.StatusContacted {
		t.Fatalf("unexpected prospect after update: %+v", got)
	}

	if _, err := s.GetProspect(ctx, 999); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateProspectStatus(ctx, a.ID, "Lost"); !errors.Is(err, core.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestDeleteProspectRemovesLogs(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	a, _ := s.CreateProspect(ctx, newProspect("Apex"))
	b, _ := s.CreateProspect(ctx, newProspect("Bolt"))

	for _, id := range []int64{a.ID, a.ID, b.ID} {
		if _, err := s.CreateCallLog(ctx, core.CallLog{ProspectID: id, CallResult: core.ResultConnected}); err != nil {
			t.Fatalf("create log: %v", err)
		}
	}

	if err := s.DeleteProspect(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	logs, _ := s.ListCallLogs(ctx)
	if len(logs) != 1 || logs[0].ProspectID != b.ID {
		t.Fatalf("expected only Bolt's log to remain, got %+v", logs)
	}
	if err := s.DeleteProspect(ctx, a.ID); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCallLogs(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	if _, err := s.CreateCallLog(ctx, core.CallLog{ProspectID: 42, CallResult: core.ResultConnected}); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown prospect, got %v", err)
	}

	p, _ := s.CreateProspect(ctx, newProspect("Apex"))
	objections := []string{"Too Busy"}
	l, err := s.CreateCallLog(ctx, core.CallLog{
		ProspectID:    p.ID,
		CallResult:    core.ResultConnected,
		HookAttention: core.Opt(core.AttentionEngaged),
		Objections:    objections,
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	objections[0] = "changed"

	got, err := s.GetCallLog(ctx, l.ID)
	if err != nil || got.Objections[0] != "Too Busy" {
		t.Fatalf("stored log should own its objections: %+v err=%v", got, err)
	}

	byProspect, _ := s.ListCallLogsByProspect(ctx, p.ID)
	if len(byProspect) != 1 {
		t.Fatalf("expected 1 log for prospect, got %d", len(byProspect))
	}
	if _, err := s.GetCallLog(ctx, 999); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScripts(t *testing.T) {
	ctx := context.Background()
	s := New([]core.Script{{Name: "Hook A", Content: "x"}, {Name: "", Content: "skipped"}})

	list, _ := s.ListScripts(ctx)
	if len(list) != 1 {
		t.Fatalf("invalid seed scripts should be skipped, got %+v", list)
	}

	sc, err := s.CreateScript(ctx, core.Script{Name: "Hook B", Content: "y"})
	if err != nil {
		t.Fatalf("create script: %v", err)
	}
	list, _ = s.ListScripts(ctx)
	if len(list) != 2 || list[1].Name != "Hook B" {
		t.Fatalf("expected oldest first, got %+v", list)
	}

	if err := s.DeleteScript(ctx, sc.ID); err != nil {
		t.Fatalf("delete script: %v", err)
	}
	if err := s.DeleteScript(ctx, sc.ID); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.CreateScript(ctx, core.Script{Name: "Empty"}); !errors.Is(err, core.ErrEmptyScriptBody) {
		t.Fatalf("expected ErrEmptyScriptBody, got %v", err)
	}
}

func TestNewFromFilesSeedsScripts(t *testing.T) {
	dir := t.TempDir()
	s := NewFromFiles(dir)
	list, _ := s.ListScripts(context.Background())
	if len(list) != len(DefaultScripts()) {
		t.Fatalf("expected default scripts when file missing, got %d", len(list))
	}

	content := "# hooks\nHook A | first\nHook A | duplicate\nno separator\n\nHook B | second\n"
	if err := os.WriteFile(filepath.Join(dir, "seed_scripts.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	s = NewFromFiles(dir)
	list, _ = s.ListScripts(context.Background())
	if len(list) != 2 || list[0].Name != "Hook A" || list[0].Content != "first" || list[1].Name != "Hook B" {
		t.Fatalf("unexpected seeded scripts: %+v", list)
	}
}
