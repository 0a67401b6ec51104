package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach/internal/core"
	"outreach/internal/records"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "outreach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outreach.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	require.NoError(t, RunMigrations(path))
}

func TestSeededScriptsOrdered(t *testing.T) {
	repo := newTestRepo(t)
	scripts, err := repo.ListScripts(context.Background())
	require.NoError(t, err)
	require.Len(t, scripts, 3)
	assert.Equal(t, "Hook A: Competition Report", scripts[0].Name)
	assert.Equal(t, "Hook C: Trust Leak", scripts[2].Name)
}

func TestProspectRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	created, err := repo.CreateProspect(ctx, core.Prospect{
		BusinessName: "Apex Plumbing",
		Website:      "apex.example",
		Competitor:   "Plumb Leak",
		PainData:     "4.1 stars vs 5.0",
		Leaks:        core.Leaks{Traffic: core.LeakLow, Trust: core.LeakHigh, Enquiry: core.LeakMedium},
	})
	require.NoError(t, err)
	assert.Equal(t, core.StatusPending, created.Status)
	assert.NotZero(t, created.ID)

	got, err := repo.GetProspect(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, core.LeakHigh, got.Leaks.Trust)

	got.Phone = "011 555 0101"
	got.Status = core.StatusContacted
	require.NoError(t, repo.UpdateProspect(ctx, got))

	updated, err := repo.GetProspect(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "011 555 0101", updated.Phone)
	assert.Equal(t, core.StatusContacted, updated.Status)

	_, err = repo.GetProspect(ctx, 999)
	assert.ErrorIs(t, err, records.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateProspectStatus(ctx, 999, core.StatusContacted), records.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateProspectStatus(ctx, created.ID, "Lost"), core.ErrInvalidStatus)
}

func TestListProspectsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	base := time.Unix(1_700_000_000, 0)
	tick := 0
	repo.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := repo.CreateProspect(ctx, core.Prospect{BusinessName: name, Leaks: core.DefaultLeaks()})
		require.NoError(t, err)
	}

	list, err := repo.ListProspects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Third", list[0].BusinessName)
	assert.Equal(t, "First", list[2].BusinessName)
}

func TestCallLogOptionalFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	p, err := repo.CreateProspect(ctx, core.Prospect{BusinessName: "Apex", Leaks: core.DefaultLeaks()})
	require.NoError(t, err)

	full, err := repo.CreateCallLog(ctx, core.CallLog{
		ProspectID:        p.ID,
		ScriptUsed:        "Hook B: Gatekeeper (10/10)",
		CallResult:        core.ResultConnected,
		HookAttention:     core.Opt(core.AttentionEngaged),
		HookInterestPeak:  core.Opt(core.InterestPeakNone),
		ProspectSentiment: core.Opt(core.SentimentPositive),
		Objections:        []string{"Too Busy", "No Budget"},
		Outcome:           core.OutcomeMeetingBooked,
	})
	require.NoError(t, err)

	bare, err := repo.CreateCallLog(ctx, core.CallLog{ProspectID: p.ID, CallResult: core.ResultNoAnswer})
	require.NoError(t, err)

	got, err := repo.GetCallLog(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, core.AttentionEngaged, core.Value(got.HookAttention))
	assert.Equal(t, []string{"Too Busy", "No Budget"}, got.Objections)

	got, err = repo.GetCallLog(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, got.HookAttention)
	assert.Nil(t, got.ProspectSentiment)
	assert.Empty(t, got.Objections)

	all, err := repo.ListCallLogs(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, full.ID, all[0].ID)

	_, err = repo.CreateCallLog(ctx, core.CallLog{ProspectID: 999, CallResult: core.ResultConnected})
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestDeleteProspectCascadesLogs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	a, err := repo.CreateProspect(ctx, core.Prospect{BusinessName: "Apex", Leaks: core.DefaultLeaks()})
	require.NoError(t, err)
	b, err := repo.CreateProspect(ctx, core.Prospect{BusinessName: "Bolt", Leaks: core.DefaultLeaks()})
	require.NoError(t, err)

	for _, id := range []int64{a.ID, a.ID, b.ID} {
		_, err := repo.CreateCallLog(ctx, core.CallLog{ProspectID: id, CallResult: core.ResultGatekeeper})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteProspect(ctx, a.ID))

	logs, err := repo.ListCallLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, b.ID, logs[0].ProspectID)

	left, err := repo.ListCallLogsByProspect(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, repo.DeleteProspect(ctx, a.ID), records.ErrNotFound)
}

func TestScriptCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	s, err := repo.CreateScript(ctx, core.Script{Name: "Hook D", Content: "Closing line"})
	require.NoError(t, err)

	list, err := repo.ListScripts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hook D", list[len(list)-1].Name)

	require.NoError(t, repo.DeleteScript(ctx, s.ID))
	assert.ErrorIs(t, repo.DeleteScript(ctx, s.ID), records.ErrNotFound)

	_, err = repo.CreateScript(ctx, core.Script{Content: "no name"})
	assert.ErrorIs(t, err, core.ErrEmptyScriptName)
}
