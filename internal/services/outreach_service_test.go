package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach/internal/core"
	"outreach/internal/records"
	"outreach/internal/records/memory"
)

type published struct {
	logID, prospectID int64
	outcome           string
}

type fakePublisher struct {
	err    error
	events []published
	closed bool
}

func (f *fakePublisher) PublishCallLogged(_ context.Context, logID, prospectID int64, outcome string) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, published{logID, prospectID, outcome})
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

// failingLogs makes every call log read fail.
type failingLogs struct {
	records.Store
}

func (failingLogs) ListCallLogs(context.Context) ([]core.CallLog, error) {
	return nil, errors.New("connection reset")
}

func (failingLogs) ListCallLogsByProspect(context.Context, int64) ([]core.CallLog, error) {
	return nil, errors.New("connection reset")
}

var caller = core.Caller{Name: "Mankwe", Market: "Randburg plumbers"}

func newService(t *testing.T) (*OutreachService, *fakePublisher, core.Prospect) {
	t.Helper()
	pub := &fakePublisher{}
	svc := NewOutreachService(memory.New(memory.DefaultScripts()), pub, caller)
	p, err := svc.CreateProspect(context.Background(), core.Prospect{
		BusinessName: "Apex Plumbing",
		Competitor:   "Plumb Leak",
		Leaks:        core.DefaultLeaks(),
	})
	require.NoError(t, err)
	return svc, pub, p
}

func TestLogCallUpdatesStatusAndPublishes(t *testing.T) {
	ctx := context.Background()
	svc, pub, p := newService(t)

	saved, err := svc.LogCall(ctx, core.CallLog{
		ProspectID: p.ID,
		CallResult: core.ResultConnected,
		Outcome:    core.OutcomeListened,
	})
	require.NoError(t, err)

	got, err := svc.GetProspect(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusContacted, got.Status)

	_, err = svc.LogCall(ctx, core.CallLog{
		ProspectID: p.ID,
		CallResult: core.ResultConnected,
		Outcome:    core.OutcomeMeetingBooked,
	})
	require.NoError(t, err)

	got, _ = svc.GetProspect(ctx, p.ID)
	assert.Equal(t, core.StatusMeetingBooked, got.Status)

	require.Len(t, pub.events, 2)
	assert.Equal(t, published{saved.ID, p.ID, core.OutcomeListened}, pub.events[0])
}

func TestLogCallPublishFailureIsNotReturned(t *testing.T) {
	ctx := context.Background()
	svc, pub, p := newService(t)
	pub.err = errors.New("channel closed")

	_, err := svc.LogCall(ctx, core.CallLog{ProspectID: p.ID, CallResult: core.ResultNoAnswer})
	require.NoError(t, err)

	logs, err := svc.store.ListCallLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestLogCallRejects(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newService(t)

	_, err := svc.LogCall(ctx, core.CallLog{ProspectID: 999, CallResult: core.ResultConnected})
	assert.ErrorIs(t, err, records.ErrNotFound)

	_, err = svc.LogCall(ctx, core.CallLog{ProspectID: 1, CallResult: "Voicemail"})
	assert.ErrorIs(t, err, core.ErrInvalidCallResult)

	assert.Empty(t, pub.events)
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	svc, _, p := newService(t)

	summary, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalCalls)
	assert.Equal(t, 0.0, summary.CallToMeetingRate())

	for _, l := range []core.CallLog{
		{ProspectID: p.ID, CallResult: core.ResultConnected, Outcome: core.OutcomeMeetingBooked, Objections: []string{"Too Busy"}},
		{ProspectID: p.ID, CallResult: core.ResultConnected, Outcome: core.OutcomeHungUp, Objections: []string{"Too Busy", "No Budget"}},
		{ProspectID: p.ID, CallResult: core.ResultGatekeeper},
	} {
		_, err := svc.LogCall(ctx, l)
		require.NoError(t, err)
	}

	summary, err = svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCalls)
	assert.Equal(t, 2, summary.TotalConnected)
	assert.Equal(t, 1, summary.MeetingBooked)
	assert.Equal(t, map[string]int{"Too Busy": 2, "No Budget": 1}, summary.Objections)
	assert.Equal(t, 50.0, summary.CallToMeetingRate())

	other, err := svc.CreateProspect(ctx, core.Prospect{BusinessName: "Bolt", Leaks: core.DefaultLeaks()})
	require.NoError(t, err)
	perProspect, err := svc.ProspectReport(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, perProspect.TotalCalls)

	_, err = svc.ProspectReport(ctx, 999)
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestReportFetchFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New(nil)
	p, err := store.CreateProspect(ctx, core.Prospect{BusinessName: "Apex", Leaks: core.DefaultLeaks()})
	require.NoError(t, err)
	svc := NewOutreachService(failingLogs{store}, nil, caller)

	summary, err := svc.Report(ctx)
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Zero(t, summary.TotalCalls)
	assert.Nil(t, summary.Attention)

	_, err = svc.ProspectReport(ctx, p.ID)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestCallSuit(t *testing.T) {
	svc, _, p := newService(t)

	got, pitch, scripts, err := svc.CallSuit(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Contains(t, pitch.Gatekeeper, "Plumb Leak")
	assert.Len(t, scripts, len(memory.DefaultScripts()))
}

func TestDeleteProspectRemovesFromReport(t *testing.T) {
	ctx := context.Background()
	svc, _, p := newService(t)
	_, err := svc.LogCall(ctx, core.CallLog{ProspectID: p.ID, CallResult: core.ResultConnected})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProspect(ctx, p.ID))

	summary, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalCalls)
	assert.ErrorIs(t, svc.DeleteProspect(ctx, p.ID), records.ErrNotFound)
}

func TestScripts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	sc, err := svc.CreateScript(ctx, core.Script{Name: "Hook D", Content: "Closing"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteScript(ctx, sc.ID))

	_, err = svc.CreateScript(ctx, core.Script{Name: "Hook E"})
	assert.ErrorIs(t, err, core.ErrEmptyScriptBody)
}

func TestClose(t *testing.T) {
	svc, pub, _ := newService(t)
	require.NoError(t, svc.Close())
	assert.True(t, pub.closed)

	empty := &OutreachService{}
	assert.NoError(t, empty.Close())
}
