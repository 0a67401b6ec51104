// Package records declares the persistence ports for prospects, call logs
// and scripts. Implementations live in records/memory and storage.
package records

import (
	"context"
	"errors"

	"outreach/internal/core"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

type (
	ProspectStore interface {
		// ListProspects returns prospects newest first.
		ListProspects(ctx context.Context) ([]core.Prospect, error)
		GetProspect(ctx context.Context, id int64) (core.Prospect, error)
		CreateProspect(ctx context.Context, p core.Prospect) (core.Prospect, error)
		UpdateProspect(ctx context.Context, p core.Prospect) error
		UpdateProspectStatus(ctx context.Context, id int64, status core.ProspectStatus) error
		// DeleteProspect removes the prospect together with its call logs.
		DeleteProspect(ctx context.Context, id int64) error
	}

	CallLogStore interface {
		CreateCallLog(ctx context.Context, l core.CallLog) (core.CallLog, error)
		GetCallLog(ctx context.Context, id int64) (core.CallLog, error)
		// ListCallLogs returns the full log history in insertion order.
		ListCallLogs(ctx context.Context) ([]core.CallLog, error)
		ListCallLogsByProspect(ctx context.Context, prospectID int64) ([]core.CallLog, error)
	}

	ScriptStore interface {
		// ListScripts returns scripts oldest first.
		ListScripts(ctx context.Context) ([]core.Script, error)
		CreateScript(ctx context.Context, s core.Script) (core.Script, error)
		DeleteScript(ctx context.Context, id int64) error
	}

	// Store bundles every port behind a single backend.
	Store interface {
		ProspectStore
		CallLogStore
		ScriptStore
		Close() error
	}
)
