package storage

import (
	"context"
	"database/sql"
)

const prospectColumns = `id, business_name, website, phone, location, competitor, pain_data, leaks, status, created_at`

func scanProspect(row interface{ Scan(...interface{}) error }) (Prospect, error) {
	var i Prospect
	err := row.Scan(
		&i.ID,
		&i.BusinessName,
		&i.Website,
		&i.Phone,
		&i.Location,
		&i.Competitor,
		&i.PainData,
		&i.Leaks,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const listProspects = `-- name: ListProspects :many
SELECT ` + prospectColumns + ` FROM prospects ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListProspects(ctx context.Context) ([]Prospect, error) {
	rows, err := q.db.QueryContext(ctx, listProspects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Prospect
	for rows.Next() {
		i, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getProspect = `-- name: GetProspect :one
SELECT ` + prospectColumns + ` FROM prospects WHERE id = ?
`

func (q *Queries) GetProspect(ctx context.Context, id int64) (Prospect, error) {
	return scanProspect(q.db.QueryRowContext(ctx, getProspect, id))
}

const createProspect = `-- name: CreateProspect :one
INSERT INTO prospects (business_name, website, phone, location, competitor, pain_data, leaks, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + prospectColumns

type CreateProspectParams struct {
	BusinessName string
	Website      string
	Phone        string
	Location     string
	Competitor   string
	PainData     string
	Leaks        string
	Status       string
	CreatedAt    int64
}

func (q *Queries) CreateProspect(ctx context.Context, arg CreateProspectParams) (Prospect, error) {
	row := q.db.QueryRowContext(ctx, createProspect,
		arg.BusinessName,
		arg.Website,
		arg.Phone,
		arg.Location,
		arg.Competitor,
		arg.PainData,
		arg.Leaks,
		arg.Status,
		arg.CreatedAt,
	)
	return scanProspect(row)
}

const updateProspect = `-- name: UpdateProspect :execrows
UPDATE prospects
SET business_name = ?, website = ?, phone = ?, location = ?, competitor = ?, pain_data = ?, leaks = ?
WHERE id = ?
`

type UpdateProspectParams struct {
	BusinessName string
	Website      string
	Phone        string
	Location     string
	Competitor   string
	PainData     string
	Leaks        string
	ID           int64
}

func (q *Queries) UpdateProspect(ctx context.Context, arg UpdateProspectParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateProspect,
		arg.BusinessName,
		arg.Website,
		arg.Phone,
		arg.Location,
		arg.Competitor,
		arg.PainData,
		arg.Leaks,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateProspectStatus = `-- name: UpdateProspectStatus :execrows
UPDATE prospects SET status = ? WHERE id = ?
`

func (q *Queries) UpdateProspectStatus(ctx context.Context, status string, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateProspectStatus, status, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteProspect = `-- name: DeleteProspect :execrows
DELETE FROM prospects WHERE id = ?
`

func (q *Queries) DeleteProspect(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProspect, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteLogsByProspect = `-- name: DeleteLogsByProspect :exec
DELETE FROM outreach_logs WHERE prospect_id = ?
`

func (q *Queries) DeleteLogsByProspect(ctx context.Context, prospectID int64) error {
	_, err := q.db.ExecContext(ctx, deleteLogsByProspect, prospectID)
	return err
}

const logColumns = `id, prospect_id, script_used, call_result, hook_attention, hook_interest_peak, prospect_sentiment, objections, raw_objection, outcome, notes, created_at`

func scanLog(row interface{ Scan(...interface{}) error }) (OutreachLog, error) {
	var i OutreachLog
	err := row.Scan(
		&i.ID,
		&i.ProspectID,
		&i.ScriptUsed,
		&i.CallResult,
		&i.HookAttention,
		&i.HookInterestPeak,
		&i.ProspectSentiment,
		&i.Objections,
		&i.RawObjection,
		&i.Outcome,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}

const createLog = `-- name: CreateLog :one
INSERT INTO outreach_logs (prospect_id, script_used, call_result, hook_attention, hook_interest_peak, prospect_sentiment, objections, raw_objection, outcome, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + logColumns

type CreateLogParams struct {
	ProspectID        int64
	ScriptUsed        string
	CallResult        string
	HookAttention     sql.NullString
	HookInterestPeak  sql.NullString
	ProspectSentiment sql.NullString
	Objections        string
	RawObjection      string
	Outcome           string
	Notes             string
	CreatedAt         int64
}

func (q *Queries) CreateLog(ctx context.Context, arg CreateLogParams) (OutreachLog, error) {
	row := q.db.QueryRowContext(ctx, createLog,
		arg.ProspectID,
		arg.ScriptUsed,
		arg.CallResult,
		arg.HookAttention,
		arg.HookInterestPeak,
		arg.ProspectSentiment,
		arg.Objections,
		arg.RawObjection,
		arg.Outcome,
		arg.Notes,
		arg.CreatedAt,
	)
	return scanLog(row)
}

const getLog = `-- name: GetLog :one
SELECT ` + logColumns + ` FROM outreach_logs WHERE id = ?
`

func (q *Queries) GetLog(ctx context.Context, id int64) (OutreachLog, error) {
	return scanLog(q.db.QueryRowContext(ctx, getLog, id))
}

const listLogs = `-- name: ListLogs :many
SELECT ` + logColumns + ` FROM outreach_logs ORDER BY id
`

func (q *Queries) ListLogs(ctx context.Context) ([]OutreachLog, error) {
	return q.queryLogs(ctx, listLogs)
}

const listLogsByProspect = `-- name: ListLogsByProspect :many
SELECT ` + logColumns + ` FROM outreach_logs WHERE prospect_id = ? ORDER BY id
`

func (q *Queries) ListLogsByProspect(ctx context.Context, prospectID int64) ([]OutreachLog, error) {
	return q.queryLogs(ctx, listLogsByProspect, prospectID)
}

func (q *Queries) queryLogs(ctx context.Context, query string, args ...interface{}) ([]OutreachLog, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OutreachLog
	for rows.Next() {
		i, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listScripts = `-- name: ListScripts :many
SELECT id, name, content, created_at FROM scripts ORDER BY created_at, id
`

func (q *Queries) ListScripts(ctx context.Context) ([]Script, error) {
	rows, err := q.db.QueryContext(ctx, listScripts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Script
	for rows.Next() {
		var i Script
		if err := rows.Scan(&i.ID, &i.Name, &i.Content, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createScript = `-- name: CreateScript :one
INSERT INTO scripts (name, content, created_at) VALUES (?, ?, ?)
RETURNING id, name, content, created_at
`

type CreateScriptParams struct {
	Name      string
	Content   string
	CreatedAt int64
}

func (q *Queries) CreateScript(ctx context.Context, arg CreateScriptParams) (Script, error) {
	row := q.db.QueryRowContext(ctx, createScript, arg.Name, arg.Content, arg.CreatedAt)
	var i Script
	err := row.Scan(&i.ID, &i.Name, &i.Content, &i.CreatedAt)
	return i, err
}

const deleteScript = `-- name: DeleteScript :execrows
DELETE FROM scripts WHERE id = ?
`

func (q *Queries) DeleteScript(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteScript, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
