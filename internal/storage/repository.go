package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"outreach/internal/core"
	"outreach/internal/records"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

var _ records.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable. Used by /readyz.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) ListProspects(ctx context.Context) ([]core.Prospect, error) {
	rows, err := r.queries.ListProspects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	out := make([]core.Prospect, 0, len(rows))
	for _, row := range rows {
		p, err := toProspect(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *SQLiteRepository) GetProspect(ctx context.Context, id int64) (core.Prospect, error) {
	row, err := r.queries.GetProspect(ctx, id)
	if err != nil {
		return core.Prospect{}, notFound(fmt.Errorf("get prospect %d: %w", id, err))
	}
	return toProspect(row)
}

func (r *SQLiteRepository) CreateProspect(ctx context.Context, p core.Prospect) (core.Prospect, error) {
	if err := p.Validate(); err != nil {
		return core.Prospect{}, err
	}
	if p.Status == "" {
		p.Status = core.StatusPending
	}
	leaks, err := json.Marshal(p.Leaks.Strings())
	if err != nil {
		return core.Prospect{}, fmt.Errorf("encode leaks: %w", err)
	}

	row, err := r.queries.CreateProspect(ctx, CreateProspectParams{
		BusinessName: p.BusinessName,
		Website:      p.Website,
		Phone:        p.Phone,
		Location:     p.Location,
		Competitor:   p.Competitor,
		PainData:     p.PainData,
		Leaks:        string(leaks),
		Status:       string(p.Status),
		CreatedAt:    r.now().Unix(),
	})
	if err != nil {
		return core.Prospect{}, fmt.Errorf("create prospect: %w", err)
	}

	slog.InfoContext(ctx, "Prospect saved to SQLite", "id", row.ID, "business_name", row.BusinessName)
	return toProspect(row)
}

func (r *SQLiteRepository) UpdateProspect(ctx context.Context, p core.Prospect) error {
	if err := p.Validate(); err != nil {
		return err
	}
	leaks, err := json.Marshal(p.Leaks.Strings())
	if err != nil {
		return fmt.Errorf("encode leaks: %w", err)
	}
	n, err := r.queries.UpdateProspect(ctx, UpdateProspectParams{
		BusinessName: p.BusinessName,
		Website:      p.Website,
		Phone:        p.Phone,
		Location:     p.Location,
		Competitor:   p.Competitor,
		PainData:     p.PainData,
		Leaks:        string(leaks),
		ID:           p.ID,
	})
	if err != nil {
		return fmt.Errorf("update prospect %d: %w", p.ID, err)
	}
	if n == 0 {
		return records.ErrNotFound
	}
	if p.Status != "" {
		return r.UpdateProspectStatus(ctx, p.ID, p.Status)
	}
	return nil
}

func (r *SQLiteRepository) UpdateProspectStatus(ctx context.Context, id int64, status core.ProspectStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	n, err := r.queries.UpdateProspectStatus(ctx, string(status), id)
	if err != nil {
		return fmt.Errorf("update prospect %d status: %w", id, err)
	}
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

// DeleteProspect removes the prospect's logs and then the prospect in one
// transaction.
func (r *SQLiteRepository) DeleteProspect(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	if err := qtx.DeleteLogsByProspect(ctx, id); err != nil {
		return fmt.Errorf("delete logs of prospect %d: %w", id, err)
	}
	n, err := qtx.DeleteProspect(ctx, id)
	if err != nil {
		return fmt.Errorf("delete prospect %d: %w", id, err)
	}
	if n == 0 {
		return records.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete prospect %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Prospect deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateCallLog(ctx context.Context, l core.CallLog) (core.CallLog, error) {
	if err := l.Validate(); err != nil {
		return core.CallLog{}, err
	}
	if _, err := r.GetProspect(ctx, l.ProspectID); err != nil {
		return core.CallLog{}, err
	}
	objections := l.Objections
	if objections == nil {
		objections = []string{}
	}
	encoded, err := json.Marshal(objections)
	if err != nil {
		return core.CallLog{}, fmt.Errorf("encode objections: %w", err)
	}

	row, err := r.queries.CreateLog(ctx, CreateLogParams{
		ProspectID:        l.ProspectID,
		ScriptUsed:        l.ScriptUsed,
		CallResult:        l.CallResult,
		HookAttention:     nullString(l.HookAttention),
		HookInterestPeak:  nullString(l.HookInterestPeak),
		ProspectSentiment: nullString(l.ProspectSentiment),
		Objections:        string(encoded),
		RawObjection:      l.RawObjection,
		Outcome:           l.Outcome,
		Notes:             l.Notes,
		CreatedAt:         r.now().Unix(),
	})
	if err != nil {
		return core.CallLog{}, fmt.Errorf("create call log: %w", err)
	}

	slog.InfoContext(ctx, "Call log saved to SQLite",
		"id", row.ID,
		"prospect_id", row.ProspectID,
		"call_result", row.CallResult,
		"outcome", row.Outcome)
	return toCallLog(row)
}

func (r *SQLiteRepository) GetCallLog(ctx context.Context, id int64) (core.CallLog, error) {
	row, err := r.queries.GetLog(ctx, id)
	if err != nil {
		return core.CallLog{}, notFound(fmt.Errorf("get call log %d: %w", id, err))
	}
	return toCallLog(row)
}

func (r *SQLiteRepository) ListCallLogs(ctx context.Context) ([]core.CallLog, error) {
	rows, err := r.queries.ListLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	return toCallLogs(rows)
}

func (r *SQLiteRepository) ListCallLogsByProspect(ctx context.Context, prospectID int64) ([]core.CallLog, error) {
	rows, err := r.queries.ListLogsByProspect(ctx, prospectID)
	if err != nil {
		return nil, fmt.Errorf("list call logs for prospect %d: %w", prospectID, err)
	}
	return toCallLogs(rows)
}

func (r *SQLiteRepository) ListScripts(ctx context.Context) ([]core.Script, error) {
	rows, err := r.queries.ListScripts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	out := make([]core.Script, len(rows))
	for i, row := range rows {
		out[i] = toScript(row)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateScript(ctx context.Context, s core.Script) (core.Script, error) {
	if err := s.Validate(); err != nil {
		return core.Script{}, err
	}
	row, err := r.queries.CreateScript(ctx, CreateScriptParams{
		Name:      s.Name,
		Content:   s.Content,
		CreatedAt: r.now().Unix(),
	})
	if err != nil {
		return core.Script{}, fmt.Errorf("create script: %w", err)
	}
	return toScript(row), nil
}

func (r *SQLiteRepository) DeleteScript(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteScript(ctx, id)
	if err != nil {
		return fmt.Errorf("delete script %d: %w", id, err)
	}
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", records.ErrNotFound, err)
	}
	return err
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func optString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toProspect(row Prospect) (core.Prospect, error) {
	var leaks []string
	if row.Leaks != "" {
		if err := json.Unmarshal([]byte(row.Leaks), &leaks); err != nil {
			return core.Prospect{}, fmt.Errorf("decode leaks of prospect %d: %w", row.ID, err)
		}
	}
	return core.Prospect{
		ID:           row.ID,
		BusinessName: row.BusinessName,
		Website:      row.Website,
		Phone:        row.Phone,
		Location:     row.Location,
		Competitor:   row.Competitor,
		PainData:     row.PainData,
		Leaks:        core.ParseLeaks(leaks),
		Status:       core.ProspectStatus(row.Status),
		CreatedAt:    time.Unix(row.CreatedAt, 0).UTC(),
	}, nil
}

func toCallLog(row OutreachLog) (core.CallLog, error) {
	var objections []string
	if row.Objections != "" {
		if err := json.Unmarshal([]byte(row.Objections), &objections); err != nil {
			return core.CallLog{}, fmt.Errorf("decode objections of log %d: %w", row.ID, err)
		}
	}
	return core.CallLog{
		ID:                row.ID,
		ProspectID:        row.ProspectID,
		ScriptUsed:        row.ScriptUsed,
		CallResult:        row.CallResult,
		HookAttention:     optString(row.HookAttention),
		HookInterestPeak:  optString(row.HookInterestPeak),
		ProspectSentiment: optString(row.ProspectSentiment),
		Objections:        objections,
		RawObjection:      row.RawObjection,
		Outcome:           row.Outcome,
		Notes:             row.Notes,
		CreatedAt:         time.Unix(row.CreatedAt, 0).UTC(),
	}, nil
}

func toCallLogs(rows []OutreachLog) ([]core.CallLog, error) {
	out := make([]core.CallLog, 0, len(rows))
	for _, row := range rows {
		l, err := toCallLog(row)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func toScript(row Script) core.Script {
	return core.Script{
		ID:        row.ID,
		Name:      row.Name,
		Content:   row.Content,
		CreatedAt: time.Unix(row.CreatedAt, 0).UTC(),
	}
}
