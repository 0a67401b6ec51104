package storage

import (
	"database/sql"
)

type Prospect struct {
	ID           int64
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

type OutreachLog struct {
	ID                int64
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

type Script struct {
	ID        int64
	Name      string
	Content   string
	CreatedAt int64
}
