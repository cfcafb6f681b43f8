package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"
)

// Event types recorded by the service.
const (
	TypeAttemptSubmitted = "AttemptSubmitted"
	TypeLLMRequest       = "LLMRequest"
)

type Event struct {
	Seq       int64  `json:"seq"`
	Type      string `json:"type"`
	Key       string `json:"key"` // natural key: attempt ID, session ID, ...
	Data      string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

// Recorder is the write side of the audit log. Recording is best-effort:
// implementations must never fail the caller.
type Recorder interface {
	Record(ctx context.Context, typ, key string, data any)
}

// EventLog is an append-only diagnostic log backed by the event_log table.
type EventLog struct{ db *sql.DB }

func NewEventLog(db *sql.DB) *EventLog { return &EventLog{db: db} }

func (l *EventLog) Record(ctx context.Context, typ, key string, data any) {
	buf, err := json.Marshal(data)
	if err != nil {
		log.Printf("audit: marshal %s event: %v", typ, err)
		return
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		typ, key, string(buf), time.Now().Unix())
	if err != nil {
		log.Printf("audit: append %s event: %v", typ, err)
	}
}

// Recent returns the newest events of the given type, newest first.
func (l *EventLog) Recent(ctx context.Context, typ string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT seq, typ, key, data, created_at FROM event_log
		 WHERE typ=$1 ORDER BY seq DESC LIMIT $2`, typ, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &e.Data, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Discard is a Recorder that drops everything, for wiring without a DB.
type Discard struct{}

func (Discard) Record(context.Context, string, string, any) {}
