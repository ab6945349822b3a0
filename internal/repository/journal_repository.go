package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/ticket-registry/internal/ledger"
	"github.com/iliyamo/ticket-registry/internal/model"
)

// JournalRepo is the MySQL-backed ledger journal.  Rows are append-only;
// the auto-increment id fixes the commit order used during replay.  It
// implements ledger.Journal.
type JournalRepo struct{ DB *sql.DB }

func NewJournalRepo(db *sql.DB) *JournalRepo { return &JournalRepo{DB: db} }

// Append persists one committed call.
func (r *JournalRepo) Append(ctx context.Context, rec ledger.Record) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO ledger_journal (height, op, caller, payload) VALUES (?,?,?,?)",
		rec.Height, rec.Op, string(rec.Caller), []byte(rec.Payload))
	return err
}

// Load returns all journal records in commit order.
func (r *JournalRepo) Load(ctx context.Context) ([]ledger.Record, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT height, op, caller, payload FROM ledger_journal ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []ledger.Record
	for rows.Next() {
		var (
			rec     ledger.Record
			caller  string
			payload []byte
		)
		if err := rows.Scan(&rec.Height, &rec.Op, &caller, &payload); err != nil {
			return nil, err
		}
		rec.Caller = model.Principal(caller)
		rec.Payload = json.RawMessage(payload)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
