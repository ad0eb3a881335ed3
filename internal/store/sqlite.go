// Package store persists comparison run history to a local SQLite
// database. The history is append-only: the matcher never reads prior
// runs back into a comparison.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/polecheck/internal/match"
)

// Run is one stored comparison run summary.
type Run struct {
	ID          string
	DesignPath  string
	FieldPath   string
	DesignCount int
	FieldCount  int
	Matched     int
	Unmatched   int
	FieldOnly   int
	CreatedAt   time.Time
}

// SQLiteStore persists run summaries using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path, configures WAL
// mode, and applies the schema.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	design_path  TEXT NOT NULL,
	field_path   TEXT NOT NULL,
	design_count INTEGER NOT NULL,
	field_count  INTEGER NOT NULL,
	matched      INTEGER NOT NULL,
	unmatched    INTEGER NOT NULL,
	field_only   INTEGER NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun records the summary of one comparison run.
func (s *SQLiteStore) SaveRun(ctx context.Context, res *match.Result, designPath, fieldPath string) (*Run, error) {
	r := &Run{
		ID:          res.RunID,
		DesignPath:  designPath,
		FieldPath:   fieldPath,
		DesignCount: res.DesignCount,
		FieldCount:  res.FieldCount,
		Matched:     res.Stats.Matched(),
		Unmatched:   res.Stats.Unmatched,
		FieldOnly:   res.Stats.FieldOnly,
		CreatedAt:   time.Now().UTC(),
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, design_path, field_path, design_count, field_count, matched, unmatched, field_only, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.DesignPath, r.FieldPath, r.DesignCount, r.FieldCount, r.Matched, r.Unmatched, r.FieldOnly, r.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return r, nil
}

// ListRuns returns stored run summaries, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, design_path, field_path, design_count, field_count, matched, unmatched, field_only, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.DesignPath, &r.FieldPath, &r.DesignCount, &r.FieldCount,
			&r.Matched, &r.Unmatched, &r.FieldOnly, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}
