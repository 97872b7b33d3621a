package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/okian/talentmatch/internal/domain/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS requests (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL,
	doc        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS talents (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL,
	doc        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);
`

// Table names double as collection names.
const (
	tableRequests = CollectionRequests
	tableTalents  = CollectionTalents
)

// SQLiteStore keeps each record as a JSON document in an embedded SQLite file.
type SQLiteStore struct {
	*settings

	db       *sql.DB
	reporter *poolReporter
}

// NewSQLiteStore opens (creating if needed) the database at path and applies the schema.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}

	s := &SQLiteStore{settings: newSettings(opts), db: db}
	s.reporter = startPoolReporter(ctx, s.settings, s.Counts)
	return s, nil
}

// Close stops the metrics updater and closes the database.
func (s *SQLiteStore) Close() error {
	s.reporter.stop()
	return s.db.Close()
}

func (s *SQLiteStore) observe(op string, start time.Time, err *error) {
	observe(DriverSQLite, op, start, *err)
}

func (s *SQLiteStore) CreateRequest(ctx context.Context, r model.Request) (_ model.Request, err error) {
	defer s.observe("create_request", time.Now(), &err)

	r = s.stampNewRequest(r)
	if err := s.insert(ctx, tableRequests, r.ID, r.CreatedAt, r); err != nil {
		return model.Request{}, err
	}
	return r, nil
}

func (s *SQLiteStore) GetRequestByID(ctx context.Context, id string) (_ model.Request, err error) {
	defer s.observe("get_request", time.Now(), &err)

	var r model.Request
	if err := getDoc(ctx, s.db, tableRequests, id, &r); err != nil {
		return model.Request{}, err
	}
	return r, nil
}

func (s *SQLiteStore) ListRequests(ctx context.Context) (_ []model.Request, err error) {
	defer s.observe("list_requests", time.Now(), &err)

	return listDocs[model.Request](ctx, s.db,
		`SELECT doc FROM requests ORDER BY created_at DESC, seq DESC`)
}

func (s *SQLiteStore) UpdateRequest(ctx context.Context, id string, r model.Request) (_ model.Request, err error) {
	defer s.observe("update_request", time.Now(), &err)

	return updateDoc(ctx, s.db, tableRequests, id, func(prev model.Request) model.Request {
		return s.stampUpdatedRequest(prev, r)
	})
}

func (s *SQLiteStore) DeleteRequest(ctx context.Context, id string) (err error) {
	defer s.observe("delete_request", time.Now(), &err)

	return s.delete(ctx, tableRequests, id)
}

func (s *SQLiteStore) CreateTalent(ctx context.Context, t model.Talent) (_ model.Talent, err error) {
	defer s.observe("create_talent", time.Now(), &err)

	t = s.stampNewTalent(t)
	if err := s.insert(ctx, tableTalents, t.ID, t.CreatedAt, t); err != nil {
		return model.Talent{}, err
	}
	return t, nil
}

func (s *SQLiteStore) GetTalentByID(ctx context.Context, id string) (_ model.Talent, err error) {
	defer s.observe("get_talent", time.Now(), &err)

	var t model.Talent
	if err := getDoc(ctx, s.db, tableTalents, id, &t); err != nil {
		return model.Talent{}, err
	}
	return t, nil
}

func (s *SQLiteStore) ListTalents(ctx context.Context) (_ []model.Talent, err error) {
	defer s.observe("list_talents", time.Now(), &err)

	return listDocs[model.Talent](ctx, s.db, `SELECT doc FROM talents ORDER BY seq ASC`)
}

func (s *SQLiteStore) UpdateTalent(ctx context.Context, id string, t model.Talent) (_ model.Talent, err error) {
	defer s.observe("update_talent", time.Now(), &err)

	return updateDoc(ctx, s.db, tableTalents, id, func(prev model.Talent) model.Talent {
		return s.stampUpdatedTalent(prev, t)
	})
}

func (s *SQLiteStore) DeleteTalent(ctx context.Context, id string) (err error) {
	defer s.observe("delete_talent", time.Now(), &err)

	return s.delete(ctx, tableTalents, id)
}

func (s *SQLiteStore) Counts(ctx context.Context) (talents, requests int, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM talents), (SELECT COUNT(*) FROM requests)`)
	if err := row.Scan(&talents, &requests); err != nil {
		return 0, 0, fmt.Errorf("sqlite: count records: %w", err)
	}
	return talents, requests, nil
}

func (s *SQLiteStore) insert(ctx context.Context, table, id string, createdAt time.Time, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sqlite: encode %s: %w", kindOf(table), err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&exists)
	switch {
	case err == nil:
		return conflict(kindOf(table), id)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("sqlite: lookup %s: %w", kindOf(table), err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO `+table+` (id, created_at, doc) VALUES (?, ?, ?)`,
		id, createdAt.UnixNano(), string(doc),
	); err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", kindOf(table), err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) delete(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete %s: %w", kindOf(table), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete %s: %w", kindOf(table), err)
	}
	if n == 0 {
		return notFound(kindOf(table), id)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getDoc(ctx context.Context, q queryer, table, id string, dst any) error {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT doc FROM `+table+` WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(kindOf(table), id)
	}
	if err != nil {
		return fmt.Errorf("sqlite: get %s: %w", kindOf(table), err)
	}
	if err := json.Unmarshal([]byte(doc), dst); err != nil {
		return fmt.Errorf("sqlite: decode %s %s: %w", kindOf(table), id, err)
	}
	return nil
}

func listDocs[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		var v T
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return nil, fmt.Errorf("sqlite: decode: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list: %w", err)
	}
	return out, nil
}

func updateDoc[T any](ctx context.Context, db *sql.DB, table, id string, next func(prev T) T) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev T
	if err := getDoc(ctx, tx, table, id, &prev); err != nil {
		return zero, err
	}

	updated := next(prev)
	doc, err := json.Marshal(updated)
	if err != nil {
		return zero, fmt.Errorf("sqlite: encode %s: %w", kindOf(table), err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE `+table+` SET doc = ? WHERE id = ?`, string(doc), id); err != nil {
		return zero, fmt.Errorf("sqlite: update %s: %w", kindOf(table), err)
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("sqlite: commit: %w", err)
	}
	return updated, nil
}

func kindOf(table string) string {
	if table == tableTalents {
		return "talent"
	}
	return "request"
}
