package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"datadict/internal/dictionary"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultBatchRows = 200
)

// Options tunes a SQL store.
type Options struct {
	// Timeout bounds the initial ping.
	Timeout time.Duration

	// BatchRows is the number of rows per INSERT statement.
	BatchRows int

	Logger *slog.Logger
}

// SQL stores dictionaries in a relational database table with the
// columns name, parent, type and description.
type SQL struct {
	db      *sqlx.DB
	dialect Dialect
	batch   int
	logger  *slog.Logger
}

// Open connects to the database and checks that it answers. The returned
// store owns the connection pool until Close.
func Open(ctx context.Context, driver, dsn string, opts Options) (*SQL, error) {
	d, err := lookup(driver)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.DriverName(), err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.DriverName(), err)
	}

	return New(db, d, opts), nil
}

// New wraps an already open database handle.
func New(db *sqlx.DB, d Dialect, opts Options) *SQL {
	batch := opts.BatchRows
	if batch <= 0 {
		batch = defaultBatchRows
	}
	if limit := d.BatchRows(); limit > 0 && limit < batch {
		batch = limit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SQL{db: db, dialect: d, batch: batch, logger: logger}
}

// Close closes the connection pool.
func (s *SQL) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Debug("closing database connection")
	return s.db.Close()
}

// Read loads every row of the named dictionary table. Columns are matched
// to dictionary fields by name; any other column fails the read, since the
// full rewrite on save could not preserve it.
func (s *SQL) Read(ctx context.Context, name string) (dictionary.Dataset, error) {
	n, err := ParseName(name)
	if err != nil {
		return dictionary.Dataset{}, storageErr("read", name, err)
	}

	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM "+s.dialect.TableRef(n))
	if err != nil {
		return dictionary.Dataset{}, storageErr("read", name, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return dictionary.Dataset{}, storageErr("read", name, err)
	}
	fields, err := mapColumns(cols)
	if err != nil {
		return dictionary.Dataset{}, storageErr("read", name, err)
	}

	ds := dictionary.Dataset{Fields: fields, Entries: []dictionary.Entry{}}
	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return dictionary.Dataset{}, storageErr("read", name, fmt.Errorf("scan row: %w", err))
		}
		var e dictionary.Entry
		for i, f := range fields {
			if vals[i].Valid {
				e.Set(f, vals[i].String)
			}
		}
		ds.Entries = append(ds.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return dictionary.Dataset{}, storageErr("read", name, err)
	}

	s.logger.Debug("read dictionary", "name", name, "rows", ds.Len(), "fields", len(fields))
	return ds, nil
}

func mapColumns(cols []string) ([]dictionary.Field, error) {
	fields := make([]dictionary.Field, len(cols))
	seen := make(map[dictionary.Field]bool, len(cols))
	for i, c := range cols {
		f, ok := dictionary.ParseField(c)
		if !ok {
			return nil, fmt.Errorf("unsupported column %q: expected only name, parent, type and description", c)
		}
		if seen[f] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[f] = true
		fields[i] = f
	}
	return fields, nil
}

// Write replaces the table content in one transaction: the old rows are
// deleted and ds is inserted in batches. Any failure rolls everything back.
func (s *SQL) Write(ctx context.Context, name string, ds dictionary.Dataset) (err error) {
	n, err := ParseName(name)
	if err != nil {
		return storageErr("write", name, err)
	}
	if len(ds.Fields) == 0 && ds.Len() > 0 {
		return storageErr("write", name, fmt.Errorf("dataset has rows but no fields"))
	}
	ref := s.dialect.TableRef(n)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("write", name, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Warn("rollback failed", "name", name, "error", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+ref); err != nil {
		return storageErr("write", name, fmt.Errorf("clear %s: %w", n, err))
	}

	for start := 0; start < ds.Len(); start += s.batch {
		end := min(start+s.batch, ds.Len())
		query, args := insertStatement(ref, ds.Fields, ds.Entries[start:end])
		if _, err = tx.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
			return storageErr("write", name, fmt.Errorf("insert rows %d-%d: %w", start+1, end, err))
		}
	}

	if err = tx.Commit(); err != nil {
		return storageErr("write", name, fmt.Errorf("commit: %w", err))
	}

	s.logger.Info("wrote dictionary", "name", name, "rows", ds.Len())
	return nil
}

// insertStatement builds one multi-row INSERT with ? placeholders.
// Values that are not stored are written as NULL; empty text stays empty.
func insertStatement(ref string, fields []dictionary.Field, entries []dictionary.Entry) (string, []any) {
	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f)
		marks[i] = "?"
	}
	tuple := "(" + strings.Join(marks, ", ") + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(ref)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(fields)*len(entries))
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tuple)
		for _, f := range fields {
			args = append(args, value(e, f))
		}
	}
	return b.String(), args
}

func value(e dictionary.Entry, f dictionary.Field) any {
	if !e.Stored(f) {
		return nil
	}
	return e.Get(f)
}
