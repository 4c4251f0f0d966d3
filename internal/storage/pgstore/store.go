// Package pgstore is the PostgreSQL storage backend. Every operation is a
// single statement; rows map onto the storage structs through their db tags.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-storefront/internal/postgres"
	"github.com/ariefcatur/go-storefront/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ storage.Storage = (*Store)(nil)

// DB is the part of *pgxpool.Pool the store talks to.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db   DB
	log  *slog.Logger
	pool *pgxpool.Pool
}

type Options struct {
	DSN            string
	MaxConns       int32
	ConnectTimeout time.Duration
}

// New wraps an open connection. The caller keeps ownership of db.
func New(db DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger}
}

// Open connects, pings and migrates within opts.ConnectTimeout.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}
	pool, err := postgres.Connect(ctx, opts.DSN, opts.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := postgres.Migrate(ctx, pool, migrations, "migrations"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s := New(pool, logger)
	s.pool = pool
	return s, nil
}

// Ping checks the connection when the store owns a pool.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

// Close releases the pool opened by Open.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// getOne runs a query expected to yield at most one row. No row is (nil, nil).
func getOne[T any](ctx context.Context, db DB, op, sql string, args ...any) (*T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	return &v, nil
}

func list[T any](ctx context.Context, db DB, op, sql string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, wrap(op, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// insertSQL renders INSERT INTO table (cols) VALUES ($1..$n) RETURNING *.
func insertSQL(table string, cols []string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(ph, ", "))
}

// insert stores every column of v and returns the stored row.
func insert[T any](ctx context.Context, db DB, op, table string, v *T) (*T, error) {
	return getOne[T](ctx, db, op, insertSQL(table, storage.Columns[T]()), columnValues(v)...)
}

// columnValues lists the db-tagged field values of v in Columns order.
func columnValues[T any](v *T) []any {
	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()
	out := make([]any, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if !f.IsExported() || name == "" || name == "-" {
			continue
		}
		out = append(out, rv.Field(i).Interface())
	}
	return out
}

// updateSQL renders UPDATE table SET k = $i, ..., updated_at = $n WHERE
// <where> RETURNING *. Placeholders in where start after the SET values.
func updateSQL(table string, p storage.Patch, where string) (string, []any) {
	keys := p.Keys()
	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, p[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	args = append(args, storage.Now())
	sets = append(sets, fmt.Sprintf("%s = $%d", storage.ColumnUpdatedAt, len(args)))
	n := len(args)
	for i := strings.Count(where, "?"); i > 0; i-- {
		n++
		where = strings.Replace(where, "?", fmt.Sprintf("$%d", n), 1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *", table, strings.Join(sets, ", "), where), args
}

// update applies the mutable part of p to the row with id.
func update[T any](ctx context.Context, db DB, op, table, id string, p storage.Patch) (*T, error) {
	sql, args := updateSQL(table, storage.Mutable[T](p), "id = ?")
	return getOne[T](ctx, db, op, sql, append(args, id)...)
}

func deleteByID(ctx context.Context, db DB, op, table, id string) (bool, error) {
	tag, err := db.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return false, wrap(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

// stamp fills the managed columns of a new row.
func stamp(id *string, createdAt, updatedAt *time.Time) {
	now := storage.Now()
	*id, *createdAt, *updatedAt = storage.NewID(), now, now
}
