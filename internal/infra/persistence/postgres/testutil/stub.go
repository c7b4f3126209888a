// Package testutil provides a database/sql driver that understands the
// handful of statements the postgres store issues against zoo_state.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// StateRow is one persisted bucket.
type StateRow struct {
	Payload   []byte
	UpdatedAt time.Time
}

// StubConn records executed statements and keeps zoo_state rows by bucket.
type StubConn struct {
	mu         sync.Mutex
	Execs      []string
	State      map[string]StateRow
	FailPing   bool
	FailBegin  bool
	FailCommit bool
}

var registered atomic.Int64

// NewStubDB returns a sql.DB whose every connection is the returned stub.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{State: make(map[string]StateRow)}
	name := fmt.Sprintf("zoostate-stub-%d", registered.Add(1))
	sql.Register(name, stubDriver{conn: conn})
	db, err := sql.Open(name, "")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct{ conn *StubConn }

func (d stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

// Prepare implements driver.Conn. Only the context-aware fast paths are supported.
func (c *StubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepare not supported: %s", query)
}

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx.
func (c *StubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.FailBegin {
		return nil, errors.New("begin failed")
	}
	return stubTx{conn: c}, nil
}

// Ping implements driver.Pinger.
func (c *StubConn) Ping(context.Context) error {
	if c.FailPing {
		return errors.New("connection refused")
	}
	return nil
}

// ExecContext implements driver.ExecerContext.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Execs = append(c.Execs, query)
	if !strings.HasPrefix(normalize(query), "insert into zoo_state") {
		return driver.RowsAffected(0), nil
	}
	if len(args) != 3 {
		return nil, fmt.Errorf("zoo_state upsert expects 3 args, got %d", len(args))
	}
	bucket, ok := args[0].Value.(string)
	if !ok {
		return nil, fmt.Errorf("bucket must be a string, got %T", args[0].Value)
	}
	payload, _ := args[1].Value.([]byte)
	updated, _ := args[2].Value.(time.Time)
	c.State[bucket] = StateRow{Payload: append([]byte(nil), payload...), UpdatedAt: updated}
	return driver.RowsAffected(1), nil
}

// QueryContext implements driver.QueryerContext.
func (c *StubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !strings.HasPrefix(normalize(query), "select bucket, payload from zoo_state") {
		return nil, fmt.Errorf("unsupported query: %s", query)
	}
	buckets := make([]string, 0, len(c.State))
	for bucket := range c.State {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	rows := &stubRows{}
	for _, bucket := range buckets {
		rows.values = append(rows.values, []driver.Value{bucket, c.State[bucket].Payload})
	}
	return rows, nil
}

func normalize(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

type stubTx struct{ conn *StubConn }

func (t stubTx) Commit() error {
	if t.conn.FailCommit {
		return errors.New("commit failed")
	}
	return nil
}

func (stubTx) Rollback() error { return nil }

type stubRows struct {
	values [][]driver.Value
	next   int
}

func (r *stubRows) Columns() []string { return []string{"bucket", "payload"} }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.next >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.next])
	r.next++
	return nil
}
