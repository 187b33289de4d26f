package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// stubConn is a tiny in-memory stand-in for Postgres that understands the
// handful of statement shapes the store issues against game_saves.
type stubConn struct {
	mu       sync.Mutex
	execs    []string
	rows     []map[string]any
	failExec bool
	failPing bool
}

func newStubDB() (*sql.DB, *stubConn) {
	conn := &stubConn{}
	name := fmt.Sprintf("stubpg%d", time.Now().UnixNano())
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct {
	conn *stubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return d.conn, nil
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, fmt.Errorf("not implemented") }

func (c *stubConn) Ping(context.Context) error {
	if c.failPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execs = append(c.execs, query)
	if c.failExec {
		return nil, fmt.Errorf("exec fail")
	}
	upper := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(upper, "INSERT INTO"):
		cols, err := insertColumns(query)
		if err != nil {
			return nil, err
		}
		if len(cols) != len(args) {
			return nil, fmt.Errorf("column/arg mismatch: %d columns, %d args", len(cols), len(args))
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = args[i].Value
		}
		c.deleteLocked(row["account_id"])
		c.rows = append(c.rows, row)
	case strings.HasPrefix(upper, "DELETE FROM"):
		if len(args) == 0 {
			return nil, fmt.Errorf("missing delete arg")
		}
		c.deleteLocked(args[0].Value)
	}
	return driver.RowsAffected(1), nil
}

func (c *stubConn) deleteLocked(accountID any) {
	kept := c.rows[:0]
	for _, row := range c.rows {
		if row["account_id"] != accountID {
			kept = append(kept, row)
		}
	}
	c.rows = kept
}

func (c *stubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cols, err := selectColumns(query)
	if err != nil {
		return nil, err
	}
	upper := strings.ToUpper(query)

	matched := make([]map[string]any, 0, len(c.rows))
	for _, row := range c.rows {
		if strings.Contains(upper, " WHERE ") && (len(args) == 0 || row["account_id"] != args[0].Value) {
			continue
		}
		matched = append(matched, row)
	}
	if strings.Contains(upper, "ORDER BY SAVED_AT DESC") {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i]["saved_at"].(time.Time).After(matched[j]["saved_at"].(time.Time))
		})
	}

	values := make([][]driver.Value, 0, len(matched))
	for _, row := range matched {
		vals := make([]driver.Value, len(cols))
		for i, col := range cols {
			vals[i] = row[col]
		}
		values = append(values, vals)
	}
	return &stubRows{cols: cols, rows: values}, nil
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

func insertColumns(query string) ([]string, error) {
	open := strings.Index(query, "(")
	closeIdx := strings.Index(query, ")")
	if open == -1 || closeIdx <= open {
		return nil, fmt.Errorf("cannot parse insert: %s", query)
	}
	return splitColumns(query[open+1 : closeIdx]), nil
}

func selectColumns(query string) ([]string, error) {
	lower := strings.ToLower(strings.TrimSpace(query))
	if !strings.HasPrefix(lower, "select ") {
		return nil, fmt.Errorf("cannot parse select: %s", query)
	}
	fromIdx := strings.Index(lower, " from ")
	if fromIdx == -1 {
		return nil, fmt.Errorf("cannot parse select: %s", query)
	}
	return splitColumns(lower[len("select "):fromIdx]), nil
}

func splitColumns(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.ToLower(strings.TrimSpace(part)))
	}
	return out
}
