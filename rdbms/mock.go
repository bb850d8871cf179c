package rdbms

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MockConnector is a scripted Connector for tests. Results are keyed on a
// substring of the SQL text; the first matching key wins.
func NewMockConnector() *MockConnector {
	return &MockConnector{Results: make(map[string]MockResult)}
}

type MockResult struct {
	Rows [][]interface{}
	Err  error
}

type MockConnector struct {
	Results  map[string]MockResult
	Executed []string // every SQL statement passed to Exec or Tx.Exec.
	ExecErrs map[int]error
	Closed   bool
	execSeq  int
}

func (m *MockConnector) lookup(sql string) (MockResult, bool) {
	for k, v := range m.Results {
		if strings.Contains(sql, k) {
			return v, true
		}
	}
	return MockResult{}, false
}

func (m *MockConnector) Query(ctx context.Context, sql string, args ...interface{}) (Rows, error) {
	res, ok := m.lookup(sql)
	if !ok {
		return nil, errors.Errorf("no scripted result for query %q", sql)
	}
	if res.Err != nil {
		return nil, res.Err
	}
	return &mockRows{rows: res.Rows}, nil
}

func (m *MockConnector) QueryRow(ctx context.Context, sql string, args ...interface{}) Row {
	res, ok := m.lookup(sql)
	if !ok {
		return &mockRow{err: errors.Errorf("no scripted result for query %q", sql)}
	}
	if res.Err != nil {
		return &mockRow{err: res.Err}
	}
	if len(res.Rows) == 0 {
		return &mockRow{err: ErrNoRows}
	}
	return &mockRow{row: res.Rows[0]}
}

func (m *MockConnector) Exec(ctx context.Context, sql string, args ...interface{}) error {
	return m.exec(sql)
}

func (m *MockConnector) Begin(ctx context.Context) (Tx, error) {
	return &mockTx{conn: m}, nil
}

func (m *MockConnector) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

func (m *MockConnector) exec(sql string) error {
	m.Executed = append(m.Executed, sql)
	m.execSeq++
	if err, ok := m.ExecErrs[m.execSeq-1]; ok {
		return err
	}
	return nil
}

type mockTx struct {
	conn       *MockConnector
	Committed  bool
	RolledBack bool
}

func (t *mockTx) Exec(ctx context.Context, sql string, args ...interface{}) error {
	return t.conn.exec(sql)
}

func (t *mockTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	t.RolledBack = true
	return nil
}

type mockRows struct {
	rows [][]interface{}
	idx  int
}

func (r *mockRows) Next() bool {
	return r.idx < len(r.rows)
}

func (r *mockRows) Scan(dest ...interface{}) error {
	if r.idx >= len(r.rows) {
		return ErrNoRows
	}
	row := r.rows[r.idx]
	r.idx++
	return assignAll(dest, row)
}

func (r *mockRows) Close() {}

func (r *mockRows) Err() error {
	return nil
}

type mockRow struct {
	row []interface{}
	err error
}

func (r *mockRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	return assignAll(dest, r.row)
}

func assignAll(dest []interface{}, src []interface{}) error {
	if len(dest) != len(src) {
		return errors.Errorf("scan expects %v destinations, row has %v values", len(dest), len(src))
	}
	for i := range dest {
		if err := assign(dest[i], src[i]); err != nil {
			return err
		}
	}
	return nil
}

func assign(dest interface{}, src interface{}) error {
	switch d := dest.(type) {
	case *string:
		s, ok := src.(string)
		if !ok {
			return errors.Errorf("cannot scan %T into *string", src)
		}
		*d = s
	case *time.Time:
		t, ok := src.(time.Time)
		if !ok {
			return errors.Errorf("cannot scan %T into *time.Time", src)
		}
		*d = t
	case *[]byte:
		switch s := src.(type) {
		case nil:
			*d = nil
		case []byte:
			*d = s
		case string:
			*d = []byte(s)
		default:
			return errors.Errorf("cannot scan %T into *[]byte", src)
		}
	case *int64:
		n, ok := src.(int64)
		if !ok {
			return errors.Errorf("cannot scan %T into *int64", src)
		}
		*d = n
	default:
		return errors.Errorf("unsupported scan destination %T", dest)
	}
	return nil
}
