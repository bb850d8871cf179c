package rdbms

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/alixiazul/data-engineering-project/constants"
	"github.com/alixiazul/data-engineering-project/logger"
)

// Source enumerates operational tables and reads incremental changes.
type Source interface {
	DiscoverTables(ctx context.Context) ([]string, error)
	LatestUpdateAcrossTables(ctx context.Context, tables []string) (time.Time, error)
	ExtractTableJson(ctx context.Context, table string, since time.Time) ([]byte, error)
}

// SourceDatabase implements Source over one open connection, reused across
// tables within an extraction cycle.
type SourceDatabase struct {
	Log logger.Logger
	Db  Connector
}

func NewSourceDatabase(log logger.Logger, db Connector) *SourceDatabase {
	return &SourceDatabase{Log: log, Db: db}
}

// DiscoverTables lists base tables in the public schema, excluding the
// migration metadata table.
func (s *SourceDatabase) DiscoverTables(ctx context.Context) ([]string, error) {
	sql := `SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'`
	rows, err := s.Db.Query(ctx, sql)
	if err != nil {
		return nil, &QueryError{Query: sql, Err: err}
	}
	defer rows.Close()
	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &QueryError{Query: sql, Err: err}
		}
		if name != constants.MigrationMetadataTable {
			tables = append(tables, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: sql, Err: err}
	}
	s.Log.Debug("discovered source tables: ", tables)
	return tables, nil
}

// LatestUpdateAcrossTables returns the maximum last_updated value across the
// supplied tables, seeded with the sentinel epoch. Only a strictly greater
// timestamp moves the running maximum.
func (s *SourceDatabase) LatestUpdateAcrossTables(ctx context.Context, tables []string) (time.Time, error) {
	newest := constants.SentinelEpoch
	for _, table := range tables {
		sql := fmt.Sprintf("select last_updated from %v order by last_updated desc limit 1", table)
		var t time.Time
		err := s.Db.QueryRow(ctx, sql).Scan(&t)
		if errors.Is(err, ErrNoRows) { // an empty table has nothing to contribute...
			s.Log.Debug("table ", table, " is empty, skipping for latest update")
			continue
		}
		if err != nil {
			return time.Time{}, &QueryError{Query: sql, Err: err}
		}
		if t.After(newest) {
			newest = t
		}
	}
	s.Log.Debug("latest update across tables: ", newest)
	return newest, nil
}

// ExtractTableJson returns the rows of table updated strictly after since, as
// a JSON array aggregated by the database itself. A nil result means no rows
// qualified.
func (s *SourceDatabase) ExtractTableJson(ctx context.Context, table string, since time.Time) ([]byte, error) {
	sql := fmt.Sprintf("select json_agg(row_to_json(t)) from %v t where last_updated > $1", table)
	var data []byte
	if err := s.Db.QueryRow(ctx, sql, since).Scan(&data); err != nil {
		return nil, &QueryError{Query: sql, Err: err}
	}
	return data, nil
}
