package rdbms

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestDiscoverTablesExcludesMigrationMetadata(t *testing.T) {
	db := NewMockConnector()
	db.Results["information_schema"] = MockResult{Rows: [][]interface{}{
		{"transaction"},
		{"_prisma_migrations"},
		{"currency"},
	}}
	s := NewSourceDatabase(logrus.New(), db)
	tables, err := s.DiscoverTables(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %v", tables)
	}
	for _, name := range tables {
		if name == "_prisma_migrations" {
			t.Fatal("migration metadata table must be excluded")
		}
	}
}

func TestLatestUpdateAcrossTablesSkipsEmptyTables(t *testing.T) {
	newest := time.Date(2022, 11, 3, 14, 20, 52, 187000000, time.UTC)
	db := NewMockConnector()
	db.Results["from transaction"] = MockResult{Rows: [][]interface{}{{newest}}}
	db.Results["from currency"] = MockResult{Rows: [][]interface{}{}} // empty table.
	s := NewSourceDatabase(logrus.New(), db)
	got, err := s.LatestUpdateAcrossTables(context.Background(), []string{"transaction", "currency"})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(newest) {
		t.Fatalf("expected %v, got %v", newest, got)
	}
}

func TestLatestUpdateAcrossTablesAllEmptyReturnsSentinel(t *testing.T) {
	db := NewMockConnector()
	db.Results["from currency"] = MockResult{Rows: [][]interface{}{}}
	s := NewSourceDatabase(logrus.New(), db)
	got, err := s.LatestUpdateAcrossTables(context.Background(), []string{"currency"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 1990 {
		t.Fatalf("expected the sentinel epoch, got %v", got)
	}
}

func TestExtractTableJson(t *testing.T) {
	db := NewMockConnector()
	db.Results["json_agg"] = MockResult{Rows: [][]interface{}{{`[{"transaction_id":1}]`}}}
	s := NewSourceDatabase(logrus.New(), db)
	data, err := s.ExtractTableJson(context.Background(), "transaction", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[{"transaction_id":1}]` {
		t.Fatalf("unexpected blob data: %s", data)
	}
}

func TestExtractTableJsonNoRowsIsNil(t *testing.T) {
	db := NewMockConnector()
	db.Results["json_agg"] = MockResult{Rows: [][]interface{}{{nil}}} // SQL NULL aggregate.
	s := NewSourceDatabase(logrus.New(), db)
	data, err := s.ExtractTableJson(context.Background(), "transaction", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Fatalf("expected nil for an empty aggregate, got %s", data)
	}
}
