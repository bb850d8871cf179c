package extract

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/aws/ssm"
	"github.com/alixiazul/data-engineering-project/lake"
	"github.com/alixiazul/data-engineering-project/rdbms"
)

func newTestExtractor(t *testing.T, db *rdbms.MockConnector, seedWatermark string) (*Extractor, *s3.MockBasicClient, *lake.WatermarkStore) {
	t.Helper()
	log := logrus.New()
	bucket := s3.NewMockBasicClient()
	params := ssm.NewMockParameterStore()
	if err := params.Put("latest_date", seedWatermark); err != nil {
		t.Fatal(err)
	}
	w := lake.NewWatermarkStore(log, params, "latest_date")
	e := NewExtractor(&ExtractorConfig{
		Log:       log,
		Source:    rdbms.NewSourceDatabase(log, db),
		Bucket:    bucket,
		Watermark: w,
	})
	return e, bucket, w
}

func TestExtractorWritesBlobAndAdvancesWatermark(t *testing.T) {
	latest := time.Date(2022, 11, 3, 14, 20, 52, 187000000, time.UTC)
	blobJson := `[{"transaction_id":1,"last_updated":"2022-11-03T14:20:52.186"},` +
		`{"transaction_id":2,"last_updated":"2022-11-03T14:20:52.187"}]`

	db := rdbms.NewMockConnector()
	db.Results["information_schema"] = MockTables("transaction")
	db.Results["order by last_updated desc"] = rdbms.MockResult{Rows: [][]interface{}{{latest}}}
	db.Results["json_agg"] = rdbms.MockResult{Rows: [][]interface{}{{blobJson}}}

	e, bucket, w := newTestExtractor(t, db, "1999-05-24 00:00:00.000000")
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Advanced {
		t.Fatal("the watermark should have advanced")
	}

	expectedKey := "transaction/2022-November/transaction-2022-11-03 14:20:52.187000.json"
	data, err := bucket.Get(expectedKey)
	if err != nil {
		t.Fatalf("expected blob at %v: %v", expectedKey, err)
	}
	if string(data) != blobJson {
		t.Fatal("blob content does not match the extracted JSON")
	}

	got, err := w.Get()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(latest) {
		t.Fatalf("watermark should be %v, got %v", latest, got)
	}
}

func TestExtractorNoNewDataLeavesWatermarkAlone(t *testing.T) {
	// The newest source row equals the stored watermark exactly.
	latest := time.Date(2022, 11, 3, 14, 20, 52, 187000000, time.UTC)
	db := rdbms.NewMockConnector()
	db.Results["information_schema"] = MockTables("transaction")
	db.Results["order by last_updated desc"] = rdbms.MockResult{Rows: [][]interface{}{{latest}}}

	e, bucket, w := newTestExtractor(t, db, lake.FormatTimestamp(latest))
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Advanced {
		t.Fatal("the watermark must not advance without strictly newer data")
	}
	keys, err := bucket.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Fatalf("no blobs should be written, got %v", keys)
	}
	got, err := w.Get()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(latest) {
		t.Fatal("the watermark changed during a no-op cycle")
	}
}

func TestExtractorEmptyAggregateSkipsTable(t *testing.T) {
	latest := time.Date(2022, 11, 3, 14, 20, 52, 187000000, time.UTC)
	db := rdbms.NewMockConnector()
	db.Results["information_schema"] = MockTables("transaction")
	db.Results["order by last_updated desc"] = rdbms.MockResult{Rows: [][]interface{}{{latest}}}
	db.Results["json_agg"] = rdbms.MockResult{Rows: [][]interface{}{{nil}}} // no qualifying rows.

	e, bucket, _ := newTestExtractor(t, db, "1999-05-24 00:00:00.000000")
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.TablesNoData) != 1 || res.TablesNoData[0] != "transaction" {
		t.Fatalf("expected transaction reported as no-data, got %v", res.TablesNoData)
	}
	keys, _ := bucket.List("")
	if len(keys) != 0 {
		t.Fatalf("no blobs should be written, got %v", keys)
	}
	// The watermark still advances: the cycle completed successfully.
	if !res.Advanced {
		t.Fatal("the watermark should advance after a successful cycle")
	}
}

func TestExtractorMissingWatermarkIsFatal(t *testing.T) {
	log := logrus.New()
	w := lake.NewWatermarkStore(log, ssm.NewMockParameterStore(), "latest_date")
	e := NewExtractor(&ExtractorConfig{
		Log:       log,
		Source:    rdbms.NewSourceDatabase(log, rdbms.NewMockConnector()),
		Bucket:    s3.NewMockBasicClient(),
		Watermark: w,
	})
	if _, err := e.Run(context.Background()); err == nil {
		t.Fatal("expected an error when the watermark parameter is missing")
	}
}

// MockTables scripts a table discovery result.
func MockTables(names ...string) rdbms.MockResult {
	rows := make([][]interface{}, len(names))
	for i, n := range names {
		rows[i] = []interface{}{n}
	}
	return rdbms.MockResult{Rows: rows}
}
