package load

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alixiazul/data-engineering-project/aws/s3"
	"github.com/alixiazul/data-engineering-project/entity"
	"github.com/alixiazul/data-engineering-project/rdbms"
	"github.com/alixiazul/data-engineering-project/transform"
)

const testLabel = "2022-11-03 14:20:52.187000"

func seedDesignBlob(t *testing.T, bucket *s3.MockBasicClient) string {
	t.Helper()
	rows := []entity.DimDesign{
		{DesignID: 1, DesignName: "Wooden", FileLocation: "/usr", FileName: "wooden-20220717-npgz.json"},
		{DesignID: 2, DesignName: "Steel", FileLocation: "/private", FileName: "steel-20210621-13gb.json"},
	}
	key, err := transform.SavePartition(logrus.New(), bucket, "dim_design", testLabel, rows)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func newTestLoader(transformation, warehouse *s3.MockBasicClient, db *rdbms.MockConnector) *Loader {
	return NewLoader(&LoaderConfig{
		Log:            logrus.New(),
		Transformation: transformation,
		Warehouse:      warehouse,
		Connect: func(ctx context.Context) (rdbms.Connector, error) {
			return db, nil
		},
	})
}

func TestLoaderAppliesBlobAndRecordsManifest(t *testing.T) {
	transformation := s3.NewMockBasicClient()
	warehouse := s3.NewMockBasicClient()
	db := rdbms.NewMockConnector()
	key := seedDesignBlob(t, transformation)

	l := newTestLoader(transformation, warehouse, db)
	res, err := l.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Blobs) != 1 {
		t.Fatalf("expected 1 applied blob, got %v", len(res.Blobs))
	}
	b := res.Blobs[0]
	if b.Status != StatusApplied || b.RowsInserted != 2 || b.ChunksFailed != 0 {
		t.Fatalf("unexpected blob result: %+v", b)
	}
	if len(db.Executed) != 1 || !strings.Contains(db.Executed[0], "insert into dim_design (design_id,") {
		t.Fatalf("unexpected executed SQL: %v", db.Executed)
	}

	m, err := FetchManifest(warehouse)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Contains(key) {
		t.Fatal("applied blob must be recorded in the manifest")
	}

	// A second cycle sees the manifest and does nothing.
	db.Executed = nil
	res, err = l.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Blobs) != 0 || len(db.Executed) != 0 {
		t.Fatal("already-applied blobs must not be loaded again")
	}
}

func TestLoaderPartialApplyStillRecordsManifest(t *testing.T) {
	transformation := s3.NewMockBasicClient()
	warehouse := s3.NewMockBasicClient()
	db := rdbms.NewMockConnector()
	db.ExecErrs = map[int]error{0: errors.New("duplicate key value violates unique constraint")}
	key := seedDesignBlob(t, transformation)

	l := newTestLoader(transformation, warehouse, db)
	res, err := l.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b := res.Blobs[0]
	if b.Status != StatusPartiallyApplied || b.ChunksFailed != 1 || b.RowsInserted != 0 {
		t.Fatalf("unexpected blob result: %+v", b)
	}
	m, err := FetchManifest(warehouse)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Contains(key) {
		t.Fatal("a partially applied blob is still recorded so it is not retried")
	}
}

// The fact blobs carry the plural "facts_" prefix but the warehouse table is
// singular, so the generated INSERT must not reuse the blob prefix.
func TestLoaderFactBlobInsertsIntoFactSalesOrder(t *testing.T) {
	transformation := s3.NewMockBasicClient()
	facts := []entity.FactSalesOrder{{SalesOrderID: 2, DesignID: 3, SalesStaffID: 19, CounterpartyID: 8,
		UnitsSold: 42972, UnitPrice: 3.94, CurrencyID: 2, AgreedDeliveryDate: "2022-11-07",
		AgreedPaymentDate: "2022-11-08", AgreedDeliveryLocationID: 8,
		CreatedDate: "2022-11-03", CreatedTime: "14:20:52.186", LastDate: "2022-11-03", LastTime: "14:20:52.186"}}
	key, err := transform.SavePartition(logrus.New(), transformation, "facts_sales_order", testLabel, facts)
	if err != nil {
		t.Fatal(err)
	}

	db := rdbms.NewMockConnector()
	l := newTestLoader(transformation, s3.NewMockBasicClient(), db)
	br, err := l.ApplyBlob(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	if br.Status != StatusApplied || br.RowsInserted != 1 {
		t.Fatalf("unexpected blob result: %+v", br)
	}
	if len(db.Executed) != 1 || !strings.HasPrefix(db.Executed[0], "insert into fact_sales_order (sales_order_id,") {
		t.Fatalf("unexpected executed SQL: %v", db.Executed)
	}
}

func TestLoaderAppliesDimensionsBeforeFacts(t *testing.T) {
	transformation := s3.NewMockBasicClient()
	seedDesignBlob(t, transformation)
	facts := []entity.FactSalesOrder{{SalesOrderID: 2, DesignID: 3, SalesStaffID: 19, CounterpartyID: 8,
		UnitsSold: 42972, UnitPrice: 3.94, CurrencyID: 2, AgreedDeliveryDate: "2022-11-07",
		AgreedPaymentDate: "2022-11-08", AgreedDeliveryLocationID: 8,
		CreatedDate: "2022-11-03", CreatedTime: "14:20:52.186", LastDate: "2022-11-03", LastTime: "14:20:52.186"}}
	if _, err := transform.SavePartition(logrus.New(), transformation, "facts_sales_order", testLabel, facts); err != nil {
		t.Fatal(err)
	}

	l := newTestLoader(transformation, s3.NewMockBasicClient(), rdbms.NewMockConnector())
	pending, err := l.PendingBlobs(NewManifest())
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending blobs, got %v", pending)
	}
	if !strings.HasPrefix(pending[0], "dim_") || !strings.HasPrefix(pending[1], "facts_") {
		t.Fatalf("dimensions must precede facts, got %v", pending)
	}
}

func TestLoaderUnroutableBlobFails(t *testing.T) {
	transformation := s3.NewMockBasicClient()
	l := newTestLoader(transformation, s3.NewMockBasicClient(), rdbms.NewMockConnector())
	if _, err := l.ApplyBlob(context.Background(), "dim_unknown/2022-November/x.parquet"); err == nil {
		t.Fatal("expected an error for a blob with no warehouse route")
	}
}
