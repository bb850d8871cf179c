package lake

import (
	"testing"
	"time"
)

func TestExtractionKey(t *testing.T) {
	ts := time.Date(2022, 11, 3, 14, 20, 52, 187000000, time.UTC)
	got := ExtractionKey("transaction", ts)
	expected := "transaction/2022-November/transaction-2022-11-03 14:20:52.187000.json"
	if got != expected {
		t.Fatalf("bad extraction key: expected = '%v'; got = '%v'", expected, got)
	}
}

func TestTransformationKey(t *testing.T) {
	got, err := TransformationKey("dim_transaction", "2022-11-03 14:20:52.187000")
	if err != nil {
		t.Fatal(err)
	}
	expected := "dim_transaction/2022-November/dim_transaction-2022-11-03 14:20:52.187000.parquet"
	if got != expected {
		t.Fatalf("bad transformation key: expected = '%v'; got = '%v'", expected, got)
	}
	if _, err := TransformationKey("dim_transaction", "garbage"); err == nil {
		t.Fatal("expected an error for an unparseable label")
	}
}

func TestLabelFromKey(t *testing.T) {
	key := "transaction/2022-November/transaction-2022-11-03 14:20:52.187000.json"
	got := LabelFromKey(key)
	expected := "2022-11-03 14:20:52.187000"
	if got != expected {
		t.Fatalf("bad label: expected = '%v'; got = '%v'", expected, got)
	}
	// The label must survive the table-to-target rename.
	if LabelFromKey(TargetKeyFor(key, "transaction", "dim_transaction")) != expected {
		t.Fatal("label not recoverable from target key")
	}
}

func TestTargetPrefixMappingIsTotal(t *testing.T) {
	mapped := []string{"address", "counterparty", "currency", "department", "design", "sales_order", "staff", "transaction"}
	for _, table := range mapped {
		if _, ok := TargetPrefixFor(table); !ok {
			t.Fatalf("table %v has no target prefix", table)
		}
	}
	unmapped := []string{"payment", "payment_type", "purchase_order", "no_such_table"}
	for _, table := range unmapped {
		if p, ok := TargetPrefixFor(table); ok {
			t.Fatalf("table %v unexpectedly mapped to %v", table, p)
		}
	}
}

func TestDiffNewKeys(t *testing.T) {
	ts1 := time.Date(2022, 11, 3, 14, 20, 52, 186000000, time.UTC)
	ts2 := time.Date(2022, 11, 3, 14, 20, 52, 187000000, time.UTC)
	k1 := ExtractionKey("transaction", ts1)
	k2 := ExtractionKey("transaction", ts2)

	// Nothing transformed yet: both keys are new.
	got := DiffNewKeys("transaction", "dim_transaction", []string{k1, k2}, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 new keys, got %v", got)
	}

	// After the first key has been transformed only the second is new.
	done := TargetKeyFor(k1, "transaction", "dim_transaction")
	got = DiffNewKeys("transaction", "dim_transaction", []string{k1, k2}, []string{done})
	if len(got) != 1 || got[0] != k2 {
		t.Fatalf("expected only %v, got %v", k2, got)
	}

	// Both transformed: the diff is empty, so re-running does no work.
	done2 := TargetKeyFor(k2, "transaction", "dim_transaction")
	got = DiffNewKeys("transaction", "dim_transaction", []string{k1, k2}, []string{done, done2})
	if len(got) != 0 {
		t.Fatalf("expected no new keys, got %v", got)
	}
}

func TestDiffNewKeysExcludesPaymentType(t *testing.T) {
	ts := time.Date(2022, 11, 3, 14, 20, 52, 187000000, time.UTC)
	paymentKey := ExtractionKey("payment", ts)
	paymentTypeKey := ExtractionKey("payment_type", ts)
	got := DiffNewKeys("payment", "dim_payment", []string{paymentKey, paymentTypeKey}, nil)
	if len(got) != 1 || got[0] != paymentKey {
		t.Fatalf("payment_type keys should be excluded, got %v", got)
	}
}
