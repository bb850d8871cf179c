package transform

import (
	"testing"

	"github.com/alixiazul/data-engineering-project/entity"
)

func TestShapeTransactionKeepsAbsentOrderIdsNil(t *testing.T) {
	rows := []entity.TransactionRow{
		{TransactionID: 1, TransactionType: "PURCHASE", SalesOrderID: nil, PurchaseOrderID: i64p(2)},
		{TransactionID: 2, TransactionType: "SALE", SalesOrderID: i64p(1), PurchaseOrderID: nil},
	}
	got, err := ShapeTransaction(rows)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].SalesOrderID != nil || *got[0].PurchaseOrderID != 2 {
		t.Fatal("purchase transaction ids wrong")
	}
	if *got[1].SalesOrderID != 1 || got[1].PurchaseOrderID != nil {
		t.Fatal("sale transaction ids wrong")
	}
	// The loader coalesces absent ids to zero at insert time.
	vals := got[0].Values()
	if vals[2] != int64(0) || vals[3] != int64(2) {
		t.Fatalf("insert values must coalesce nil ids to 0, got %v", vals)
	}
}

func TestShapeTransactionEmptyInput(t *testing.T) {
	_, err := ShapeTransaction(nil)
	if !IsEmptyInput(err) {
		t.Fatalf("expected an empty-input error, got %v", err)
	}
}
