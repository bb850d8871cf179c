package transform

import (
	"testing"

	"github.com/alixiazul/data-engineering-project/entity"
)

func TestShapeCounterpartyJoinsLegalAddress(t *testing.T) {
	counterparties := []entity.CounterpartyRow{
		{CounterpartyID: i64p(1), CounterpartyLegalName: strp("Fahey and Sons"), LegalAddressID: i64p(15)},
	}
	addresses := []entity.AddressRow{
		{
			AddressID:    15,
			AddressLine1: strp("6826 Herzog Via"),
			AddressLine2: nil,
			District:     strp("Avon"),
			City:         strp("New Patienceburgh"),
			PostalCode:   strp("28441"),
			Country:      strp("Turkey"),
			Phone:        strp("1803 637401"),
		},
	}
	got, err := ShapeCounterparty(counterparties, addresses)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %v", len(got))
	}
	r := got[0]
	if r.CounterpartyID != 1 || r.CounterpartyLegalName != "Fahey and Sons" {
		t.Fatal("counterparty columns not carried through the join")
	}
	if r.CounterpartyLegalAddressLine1 != "6826 Herzog Via" {
		t.Fatalf("address not joined, got line 1 %q", r.CounterpartyLegalAddressLine1)
	}
	if r.CounterpartyLegalAddressLine2 != nil {
		t.Fatal("null address_line_2 must stay null after the rename")
	}
	if *r.CounterpartyLegalDistrict != "Avon" || r.CounterpartyLegalCity != "New Patienceburgh" {
		t.Fatal("renamed address columns carry wrong values")
	}
}

func TestShapeCounterpartyDropsUnjoinableAndNullRows(t *testing.T) {
	counterparties := []entity.CounterpartyRow{
		{CounterpartyID: i64p(1), CounterpartyLegalName: strp("Orphaned Ltd"), LegalAddressID: i64p(99)}, // no such address.
		{CounterpartyID: i64p(2), CounterpartyLegalName: nil, LegalAddressID: i64p(15)},                  // null legal name.
		{CounterpartyID: i64p(3), CounterpartyLegalName: strp("No Phone plc"), LegalAddressID: i64p(16)}, // address misses phone.
	}
	addresses := []entity.AddressRow{
		{AddressID: 15, AddressLine1: strp("a"), City: strp("b"), PostalCode: strp("c"), Country: strp("d"), Phone: strp("e")},
		{AddressID: 16, AddressLine1: strp("a"), City: strp("b"), PostalCode: strp("c"), Country: strp("d"), Phone: nil},
	}
	got, err := ShapeCounterparty(counterparties, addresses)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %v", got)
	}
}

func TestShapeCounterpartyDeduplicatesBothSides(t *testing.T) {
	counterparties := []entity.CounterpartyRow{
		{CounterpartyID: i64p(1), CounterpartyLegalName: strp("Fahey and Sons"), LegalAddressID: i64p(15)},
		{CounterpartyID: i64p(2), CounterpartyLegalName: strp("Fahey and Sons"), LegalAddressID: i64p(15)}, // duplicate data, new id.
	}
	addresses := []entity.AddressRow{
		{AddressID: 15, AddressLine1: strp("6826 Herzog Via"), City: strp("New Patienceburgh"), PostalCode: strp("28441"), Country: strp("Turkey"), Phone: strp("1803 637401")},
	}
	got, err := ShapeCounterparty(counterparties, addresses)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row after dedup, got %v", len(got))
	}
	if got[0].CounterpartyID != 1 {
		t.Fatal("dedup must keep the first occurrence")
	}
}
