package transform

import (
	"testing"

	"github.com/alixiazul/data-engineering-project/entity"
)

// helpers shared by the package tests.
func strp(s string) *string { return &s }
func i64p(n int64) *int64   { return &n }

func TestDedupByKeepsFirstOccurrence(t *testing.T) {
	rows := []entity.DesignRow{
		{DesignID: i64p(1), DesignName: strp("Wooden"), FileLocation: strp("/usr"), FileName: strp("wooden.json")},
		{DesignID: i64p(2), DesignName: strp("Wooden"), FileLocation: strp("/usr"), FileName: strp("wooden.json")}, // re-issued id, same data.
		{DesignID: i64p(3), DesignName: strp("Steel"), FileLocation: strp("/private"), FileName: strp("steel.json")},
	}
	got := dedupBy(rows, func(r entity.DesignRow) string {
		return dedupKey(r.DesignName, r.FileLocation, r.FileName)
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows after dedup, got %v", len(got))
	}
	if *got[0].DesignID != 1 || *got[1].DesignID != 3 {
		t.Fatal("dedup must keep the first occurrence")
	}
}

func TestDedupIsIdempotent(t *testing.T) {
	rows := []entity.DesignRow{
		{DesignID: i64p(1), DesignName: strp("Wooden")},
		{DesignID: i64p(2), DesignName: strp("Wooden")},
	}
	key := func(r entity.DesignRow) string { return dedupKey(r.DesignName) }
	once := dedupBy(rows, key)
	twice := dedupBy(once, key)
	if len(once) != len(twice) {
		t.Fatal("dedup of deduped input changed the row count")
	}
}

func TestDedupKeyDistinguishesNullFromEmpty(t *testing.T) {
	if dedupKey(nil) == dedupKey("") {
		t.Fatal("null and empty string must not collide")
	}
	var nilStr *string
	if dedupKey(nilStr) == dedupKey(strp("")) {
		t.Fatal("nil pointer and empty string must not collide")
	}
	// Joining must not let adjacent values bleed into each other.
	if dedupKey("ab", "c") == dedupKey("a", "bc") {
		t.Fatal("composite keys must keep column boundaries")
	}
}
