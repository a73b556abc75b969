package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/larch-c/xfbank/internal/ledger"
)

func testSnapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Accounts: map[string]decimal.Decimal{
			"u1": decimal.RequireFromString("123.45"),
			"u2": decimal.Zero,
		},
		Cards: map[string]string{
			"u1": "XF1234568",
			"u2": "XF7654320",
		},
		Transactions: map[string][]ledger.Record{
			"u1": {
				{
					Time:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
					Type:    ledger.TypeCheckIn,
					Amount:  decimal.RequireFromString("123.45"),
					Balance: decimal.RequireFromString("123.45"),
				},
			},
		},
		LastCheckin: map[string]string{"u1": "2024-05-01"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	want := testSnapshot()
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}

	if !got.Accounts["u1"].Equal(want.Accounts["u1"]) {
		t.Fatalf("u1 balance: got %s want %s", got.Accounts["u1"], want.Accounts["u1"])
	}
	if got.Cards["u2"] != "XF7654320" {
		t.Fatalf("u2 card: got %q", got.Cards["u2"])
	}
	if len(got.Transactions["u1"]) != 1 {
		t.Fatalf("u1 transactions: got %d want 1", len(got.Transactions["u1"]))
	}
	rec := got.Transactions["u1"][0]
	if rec.Type != ledger.TypeCheckIn || !rec.Amount.Equal(want.Transactions["u1"][0].Amount) {
		t.Fatalf("record mismatch: %+v", rec)
	}
	if got.LastCheckin["u1"] != "2024-05-01" {
		t.Fatalf("last checkin: got %q", got.LastCheckin["u1"])
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "bank_data.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(testSnapshot()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	first := testSnapshot()
	if err := s.Save(first); err != nil {
		t.Fatal(err)
	}

	second := testSnapshot()
	second.Accounts["u1"] = decimal.RequireFromString("999.99")
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Accounts["u1"].Equal(second.Accounts["u1"]) {
		t.Fatalf("overwrite lost: got %s", got.Accounts["u1"])
	}
}

func TestSaveDropsStaleSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	newer := testSnapshot()
	newer.Seq = 2
	newer.Accounts["u1"] = decimal.RequireFromString("200")
	if err := s.Save(newer); err != nil {
		t.Fatal(err)
	}

	// A snapshot taken earlier but written later must not win.
	older := testSnapshot()
	older.Seq = 1
	if err := s.Save(older); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Accounts["u1"].Equal(newer.Accounts["u1"]) {
		t.Fatalf("stale snapshot overwrote newer state: got %s", got.Accounts["u1"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "bank_data.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !os.IsNotExist(err) {
		t.Fatalf("want os.IsNotExist error, got %v", err)
	}
}

func TestAmountsStoredAsNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_data.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(testSnapshot()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), `"123.45"`) {
		t.Fatal("amounts serialized as strings, want JSON numbers")
	}
	if !strings.Contains(string(raw), "123.45") {
		t.Fatal("amount missing from data file")
	}
}

func TestNewFileStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "bank_data.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(testSnapshot()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("data file not written: %v", err)
	}
	if s.Path() != path {
		t.Fatalf("Path()=%q want %q", s.Path(), path)
	}
}
