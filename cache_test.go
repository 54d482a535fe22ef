package holdings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testSnapshot builds a small two-asset snapshot with full crypto precision,
// the shape the cache must reproduce exactly.
func testSnapshot(t *testing.T) *PortfolioSnapshot {
	t.Helper()
	rows := []Holding{
		{
			Symbol:        "AAA",
			Name:          "Ay Corp",
			Class:         Stock,
			Quantity:      Q(10),
			Price:         USD(2),
			AverageCost:   USD(1),
			Equity:        USD(20),
			EquityChange:  USD(10),
			PercentChange: P(100),
			Weight:        P(d(t, "99.99")),
		},
		{
			Symbol:        "BTC",
			Name:          "Bitcoin",
			Class:         Crypto,
			Quantity:      Q(d(t, "0.00000001234")),
			Price:         USD(d(t, "50000.12345678901234")),
			AverageCost:   USD(d(t, "40518.63857374392220421394")),
			Equity:        USD(d(t, "0.00061700152345986684")),
			EquityChange:  USD(d(t, "0.0001170015234598668")),
			PercentChange: P(d(t, "23.40030469197336773739")),
			Weight:        P(d(t, "0.00308500637831193627")),
		},
	}
	warnings := []Warning{{Kind: WarnSymbolCollision, Symbol: "XYZ", Reason: "present in both feeds"}}
	return newSnapshot(time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC), rows, USD(d(t, "20.00")), warnings)
}

func equalSnapshots(t *testing.T, got, want *PortfolioSnapshot) {
	t.Helper()
	if !got.On().Equal(want.On()) {
		t.Errorf("On() = %v, want %v", got.On(), want.On())
	}
	if !got.TotalEquity().Equal(want.TotalEquity()) {
		t.Errorf("TotalEquity() = %v, want %v", got.TotalEquity().ExactString(), want.TotalEquity().ExactString())
	}
	if got.Len() != want.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), want.Len())
	}
	for wh := range want.Holdings() {
		gh, ok := got.Get(wh.Symbol)
		if !ok {
			t.Errorf("holding %q lost", wh.Symbol)
			continue
		}
		if gh.Name != wh.Name || gh.Class != wh.Class {
			t.Errorf("%s identity = (%q, %q), want (%q, %q)", wh.Symbol, gh.Name, gh.Class, wh.Name, wh.Class)
		}
		if !gh.Quantity.Equal(wh.Quantity) {
			t.Errorf("%s quantity = %v, want %v", wh.Symbol, gh.Quantity, wh.Quantity)
		}
		for _, f := range []struct {
			name      string
			got, want Money
		}{
			{"price", gh.Price, wh.Price},
			{"average cost", gh.AverageCost, wh.AverageCost},
			{"equity", gh.Equity, wh.Equity},
			{"equity change", gh.EquityChange, wh.EquityChange},
		} {
			if !f.got.Equal(f.want) {
				t.Errorf("%s %s = %v, want %v", wh.Symbol, f.name, f.got.ExactString(), f.want.ExactString())
			}
		}
		if !gh.PercentChange.Equal(wh.PercentChange) {
			t.Errorf("%s percent change = %v, want %v", wh.Symbol, gh.PercentChange, wh.PercentChange)
		}
		if !gh.Weight.Equal(wh.Weight) {
			t.Errorf("%s weight = %v, want %v", wh.Symbol, gh.Weight, wh.Weight)
		}
	}
	gw, ww := got.Warnings(), want.Warnings()
	if len(gw) != len(ww) {
		t.Fatalf("Warnings() = %v, want %v", gw, ww)
	}
	for i := range ww {
		if gw[i] != ww[i] {
			t.Errorf("warning[%d] = %v, want %v", i, gw[i], ww[i])
		}
	}
}

func TestFileCache_RoundTrip(t *testing.T) {
	cache := NewFileCache(filepath.Join(t.TempDir(), "snapshot.json"))
	want := testSnapshot(t)

	if err := cache.Put(want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok := cache.Get(time.Hour)
	if !ok {
		t.Fatal("Get() reports absent right after Put()")
	}
	equalSnapshots(t, got, want)
}

func TestFileCache_Aging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	s := testSnapshot(t)

	// write an entry stamped two hours in the past
	content, err := encodeSnapshotEntry(time.Now().Add(-2*time.Hour), s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cache := NewFileCache(path)

	if _, ok := cache.Get(time.Hour); ok {
		t.Error("Get(1h) returned a two-hour-old entry")
	}
	if _, ok := cache.Get(3 * time.Hour); !ok {
		t.Error("Get(3h) rejected a two-hour-old entry")
	}
	if _, ok := cache.Get(0); ok {
		t.Error("Get(0) must always report absent")
	}
	if _, ok := cache.Get(-time.Hour); ok {
		t.Error("a negative freshness window must always report absent")
	}
}

func TestFileCache_CorruptStateIsAbsence(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"truncated json", `{"cached_at": "2026-08-23T10:`},
		{"not json at all", "I am not a snapshot"},
		{"empty file", ""},
		{"missing timestamp", `{"holdings": []}`},
		{"holding without symbol", `{"cached_at": "2026-08-23T10:00:00Z", "holdings": [{"quantity": "1"}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snapshot.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, ok := NewFileCache(path).Get(time.Hour); ok {
				t.Error("corrupt cache state must read as absent, not as an error or a snapshot")
			}
		})
	}
}

func TestFileCache_MissingFileIsAbsence(t *testing.T) {
	cache := NewFileCache(filepath.Join(t.TempDir(), "never-written.json"))
	if _, ok := cache.Get(time.Hour); ok {
		t.Error("Get() on a never-written cache must report absent")
	}
}

func TestFileCache_PutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(filepath.Join(dir, "snapshot.json"))
	if err := cache.Put(testSnapshot(t)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := cache.Put(testSnapshot(t)); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "snapshot.json" {
			t.Errorf("leftover file %q after Put()", e.Name())
		}
	}
}

func TestFileCache_PutOverwritesCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	cache := NewFileCache(path)
	want := testSnapshot(t)
	if err := cache.Put(want); err != nil {
		t.Fatalf("Put() over corrupt state error = %v", err)
	}
	got, ok := cache.Get(time.Hour)
	if !ok {
		t.Fatal("Get() reports absent after recovery Put()")
	}
	equalSnapshots(t, got, want)
}

func TestFileCache_EntryIsReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := NewFileCache(path).Put(testSnapshot(t)); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// decimals persist as quoted strings, not floats
	if !strings.Contains(string(content), `"0.00000001234"`) {
		t.Errorf("crypto quantity not persisted as an exact decimal string:\n%s", content)
	}
	if !strings.Contains(string(content), `"symbol-collision"`) {
		t.Errorf("warnings not persisted:\n%s", content)
	}
}

func TestMemCache(t *testing.T) {
	var cache MemCache
	if _, ok := cache.Get(time.Hour); ok {
		t.Error("empty MemCache must report absent")
	}
	want := testSnapshot(t)
	if err := cache.Put(want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok := cache.Get(time.Hour)
	if !ok {
		t.Fatal("Get() reports absent right after Put()")
	}
	if got != want {
		t.Error("MemCache must hand back the same snapshot")
	}
	if _, ok := cache.Get(0); ok {
		t.Error("Get(0) must always report absent")
	}
}
