package holdings

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{USD(1234.56), "$1,234.56"},
		{USD(0), "$0.00"},
		{USD(-12.5), "-$12.50"},
		{M(1234.56, "EUR"), "€1.234,56"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.m.ExactString(), got, tt.want)
		}
	}
}

func TestMoneyExactString(t *testing.T) {
	v, _ := decimal.NewFromString("0.00061700152345986684")
	m := USD(v)
	if got, want := m.ExactString(), "0.00061700152345986684"; got != want {
		t.Errorf("ExactString() = %q, want %q", got, want)
	}
	// the conventional formatter squeezes it to cents; ExactString must not
	if got := m.String(); got != "$0.00" {
		t.Errorf("String() = %q, want the conventional two-place rendering", got)
	}
}

func TestMoneySignedString(t *testing.T) {
	if got, want := USD(10).SignedString(), "+$10.00"; got != want {
		t.Errorf("SignedString(10) = %q, want %q", got, want)
	}
	if got, want := USD(-10).SignedString(), "-$10.00"; got != want {
		t.Errorf("SignedString(-10) = %q, want %q", got, want)
	}
	if got, want := USD(0).SignedString(), "-"; got != want {
		t.Errorf("SignedString(0) = %q, want %q", got, want)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got, want := USD(2).Mul(Q(10)), USD(20); !got.Equal(want) {
		t.Errorf("2 x 10 = %v, want %v", got, want)
	}
	if got, want := USD(2).Add(USD(3)), USD(5); !got.Equal(want) {
		t.Errorf("2 + 3 = %v, want %v", got, want)
	}
	// the zero Money is a weak operand, usable as an accumulator seed
	if got, want := (Money{}).Add(USD(3)), USD(3); !got.Equal(want) {
		t.Errorf("zero + 3 = %v, want %v", got, want)
	}

	defer func() {
		if recover() == nil {
			t.Error("adding mismatched currencies must panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}

func TestMoneyPercentOf(t *testing.T) {
	if got, want := USD(20).PercentOf(USD(40)), P(50); !got.Equal(want) {
		t.Errorf("20 of 40 = %v, want %v", got, want)
	}
	// a sub-cent share of a sub-dollar total survives the division
	equity, _ := decimal.NewFromString("0.00061700152345986684")
	total, _ := decimal.NewFromString("0.0006170015234598668")
	got := USD(equity).PercentOf(USD(total))
	if got.IsZero() {
		t.Error("fractional-cent weight must not collapse to zero")
	}
	if !got.Within(P(100), P(1)) {
		t.Errorf("weight = %v, want about 100%%", got)
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	v, _ := decimal.NewFromString("50000.12345678901234")
	want := USD(v)
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	var got Money
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("round-trip = %v, want %v", got.ExactString(), want.ExactString())
	}
}

func TestPercentString(t *testing.T) {
	if got, want := P(50).String(), "50.00%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := P(12.345).Round(2).String(), "12.35%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := P(-3).SignedString(), "-3.00%"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
	if got, want := P(3).SignedString(), "+3.00%"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
	if got, want := P(0).SignedString(), "-"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
}

func TestQuantityParseAndRound(t *testing.T) {
	q, err := ParseQuantity("0.00000001234")
	if err != nil {
		t.Fatal(err)
	}
	if q.Round(20).String() != "0.00000001234" {
		t.Errorf("Round(20) = %v, the crypto regime keeps every digit", q.Round(20))
	}
	if !q.Round(2).IsZero() {
		t.Errorf("Round(2) = %v, want zero", q.Round(2))
	}
	if _, err := ParseQuantity("ten"); err == nil {
		t.Error("ParseQuantity(ten) = nil error")
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		in      any
		want    string
		wantErr bool
	}{
		{"1.50", "1.5", false},
		{" 1.50 ", "1.5", false},
		{"1,50", "1.5", false},
		{2.0, "2", false},
		{json.Number("3.14"), "3.14", false},
		{7, "7", false},
		{"not-a-number", "", true},
		{true, "", true},
	}
	for _, tt := range tests {
		got, err := coerceNumber("field", tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("coerceNumber(%v) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("coerceNumber(%v) error = %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("coerceNumber(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
