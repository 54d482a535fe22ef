package holdings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PositionSource is the upstream feed of raw positions. Each call may fail
// independently; a failed call never implies the others will fail. The
// implementation owns its own per-call timeout, so a stuck quote lookup for
// one symbol cannot hang the whole aggregation.
type PositionSource interface {
	// EquityHoldings returns the raw equity records keyed by ticker symbol.
	EquityHoldings() (map[string]RawEquity, error)
	// CryptoPositions returns the raw crypto position records.
	CryptoPositions() ([]CryptoPosition, error)
	// CryptoQuote returns the current mark price for a currency code.
	CryptoQuote(code string) (CryptoQuote, error)
}

// RawEquity is one semi-structured equity record as the brokerage returns
// it: named fields whose values may be strings, numbers or missing. Nothing
// in it is trusted; every field is coerced at the ingestion boundary.
type RawEquity map[string]any

// text returns a string field, or "" when missing.
func (r RawEquity) text(key string) string {
	s, _ := r[key].(string)
	return s
}

// number coerces a numeric field. The feeds are inconsistent about numbers:
// sometimes a JSON number, sometimes a quoted decimal string.
func (r RawEquity) number(key string) (decimal.Decimal, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return decimal.Decimal{}, fmt.Errorf("missing field %q", key)
	}
	return coerceNumber(key, v)
}

// numberOr is like number but falls back to def when the field is absent.
// A present but unparseable value is still an error: it means the record is
// broken, not incomplete.
func (r RawEquity) numberOr(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return def, nil
	}
	return coerceNumber(key, v)
}

func coerceNumber(key string, v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case string:
		// some feeds use a decimal comma
		t = strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("field %q: invalid number %q", key, v)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("field %q: invalid number %q", key, t)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("field %q: unsupported type %T", key, v)
	}
}

// CryptoCurrency identifies the currency of a crypto position.
type CryptoCurrency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CostBasis is one cost-basis entry of a crypto position. The feed reports
// the amounts as decimal strings.
type CostBasis struct {
	DirectCostBasis string `json:"direct_cost_basis"`
	DirectQuantity  string `json:"direct_quantity"`
}

// CryptoPosition is one raw crypto position record.
type CryptoPosition struct {
	Currency          CryptoCurrency `json:"currency"`
	QuantityAvailable string         `json:"quantity_available"`
	CostBases         []CostBasis    `json:"cost_bases"`
}

// CryptoQuote is the point-in-time quote for a crypto currency.
type CryptoQuote struct {
	MarkPrice string `json:"mark_price"`
}

// averageCost derives the per-unit cost from the first cost-basis entry, or
// zero when there is none or its quantity is zero.
func (p CryptoPosition) averageCost() (decimal.Decimal, error) {
	if len(p.CostBases) == 0 {
		return decimal.Decimal{}, nil
	}
	cb := p.CostBases[0]
	dq, err := decimal.NewFromString(cb.DirectQuantity)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid direct_quantity %q", cb.DirectQuantity)
	}
	if !dq.IsPositive() {
		return decimal.Decimal{}, nil
	}
	dcb, err := decimal.NewFromString(cb.DirectCostBasis)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid direct_cost_basis %q", cb.DirectCostBasis)
	}
	return dcb.DivRound(dq, divisionPlaces), nil
}
