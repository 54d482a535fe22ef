package holdings

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyPortfolio reports that no usable holding survived aggregation,
// either because both feeds came back empty (or failed) or because total
// equity is zero and weights would be undefined. The snapshot returned
// alongside it is the explicit empty result; it must never be cached.
var ErrEmptyPortfolio = errors.New("empty portfolio")

// Aggregator merges the two heterogeneous position feeds into one
// consistent snapshot: per-record coercion, per-asset-class precision,
// derived totals and weights.
type Aggregator struct {
	Source PositionSource
}

// Snapshot fetches both feeds and builds a new snapshot.
//
// A single broken record, a failed quote lookup, or even a whole failed feed
// only produces a warning: partial crypto data must not block equity data
// and vice versa. The error is non-nil only for the empty-portfolio result.
func (a Aggregator) Snapshot() (*PortfolioSnapshot, error) {
	var rows []Holding
	var warnings []Warning
	index := make(map[string]int)

	equities, err := a.Source.EquityHoldings()
	if err != nil {
		warnings = warn(warnings, Warning{Kind: WarnSourceUnavailable, Reason: fmt.Sprintf("equity feed: %v", err)})
	}
	// map order is random; snapshot order must not be.
	symbols := make([]string, 0, len(equities))
	for sym := range equities {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		h, err := equityHolding(sym, equities[sym])
		if err != nil {
			warnings = warn(warnings, Warning{Kind: WarnRecordMalformed, Symbol: sym, Reason: err.Error()})
			continue
		}
		if h.Quantity.IsZero() {
			// closed position
			continue
		}
		index[h.Symbol] = len(rows)
		rows = append(rows, h)
	}

	positions, err := a.Source.CryptoPositions()
	if err != nil {
		warnings = warn(warnings, Warning{Kind: WarnSourceUnavailable, Reason: fmt.Sprintf("crypto feed: %v", err)})
	}
	for _, pos := range positions {
		code := pos.Currency.Code
		qty, err := decimal.NewFromString(pos.QuantityAvailable)
		if err != nil {
			warnings = warn(warnings, Warning{Kind: WarnRecordMalformed, Symbol: code, Reason: fmt.Sprintf("invalid quantity_available %q", pos.QuantityAvailable)})
			continue
		}
		if qty.IsNegative() {
			warnings = warn(warnings, Warning{Kind: WarnRecordMalformed, Symbol: code, Reason: fmt.Sprintf("negative quantity_available %s", qty)})
			continue
		}
		if qty.IsZero() {
			continue
		}
		quote, err := a.Source.CryptoQuote(code)
		if err != nil {
			warnings = warn(warnings, Warning{Kind: WarnSourceUnavailable, Symbol: code, Reason: fmt.Sprintf("quote lookup: %v", err)})
			continue
		}
		h, err := cryptoHolding(pos, qty, quote)
		if err != nil {
			warnings = warn(warnings, Warning{Kind: WarnRecordMalformed, Symbol: code, Reason: err.Error()})
			continue
		}
		if i, dup := index[h.Symbol]; dup {
			// Policy: the later-inserted record wins, but the collision is
			// surfaced, it means the upstream classification is broken.
			warnings = warn(warnings, Warning{Kind: WarnSymbolCollision, Symbol: h.Symbol, Reason: "present in both equity and crypto feeds, keeping crypto"})
			rows[i] = h
			continue
		}
		index[h.Symbol] = len(rows)
		rows = append(rows, h)
	}

	on := time.Now()
	if len(rows) == 0 {
		return emptySnapshot(on, warnings), ErrEmptyPortfolio
	}

	// Precision normalization, then the total. Weights divide by the exact
	// sum: rounding the divisor first would zero out a portfolio made of
	// fractional crypto cents. The reported total stays a two-decimal
	// dollar figure whatever the per-asset precision.
	sum := USD(0)
	for i := range rows {
		rows[i] = rows[i].rounded()
		sum = sum.Add(rows[i].Equity)
	}
	if sum.IsZero() {
		return emptySnapshot(on, warnings), ErrEmptyPortfolio
	}
	for i := range rows {
		rows[i].Weight = rows[i].Equity.PercentOf(sum).Round(rows[i].Class.Places())
	}

	return newSnapshot(on, rows, sum.Round(2), warnings), nil
}

// equityHolding coerces one raw equity record into a holding. Any field that
// fails coercion fails the record, not the batch.
func equityHolding(symbol string, rec RawEquity) (Holding, error) {
	qty, err := rec.number("quantity")
	if err != nil {
		return Holding{}, err
	}
	if qty.IsNegative() {
		return Holding{}, fmt.Errorf("negative quantity %s", qty)
	}
	price, err := rec.number("price")
	if err != nil {
		return Holding{}, err
	}
	if price.IsNegative() {
		return Holding{}, fmt.Errorf("negative price %s", price)
	}
	avg, err := rec.numberOr("average_buy_price", decimal.Decimal{})
	if err != nil {
		return Holding{}, err
	}
	if avg.IsNegative() {
		return Holding{}, fmt.Errorf("negative average_buy_price %s", avg)
	}
	// The feed repeats its own derived figures. They are recomputed below
	// from quantity and price, but a garbled value still fails the record:
	// it flags an untrustworthy row, not a missing optional.
	for _, key := range []string{"equity", "equity_change"} {
		if _, err := rec.numberOr(key, decimal.Decimal{}); err != nil {
			return Holding{}, err
		}
	}

	equity := price.Mul(qty)
	change := equity.Sub(qty.Mul(avg))
	pct, err := rec.numberOr("percent_change", changePercent(equity, qty, avg))
	if err != nil {
		return Holding{}, err
	}

	class := AssetClass(rec.text("type"))
	if class == "" {
		class = Stock
	}

	return Holding{
		Symbol:        symbol,
		Name:          rec.text("name"),
		Class:         class,
		Quantity:      Quantity{value: qty},
		Price:         USD(price),
		AverageCost:   USD(avg),
		Equity:        USD(equity),
		EquityChange:  USD(change),
		PercentChange: Percent{value: pct},
	}, nil
}

// cryptoHolding prices one crypto position with its quote.
func cryptoHolding(pos CryptoPosition, qty decimal.Decimal, quote CryptoQuote) (Holding, error) {
	price, err := decimal.NewFromString(quote.MarkPrice)
	if err != nil {
		return Holding{}, fmt.Errorf("invalid mark_price %q", quote.MarkPrice)
	}
	avg, err := pos.averageCost()
	if err != nil {
		return Holding{}, err
	}
	equity := price.Mul(qty)
	return Holding{
		Symbol:        pos.Currency.Code,
		Name:          pos.Currency.Name,
		Class:         Crypto,
		Quantity:      Quantity{value: qty},
		Price:         USD(price),
		AverageCost:   USD(avg),
		Equity:        USD(equity),
		EquityChange:  USD(equity.Sub(qty.Mul(avg))),
		PercentChange: Percent{value: changePercent(equity, qty, avg)},
	}, nil
}

// changePercent derives the gain percentage against cost, or zero when the
// average cost is unknown (percent change is undefined then).
func changePercent(equity, qty, avg decimal.Decimal) decimal.Decimal {
	if !avg.IsPositive() || !qty.IsPositive() {
		return decimal.Decimal{}
	}
	cost := qty.Mul(avg)
	return equity.Sub(cost).DivRound(cost, divisionPlaces).Mul(decimal.NewFromInt(100))
}

// warn records the condition in the snapshot's warning list and in the log.
func warn(warnings []Warning, w Warning) []Warning {
	log.Printf("warning: %s", w)
	return append(warnings, w)
}
