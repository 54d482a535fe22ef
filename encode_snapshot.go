package holdings

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// This file persists a cache entry as a single human-readable JSON object.
// Decimal fields are written as quoted decimal strings so the crypto
// precision regime survives the round-trip exactly.
//
// The persisted structs are dedicated to the file format; the in-memory
// model never leaks json tags.

type jentry struct {
	CachedAt time.Time  `json:"cached_at"`
	TakenAt  time.Time  `json:"taken_at"`
	Total    jmoney     `json:"total_equity"`
	Holdings []jholding `json:"holdings"`
	Warnings []jwarning `json:"warnings,omitempty"`
}

type jholding struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name,omitempty"`
	Class         string          `json:"asset_class"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	Equity        decimal.Decimal `json:"equity"`
	EquityChange  decimal.Decimal `json:"equity_change"`
	PercentChange decimal.Decimal `json:"percent_change"`
	Weight        decimal.Decimal `json:"portfolio_weight_pct"`
}

type jwarning struct {
	Kind   string `json:"kind"`
	Symbol string `json:"symbol,omitempty"`
	Reason string `json:"reason"`
}

func encodeSnapshotEntry(cachedAt time.Time, s *PortfolioSnapshot) ([]byte, error) {
	entry := jentry{
		CachedAt: cachedAt,
		TakenAt:  s.on,
		Total:    jmoney{Currency: s.total.cur, Amount: s.total.value},
		Holdings: make([]jholding, 0, len(s.holdings)),
	}
	for _, h := range s.holdings {
		entry.Holdings = append(entry.Holdings, jholding{
			Symbol:        h.Symbol,
			Name:          h.Name,
			Class:         string(h.Class),
			Quantity:      h.Quantity.value,
			Price:         h.Price.value,
			AverageCost:   h.AverageCost.value,
			Equity:        h.Equity.value,
			EquityChange:  h.EquityChange.value,
			PercentChange: h.PercentChange.value,
			Weight:        h.Weight.value,
		})
	}
	for _, w := range s.warnings {
		entry.Warnings = append(entry.Warnings, jwarning{Kind: string(w.Kind), Symbol: w.Symbol, Reason: w.Reason})
	}
	return json.MarshalIndent(entry, "", "  ")
}

func decodeSnapshotEntry(content []byte) (cachedAt time.Time, s *PortfolioSnapshot, err error) {
	var entry jentry
	if err := json.Unmarshal(content, &entry); err != nil {
		return time.Time{}, nil, err
	}
	if entry.CachedAt.IsZero() {
		return time.Time{}, nil, fmt.Errorf("cache entry has no timestamp")
	}
	rows := make([]Holding, 0, len(entry.Holdings))
	for _, jh := range entry.Holdings {
		if jh.Symbol == "" {
			return time.Time{}, nil, fmt.Errorf("cache entry has a holding without symbol")
		}
		rows = append(rows, Holding{
			Symbol:        jh.Symbol,
			Name:          jh.Name,
			Class:         AssetClass(jh.Class),
			Quantity:      Quantity{value: jh.Quantity},
			Price:         Money{value: jh.Price, cur: entry.Total.Currency},
			AverageCost:   Money{value: jh.AverageCost, cur: entry.Total.Currency},
			Equity:        Money{value: jh.Equity, cur: entry.Total.Currency},
			EquityChange:  Money{value: jh.EquityChange, cur: entry.Total.Currency},
			PercentChange: Percent{value: jh.PercentChange},
			Weight:        Percent{value: jh.Weight},
		})
	}
	var warnings []Warning
	for _, jw := range entry.Warnings {
		warnings = append(warnings, Warning{Kind: WarningKind(jw.Kind), Symbol: jw.Symbol, Reason: jw.Reason})
	}
	total := Money{value: entry.Total.Amount, cur: entry.Total.Currency}
	return entry.CachedAt, newSnapshot(entry.TakenAt, rows, total, warnings), nil
}
