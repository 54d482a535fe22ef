package holdings

import (
	"iter"
	"time"
)

// PortfolioSnapshot is the full set of holdings captured at one point in
// time. It is immutable once built: a newer snapshot supersedes it, nothing
// ever mutates it in place.
type PortfolioSnapshot struct {
	on       time.Time
	holdings []Holding
	index    map[string]int
	total    Money
	warnings []Warning
}

func newSnapshot(on time.Time, rows []Holding, total Money, warnings []Warning) *PortfolioSnapshot {
	index := make(map[string]int, len(rows))
	for i, h := range rows {
		index[h.Symbol] = i
	}
	return &PortfolioSnapshot{on: on, holdings: rows, index: index, total: total, warnings: warnings}
}

// emptySnapshot is the explicit "no usable portfolio" result. It is a valid,
// checkable snapshot (Empty reports true) and is never cached.
func emptySnapshot(on time.Time, warnings []Warning) *PortfolioSnapshot {
	return newSnapshot(on, nil, USD(0), warnings)
}

// On returns the capture timestamp of the snapshot.
func (s *PortfolioSnapshot) On() time.Time { return s.on }

// Len returns the number of holdings.
func (s *PortfolioSnapshot) Len() int { return len(s.holdings) }

// Empty reports whether the snapshot holds no usable portfolio: no record
// survived ingestion, or total equity was zero and weights were undefined.
// The aggregator strips the holdings in both cases.
func (s *PortfolioSnapshot) Empty() bool { return len(s.holdings) == 0 }

// TotalEquity returns the snapshot total, always at two decimal places: it
// is an aggregate dollar figure whatever the per-asset precision.
func (s *PortfolioSnapshot) TotalEquity() Money { return s.total }

// Holdings iterates over the holdings in snapshot order: equities sorted by
// symbol first, then crypto in feed order.
func (s *PortfolioSnapshot) Holdings() iter.Seq[Holding] {
	return func(yield func(Holding) bool) {
		for _, h := range s.holdings {
			if !yield(h) {
				return
			}
		}
	}
}

// Get returns the holding for a symbol.
func (s *PortfolioSnapshot) Get(symbol string) (Holding, bool) {
	i, ok := s.index[symbol]
	if !ok {
		return Holding{}, false
	}
	return s.holdings[i], true
}

// Warnings returns the recoverable conditions met while building the
// snapshot (dropped records, symbol collisions, failed lookups).
func (s *PortfolioSnapshot) Warnings() []Warning {
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}
