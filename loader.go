package holdings

import (
	"errors"
	"log"
	"time"
)

// Loader is the single entry point downstream code calls to obtain a
// portfolio snapshot. It serves the cached snapshot while it is fresh and
// aggregates a new one otherwise.
type Loader struct {
	Source PositionSource
	Cache  SnapshotCache // nil disables caching
	MaxAge time.Duration // zero means DefaultMaxAge
}

// Snapshot returns the current portfolio snapshot.
//
// On a cache hit the snapshot is returned unchanged and no upstream call is
// made: the feeds are rate-limited, so this is a contract, not an
// optimization. forceRefresh bypasses the cache entirely.
//
// Recoverable conditions (dropped records, failed feeds, zero total) never
// surface as an error; the worst case is a non-nil empty snapshot, which is
// returned but never written to the cache, so it cannot poison the slot for
// a whole freshness window.
func (l *Loader) Snapshot(forceRefresh bool) (*PortfolioSnapshot, error) {
	maxAge := l.MaxAge
	if maxAge == 0 {
		maxAge = DefaultMaxAge
	}
	if !forceRefresh && l.Cache != nil {
		if s, ok := l.Cache.Get(maxAge); ok {
			return s, nil
		}
	}

	s, err := Aggregator{Source: l.Source}.Snapshot()
	if err != nil {
		if errors.Is(err, ErrEmptyPortfolio) {
			return s, nil
		}
		return s, err
	}
	if l.Cache != nil {
		if err := l.Cache.Put(s); err != nil {
			// the fresh snapshot is still good, only persistence failed
			log.Printf("warning: cannot persist snapshot cache: %v", err)
		}
	}
	return s, nil
}
