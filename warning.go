package holdings

import "fmt"

// WarningKind classifies a recoverable condition met while building a
// snapshot. None of them fail the aggregation; they ride along with the
// snapshot so the caller can inspect what was dropped or overwritten.
type WarningKind string

const (
	// WarnSourceUnavailable records a failed upstream call: a whole feed, or
	// a single quote lookup (then Symbol is set).
	WarnSourceUnavailable WarningKind = "source-unavailable"
	// WarnRecordMalformed records one position dropped because a field could
	// not be coerced to a number or violated an invariant.
	WarnRecordMalformed WarningKind = "record-malformed"
	// WarnSymbolCollision records a symbol present in both feeds. It points
	// at a classification bug upstream and must not be silently swallowed.
	WarnSymbolCollision WarningKind = "symbol-collision"
)

// Warning is one recoverable condition attached to a snapshot.
type Warning struct {
	Kind   WarningKind
	Symbol string // empty for feed-level conditions
	Reason string
}

func (w Warning) String() string {
	if w.Symbol == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Symbol, w.Reason)
}
