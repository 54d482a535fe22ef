package holdings

// AssetClass categorizes a holding and selects its precision regime.
// The set is open: an unknown class coming from the feed is kept as-is and
// gets the non-crypto precision.
type AssetClass string

const (
	Stock  AssetClass = "stock"
	ADR    AssetClass = "adr"
	ETP    AssetClass = "etp"
	Crypto AssetClass = "crypto"
)

// Places returns the number of decimal places the numeric fields of this
// class are rounded to. Crypto keeps 20 places: fractional-unit positions
// would otherwise round down to nothing.
func (c AssetClass) Places() int32 {
	if c == Crypto {
		return 20
	}
	return 2
}

// Holding is one normalized position row of a snapshot.
type Holding struct {
	Symbol      string
	Name        string
	Class       AssetClass
	Quantity    Quantity
	Price       Money // current mark price
	AverageCost Money // zero when the feed has no cost basis

	// Derived fields, see the aggregator.
	Equity        Money   // Quantity x Price
	EquityChange  Money   // Equity - Quantity x AverageCost
	PercentChange Percent // zero when AverageCost is unknown
	Weight        Percent // share of the snapshot's total equity
}

// rounded returns a copy with every numeric field rounded to the holding's
// precision regime.
func (h Holding) rounded() Holding {
	places := h.Class.Places()
	h.Quantity = h.Quantity.Round(places)
	h.Price = h.Price.Round(places)
	h.AverageCost = h.AverageCost.Round(places)
	h.Equity = h.Equity.Round(places)
	h.EquityChange = h.EquityChange.Round(places)
	h.PercentChange = h.PercentChange.Round(places)
	return h
}
