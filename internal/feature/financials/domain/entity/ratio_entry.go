package entity

// SymbolInfo is the denormalized symbol record attached to each ratio entry.
type SymbolInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"` // HOSE, HNX or UPCOM
}

// RatioEntry holds the precomputed financial ratios of one reporting period
// (liquidity, leverage, efficiency, profitability and valuation).
type RatioEntry struct {
	Year    int
	Quarter int
	Ratios  map[string]float64
	Symbol  SymbolInfo
}

// Ratio returns a single ratio and whether the entry carries it.
func (e RatioEntry) Ratio(name string) (float64, bool) {
	v, ok := e.Ratios[name]
	return v, ok
}
