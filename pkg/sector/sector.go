package sector

// indexBySector maps the provider's equity sector names to the SPDR sector ETF
// that tracks them.
var indexBySector = map[string]string{
	"Technology":             "XLK",
	"Financial Services":     "XLF",
	"Consumer Cyclical":      "XLY",
	"Energy":                 "XLE",
	"Healthcare":             "XLV",
	"Industrials":            "XLI",
	"Utilities":              "XLU",
	"Consumer Defensive":     "XLP",
	"Real Estate":            "XLRE",
	"Materials":              "XLB",
	"Communication Services": "XLC",
}

// Resolve returns the sector index ticker for sector, or nil when the sector is
// absent or not one of the known names. Matching is exact.
func Resolve(sector *string) *string {
	if sector == nil {
		return nil
	}
	symbol, ok := indexBySector[*sector]
	if !ok {
		return nil
	}
	return &symbol
}

func Sectors() []string {
	sectors := make([]string, 0, len(indexBySector))
	for s := range indexBySector {
		sectors = append(sectors, s)
	}
	return sectors
}
