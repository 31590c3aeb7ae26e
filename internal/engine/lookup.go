package engine

import (
	"fmt"
	"strconv"
)

// Price tiers derived from the dataset's price range code.
const (
	TierCheap     = "cheap"
	TierNormal    = "normal"
	TierExpensive = "expensive"
	TierGourmet   = "gourmet"
)

// Lookups holds the closed code -> label mappings used by the Enricher.
// Swap them out in tests; production code uses DefaultLookups.
type Lookups struct {
	Countries map[int]string
	Colors    map[string]string
}

// DefaultLookups returns the mappings shipped with the dataset. Names keep
// the dataset's legacy spellings; the Enricher corrects them.
func DefaultLookups() Lookups {
	return Lookups{
		Countries: map[int]string{
			1:   "India",
			14:  "Australia",
			30:  "Brazil",
			37:  "Canada",
			94:  "Indonesia",
			148: "New Zeland",
			162: "Philippines",
			166: "Qatar",
			184: "Singapure",
			189: "South Africa",
			191: "Sri Lanka",
			208: "Turkey",
			214: "United Arab Emirates",
			215: "England",
			216: "United States of America",
		},
		Colors: map[string]string{
			"3F7E00": "darkgreen",
			"5BA829": "green",
			"9ACD32": "lightgreen",
			"CDD614": "orange",
			"FFBA00": "red",
			"CBCBC8": "darkred",
			"FF7800": "darkred",
		},
	}
}

// LookupError reports a code missing from one of the closed mappings.
type LookupError struct {
	Kind string // "country" or "color"
	Code string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("engine: unknown %s code %q", e.Kind, e.Code)
}

// CountryName resolves a country code.
func (l Lookups) CountryName(code int) (string, error) {
	name, ok := l.Countries[code]
	if !ok {
		return "", &LookupError{Kind: "country", Code: strconv.Itoa(code)}
	}
	return name, nil
}

// ColorName resolves a rating color code.
func (l Lookups) ColorName(code string) (string, error) {
	name, ok := l.Colors[code]
	if !ok {
		return "", &LookupError{Kind: "color", Code: code}
	}
	return name, nil
}

// PriceTier maps a price range to its tier. Anything outside 1..3 is gourmet.
func PriceTier(priceRange int) string {
	switch priceRange {
	case 1:
		return TierCheap
	case 2:
		return TierNormal
	case 3:
		return TierExpensive
	default:
		return TierGourmet
	}
}
