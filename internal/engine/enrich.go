package engine

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Legacy country labels and their corrected spelling, applied in order.
var countryCorrections = []struct{ from, to string }{
	{"Singapure", "Singapore"},
	{"New Zeland", "New Zealand"},
}

// Enricher derives country name, price tier, color label and primary
// cuisine for every normalized row.
type Enricher struct {
	lookups Lookups
}

// NewEnricher returns an Enricher bound to the given mappings.
func NewEnricher(lookups Lookups) *Enricher {
	return &Enricher{lookups: lookups}
}

// Enrich returns a new table with the derived columns appended. Row order
// is preserved. A single unmapped code fails the whole batch with a
// *LookupError and no table.
func (e *Enricher) Enrich(rows []RawRecord) ([]Record, error) {
	out := make([]Record, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	numWorkers := runtime.NumCPU()
	chunkSize := (len(rows) + numWorkers - 1) / numWorkers

	var g errgroup.Group
	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				rec, err := e.enrichRow(rows[i])
				if err != nil {
					return err
				}
				out[i] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].CountryName = CorrectCountryName(out[i].CountryName)
	}
	return out, nil
}

func (e *Enricher) enrichRow(r RawRecord) (Record, error) {
	country, err := e.lookups.CountryName(r.CountryCode)
	if err != nil {
		return Record{}, err
	}
	color, err := e.lookups.ColorName(r.RatingColor)
	if err != nil {
		return Record{}, err
	}
	return Record{
		RawRecord:      r,
		CountryName:    country,
		PriceTier:      PriceTier(r.PriceRange),
		ColorLabel:     color,
		PrimaryCuisine: PrimaryCuisine(r.Cuisines.String),
	}, nil
}

// PrimaryCuisine returns the first comma separated entry of cuisines,
// untrimmed. A leading comma yields "".
func PrimaryCuisine(cuisines string) string {
	first, _, _ := strings.Cut(cuisines, ",")
	return first
}

// CorrectCountryName fixes the legacy misspellings in a resolved name.
func CorrectCountryName(name string) string {
	for _, c := range countryCorrections {
		name = strings.ReplaceAll(name, c.from, c.to)
	}
	return name
}
