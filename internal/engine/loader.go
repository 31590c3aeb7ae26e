package engine

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

// Dataset column headers.
const (
	colRestaurantID    = "Restaurant ID"
	colRestaurantName  = "Restaurant Name"
	colCountryCode     = "Country Code"
	colCity            = "City"
	colAddress         = "Address"
	colLocality        = "Locality"
	colLocalityVerbose = "Locality Verbose"
	colLongitude       = "Longitude"
	colLatitude        = "Latitude"
	colCuisines        = "Cuisines"
	colCostForTwo      = "Average Cost for two"
	colCurrency        = "Currency"
	colTableBooking    = "Has Table booking"
	colOnlineDelivery  = "Has Online delivery"
	colDeliveringNow   = "Is delivering now"
	colSwitchToOrder   = "Switch to order menu"
	colPriceRange      = "Price range"
	colRating          = "Aggregate rating"
	colRatingColor     = "Rating color"
	colRatingText      = "Rating text"
	colVotes           = "Votes"
)

var requiredColumns = []string{
	colRestaurantID, colRestaurantName, colCountryCode, colCity, colAddress,
	colLocality, colLocalityVerbose, colLongitude, colLatitude, colCuisines,
	colCostForTwo, colCurrency, colTableBooking, colOnlineDelivery,
	colDeliveringNow, colSwitchToOrder, colPriceRange, colRating,
	colRatingColor, colRatingText, colVotes,
}

// Cells the dataset tooling reads as missing values.
var nullMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// LoadFile reads the restaurant dataset at path.
func LoadFile(path string) ([]RawRecord, error) {
	start := time.Now()
	log.Infof("Loading dataset %s ...", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	log.Infof("Load complete. Rows: %d. Time: %v", len(rows), time.Since(start))
	return rows, nil
}

// ReadRecords parses a CSV stream with a header row into raw records.
// Output order follows input order.
func ReadRecords(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("engine: dataset has no header row")
	}
	if err != nil {
		return nil, err
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([]RawRecord, len(lines))
	if len(lines) == 0 {
		return out, nil
	}

	// Parse in contiguous chunks; each worker owns its slice of out.
	numWorkers := runtime.NumCPU()
	chunkSize := (len(lines) + numWorkers - 1) / numWorkers

	var g errgroup.Group
	for start := 0; start < len(lines); start += chunkSize {
		end := min(start+chunkSize, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				rec, err := idx.parse(lines[i])
				if err != nil {
					return fmt.Errorf("engine: record %d: %w", i+1, err)
				}
				out[i] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		idx[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("engine: missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// fieldReader keeps the first conversion error so a row can be parsed
// without checking after every column.
type fieldReader struct {
	idx columnIndex
	row []string
	err error
}

func (fr *fieldReader) text(col string) string {
	return fr.row[fr.idx[col]]
}

func (fr *fieldReader) integer(col string) int64 {
	if fr.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(fr.text(col)), 10, 64)
	if err != nil {
		fr.err = fmt.Errorf("column %q: %w", col, err)
	}
	return v
}

func (fr *fieldReader) decimal(col string) float64 {
	if fr.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fr.text(col)), 64)
	if err != nil {
		fr.err = fmt.Errorf("column %q: %w", col, err)
	}
	return v
}

func (fr *fieldReader) nullable(col string) sql.NullString {
	s := fr.text(col)
	if _, null := nullMarkers[s]; null {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (idx columnIndex) parse(row []string) (RawRecord, error) {
	fr := &fieldReader{idx: idx, row: row}
	rec := RawRecord{
		RestaurantID:    fr.integer(colRestaurantID),
		RestaurantName:  fr.text(colRestaurantName),
		CountryCode:     int(fr.integer(colCountryCode)),
		City:            fr.text(colCity),
		Address:         fr.text(colAddress),
		Locality:        fr.text(colLocality),
		LocalityVerbose: fr.text(colLocalityVerbose),
		Longitude:       fr.decimal(colLongitude),
		Latitude:        fr.decimal(colLatitude),
		Cuisines:        fr.nullable(colCuisines),
		CostForTwo:      fr.decimal(colCostForTwo),
		Currency:        fr.text(colCurrency),
		TableBooking:    fr.text(colTableBooking),
		OnlineDelivery:  fr.text(colOnlineDelivery),
		DeliveringNow:   fr.text(colDeliveringNow),
		SwitchToOrder:   fr.text(colSwitchToOrder),
		PriceRange:      int(fr.integer(colPriceRange)),
		Rating:          fr.decimal(colRating),
		RatingColor:     fr.text(colRatingColor),
		RatingText:      fr.text(colRatingText),
		Votes:           fr.integer(colVotes),
	}
	if fr.err != nil {
		return RawRecord{}, fr.err
	}
	return rec, nil
}
