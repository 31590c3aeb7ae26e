package engine

import (
	"database/sql"
	"fmt"
	"strings"
)

const testHeader = "Restaurant ID,Restaurant Name,Country Code,City,Address,Locality,Locality Verbose," +
	"Longitude,Latitude,Cuisines,Average Cost for two,Currency,Has Table booking,Has Online delivery," +
	"Is delivering now,Switch to order menu,Price range,Aggregate rating,Rating color,Rating text,Votes"

// csvRow renders a dataset line with sensible defaults for the columns
// tests rarely care about.
func csvRow(id int, name string, country int, city, cuisines string, rating float64, color string, votes int) string {
	return fmt.Sprintf(`%d,%s,%d,%s,"1 Main St, %s",Centre,"Centre, %s",10.5,-20.25,%s,100,Dollar($),No,No,No,No,2,%g,%s,Good,%d`,
		id, name, country, city, city, city, cuisines, rating, color, votes)
}

func csvDoc(rows ...string) string {
	return testHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func raw(id int64, name string, country int, city, cuisines string) RawRecord {
	return RawRecord{
		RestaurantID:   id,
		RestaurantName: name,
		CountryCode:    country,
		City:           city,
		Cuisines:       sql.NullString{String: cuisines, Valid: true},
		PriceRange:     2,
		Rating:         4,
		RatingColor:    "5BA829",
		Votes:          1,
	}
}

// rec builds an enriched record directly, bypassing the pipeline.
func rec(id int64, name, country, city, cuisine string, rating float64, votes int64) Record {
	r := raw(id, name, 0, city, cuisine)
	r.Rating = rating
	r.Votes = votes
	return Record{
		RawRecord:      r,
		CountryName:    country,
		PriceTier:      TierNormal,
		ColorLabel:     "green",
		PrimaryCuisine: PrimaryCuisine(cuisine),
	}
}

func groupMap(groups []Group) map[string]float64 {
	m := make(map[string]float64, len(groups))
	for _, g := range groups {
		m[strings.Join(g.Keys, "/")] = g.Value
	}
	return m
}

func groupKeys(groups []Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, strings.Join(g.Keys, "/"))
	}
	return out
}

func names(rows []Record) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.RestaurantName)
	}
	return out
}
