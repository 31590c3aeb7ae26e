package engine

import (
	"database/sql"
	"strconv"
)

// RawRecord is one row of the restaurant dataset as read from disk.
// Every field is comparable so whole-row duplicates can be detected with ==.
type RawRecord struct {
	RestaurantID    int64
	RestaurantName  string
	CountryCode     int
	City            string
	Address         string
	Locality        string
	LocalityVerbose string
	Longitude       float64
	Latitude        float64
	Cuisines        sql.NullString
	CostForTwo      float64
	Currency        string
	TableBooking    string
	OnlineDelivery  string
	DeliveringNow   string
	SwitchToOrder   string
	PriceRange      int
	Rating          float64
	RatingColor     string
	RatingText      string
	Votes           int64
}

// Record is a RawRecord plus the columns derived by the Enricher.
type Record struct {
	RawRecord

	CountryName    string
	PriceTier      string
	ColorLabel     string
	PrimaryCuisine string
}

// Field names a column of a Record.
type Field string

const (
	FieldRestaurantID   Field = "restaurant_id"
	FieldRestaurantName Field = "restaurant_name"
	FieldCountryCode    Field = "country_code"
	FieldCity           Field = "city"
	FieldLocality       Field = "locality"
	FieldLongitude      Field = "longitude"
	FieldLatitude       Field = "latitude"
	FieldCuisines       Field = "cuisines"
	FieldCostForTwo     Field = "average_cost_for_two"
	FieldCurrency       Field = "currency"
	FieldPriceRange     Field = "price_range"
	FieldRating         Field = "aggregate_rating"
	FieldRatingColor    Field = "rating_color"
	FieldRatingText     Field = "rating_text"
	FieldVotes          Field = "votes"

	FieldCountryName    Field = "country_name"
	FieldPriceTier      Field = "price_tier"
	FieldColorLabel     Field = "color_label"
	FieldPrimaryCuisine Field = "primary_cuisine"
)

// Number returns the numeric value of f. ok is false for text columns.
func (r *Record) Number(f Field) (v float64, ok bool) {
	switch f {
	case FieldRestaurantID:
		return float64(r.RestaurantID), true
	case FieldCountryCode:
		return float64(r.CountryCode), true
	case FieldLongitude:
		return r.Longitude, true
	case FieldLatitude:
		return r.Latitude, true
	case FieldCostForTwo:
		return r.CostForTwo, true
	case FieldPriceRange:
		return float64(r.PriceRange), true
	case FieldRating:
		return r.Rating, true
	case FieldVotes:
		return float64(r.Votes), true
	}
	return 0, false
}

// Text returns f rendered as a string. Numbers use the shortest
// representation so they can serve as group keys.
func (r *Record) Text(f Field) string {
	switch f {
	case FieldRestaurantName:
		return r.RestaurantName
	case FieldCity:
		return r.City
	case FieldLocality:
		return r.Locality
	case FieldCuisines:
		return r.Cuisines.String
	case FieldCurrency:
		return r.Currency
	case FieldRatingColor:
		return r.RatingColor
	case FieldRatingText:
		return r.RatingText
	case FieldCountryName:
		return r.CountryName
	case FieldPriceTier:
		return r.PriceTier
	case FieldColorLabel:
		return r.ColorLabel
	case FieldPrimaryCuisine:
		return r.PrimaryCuisine
	case FieldRestaurantID:
		return strconv.FormatInt(r.RestaurantID, 10)
	case FieldCountryCode:
		return strconv.Itoa(r.CountryCode)
	case FieldPriceRange:
		return strconv.Itoa(r.PriceRange)
	case FieldVotes:
		return strconv.FormatInt(r.Votes, 10)
	}
	if v, ok := r.Number(f); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
