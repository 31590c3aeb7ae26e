package models

import "time"

// NotAvailable fills a best-restaurant result when the cuisine has no rows.
const NotAvailable = "N/A"

type SessionInfo struct {
	ID        string    `json:"session_id"`
	LoadedAt  time.Time `json:"loaded_at"`
	Rows      int       `json:"rows"`
	Countries []string  `json:"countries"`
}

type Overview struct {
	Restaurants int    `json:"restaurants"`
	Countries   int    `json:"countries"`
	Cities      int    `json:"cities"`
	TotalVotes  int64  `json:"total_votes"`
	Cuisines    int    `json:"cuisines"`
	MapCenter   LatLon `json:"map_center"`
}

type LatLon struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MapPoint is one restaurant marker.
type MapPoint struct {
	Restaurant string  `json:"restaurant"`
	Country    string  `json:"country"`
	City       string  `json:"city"`
	Rating     float64 `json:"rating"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ColorHex   string  `json:"color_hex"`
	Color      string  `json:"color"`
}

type CountryStat struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

type CountryCost struct {
	Country    string  `json:"country"`
	Currency   string  `json:"currency"`
	CostForTwo float64 `json:"average_cost_for_two"`
}

type CountriesView struct {
	Restaurants []CountryStat `json:"restaurants_by_country"`
	Cities      []CountryStat `json:"cities_by_country"`
	MeanVotes   []CountryStat `json:"mean_votes_by_country"`
	CostForTwo  []CountryCost `json:"cost_for_two_by_country"`
}

type CityStat struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

type CitiesView struct {
	MostRestaurants  []CityStat `json:"most_restaurants"`
	HighlyRated      []CityStat `json:"rated_above_4"`
	PoorlyRated      []CityStat `json:"rated_below_2_5"`
	MostCuisineTypes []CityStat `json:"most_cuisine_types"`
}

// BestRestaurant is the top restaurant of a cuisine, or the N/A sentinel.
type BestRestaurant struct {
	Cuisine    string `json:"cuisine"`
	Restaurant string `json:"Restaurant"`
	Rating     string `json:"Rating"`

	Matched bool `json:"-"` // a row of the cuisine was found
}

func (b BestRestaurant) Found() bool {
	return b.Matched
}

type RestaurantRow struct {
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"restaurant_name"`
	Country      string  `json:"country"`
	City         string  `json:"city"`
	Cuisine      string  `json:"cuisine"`
	CostForTwo   float64 `json:"average_cost_for_two"`
	PriceTier    string  `json:"price_tier"`
	Rating       float64 `json:"rating"`
	Votes        int64   `json:"votes"`
}

type CuisineStat struct {
	Cuisine string  `json:"cuisine"`
	Rating  float64 `json:"rating"`
}

type CuisinesView struct {
	Featured       []BestRestaurant `json:"featured"`
	TopRestaurants []RestaurantRow  `json:"top_restaurants"`
	BestCuisines   []CuisineStat    `json:"best_cuisines"`
	WorstCuisines  []CuisineStat    `json:"worst_cuisines"`
}
