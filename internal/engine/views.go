package engine

import (
	"math"
	"sort"
	"strconv"

	"fomezero/internal/models"
)

// FeaturedCuisines are the cuisines highlighted on the cuisines view.
var FeaturedCuisines = []string{"Italian", "American", "Japanese", "Indian", "Chinese"}

// Cuisine labels left out of the worst-cuisines ranking.
var worstCuisineExclusions = []string{"Drinks Only"}

const (
	topCities           = 10
	topRatedCities      = 7
	topRestaurants      = 10
	topCuisines         = 10
	highRatingThreshold = 4
	lowRatingThreshold  = 2.5
)

// BuildOverview computes the headline figures for a selection.
func BuildOverview(rows []Record) models.Overview {
	lat, _ := Average(rows, FieldLatitude)
	lon, _ := Average(rows, FieldLongitude)
	return models.Overview{
		Restaurants: Distinct(rows, FieldRestaurantName),
		Countries:   Distinct(rows, FieldCountryName),
		Cities:      Distinct(rows, FieldCity),
		TotalVotes:  int64(Sum(rows, FieldVotes)),
		Cuisines:    Distinct(rows, FieldPrimaryCuisine),
		MapCenter:   models.LatLon{Latitude: lat, Longitude: lon},
	}
}

// MapPoints returns one marker per row, in table order.
func MapPoints(rows []Record) []models.MapPoint {
	points := make([]models.MapPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.MapPoint{
			Restaurant: r.RestaurantName,
			Country:    r.CountryName,
			City:       r.City,
			Rating:     r.Rating,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			ColorHex:   "#" + r.RatingColor,
			Color:      r.ColorLabel,
		})
	}
	return points
}

// BuildCountriesView computes the per-country rankings.
func BuildCountriesView(rows []Record) models.CountriesView {
	byCountry := []Field{FieldCountryName}

	costs := Mean(rows, byCountry, FieldCostForTwo, Descending)
	sort.Slice(costs, func(i, j int) bool { return costs[i].Key(0) < costs[j].Key(0) })

	currency := make(map[string]string)
	for _, r := range rows {
		if _, ok := currency[r.CountryName]; !ok {
			currency[r.CountryName] = r.Currency
		}
	}

	view := models.CountriesView{
		Restaurants: countryStats(CountDistinct(rows, byCountry, FieldRestaurantID)),
		Cities:      countryStats(CountDistinct(rows, byCountry, FieldCity)),
		MeanVotes:   countryStats(Mean(rows, byCountry, FieldVotes, Descending)),
		CostForTwo:  make([]models.CountryCost, 0, len(costs)),
	}
	for _, g := range costs {
		view.CostForTwo = append(view.CostForTwo, models.CountryCost{
			Country:    g.Key(0),
			Currency:   currency[g.Key(0)],
			CostForTwo: round2(g.Value),
		})
	}
	return view
}

// BuildCitiesView computes the per-city rankings.
func BuildCitiesView(rows []Record) models.CitiesView {
	byCity := []Field{FieldCity, FieldCountryName}
	return models.CitiesView{
		MostRestaurants: cityStats(Head(CountRows(rows, byCity), topCities)),
		HighlyRated: cityStats(Head(ThresholdCount(rows, byCity, FieldRestaurantName, FieldRating,
			Above(highRatingThreshold)), topRatedCities)),
		PoorlyRated: cityStats(Head(ThresholdCount(rows, byCity, FieldRestaurantName, FieldRating,
			Below(lowRatingThreshold)), topRatedCities)),
		MostCuisineTypes: cityStats(Head(CountDistinct(rows, byCity, FieldPrimaryCuisine), topCities)),
	}
}

// BestRestaurant finds the highest rated restaurant of a cuisine, most
// votes first on equal rating. A cuisine with no rows yields the N/A
// sentinel.
func BestRestaurant(rows []Record, cuisine string) models.BestRestaurant {
	best, ok := BestInCategory(rows, FieldPrimaryCuisine, cuisine, FieldRating, FieldVotes)
	if !ok {
		return models.BestRestaurant{Cuisine: cuisine, Restaurant: models.NotAvailable, Rating: models.NotAvailable}
	}
	return models.BestRestaurant{
		Cuisine:    cuisine,
		Restaurant: best.RestaurantName,
		Rating:     strconv.FormatFloat(best.Rating, 'f', -1, 64),
		Matched:    true,
	}
}

// TopRestaurants ranks restaurants by rating, then votes.
func TopRestaurants(rows []Record, n int) []models.RestaurantRow {
	top := TopN(rows, n, Desc(FieldRating), Desc(FieldVotes))
	out := make([]models.RestaurantRow, 0, len(top))
	for _, r := range top {
		out = append(out, models.RestaurantRow{
			RestaurantID: r.RestaurantID,
			Name:         r.RestaurantName,
			Country:      r.CountryName,
			City:         r.City,
			Cuisine:      r.PrimaryCuisine,
			CostForTwo:   r.CostForTwo,
			PriceTier:    r.PriceTier,
			Rating:       r.Rating,
			Votes:        r.Votes,
		})
	}
	return out
}

// BuildCuisinesView computes the cuisine rankings and the best restaurant
// of each featured cuisine.
func BuildCuisinesView(rows []Record, featured []string) models.CuisinesView {
	byCuisine := []Field{FieldPrimaryCuisine}

	view := models.CuisinesView{
		Featured:       make([]models.BestRestaurant, 0, len(featured)),
		TopRestaurants: TopRestaurants(rows, topRestaurants),
		BestCuisines:   cuisineStats(Head(Mean(rows, byCuisine, FieldRating, Descending), topCuisines)),
		WorstCuisines: cuisineStats(Head(Mean(Exclude(rows, FieldPrimaryCuisine, worstCuisineExclusions...),
			byCuisine, FieldRating, Ascending), topCuisines)),
	}
	for _, c := range featured {
		view.Featured = append(view.Featured, BestRestaurant(rows, c))
	}
	return view
}

func countryStats(groups []Group) []models.CountryStat {
	out := make([]models.CountryStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CountryStat{Country: g.Key(0), Value: g.Value})
	}
	return out
}

func cityStats(groups []Group) []models.CityStat {
	out := make([]models.CityStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CityStat{City: g.Key(0), Country: g.Key(1), Value: g.Value})
	}
	return out
}

func cuisineStats(groups []Group) []models.CuisineStat {
	out := make([]models.CuisineStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CuisineStat{Cuisine: g.Key(0), Rating: g.Value})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
