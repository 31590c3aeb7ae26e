package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fomezero/internal/models"
)

func viewRows() []Record {
	rows := []Record{
		rec(1, "Trattoria", "Italy", "Rome", "Italian", 4.6, 300),
		rec(2, "Osteria", "Italy", "Milan", "Italian, Pizza", 4.6, 900),
		rec(3, "Bar Uno", "Italy", "Rome", "Drinks Only", 1.2, 4),
		rec(4, "Sushi Go", "Japan", "Tokyo", "Japanese", 4.2, 50),
		rec(5, "Ramen Ya", "Japan", "Tokyo", "Japanese", 2.0, 10),
		rec(6, "Burger Joint", "Japan", "Osaka", "American", 3.0, 20),
	}
	for i := range rows {
		rows[i].Latitude = float64(i)
		rows[i].Longitude = float64(-i)
		rows[i].CostForTwo = 10 * float64(i+1)
		rows[i].Currency = "Lira"
	}
	rows[3].Currency, rows[4].Currency, rows[5].Currency = "Yen", "Yen", "Yen"
	return rows
}

func TestBestRestaurant(t *testing.T) {
	rows := viewRows()

	best := BestRestaurant(rows, "Italian")
	assert.True(t, best.Found())
	assert.Equal(t, models.BestRestaurant{Cuisine: "Italian", Restaurant: "Osteria", Rating: "4.6", Matched: true}, best)

	missing := BestRestaurant(rows, "NoSuchCuisine")
	assert.False(t, missing.Found())
	assert.Equal(t, models.NotAvailable, missing.Restaurant)
	assert.Equal(t, models.NotAvailable, missing.Rating)

	assert.False(t, BestRestaurant(nil, "Italian").Found())
}

func TestBestRestaurantNamedLikeSentinel(t *testing.T) {
	rows := []Record{rec(1, models.NotAvailable, "Italy", "Rome", "Italian", 4.1, 3)}

	best := BestRestaurant(rows, "Italian")
	assert.True(t, best.Found())
	assert.Equal(t, models.NotAvailable, best.Restaurant)
	assert.Equal(t, "4.1", best.Rating)
}

func TestBuildOverview(t *testing.T) {
	o := BuildOverview(viewRows())
	assert.Equal(t, 6, o.Restaurants)
	assert.Equal(t, 2, o.Countries)
	assert.Equal(t, 4, o.Cities)
	assert.Equal(t, int64(1284), o.TotalVotes)
	assert.Equal(t, 4, o.Cuisines)
	assert.Equal(t, 2.5, o.MapCenter.Latitude)
	assert.Equal(t, -2.5, o.MapCenter.Longitude)

	empty := BuildOverview(nil)
	assert.Zero(t, empty.Restaurants)
	assert.Zero(t, empty.TotalVotes)
}

func TestMapPoints(t *testing.T) {
	rows := viewRows()
	rows[0].RatingColor = "3F7E00"
	rows[0].ColorLabel = "darkgreen"

	points := MapPoints(rows)
	require.Len(t, points, 6)
	assert.Equal(t, "#3F7E00", points[0].ColorHex)
	assert.Equal(t, "darkgreen", points[0].Color)
	assert.Equal(t, "Trattoria", points[0].Restaurant)
	assert.Empty(t, MapPoints(nil))
}

func TestBuildCountriesView(t *testing.T) {
	v := BuildCountriesView(viewRows())

	assert.Equal(t, []models.CountryStat{{Country: "Italy", Value: 3}, {Country: "Japan", Value: 3}}, v.Restaurants)
	assert.Equal(t, []models.CountryStat{{Country: "Italy", Value: 2}, {Country: "Japan", Value: 2}}, v.Cities)

	require.Len(t, v.MeanVotes, 2)
	assert.Equal(t, "Italy", v.MeanVotes[0].Country)
	assert.InDelta(t, 1204.0/3, v.MeanVotes[0].Value, 1e-9)

	assert.Equal(t, []models.CountryCost{
		{Country: "Italy", Currency: "Lira", CostForTwo: 20},
		{Country: "Japan", Currency: "Yen", CostForTwo: 50},
	}, v.CostForTwo)
}

func TestBuildCitiesView(t *testing.T) {
	v := BuildCitiesView(viewRows())

	require.Len(t, v.MostRestaurants, 4)
	assert.Equal(t, models.CityStat{City: "Rome", Country: "Italy", Value: 2}, v.MostRestaurants[0])
	assert.Equal(t, models.CityStat{City: "Tokyo", Country: "Japan", Value: 2}, v.MostRestaurants[1])
	assert.Equal(t, "Milan", v.MostRestaurants[2].City)

	assert.Equal(t, []models.CityStat{
		{City: "Milan", Country: "Italy", Value: 1},
		{City: "Rome", Country: "Italy", Value: 1},
		{City: "Tokyo", Country: "Japan", Value: 1},
	}, v.HighlyRated)
	assert.Equal(t, []models.CityStat{
		{City: "Rome", Country: "Italy", Value: 1},
		{City: "Tokyo", Country: "Japan", Value: 1},
	}, v.PoorlyRated)

	assert.Equal(t, models.CityStat{City: "Rome", Country: "Italy", Value: 2}, v.MostCuisineTypes[0])
}

func TestBuildCuisinesView(t *testing.T) {
	v := BuildCuisinesView(viewRows(), FeaturedCuisines)

	require.Len(t, v.Featured, len(FeaturedCuisines))
	assert.Equal(t, "Osteria", v.Featured[0].Restaurant)
	assert.Equal(t, "Burger Joint", v.Featured[1].Restaurant)
	assert.Equal(t, "Sushi Go", v.Featured[2].Restaurant)
	assert.False(t, v.Featured[3].Found())
	assert.False(t, v.Featured[4].Found())

	require.Len(t, v.TopRestaurants, 6)
	assert.Equal(t, "Osteria", v.TopRestaurants[0].Name)
	assert.Equal(t, "Trattoria", v.TopRestaurants[1].Name)

	assert.Equal(t, []models.CuisineStat{
		{Cuisine: "Italian", Rating: 4.6},
		{Cuisine: "Japanese", Rating: 3.1},
		{Cuisine: "American", Rating: 3},
		{Cuisine: "Drinks Only", Rating: 1.2},
	}, v.BestCuisines)

	require.Len(t, v.WorstCuisines, 3)
	assert.Equal(t, "American", v.WorstCuisines[0].Cuisine)
	for _, c := range v.WorstCuisines {
		assert.NotEqual(t, "Drinks Only", c.Cuisine)
	}
}

func TestTopRestaurantsLimit(t *testing.T) {
	assert.Len(t, TopRestaurants(viewRows(), 2), 2)
	assert.Empty(t, TopRestaurants(viewRows(), 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, round2(12.345678))
	assert.Equal(t, 7.0, round2(7))
	assert.Equal(t, -1.5, round2(-1.499))
}
