package engine

import (
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	csvContent := []byte(testHeader + `
6317637,Le Petit Souffle,162,Makati City,"Third Floor, Century City Mall",Century City Mall,"Century City Mall, Poblacion, Makati City",121.027535,14.565443,"French, Japanese, Desserts",1100,Botswana Pula(P),Yes,No,No,No,3,4.8,3F7E00,Excellent,314
18,  Spaced Name ,30,Rio de Janeiro,Rua A,Leblon,"Leblon, Rio de Janeiro",-43.2,-22.9,,50,Brazilian Real(R$),No,No,No,No,2,3.5,9ACD32,Good,10
19,Pizza Place,216,Atlanta,1 Peach St,Midtown,"Midtown, Atlanta",-84.38,33.74, Pizza ,25,Dollar($),No,Yes,No,No,1,4.1,5BA829,Very Good,77
`)

	tmpFile, err := os.CreateTemp("", "test_data_*.csv")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.Write(csvContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	rows, err := LoadFile(tmpFile.Name())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, int64(6317637), first.RestaurantID)
	assert.Equal(t, 162, first.CountryCode)
	assert.Equal(t, "Third Floor, Century City Mall", first.Address)
	assert.Equal(t, "French, Japanese, Desserts", first.Cuisines.String)
	assert.True(t, first.Cuisines.Valid)
	assert.Equal(t, 1100.0, first.CostForTwo)
	assert.Equal(t, 3, first.PriceRange)
	assert.Equal(t, 4.8, first.Rating)
	assert.Equal(t, "3F7E00", first.RatingColor)
	assert.Equal(t, int64(314), first.Votes)

	// Loader keeps cells as written; trimming is the Normalizer's job.
	assert.Equal(t, "  Spaced Name ", rows[1].RestaurantName)
	assert.False(t, rows[1].Cuisines.Valid)
	assert.Equal(t, -43.2, rows[1].Longitude)
	assert.Equal(t, " Pizza ", rows[2].Cuisines.String)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does-not-exist.csv")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestReadRecordsNullMarkers(t *testing.T) {
	doc := csvDoc(
		csvRow(1, "A", 1, "Delhi", "NA", 4, "5BA829", 1),
		csvRow(2, "B", 1, "Delhi", "nan", 4, "5BA829", 1),
		csvRow(3, "C", 1, "Delhi", "   ", 4, "5BA829", 1),
	)
	rows, err := ReadRecords(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.False(t, rows[0].Cuisines.Valid)
	assert.False(t, rows[1].Cuisines.Valid)
	// Blank but not empty is a value.
	assert.True(t, rows[2].Cuisines.Valid)
}

func TestReadRecordsMissingColumn(t *testing.T) {
	header := strings.Replace(testHeader, ",Votes", "", 1)
	_, err := ReadRecords(strings.NewReader(header + "\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Votes")
}

func TestReadRecordsBadNumber(t *testing.T) {
	row := strings.Replace(csvRow(1, "A", 1, "Delhi", "Indian", 4, "5BA829", 7), ",Good,7", ",Good,seven", 1)
	_, err := ReadRecords(strings.NewReader(csvDoc(row)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Votes"`)
	assert.Contains(t, err.Error(), "record 1")
}

func TestReadRecordsEmpty(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""))
	require.Error(t, err)

	rows, err := ReadRecords(strings.NewReader(testHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRecordsHeaderBOM(t *testing.T) {
	doc := "\ufeff" + csvDoc(csvRow(1, "A", 1, "Delhi", "Indian", 4, "5BA829", 1))
	rows, err := ReadRecords(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].RestaurantID)
}

func TestReadRecordsKeepsOrder(t *testing.T) {
	lines := make([]string, 0, 2000)
	for i := 0; i < 2000; i++ {
		lines = append(lines, csvRow(i, "R", 1, "Delhi", "Indian", 3, "CDD614", i))
	}
	rows, err := ReadRecords(strings.NewReader(csvDoc(lines...)))
	require.NoError(t, err)
	require.Len(t, rows, 2000)
	for i, r := range rows {
		require.Equal(t, int64(i), r.RestaurantID)
	}
}

func TestReadRecordsBlankNumberRejected(t *testing.T) {
	row := strings.Replace(csvRow(1, "A", 1, "Delhi", "Indian", 4, "5BA829", 7), ",10.5,-20.25,", ",10.5,,", 1)
	_, err := ReadRecords(strings.NewReader(csvDoc(row)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Latitude"`)
}

func TestReadRecordsNaNNumberAccepted(t *testing.T) {
	row := strings.Replace(csvRow(1, "A", 1, "Delhi", "Indian", 4, "5BA829", 7), ",10.5,-20.25,", ",10.5,NaN,", 1)
	rows, err := ReadRecords(strings.NewReader(csvDoc(row)))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rows[0].Latitude))
}
