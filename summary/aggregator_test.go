package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-ingest/types"
)

func geocoded(timestamp, city, state, country string) types.LocationRecord {
	return types.LocationRecord{
		DeviceID:  "device-1",
		Timestamp: timestamp,
		Latitude:  37.7749,
		Longitude: -122.4194,
		City:      city,
		State:     state,
		Country:   country,
	}
}

func window() (time.Time, time.Time) {
	end := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	return end.Add(-30 * 24 * time.Hour), end
}

func TestEmptyWindow(t *testing.T) {
	start, end := window()

	for _, spec := range []JobSpec{DailyDigest, PlaceDigest} {
		result := Aggregate("device-1", start, end, nil, spec)

		assert.Equal(t, 0, result.TotalLocations, spec.Name)
		assert.Empty(t, result.Days, spec.Name)
		assert.Empty(t, result.Places, spec.Name)
		assert.Nil(t, result.Primary, spec.Name)
	}
}

func TestPlaceGroupingRanksByCount(t *testing.T) {
	start, end := window()
	records := []types.LocationRecord{
		geocoded("2025-10-26T10:00:00Z", "San Francisco", "California", "USA"),
		geocoded("2025-10-26T11:00:00Z", "San Francisco", "California", "USA"),
		geocoded("2025-10-26T12:00:00Z", "San Francisco", "California", "USA"),
		geocoded("2025-10-26T13:00:00Z", "Portland", "Oregon", "USA"),
	}

	result := Aggregate("device-1", start, end, records, PlaceDigest)

	require.Len(t, result.Places, 2)
	assert.Equal(t, "California", result.Places[0].State)
	assert.Equal(t, 3, result.Places[0].Count)
	assert.Equal(t, "Oregon", result.Places[1].State)

	require.NotNil(t, result.Primary)
	assert.Equal(t, "California", result.Primary.State)

	first, _ := time.Parse(time.RFC3339, "2025-10-26T10:00:00Z")
	last, _ := time.Parse(time.RFC3339, "2025-10-26T12:00:00Z")
	assert.True(t, result.Places[0].FirstSeen.Equal(first))
	assert.True(t, result.Places[0].LastSeen.Equal(last))
}

func TestPlaceGroupingUnknownDefaults(t *testing.T) {
	start, end := window()
	records := []types.LocationRecord{
		geocoded("2025-10-26T10:00:00Z", "Lagos", "", ""), // city-only, admitted by the place predicate
	}

	result := Aggregate("device-1", start, end, records, PlaceDigest)

	require.Len(t, result.Places, 1)
	assert.Equal(t, "Unknown", result.Places[0].State)
	assert.Equal(t, "Unknown", result.Places[0].Country)
}

func TestInclusionPredicatesDiffer(t *testing.T) {
	cityOnly := geocoded("2025-10-26T10:00:00Z", "Lagos", "", "")
	stateOnly := geocoded("2025-10-26T10:00:00Z", "", "California", "")
	bare := geocoded("2025-10-26T10:00:00Z", "", "", "")

	assert.True(t, IncludeCountryOrCity(cityOnly))
	assert.False(t, IncludeCountryOrState(cityOnly))

	assert.False(t, IncludeCountryOrCity(stateOnly))
	assert.True(t, IncludeCountryOrState(stateOnly))

	assert.False(t, IncludeCountryOrCity(bare))
	assert.False(t, IncludeCountryOrState(bare))
}

func TestDayGroupingUsesFixedZone(t *testing.T) {
	start, end := window()
	records := []types.LocationRecord{
		// 06:00 UTC is 22:00 the previous day in UTC-8
		geocoded("2025-10-26T06:00:00Z", "", "California", "USA"),
		// 10:00 UTC is 02:00 the same day in UTC-8
		geocoded("2025-10-26T10:00:00Z", "", "California", "USA"),
	}

	result := Aggregate("device-1", start, end, records, DailyDigest)

	require.Len(t, result.Days, 2)
	assert.Equal(t, "2025-10-25", result.Days[0].Date)
	assert.Equal(t, "2025-10-26", result.Days[1].Date)
}

func TestDayGroupingPlaceLabels(t *testing.T) {
	start, end := window()
	records := []types.LocationRecord{
		geocoded("2025-10-26T10:00:00Z", "", "California", "USA"),
		geocoded("2025-10-26T11:00:00Z", "", "California", "USA"), // duplicate label
		geocoded("2025-10-26T12:00:00Z", "", "", "Canada"),        // country-only label
		geocoded("2025-10-26T13:00:00Z", "Lagos", "", ""),         // city-only: excluded by the daily predicate
	}

	result := Aggregate("device-1", start, end, records, DailyDigest)

	require.Len(t, result.Days, 1)
	day := result.Days[0]
	assert.Equal(t, 3, day.Count)
	assert.Equal(t, []string{"California, USA", "Canada"}, day.Places)
}

func TestTotalCountsAllFetchedRecords(t *testing.T) {
	start, end := window()
	records := []types.LocationRecord{
		geocoded("2025-10-26T10:00:00Z", "", "California", "USA"),
		geocoded("2025-10-26T11:00:00Z", "", "", ""), // not geocoded, still fetched
	}

	result := Aggregate("device-1", start, end, records, DailyDigest)

	assert.Equal(t, 2, result.TotalLocations)
	require.Len(t, result.Days, 1)
	assert.Equal(t, 1, result.Days[0].Count)
}
