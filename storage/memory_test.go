package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-ingest/types"
)

func record(deviceID, timestamp, locationID string) types.LocationRecord {
	return types.LocationRecord{
		DeviceID:   deviceID,
		Timestamp:  timestamp,
		LocationID: locationID,
		Latitude:   37.7749,
		Longitude:  -122.4194,
		Accuracy:   10,
		Altitude:   15,
		Speed:      0,
		ReceivedAt: "2025-10-26T15:00:05Z",
	}
}

func TestSaveLocationIsIdempotent(t *testing.T) {
	repo := NewMemoryLocationRepository()
	ctx := context.Background()

	first, err := repo.SaveLocation(ctx, record("device-1", "2025-10-26T15:00:00Z", "loc-a"))
	require.NoError(t, err)
	assert.Equal(t, "loc-a", first)

	// Same key with a fresh candidate identifier: the original wins
	second, err := repo.SaveLocation(ctx, record("device-1", "2025-10-26T15:00:00Z", "loc-b"))
	require.NoError(t, err)
	assert.Equal(t, "loc-a", second)
	assert.Equal(t, 1, repo.Count())
}

func TestDistinctTimestampsCreateDistinctRecords(t *testing.T) {
	repo := NewMemoryLocationRepository()
	ctx := context.Background()

	first, err := repo.SaveLocation(ctx, record("device-1", "2025-10-26T15:00:00Z", "loc-a"))
	require.NoError(t, err)
	second, err := repo.SaveLocation(ctx, record("device-1", "2025-10-26T16:00:00Z", "loc-b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, repo.Count())
}

func TestGetLocationRangeDescendingOrder(t *testing.T) {
	repo := NewMemoryLocationRepository()
	ctx := context.Background()
	now := time.Date(2025, 10, 26, 15, 0, 0, 0, time.UTC)

	timestamps := []string{
		now.AddDate(0, 0, -2).Format(time.RFC3339), // T-2d
		now.AddDate(0, 0, -1).Format(time.RFC3339), // T-1d
		now.Format(time.RFC3339),                   // T
	}
	for i, ts := range timestamps {
		_, err := repo.SaveLocation(ctx, record("device-1", ts, "loc-"+string(rune('a'+i))))
		require.NoError(t, err)
	}

	records, err := repo.GetLocationRange(ctx, "device-1", now.AddDate(0, 0, -3), now)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, timestamps[2], records[0].Timestamp)
	assert.Equal(t, timestamps[1], records[1].Timestamp)
	assert.Equal(t, timestamps[0], records[2].Timestamp)
}

func TestGetLocationRangeBounds(t *testing.T) {
	repo := NewMemoryLocationRepository()
	ctx := context.Background()

	_, err := repo.SaveLocation(ctx, record("device-1", "2025-10-20T12:00:00Z", "loc-old"))
	require.NoError(t, err)
	_, err = repo.SaveLocation(ctx, record("device-1", "2025-10-26T12:00:00Z", "loc-new"))
	require.NoError(t, err)
	_, err = repo.SaveLocation(ctx, record("device-2", "2025-10-26T12:00:00Z", "loc-other"))
	require.NoError(t, err)

	start := time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)

	records, err := repo.GetLocationRange(ctx, "device-1", start, end)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "loc-new", records[0].LocationID)
}

func TestGetLocationRangeInclusiveBounds(t *testing.T) {
	repo := NewMemoryLocationRepository()
	ctx := context.Background()

	_, err := repo.SaveLocation(ctx, record("device-1", "2025-10-26T15:00:00Z", "loc-a"))
	require.NoError(t, err)

	exact := time.Date(2025, 10, 26, 15, 0, 0, 0, time.UTC)
	records, err := repo.GetLocationRange(ctx, "device-1", exact, exact)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGetByLocationID(t *testing.T) {
	repo := NewMemoryLocationRepository()
	ctx := context.Background()

	_, err := repo.SaveLocation(ctx, record("device-1", "2025-10-26T15:00:00Z", "loc-a"))
	require.NoError(t, err)

	found, err := repo.GetByLocationID(ctx, "loc-a")
	require.NoError(t, err)
	assert.Equal(t, "device-1", found.DeviceID)

	_, err = repo.GetByLocationID(ctx, "loc-missing")
	assert.Error(t, err)
}
