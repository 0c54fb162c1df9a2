package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-ingest/storage"
	"location-ingest/summary"
	"location-ingest/types"
)

// captureNotifier records the summary it is asked to send.
type captureNotifier struct {
	sent []types.Summary
	err  error
}

func (n *captureNotifier) SendSummary(_ context.Context, s types.Summary) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, s)
	return nil
}

// failingStore simulates an unreachable store.
type failingStore struct{}

func (failingStore) SaveLocation(context.Context, types.LocationRecord) (string, error) {
	return "", fmt.Errorf("connection refused")
}

func (failingStore) GetLocationRange(context.Context, string, time.Time, time.Time) ([]types.LocationRecord, error) {
	return nil, fmt.Errorf("connection refused")
}

func (failingStore) GetByLocationID(context.Context, string) (*types.LocationRecord, error) {
	return nil, fmt.Errorf("connection refused")
}

func TestRunDeliversSummary(t *testing.T) {
	store := storage.NewMemoryLocationRepository()
	_, err := store.SaveLocation(context.Background(), types.LocationRecord{
		DeviceID:   "device-1",
		Timestamp:  time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
		LocationID: "loc-a",
		State:      "California",
		Country:    "USA",
		City:       "San Francisco",
	})
	require.NoError(t, err)

	notifier := &captureNotifier{}
	err = Run(context.Background(), store, notifier, summary.PlaceDigest, "device-1")
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	sent := notifier.sent[0]
	assert.Equal(t, "device-1", sent.DeviceID)
	assert.Equal(t, 1, sent.TotalLocations)
	require.NotNil(t, sent.Primary)
	assert.Equal(t, "California", sent.Primary.State)
}

func TestRunEmptyWindowStillDelivers(t *testing.T) {
	notifier := &captureNotifier{}

	err := Run(context.Background(), storage.NewMemoryLocationRepository(), notifier, summary.DailyDigest, "device-1")
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, 0, notifier.sent[0].TotalLocations)
	assert.Empty(t, notifier.sent[0].Days)
}

func TestRunSurfacesNotifierFailure(t *testing.T) {
	notifier := &captureNotifier{err: fmt.Errorf("smtp gateway down")}

	err := Run(context.Background(), storage.NewMemoryLocationRepository(), notifier, summary.DailyDigest, "device-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp gateway down")
}

func TestRunSurfacesStoreFailure(t *testing.T) {
	notifier := &captureNotifier{}

	err := Run(context.Background(), failingStore{}, notifier, summary.PlaceDigest, "device-1")

	require.Error(t, err)
	assert.Empty(t, notifier.sent)
}

func TestSpecFor(t *testing.T) {
	daily, err := SpecFor("daily")
	require.NoError(t, err)
	assert.Equal(t, summary.GroupByDay, daily.GroupBy)
	assert.Equal(t, 30*24*time.Hour, daily.Window)

	places, err := SpecFor("places")
	require.NoError(t, err)
	assert.Equal(t, summary.GroupByPlace, places.GroupBy)
	assert.Equal(t, 24*time.Hour, places.Window)

	_, err = SpecFor("hourly")
	assert.Error(t, err)
}
