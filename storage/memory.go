/*
# Module: storage/memory.go
In-memory implementation of the location repository.

## Linked Modules
- [storage/repository](./repository.go) - Repository interface
- [types/location](../types/location.go) - Location record structures

## Tags
storage, memory, persistence, repository

## Exports
MemoryLocationRepository, NewMemoryLocationRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/memory.go" ;
    code:description "In-memory implementation of the location repository" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "./repository.go" ;
        code:relationship "Repository interface"
    ], [
        code:name "types/location" ;
        code:path "../types/location.go" ;
        code:relationship "Location record structures"
    ] ;
    code:exports :MemoryLocationRepository, :NewMemoryLocationRepository ;
    code:tags "storage", "memory", "persistence", "repository" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"location-ingest/types"
)

// MemoryLocationRepository implements LocationRepository with an
// in-process map. It carries the same idempotency and ordering
// semantics as the DynamoDB repository and backs tests and local runs
// without AWS credentials.
type MemoryLocationRepository struct {
	mutex   sync.RWMutex
	records map[string]map[string]types.LocationRecord // deviceID -> timestamp -> record
}

// NewMemoryLocationRepository creates an empty in-memory repository
func NewMemoryLocationRepository() *MemoryLocationRepository {
	return &MemoryLocationRepository{
		records: make(map[string]map[string]types.LocationRecord),
	}
}

// SaveLocation inserts the record unless its (deviceId, timestamp) key
// already exists; duplicates succeed with the original identifier.
func (r *MemoryLocationRepository) SaveLocation(_ context.Context, record types.LocationRecord) (string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	byTimestamp, ok := r.records[record.DeviceID]
	if !ok {
		byTimestamp = make(map[string]types.LocationRecord)
		r.records[record.DeviceID] = byTimestamp
	}

	if existing, ok := byTimestamp[record.Timestamp]; ok {
		return existing.LocationID, nil
	}

	byTimestamp[record.Timestamp] = record
	return record.LocationID, nil
}

// GetLocationRange returns one device's records inside the inclusive
// [start, end] window, most recent first.
func (r *MemoryLocationRepository) GetLocationRange(_ context.Context, deviceID string, start, end time.Time) ([]types.LocationRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	startKey := timestampBound(start)
	endKey := timestampBound(end)

	records := make([]types.LocationRecord, 0)
	for timestamp, record := range r.records[deviceID] {
		if timestamp >= startKey && timestamp <= endKey {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})

	return records, nil
}

// GetByLocationID scans for a record by its server-generated identifier.
func (r *MemoryLocationRepository) GetByLocationID(_ context.Context, locationID string) (*types.LocationRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, byTimestamp := range r.records {
		for _, record := range byTimestamp {
			if record.LocationID == locationID {
				found := record
				return &found, nil
			}
		}
	}
	return nil, fmt.Errorf("location not found: %s", locationID)
}

// Count reports the number of stored records across all devices.
func (r *MemoryLocationRepository) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	total := 0
	for _, byTimestamp := range r.records {
		total += len(byTimestamp)
	}
	return total
}
