/*
# Module: storage/repository.go
Repository interface for location persistence.

## Linked Modules
- [types/location](../types/location.go) - Location record structures

## Tags
storage, repository, interface, persistence

## Exports
LocationRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/repository.go" ;
    code:description "Repository interface for location persistence" ;
    code:linksTo [
        code:name "types/location" ;
        code:path "../types/location.go" ;
        code:relationship "Location record structures"
    ] ;
    code:exports :LocationRepository ;
    code:tags "storage", "repository", "interface", "persistence" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"
	"time"

	"location-ingest/types"
)

// LocationRepository handles location persistence.
//
// SaveLocation is an idempotent insert keyed by (deviceId, timestamp):
// the first write for a key wins, and every retry with the same key
// succeeds returning the identifier of the record that was stored
// first. GetLocationRange returns records with timestamps inside the
// inclusive [start, end] window, most recent first; interpreting
// relative windows ("last N days") is the caller's job.
type LocationRepository interface {
	SaveLocation(ctx context.Context, record types.LocationRecord) (string, error)
	GetLocationRange(ctx context.Context, deviceID string, start, end time.Time) ([]types.LocationRecord, error)
	GetByLocationID(ctx context.Context, locationID string) (*types.LocationRecord, error)
}

// timestampBound formats a window bound the way sort keys are stored,
// so string comparison in the store matches time order.
func timestampBound(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
