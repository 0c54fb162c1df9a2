/*
# Module: jobs/summary_job.go
Scheduled summary job: fetch a trailing window, aggregate, notify.

## Linked Modules
- [storage/repository](../storage/repository.go) - Location persistence
- [summary/aggregator](../summary/aggregator.go) - Aggregation routine
- [notify/email](../notify/email.go) - Summary delivery

## Tags
jobs, summary, scheduled

## Exports
Run, SpecFor

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "jobs/summary_job.go" ;
    code:description "Scheduled summary job: fetch a trailing window, aggregate, notify" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "../storage/repository.go" ;
        code:relationship "Location persistence"
    ], [
        code:name "summary/aggregator" ;
        code:path "../summary/aggregator.go" ;
        code:relationship "Aggregation routine"
    ], [
        code:name "notify/email" ;
        code:path "../notify/email.go" ;
        code:relationship "Summary delivery"
    ] ;
    code:exports :Run, :SpecFor ;
    code:tags "jobs", "summary", "scheduled" .
<!-- End LinkedDoc RDF -->
*/
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"location-ingest/notify"
	"location-ingest/storage"
	"location-ingest/summary"
)

// Run executes one summary job invocation: fetch the trailing window,
// aggregate in memory, deliver. The external scheduler owns the
// cadence; each invocation is a single non-overlapping unit of work.
// Store and notifier failures surface as the job's own error, they
// are not converted to a soft response.
func Run(ctx context.Context, store storage.LocationRepository, notifier notify.Notifier, spec summary.JobSpec, deviceID string) error {
	end := time.Now()
	start := end.Add(-spec.Window)

	records, err := store.GetLocationRange(ctx, deviceID, start, end)
	if err != nil {
		return fmt.Errorf("summary job %s: %w", spec.Name, err)
	}

	result := summary.Aggregate(deviceID, start, end, records, spec)

	if err := notifier.SendSummary(ctx, result); err != nil {
		return fmt.Errorf("summary job %s: %w", spec.Name, err)
	}

	log.Printf("✅ Summary job %s completed: device_id=%s locations=%d", spec.Name, deviceID, result.TotalLocations)
	return nil
}

// SpecFor maps a job name from the scheduler to its parameters.
func SpecFor(name string) (summary.JobSpec, error) {
	switch name {
	case "daily":
		return summary.DailyDigest, nil
	case "places":
		return summary.PlaceDigest, nil
	default:
		return summary.JobSpec{}, fmt.Errorf("unknown summary job: %q", name)
	}
}
