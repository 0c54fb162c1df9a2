/*
# Module: summary/aggregator.go
Windowed aggregation of location records into notifier summaries.

## Linked Modules
- [types/summary](../types/summary.go) - Summary structures
- [types/location](../types/location.go) - Location record structures
- [validation/validator](../validation/validator.go) - Timestamp parsing

## Tags
summary, aggregation, location

## Exports
JobSpec, GroupStrategy, Aggregate, DailyDigest, PlaceDigest, IncludeCountryOrState, IncludeCountryOrCity

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "summary/aggregator.go" ;
    code:description "Windowed aggregation of location records into notifier summaries" ;
    code:linksTo [
        code:name "types/summary" ;
        code:path "../types/summary.go" ;
        code:relationship "Summary structures"
    ], [
        code:name "types/location" ;
        code:path "../types/location.go" ;
        code:relationship "Location record structures"
    ], [
        code:name "validation/validator" ;
        code:path "../validation/validator.go" ;
        code:relationship "Timestamp parsing"
    ] ;
    code:exports :JobSpec, :GroupStrategy, :Aggregate, :DailyDigest, :PlaceDigest, :IncludeCountryOrState, :IncludeCountryOrCity ;
    code:tags "summary", "aggregation", "location" .
<!-- End LinkedDoc RDF -->
*/
package summary

import (
	"fmt"
	"log"
	"sort"
	"time"

	"location-ingest/types"
	"location-ingest/validation"
)

// GroupStrategy selects how retained records are grouped.
type GroupStrategy string

const (
	// GroupByDay buckets records by calendar day in the summary zone.
	GroupByDay GroupStrategy = "day"
	// GroupByPlace buckets records by their state/country pair.
	GroupByPlace GroupStrategy = "place"
)

// IncludePredicate decides whether a record is geocoded well enough to
// take part in a summary.
type IncludePredicate func(types.LocationRecord) bool

// IncludeCountryOrState admits records carrying a country or a state.
// Historically used by the 30-day daily digest.
func IncludeCountryOrState(r types.LocationRecord) bool {
	return r.Country != "" || r.State != ""
}

// IncludeCountryOrCity admits records carrying a country or a city.
// Historically used by the 24-hour place digest. The two predicates
// likely diverged by accident rather than intent, so both are kept
// selectable instead of merged.
func IncludeCountryOrCity(r types.LocationRecord) bool {
	return r.Country != "" || r.City != ""
}

// JobSpec parameterizes one aggregation run. The two scheduled digests
// are the same routine with different parameters.
type JobSpec struct {
	Name    string
	Window  time.Duration
	GroupBy GroupStrategy
	Include IncludePredicate
}

// DailyDigest is the trailing-30-day variant, grouped by calendar day.
var DailyDigest = JobSpec{
	Name:    "daily",
	Window:  30 * 24 * time.Hour,
	GroupBy: GroupByDay,
	Include: IncludeCountryOrState,
}

// PlaceDigest is the trailing-24-hour variant, grouped by place.
var PlaceDigest = JobSpec{
	Name:    "places",
	Window:  24 * time.Hour,
	GroupBy: GroupByPlace,
	Include: IncludeCountryOrCity,
}

// summaryZone is the fixed civil time zone used for day bucketing.
var summaryZone = time.FixedZone("UTC-8", -8*60*60)

const unknownPlace = "Unknown"

// Aggregate computes a summary over the records fetched for one
// window. Pure in-memory computation; an empty window yields a
// summary with zero totals and no groups.
func Aggregate(deviceID string, windowStart, windowEnd time.Time, records []types.LocationRecord, spec JobSpec) types.Summary {
	result := types.Summary{
		DeviceID:       deviceID,
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
		TotalLocations: len(records),
	}

	retained := make([]types.LocationRecord, 0, len(records))
	for _, record := range records {
		if spec.Include == nil || spec.Include(record) {
			retained = append(retained, record)
		}
	}

	switch spec.GroupBy {
	case GroupByPlace:
		result.Places = groupByPlace(retained)
		if len(result.Places) > 0 {
			result.Primary = &result.Places[0]
		}
	default:
		result.Days = groupByDay(retained)
	}

	return result
}

// groupByDay buckets records by calendar day in the summary zone and
// collects each day's sorted, de-duplicated place labels.
func groupByDay(records []types.LocationRecord) []types.DaySummary {
	type dayBucket struct {
		count  int
		places map[string]bool
	}
	buckets := make(map[string]*dayBucket)

	for _, record := range records {
		observed, err := validation.ParseTimestamp(record.Timestamp)
		if err != nil {
			log.Printf("⚠️  Skipping record with unparseable timestamp: %s", record.Timestamp)
			continue
		}

		day := observed.In(summaryZone).Format("2006-01-02")
		bucket, ok := buckets[day]
		if !ok {
			bucket = &dayBucket{places: make(map[string]bool)}
			buckets[day] = bucket
		}
		bucket.count++
		bucket.places[placeLabel(record)] = true
	}

	days := make([]types.DaySummary, 0, len(buckets))
	for day, bucket := range buckets {
		places := make([]string, 0, len(bucket.places))
		for place := range bucket.places {
			places = append(places, place)
		}
		sort.Strings(places)

		days = append(days, types.DaySummary{
			Date:   day,
			Count:  bucket.count,
			Places: places,
		})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// groupByPlace buckets records by state/country pair with first/last
// seen bounds, ranked by descending visit count.
func groupByPlace(records []types.LocationRecord) []types.PlaceSummary {
	type placeKey struct {
		state   string
		country string
	}
	buckets := make(map[placeKey]*types.PlaceSummary)

	for _, record := range records {
		observed, err := validation.ParseTimestamp(record.Timestamp)
		if err != nil {
			log.Printf("⚠️  Skipping record with unparseable timestamp: %s", record.Timestamp)
			continue
		}

		key := placeKey{state: record.State, country: record.Country}
		if key.state == "" {
			key.state = unknownPlace
		}
		if key.country == "" {
			key.country = unknownPlace
		}

		bucket, ok := buckets[key]
		if !ok {
			bucket = &types.PlaceSummary{
				State:     key.state,
				Country:   key.country,
				FirstSeen: observed,
				LastSeen:  observed,
			}
			buckets[key] = bucket
		}
		bucket.Count++
		if observed.Before(bucket.FirstSeen) {
			bucket.FirstSeen = observed
		}
		if observed.After(bucket.LastSeen) {
			bucket.LastSeen = observed
		}
	}

	places := make([]types.PlaceSummary, 0, len(buckets))
	for _, bucket := range buckets {
		places = append(places, *bucket)
	}

	sort.Slice(places, func(i, j int) bool {
		if places[i].Count != places[j].Count {
			return places[i].Count > places[j].Count
		}
		return placeOrder(places[i]) < placeOrder(places[j])
	})
	return places
}

// placeLabel renders the human-readable label used in daily digests.
func placeLabel(record types.LocationRecord) string {
	if record.State != "" {
		return fmt.Sprintf("%s, %s", record.State, record.Country)
	}
	return record.Country
}

// placeOrder gives ties a stable ordering.
func placeOrder(p types.PlaceSummary) string {
	return p.State + "|" + p.Country
}

// Zone returns the fixed civil time zone summaries are reported in.
func Zone() *time.Location {
	return summaryZone
}
