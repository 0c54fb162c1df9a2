/*
# Module: types/summary.go
Aggregated location summary structures consumed by the notifier.

## Linked Modules
- [types/location](./location.go) - Location record structures

## Tags
data-types, summary

## Exports
Summary, DaySummary, PlaceSummary

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/summary.go" ;
    code:description "Aggregated location summary structures consumed by the notifier" ;
    code:linksTo [
        code:name "types/location" ;
        code:path "./location.go" ;
        code:relationship "Location record structures"
    ] ;
    code:exports :Summary, :DaySummary, :PlaceSummary ;
    code:tags "data-types", "summary" .
<!-- End LinkedDoc RDF -->
*/
package types

import "time"

// DaySummary groups the observations of one calendar day.
type DaySummary struct {
	Date   string   `json:"date"`   // YYYY-MM-DD in the summary time zone
	Count  int      `json:"count"`
	Places []string `json:"places"` // sorted, de-duplicated "{state}, {country}" labels
}

// PlaceSummary groups observations by state/country pair.
type PlaceSummary struct {
	State     string    `json:"state"`
	Country   string    `json:"country"`
	Count     int       `json:"count"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Summary is the aggregation result for one trailing window. Exactly
// one of Days or Places is populated, depending on the grouping
// strategy that produced it. Primary points at the top-ranked place
// group when the place strategy was used.
type Summary struct {
	DeviceID       string         `json:"deviceId"`
	WindowStart    time.Time      `json:"windowStart"`
	WindowEnd      time.Time      `json:"windowEnd"`
	TotalLocations int            `json:"totalLocations"`
	Days           []DaySummary   `json:"days,omitempty"`
	Places         []PlaceSummary `json:"places,omitempty"`
	Primary        *PlaceSummary  `json:"primaryLocation,omitempty"`
}
