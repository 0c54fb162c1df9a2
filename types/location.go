/*
# Module: types/location.go
Location record data structures for the ingestion pipeline.

## Linked Modules
(None - types package has no dependencies)

## Tags
data-types, location

## Exports
LocationRecord

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/location.go" ;
    code:description "Location record data structures for the ingestion pipeline" ;
    code:exports :LocationRecord ;
    code:tags "data-types", "location" .
<!-- End LinkedDoc RDF -->
*/
package types

// LocationRecord represents one stored GPS observation.
// The table is keyed by (userId, timestamp); userId is semantically
// the device identifier. Timestamps are ISO-8601 strings in UTC so
// the sort key orders lexicographically by time.
type LocationRecord struct {
	DeviceID    string  `json:"deviceId" dynamodbav:"userId"`
	Timestamp   string  `json:"timestamp" dynamodbav:"timestamp"`
	LocationID  string  `json:"locationId" dynamodbav:"locationId"`
	Latitude    float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude   float64 `json:"longitude" dynamodbav:"longitude"`
	Accuracy    float64 `json:"accuracy" dynamodbav:"accuracy"`
	Altitude    float64 `json:"altitude" dynamodbav:"altitude"`
	Speed       float64 `json:"speed" dynamodbav:"speed"`
	ReceivedAt  string  `json:"receivedAt" dynamodbav:"receivedAt"`
	City        string  `json:"city,omitempty" dynamodbav:"city,omitempty"`
	State       string  `json:"state,omitempty" dynamodbav:"state,omitempty"`
	Country     string  `json:"country,omitempty" dynamodbav:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty" dynamodbav:"countryCode,omitempty"`
}
