/*
# Module: types/api.go
HTTP request and response data structures.

## Linked Modules
- [types/location](./location.go) - Location record structures

## Tags
data-types, api

## Exports
IngestResponse, ErrorResponse, QueryResponse, QuerySummary, DateRange, HealthResponse

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/api.go" ;
    code:description "HTTP request and response data structures" ;
    code:linksTo [
        code:name "types/location" ;
        code:path "./location.go" ;
        code:relationship "Location record structures"
    ] ;
    code:exports :IngestResponse, :ErrorResponse, :QueryResponse, :QuerySummary, :DateRange, :HealthResponse ;
    code:tags "data-types", "api" .
<!-- End LinkedDoc RDF -->
*/
package types

// IngestResponse is returned on a successful POST /locations.
type IngestResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	LocationID string `json:"locationId"`
}

// ErrorResponse is returned for all failure cases. Errors carries the
// full list of validation messages when applicable.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// DateRange is an inclusive ISO-8601 time window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// QuerySummary summarizes a query result set.
type QuerySummary struct {
	TotalLocations int       `json:"totalLocations"`
	DateRange      DateRange `json:"dateRange"`
}

// QueryResponse is returned by GET /locations when the endpoint is enabled.
type QueryResponse struct {
	Success   bool             `json:"success"`
	Count     int              `json:"count"`
	Locations []LocationRecord `json:"locations"`
	Summary   QuerySummary     `json:"summary"`
}

// HealthResponse is the fixed-shape liveness payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
