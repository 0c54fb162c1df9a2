/*
# Module: handlers/health.go
Health check endpoint handler.

## Linked Modules
- [types/api](../types/api.go) - Response structures

## Tags
http, health, api

## Exports
Health, ServiceName

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/health.go" ;
    code:description "Health check endpoint handler" ;
    code:linksTo [
        code:name "types/api" ;
        code:path "../types/api.go" ;
        code:relationship "Response structures"
    ] ;
    code:exports :Health, :ServiceName ;
    code:tags "http", "health", "api" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"net/http"
	"time"

	"location-ingest/types"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "location-ingest"

// Health handles GET /health. Stateless: it reports healthy
// regardless of any downstream state.
func Health(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.HealthResponse{
			Status:    "healthy",
			Service:   ServiceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   version,
		})
	}
}
