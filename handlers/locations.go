/*
# Module: handlers/locations.go
Ingestion and query endpoint handlers for location records.

## Linked Modules
- [storage/repository](../storage/repository.go) - Location persistence
- [validation/validator](../validation/validator.go) - Payload validation
- [identity/resolver](../identity/resolver.go) - Device identity resolution
- [types/api](../types/api.go) - Response structures

## Tags
http, location, ingest, query, api

## Exports
LocationHandler, NewLocationHandler

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/locations.go" ;
    code:description "Ingestion and query endpoint handlers for location records" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "../storage/repository.go" ;
        code:relationship "Location persistence"
    ], [
        code:name "validation/validator" ;
        code:path "../validation/validator.go" ;
        code:relationship "Payload validation"
    ], [
        code:name "identity/resolver" ;
        code:path "../identity/resolver.go" ;
        code:relationship "Device identity resolution"
    ], [
        code:name "types/api" ;
        code:path "../types/api.go" ;
        code:relationship "Response structures"
    ] ;
    code:exports :LocationHandler, :NewLocationHandler ;
    code:tags "http", "location", "ingest", "query", "api" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"location-ingest/identity"
	"location-ingest/storage"
	"location-ingest/types"
	"location-ingest/validation"
)

// defaultQueryDays is the window applied when a query gives no bounds.
const defaultQueryDays = 30

// LocationHandler serves the /locations endpoints.
type LocationHandler struct {
	store        storage.LocationRepository
	resolver     identity.Resolver
	queryEnabled bool
	now          func() time.Time
}

// NewLocationHandler creates a location handler. queryEnabled gates
// the GET endpoint; while it is off every query answers 501 even
// though the query path underneath is fully implemented.
func NewLocationHandler(store storage.LocationRepository, resolver identity.Resolver, queryEnabled bool) *LocationHandler {
	return &LocationHandler{
		store:        store,
		resolver:     resolver,
		queryEnabled: queryEnabled,
		now:          time.Now,
	}
}

// HandleIngest handles POST /locations
func (h *LocationHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Message: "Malformed request body"})
		return
	}

	deviceID := h.resolver.ResolveDeviceID(r, payload)

	if errs := validation.Validate(payload); len(errs) > 0 {
		log.Printf("⚠️  Rejected location payload: device_id=%s errors=%d", deviceID, len(errs))
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Message: "Validation failed", Errors: errs})
		return
	}

	record := types.LocationRecord{
		DeviceID:    deviceID,
		Timestamp:   payload["timestamp"].(string),
		LocationID:  uuid.NewString(),
		Latitude:    numberField(payload, "latitude"),
		Longitude:   numberField(payload, "longitude"),
		Accuracy:    numberField(payload, "accuracy"),
		Altitude:    numberField(payload, "altitude"),
		Speed:       numberField(payload, "speed"),
		ReceivedAt:  h.now().UTC().Format(time.RFC3339),
		City:        stringField(payload, "city"),
		State:       stringField(payload, "state"),
		Country:     stringField(payload, "country"),
		CountryCode: stringField(payload, "countryCode"),
	}

	locationID, err := h.store.SaveLocation(r.Context(), record)
	if err != nil {
		log.Printf("❌ Failed to save location: device_id=%s error=%v", deviceID, err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Message: "Failed to save location"})
		return
	}

	writeJSON(w, http.StatusOK, types.IngestResponse{
		Success:    true,
		Message:    "Location recorded",
		LocationID: locationID,
	})
}

// HandleQuery handles GET /locations. The feature flag is evaluated
// before anything else; with the flag off the endpoint is a fixed 501.
func (h *LocationHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	if !h.queryEnabled {
		writeJSON(w, http.StatusNotImplemented, types.ErrorResponse{Message: "Location history queries are not yet implemented"})
		return
	}
	h.queryLocations(w, r)
}

// queryLocations is the real query path behind the feature flag.
func (h *LocationHandler) queryLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	deviceID := query.Get("deviceId")
	if deviceID == "" {
		deviceID = h.resolver.ResolveDeviceID(r, nil)
	}

	start, end, ok := h.resolveWindow(w, query.Get("days"), query.Get("startDate"), query.Get("endDate"))
	if !ok {
		return
	}

	records, err := h.store.GetLocationRange(r.Context(), deviceID, start, end)
	if err != nil {
		log.Printf("❌ Failed to query locations: device_id=%s error=%v", deviceID, err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Message: "Failed to query locations"})
		return
	}

	writeJSON(w, http.StatusOK, types.QueryResponse{
		Success:   true,
		Count:     len(records),
		Locations: records,
		Summary: types.QuerySummary{
			TotalLocations: len(records),
			DateRange: types.DateRange{
				Start: start.UTC().Format(time.RFC3339),
				End:   end.UTC().Format(time.RFC3339),
			},
		},
	})
}

// resolveWindow applies the window policy: days beats explicit bounds,
// explicit bounds beat the 30-day default. On a bad input it writes
// the 400 response itself and reports !ok.
func (h *LocationHandler) resolveWindow(w http.ResponseWriter, days, startDate, endDate string) (time.Time, time.Time, bool) {
	now := h.now()

	if days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Message: "Invalid days parameter"})
			return time.Time{}, time.Time{}, false
		}
		return now.AddDate(0, 0, -n), now, true
	}

	if startDate != "" && endDate != "" {
		start, err := validation.ParseTimestamp(startDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Message: "Invalid date format"})
			return time.Time{}, time.Time{}, false
		}
		end, err := validation.ParseTimestamp(endDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Message: "Invalid date format"})
			return time.Time{}, time.Time{}, false
		}
		return start, end, true
	}

	return now.AddDate(0, 0, -defaultQueryDays), now, true
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("⚠️  Failed to encode response: %v", err)
	}
}

// numberField reads a numeric payload field already vetted by
// validation.
func numberField(payload map[string]any, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

// stringField reads an optional string field, treating empty values as
// absent so they are never persisted.
func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
