/*
# Module: validation/validator.go
Field-level validation for inbound location payloads.

## Linked Modules
(None - operates on untyped payload maps)

## Tags
validation, location, api

## Exports
Validate, ParseTimestamp

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "validation/validator.go" ;
    code:description "Field-level validation for inbound location payloads" ;
    code:exports :Validate, :ParseTimestamp ;
    code:tags "validation", "location", "api" .
<!-- End LinkedDoc RDF -->
*/
package validation

import (
	"encoding/json"
	"fmt"
	"time"
)

// requiredFields are checked for presence, in reported order.
var requiredFields = []string{"timestamp", "latitude", "longitude", "accuracy", "altitude", "speed"}

// timestampLayouts are the accepted ISO-8601 shapes, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Validate checks a raw location payload and returns every violation
// as a human-readable message. An empty slice means the payload is
// valid. All checks run; nothing short-circuits, so a payload with a
// bad latitude and a bad longitude reports both.
func Validate(payload map[string]any) []string {
	errs := []string{}

	for _, field := range requiredFields {
		value, present := payload[field]
		if !present {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
			continue
		}
		// timestamp must be truthy, not merely present
		if field == "timestamp" && !isTruthy(value) {
			errs = append(errs, "Missing required field: timestamp")
		}
	}

	if value, present := payload["latitude"]; present {
		if lat, ok := toFloat(value); !ok || lat < -90 || lat > 90 {
			errs = append(errs, "Invalid latitude: must be a number between -90 and 90")
		}
	}

	if value, present := payload["longitude"]; present {
		if lng, ok := toFloat(value); !ok || lng < -180 || lng > 180 {
			errs = append(errs, "Invalid longitude: must be a number between -180 and 180")
		}
	}

	// The format check runs whenever the field is present, even if the
	// presence check above already flagged a falsy value.
	if value, present := payload["timestamp"]; present {
		str, ok := value.(string)
		if !ok {
			errs = append(errs, "Invalid timestamp format")
		} else if _, err := ParseTimestamp(str); err != nil {
			errs = append(errs, "Invalid timestamp format")
		}
	}

	if value, present := payload["accuracy"]; present {
		if acc, ok := toFloat(value); !ok || acc < 0 {
			errs = append(errs, "Invalid accuracy: must be a non-negative number")
		}
	}

	if value, present := payload["altitude"]; present {
		if alt, ok := toFloat(value); !ok || alt < -500 || alt > 10000 {
			errs = append(errs, "Invalid altitude: must be a number between -500 and 10000")
		}
	}

	if value, present := payload["speed"]; present {
		if spd, ok := toFloat(value); !ok || spd < -1 {
			errs = append(errs, "Invalid speed: must be -1 or greater")
		}
	}

	return errs
}

// ParseTimestamp parses an ISO-8601 timestamp in any accepted layout.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", value)
}

// toFloat coerces the numeric shapes a decoded JSON payload can carry.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// isTruthy mirrors the loose presence test the API has always applied
// to timestamps: empty strings, zeros, false and null all count as
// missing.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}
