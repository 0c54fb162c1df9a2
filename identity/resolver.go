/*
# Module: identity/resolver.go
Device identity resolution strategies for inbound requests.

## Linked Modules
(None - operates on requests and payload maps)

## Tags
identity, device, strategy

## Exports
Resolver, BodyFieldResolver, HeaderResolver, APIKeyMapResolver, ForName, UnknownDevice

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "identity/resolver.go" ;
    code:description "Device identity resolution strategies for inbound requests" ;
    code:exports :Resolver, :BodyFieldResolver, :HeaderResolver, :APIKeyMapResolver, :ForName, :UnknownDevice ;
    code:tags "identity", "device", "strategy" .
<!-- End LinkedDoc RDF -->
*/
package identity

import (
	"log"
	"net/http"
)

// UnknownDevice is the sentinel identifier used when no strategy can
// name the originating device.
const UnknownDevice = "unknown-device"

// Resolver derives the device identifier for a request. Exactly one
// strategy is active per deployment; the alternatives exist as
// implementations of this interface, not as dormant branches.
type Resolver interface {
	ResolveDeviceID(r *http.Request, payload map[string]any) string
}

// BodyFieldResolver reads the identifier from the payload itself:
// deviceId first, then the legacy userId field, then the sentinel.
// This is the default strategy.
type BodyFieldResolver struct{}

func (BodyFieldResolver) ResolveDeviceID(_ *http.Request, payload map[string]any) string {
	if id, ok := payload["deviceId"].(string); ok && id != "" {
		return id
	}
	if id, ok := payload["userId"].(string); ok && id != "" {
		return id
	}
	return UnknownDevice
}

// HeaderResolver reads the identifier from the X-Device-ID header.
type HeaderResolver struct{}

func (HeaderResolver) ResolveDeviceID(r *http.Request, _ map[string]any) string {
	if id := r.Header.Get("X-Device-ID"); id != "" {
		return id
	}
	return UnknownDevice
}

// APIKeyMapResolver maps the caller's API key to a device identifier
// through a static table configured at deployment time.
type APIKeyMapResolver struct {
	Devices map[string]string // api key -> device id
}

func (m APIKeyMapResolver) ResolveDeviceID(r *http.Request, _ map[string]any) string {
	if id, ok := m.Devices[r.Header.Get("X-API-Key")]; ok && id != "" {
		return id
	}
	return UnknownDevice
}

// ForName selects the strategy named in configuration, defaulting to
// the body-field strategy for unrecognized names.
func ForName(name string, apiKeyDevices map[string]string) Resolver {
	switch name {
	case "header":
		return HeaderResolver{}
	case "apikey":
		return APIKeyMapResolver{Devices: apiKeyDevices}
	case "", "body":
		return BodyFieldResolver{}
	default:
		log.Printf("⚠️  Unknown device resolver %q, using body strategy", name)
		return BodyFieldResolver{}
	}
}
