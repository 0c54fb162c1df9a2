package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyFieldResolverFallbackOrder(t *testing.T) {
	r := httptest.NewRequest("POST", "/locations", nil)
	resolver := BodyFieldResolver{}

	assert.Equal(t, "dev-1", resolver.ResolveDeviceID(r, map[string]any{"deviceId": "dev-1", "userId": "user-1"}))
	assert.Equal(t, "user-1", resolver.ResolveDeviceID(r, map[string]any{"userId": "user-1"}))
	assert.Equal(t, UnknownDevice, resolver.ResolveDeviceID(r, map[string]any{}))
	assert.Equal(t, UnknownDevice, resolver.ResolveDeviceID(r, map[string]any{"deviceId": ""}))
	assert.Equal(t, UnknownDevice, resolver.ResolveDeviceID(r, map[string]any{"deviceId": 42}))
}

func TestHeaderResolver(t *testing.T) {
	resolver := HeaderResolver{}

	r := httptest.NewRequest("POST", "/locations", nil)
	r.Header.Set("X-Device-ID", "dev-9")
	assert.Equal(t, "dev-9", resolver.ResolveDeviceID(r, nil))

	r = httptest.NewRequest("POST", "/locations", nil)
	assert.Equal(t, UnknownDevice, resolver.ResolveDeviceID(r, nil))
}

func TestAPIKeyMapResolver(t *testing.T) {
	resolver := APIKeyMapResolver{Devices: map[string]string{"key-1": "dev-1"}}

	r := httptest.NewRequest("POST", "/locations", nil)
	r.Header.Set("X-API-Key", "key-1")
	assert.Equal(t, "dev-1", resolver.ResolveDeviceID(r, nil))

	r.Header.Set("X-API-Key", "key-unknown")
	assert.Equal(t, UnknownDevice, resolver.ResolveDeviceID(r, nil))
}

func TestForName(t *testing.T) {
	assert.IsType(t, BodyFieldResolver{}, ForName("body", nil))
	assert.IsType(t, BodyFieldResolver{}, ForName("", nil))
	assert.IsType(t, BodyFieldResolver{}, ForName("something-else", nil))
	assert.IsType(t, HeaderResolver{}, ForName("header", nil))
	assert.IsType(t, APIKeyMapResolver{}, ForName("apikey", map[string]string{"k": "d"}))
}
