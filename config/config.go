/*
# Module: config/config.go
Environment-variable configuration for the service and scheduled jobs.

## Linked Modules
- [config/aws](./aws.go) - Shared AWS client configuration

## Tags
config, environment

## Exports
Config, Load

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "config/config.go" ;
    code:description "Environment-variable configuration for the service and scheduled jobs" ;
    code:linksTo [
        code:name "config/aws" ;
        code:path "./aws.go" ;
        code:relationship "Shared AWS client configuration"
    ] ;
    code:exports :Config, :Load ;
    code:tags "config", "environment" .
<!-- End LinkedDoc RDF -->
*/
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup.
type Config struct {
	Port             string
	StoreBackend     string // dynamodb | memory
	TableName        string
	APIKey           string
	QueryEnabled     bool
	DeviceResolver   string            // body | header | apikey
	APIKeyDevices    map[string]string // api key -> device id, for the apikey resolver
	JobDeviceID      string            // device summarized by scheduled jobs
	SummarySender    string
	SummaryRecipient string
	RateLimitPerHour int // <= 0 disables rate limiting
	Version          string
}

// Load reads configuration from the environment. A .env file is
// picked up when present so local runs match deployed ones.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("📄 Loaded configuration from .env")
	}

	return Config{
		Port:             envOr("PORT", "8080"),
		StoreBackend:     envOr("STORE_BACKEND", "dynamodb"),
		TableName:        envOr("TABLE_NAME", "locations"),
		APIKey:           os.Getenv("API_KEY"),
		QueryEnabled:     envBool("QUERY_ENABLED", false),
		DeviceResolver:   envOr("DEVICE_RESOLVER", "body"),
		APIKeyDevices:    parseDeviceMap(os.Getenv("API_KEY_DEVICES")),
		JobDeviceID:      envOr("DEVICE_ID", "unknown-device"),
		SummarySender:    os.Getenv("SUMMARY_SENDER"),
		SummaryRecipient: os.Getenv("SUMMARY_RECIPIENT"),
		RateLimitPerHour: envInt("RATE_LIMIT_PER_HOUR", 0),
		Version:          envOr("SERVICE_VERSION", "1.0.0"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("⚠️  Invalid boolean for %s: %q", key, value)
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer for %s: %q", key, value)
		return fallback
	}
	return parsed
}

// parseDeviceMap parses "key1=device1,key2=device2" pairs.
func parseDeviceMap(raw string) map[string]string {
	devices := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, device, found := strings.Cut(pair, "=")
		if !found || key == "" || device == "" {
			log.Printf("⚠️  Skipping malformed API_KEY_DEVICES entry: %q", pair)
			continue
		}
		devices[key] = device
	}
	return devices
}
