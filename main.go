package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"location-ingest/config"
	"location-ingest/handlers"
	"location-ingest/identity"
	"location-ingest/jobs"
	"location-ingest/notify"
	"location-ingest/storage"
)

func main() {
	jobName := flag.String("job", "", "run one summary job (daily|places) and exit instead of serving HTTP")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	store := buildStore(ctx, cfg)

	if *jobName != "" {
		runSummaryJob(ctx, cfg, store, *jobName)
		return
	}

	resolver := identity.ForName(cfg.DeviceResolver, cfg.APIKeyDevices)
	locationHandler := handlers.NewLocationHandler(store, resolver, cfg.QueryEnabled)

	var limiter *handlers.RateLimiter
	if cfg.RateLimitPerHour > 0 {
		limiter = handlers.NewRateLimiter(cfg.RateLimitPerHour)
		log.Printf("🚦 Rate limiting enabled: %d submissions/hour per client", cfg.RateLimitPerHour)
	}

	router := mux.NewRouter()
	router.Use(handlers.Recover)

	// Health stays outside the API key check
	router.HandleFunc("/health", handlers.Health(cfg.Version)).Methods("GET")

	api := router.PathPrefix("/locations").Subrouter()
	api.Use(handlers.APIKeyAuth(cfg.APIKey))
	api.Use(handlers.RateLimit(limiter))
	api.HandleFunc("", locationHandler.HandleIngest).Methods("POST")
	api.HandleFunc("", locationHandler.HandleQuery).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "X-API-Key", "X-Device-ID"},
	}).Handler(router)

	log.Printf("✅ Location ingestion service starting...")
	if cfg.APIKey == "" {
		log.Printf("⚠️  API_KEY not set - requests are not authenticated")
	}
	if !cfg.QueryEnabled {
		log.Printf("🚧 Query endpoint gated off - GET /locations answers 501")
	}
	log.Printf("🌍 Server running on http://:%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

// buildStore creates the configured repository. The in-memory backend
// exists for local runs without AWS credentials.
func buildStore(ctx context.Context, cfg config.Config) storage.LocationRepository {
	if cfg.StoreBackend == "memory" {
		log.Printf("💭 Using in-memory location store")
		return storage.NewMemoryLocationRepository()
	}

	awsCfg, err := config.AWSConfig(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to load AWS configuration: %v", err)
	}
	log.Printf("💾 Using DynamoDB location store: table=%s", cfg.TableName)
	return storage.NewDynamoDBLocationRepository(dynamodb.NewFromConfig(awsCfg), cfg.TableName)
}

// runSummaryJob executes one scheduled aggregation invocation.
func runSummaryJob(ctx context.Context, cfg config.Config, store storage.LocationRepository, jobName string) {
	spec, err := jobs.SpecFor(jobName)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.SummarySender == "" || cfg.SummaryRecipient == "" {
		log.Fatalf("❌ SUMMARY_SENDER and SUMMARY_RECIPIENT must be set for summary jobs")
	}

	awsCfg, err := config.AWSConfig(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to load AWS configuration: %v", err)
	}
	notifier := notify.NewSESNotifier(sesv2.NewFromConfig(awsCfg), cfg.SummarySender, cfg.SummaryRecipient)

	if err := jobs.Run(ctx, store, notifier, spec, cfg.JobDeviceID); err != nil {
		log.Fatalf("❌ Summary job failed: %v", err)
	}
}
