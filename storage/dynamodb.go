/*
# Module: storage/dynamodb.go
DynamoDB implementation of the location repository.

## Linked Modules
- [storage/repository](./repository.go) - Repository interface
- [types/location](../types/location.go) - Location record structures

## Tags
storage, dynamodb, persistence, repository

## Exports
DynamoDBLocationRepository, NewDynamoDBLocationRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/dynamodb.go" ;
    code:description "DynamoDB implementation of the location repository" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "./repository.go" ;
        code:relationship "Repository interface"
    ], [
        code:name "types/location" ;
        code:path "../types/location.go" ;
        code:relationship "Location record structures"
    ] ;
    code:exports :DynamoDBLocationRepository, :NewDynamoDBLocationRepository ;
    code:tags "storage", "dynamodb", "persistence", "repository" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"location-ingest/types"
)

// locationIDIndex is the GSI used for secondary lookup by locationId.
const locationIDIndex = "locationId-index"

// DynamoDBLocationRepository implements LocationRepository using DynamoDB
type DynamoDBLocationRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoDBLocationRepository creates a new DynamoDB location repository
func NewDynamoDBLocationRepository(client *dynamodb.Client, tableName string) *DynamoDBLocationRepository {
	return &DynamoDBLocationRepository{
		client:    client,
		tableName: tableName,
	}
}

// SaveLocation inserts a location if no record exists for its
// (deviceId, timestamp) key. A duplicate delivery is treated as
// success: the conditional write fails, the pre-generated candidate
// identifier is discarded, and the identifier of the record that won
// the first write is returned instead.
func (r *DynamoDBLocationRepository) SaveLocation(ctx context.Context, record types.LocationRecord) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("DynamoDB client not initialized")
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal location: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(userId) AND attribute_not_exists(#ts)"),
		ExpressionAttributeNames: map[string]string{
			"#ts": "timestamp",
		},
		ReturnValuesOnConditionCheckFailure: dynamodbtypes.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var conditionFailed *dynamodbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			existingID, lookupErr := r.existingLocationID(ctx, conditionFailed.Item, record)
			if lookupErr != nil {
				return "", lookupErr
			}
			log.Printf("🔁 Duplicate location delivery resolved: device_id=%s timestamp=%s", record.DeviceID, record.Timestamp)
			return existingID, nil
		}
		return "", fmt.Errorf("failed to save location to DynamoDB: %w", err)
	}

	log.Printf("💾 Location saved to DynamoDB: device_id=%s timestamp=%s", record.DeviceID, record.Timestamp)
	return record.LocationID, nil
}

// existingLocationID recovers the identifier of the record that won
// the first write. The conditional check failure usually carries the
// old item; older table configurations may not return it, in which
// case the key is read back directly.
func (r *DynamoDBLocationRepository) existingLocationID(ctx context.Context, item map[string]dynamodbtypes.AttributeValue, record types.LocationRecord) (string, error) {
	if item != nil {
		var existing types.LocationRecord
		if err := attributevalue.UnmarshalMap(item, &existing); err == nil && existing.LocationID != "" {
			return existing.LocationID, nil
		}
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			"userId":    &dynamodbtypes.AttributeValueMemberS{Value: record.DeviceID},
			"timestamp": &dynamodbtypes.AttributeValueMemberS{Value: record.Timestamp},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to read existing location: %w", err)
	}
	if result.Item == nil {
		return "", fmt.Errorf("existing location vanished for device_id=%s timestamp=%s", record.DeviceID, record.Timestamp)
	}

	var existing types.LocationRecord
	if err := attributevalue.UnmarshalMap(result.Item, &existing); err != nil {
		return "", fmt.Errorf("failed to unmarshal existing location: %w", err)
	}
	return existing.LocationID, nil
}

// GetLocationRange queries one device's records with timestamps in the
// inclusive [start, end] window, most recent first.
func (r *DynamoDBLocationRepository) GetLocationRange(ctx context.Context, deviceID string, start, end time.Time) ([]types.LocationRecord, error) {
	if r.client == nil {
		return nil, fmt.Errorf("DynamoDB client not initialized")
	}

	records := make([]types.LocationRecord, 0)
	var lastEvaluatedKey map[string]dynamodbtypes.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("userId = :uid AND #ts BETWEEN :start AND :end"),
			ExpressionAttributeNames: map[string]string{
				"#ts": "timestamp",
			},
			ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
				":uid":   &dynamodbtypes.AttributeValueMemberS{Value: deviceID},
				":start": &dynamodbtypes.AttributeValueMemberS{Value: timestampBound(start)},
				":end":   &dynamodbtypes.AttributeValueMemberS{Value: timestampBound(end)},
			},
			ScanIndexForward: aws.Bool(false),
		}
		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query locations: %w", err)
		}

		for _, item := range result.Items {
			var record types.LocationRecord
			if err := attributevalue.UnmarshalMap(item, &record); err != nil {
				log.Printf("⚠️  Failed to unmarshal location: %v", err)
				continue
			}
			records = append(records, record)
		}

		lastEvaluatedKey = result.LastEvaluatedKey
		if lastEvaluatedKey == nil {
			break
		}
	}

	log.Printf("📍 Loaded %d locations from DynamoDB: device_id=%s", len(records), deviceID)
	return records, nil
}

// GetByLocationID looks a record up by its server-generated identifier
// via the locationId GSI. Used by deduplication tooling, not the
// request path.
func (r *DynamoDBLocationRepository) GetByLocationID(ctx context.Context, locationID string) (*types.LocationRecord, error) {
	if r.client == nil {
		return nil, fmt.Errorf("DynamoDB client not initialized")
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(locationIDIndex),
		KeyConditionExpression: aws.String("locationId = :lid"),
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":lid": &dynamodbtypes.AttributeValueMemberS{Value: locationID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query location by id: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("location not found: %s", locationID)
	}

	var record types.LocationRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location: %w", err)
	}
	return &record, nil
}
