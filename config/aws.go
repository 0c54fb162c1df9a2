/*
# Module: config/aws.go
Lazily-initialized shared AWS client configuration.

## Linked Modules
(None - wraps the AWS SDK config loader)

## Tags
config, aws, client

## Exports
AWSConfig

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "config/aws.go" ;
    code:description "Lazily-initialized shared AWS client configuration" ;
    code:exports :AWSConfig ;
    code:tags "config", "aws", "client" .
<!-- End LinkedDoc RDF -->
*/
package config

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

var (
	awsCfg  aws.Config
	awsErr  error
	awsOnce sync.Once
)

// AWSConfig loads the AWS configuration once and reuses it for every
// client built afterwards. Concurrent first callers initialize at
// most one instance.
func AWSConfig(ctx context.Context) (aws.Config, error) {
	awsOnce.Do(func() {
		awsCfg, awsErr = awsconfig.LoadDefaultConfig(ctx)
	})
	return awsCfg, awsErr
}
