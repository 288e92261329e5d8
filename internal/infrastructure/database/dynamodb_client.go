package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoSettings is the connection configuration of the document store.
type DynamoSettings struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// AutoCreateTables creates missing tables at startup. Meant for
	// DynamoDB Local; production tables are provisioned outside the service.
	AutoCreateTables bool
}

// DynamoSettingsFromEnv reads:
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (optional)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
//   - DYNAMODB_AUTO_CREATE_TABLES (default: false)
func DynamoSettingsFromEnv() DynamoSettings {
	return DynamoSettings{
		Region:           getenvDefault("AWS_REGION", "us-east-1"),
		Endpoint:         os.Getenv("DYNAMODB_ENDPOINT"),
		AccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AutoCreateTables: IsTruthy(os.Getenv("DYNAMODB_AUTO_CREATE_TABLES")),
	}
}

// ConnectDynamoDB builds a client from the environment and exits if the SDK
// configuration cannot be loaded.
func ConnectDynamoDB(ctx context.Context) (*dynamodb.Client, DynamoSettings) {
	settings := DynamoSettingsFromEnv()
	cfg, err := NewDynamoDBConfig(ctx, settings)
	if err != nil {
		log.Fatalf("failed to create dynamodb config: %v", err)
	}
	log.Printf("[database][dynamodb] client ready region=%s endpoint=%q", settings.Region, settings.Endpoint)
	return dynamodb.NewFromConfig(cfg), settings
}

func NewDynamoDBConfig(ctx context.Context, s DynamoSettings) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(s.Region),
	}

	switch {
	case s.AccessKeyID != "" && s.SecretAccessKey != "":
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, ""),
		))
	case s.Endpoint != "":
		// DynamoDB Local ignores credentials, but the SDK still signs requests.
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	if s.Endpoint != "" {
		if !strings.HasPrefix(s.Endpoint, "http://") && !strings.HasPrefix(s.Endpoint, "https://") {
			return aws.Config{}, fmt.Errorf("invalid DYNAMODB_ENDPOINT %q: missing scheme", s.Endpoint)
		}
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: s.Endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// IsTruthy accepts the usual spellings of an enabled flag.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
