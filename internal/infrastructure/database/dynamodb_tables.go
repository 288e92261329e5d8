package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableSpec describes a table keyed by a single string attribute.
type TableSpec struct {
	Name         string
	PartitionKey string
}

const tableActiveWait = 30 * time.Second

// EnsureTables creates every missing table with on-demand billing and waits
// for it to become active. Existing tables are left as they are.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client, specs []TableSpec) error {
	for _, spec := range specs {
		_, err := ddb.CreateTable(ctx, CreateTableInput(spec))
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				log.Printf("[database][dynamodb] table exists name=%s", spec.Name)
				continue
			}
			return fmt.Errorf("create table %s: %w", spec.Name, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(ddb)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(spec.Name)}, tableActiveWait); err != nil {
			return fmt.Errorf("wait for table %s: %w", spec.Name, err)
		}
		log.Printf("[database][dynamodb] table created name=%s pk=%s", spec.Name, spec.PartitionKey)
	}
	return nil
}

func CreateTableInput(spec TableSpec) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(spec.Name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(spec.PartitionKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(spec.PartitionKey), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}
