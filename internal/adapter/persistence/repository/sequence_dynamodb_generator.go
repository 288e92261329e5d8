package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SequenceDynamoGenerator keeps one counter item per document kind and bumps
// it with an atomic ADD, so concurrent callers never see the same value.
//
// Table requirements:
//   - sequences PK: kind (string)
type SequenceDynamoGenerator struct {
	ddb   *dynamodb.Client
	table string
}

var _ interfaces.ISequenceGenerator = (*SequenceDynamoGenerator)(nil)

func NewSequenceDynamoGenerator(ddb *dynamodb.Client, tables Tables) *SequenceDynamoGenerator {
	return &SequenceDynamoGenerator{ddb: ddb, table: tables.Sequences}
}

// NextCode atomically increments the counter of kind. The counter is never
// reset per period, since codes carry no year to keep them apart.
func (g *SequenceDynamoGenerator) NextCode(ctx context.Context, kind entities.DocumentKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown document kind %q", kind)
	}

	out, err := g.ddb.UpdateItem(ctx, nextValueInput(g.table, kind))
	if err != nil {
		return "", err
	}
	n, err := counterValue(out.Attributes)
	if err != nil {
		return "", fmt.Errorf("sequence %s: %w", kind, err)
	}
	return kind.FormatCode(n), nil
}

// Seed raises the counter of kind to at least last. Lower values are left
// alone so a restart never rewinds a sequence.
func (g *SequenceDynamoGenerator) Seed(ctx context.Context, kind entities.DocumentKind, last int64) error {
	_, err := g.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(g.table),
		Key: map[string]types.AttributeValue{
			"kind": &types.AttributeValueMemberS{Value: string(kind)},
		},
		UpdateExpression:         aws.String("SET #value = :last"),
		ConditionExpression:      aws.String("attribute_not_exists(#value) OR #value < :last"),
		ExpressionAttributeNames: map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":last": &types.AttributeValueMemberN{Value: strconv.FormatInt(last, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil
		}
		return err
	}
	return nil
}

func nextValueInput(table string, kind entities.DocumentKind) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"kind": &types.AttributeValueMemberS{Value: string(kind)},
		},
		UpdateExpression:         aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	}
}

func counterValue(attrs map[string]types.AttributeValue) (int64, error) {
	v, ok := attrs["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("missing counter value")
	}
	return strconv.ParseInt(v.Value, 10, 64)
}
