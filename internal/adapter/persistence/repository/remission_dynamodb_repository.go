package repository

import (
	"context"
	"fmt"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type remissionItem struct {
	ID            string     `dynamodbav:"id"`
	Code          string     `dynamodbav:"code"`
	Client        clientAttr `dynamodbav:"client"`
	Items         []lineAttr `dynamodbav:"items"`
	Total         string     `dynamodbav:"total"`
	DeliveryDate  string     `dynamodbav:"delivery_date"`
	Observation   string     `dynamodbav:"observation"`
	OrderCode     string     `dynamodbav:"order_code"`
	QuotationCode string     `dynamodbav:"quotation_code"`
	Status        string     `dynamodbav:"status"`
	CreatedBy     string     `dynamodbav:"created_by"`
	CreatedAt     string     `dynamodbav:"created_at"`
}

// RemissionDynamoRepository persists Remission entities in DynamoDB.
//
// Table requirements:
//   - remissions PK: id (string)
type RemissionDynamoRepository struct {
	ddb    *dynamodb.Client
	tables Tables
}

var _ interfaces.IRemissionRepository = (*RemissionDynamoRepository)(nil)

func NewRemissionDynamoRepository(ddb *dynamodb.Client, tables Tables) *RemissionDynamoRepository {
	return &RemissionDynamoRepository{ddb: ddb, tables: tables}
}

func (r *RemissionDynamoRepository) Create(ctx context.Context, rem entities.Remission) (entities.Remission, error) {
	put, err := remissionPut(r.tables.Remissions, rem)
	if err != nil {
		return entities.Remission{}, err
	}
	guard, err := codeGuardPut(r.tables.DocumentCodes, rem.Code, entities.DocumentKindRemission, rem.ID)
	if err != nil {
		return entities.Remission{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{put, guard},
	})
	if err != nil {
		if reasons := cancellationReasons(err); len(reasons) == 2 && reasons[1] == reasonConditionalCheckFailed {
			return entities.Remission{}, fmt.Errorf("%w: %s", interfaces.ErrDuplicateCode, rem.Code)
		}
		return entities.Remission{}, err
	}
	return rem, nil
}

func (r *RemissionDynamoRepository) GetByID(ctx context.Context, id string) (entities.Remission, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Remissions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Remission{}, err
	}
	if len(out.Item) == 0 {
		return entities.Remission{}, nil
	}

	var it remissionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Remission{}, err
	}
	return fromRemissionItem(it)
}

func remissionPut(table string, rem entities.Remission) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toRemissionItem(rem))
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}, nil
}

func toRemissionItem(rem entities.Remission) remissionItem {
	return remissionItem{
		ID:            rem.ID,
		Code:          rem.Code,
		Client:        toClientAttr(rem.Client),
		Items:         toRemissionLines(rem.Items),
		Total:         rem.Total.StringFixed(entities.MoneyPlaces),
		DeliveryDate:  formatDate(rem.DeliveryDate),
		Observation:   rem.Observation,
		OrderCode:     rem.OrderCode,
		QuotationCode: rem.QuotationCode,
		Status:        string(rem.Status),
		CreatedBy:     rem.CreatedBy,
		CreatedAt:     formatTime(rem.CreatedAt),
	}
}

func fromRemissionItem(it remissionItem) (entities.Remission, error) {
	items, err := fromRemissionLines(it.Items)
	if err != nil {
		return entities.Remission{}, fmt.Errorf("remission %s: %w", it.ID, err)
	}
	total, err := parseDecimal("total", it.Total)
	if err != nil {
		return entities.Remission{}, fmt.Errorf("remission %s: %w", it.ID, err)
	}
	delivery, err := parseDate(it.DeliveryDate)
	if err != nil {
		return entities.Remission{}, fmt.Errorf("remission %s: %w", it.ID, err)
	}
	createdAt, _ := parseTime(it.CreatedAt)
	return entities.Remission{
		ID:            it.ID,
		Code:          it.Code,
		Client:        fromClientAttr(it.Client),
		Items:         items,
		Total:         total,
		DeliveryDate:  delivery,
		Observation:   it.Observation,
		OrderCode:     it.OrderCode,
		QuotationCode: it.QuotationCode,
		Status:        entities.RemissionStatus(it.Status),
		CreatedBy:     it.CreatedBy,
		CreatedAt:     createdAt,
	}, nil
}
