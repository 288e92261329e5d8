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

type orderItem struct {
	ID            string     `dynamodbav:"id"`
	Code          string     `dynamodbav:"code"`
	ClientID      string     `dynamodbav:"client_id"`
	QuotationID   string     `dynamodbav:"quotation_id,omitempty"`
	QuotationCode string     `dynamodbav:"quotation_code,omitempty"`
	Items         []lineAttr `dynamodbav:"items"`
	Total         string     `dynamodbav:"total"`
	DeliveryDate  string     `dynamodbav:"delivery_date"`
	Observation   string     `dynamodbav:"observation"`
	Status        string     `dynamodbav:"status"`
	CreatedBy     string     `dynamodbav:"created_by"`
	CreatedAt     string     `dynamodbav:"created_at"`
	UpdatedAt     string     `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - orders PK: id (string)
//   - GSI: quotation_id-index (PK: quotation_id), for provenance lookups
type OrderDynamoRepository struct {
	ddb    *dynamodb.Client
	tables Tables
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, tables Tables) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tables: tables}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	put, err := orderPut(r.tables.Orders, o)
	if err != nil {
		return entities.Order{}, err
	}
	guard, err := codeGuardPut(r.tables.DocumentCodes, o.Code, entities.DocumentKindOrder, o.ID)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{put, guard},
	})
	if err != nil {
		if reasons := cancellationReasons(err); len(reasons) == 2 && reasons[1] == reasonConditionalCheckFailed {
			return entities.Order{}, fmt.Errorf("%w: %s", interfaces.ErrDuplicateCode, o.Code)
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Orders),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

// Delete removes the order together with its code guard. Deleting a missing
// order is not an error.
func (r *OrderDynamoRepository) Delete(ctx context.Context, id string) error {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.ID == "" {
		return nil
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName: aws.String(r.tables.Orders),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: id},
				},
			}},
			{Delete: &types.Delete{
				TableName: aws.String(r.tables.DocumentCodes),
				Key: map[string]types.AttributeValue{
					"code": &types.AttributeValueMemberS{Value: o.Code},
				},
				ConditionExpression:       aws.String("attribute_not_exists(#code) OR #document_id = :id"),
				ExpressionAttributeNames:  map[string]string{"#code": "code", "#document_id": "document_id"},
				ExpressionAttributeValues: map[string]types.AttributeValue{":id": &types.AttributeValueMemberS{Value: id}},
			}},
		},
	})
	return err
}

func orderPut(table string, o entities.Order) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
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

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:            o.ID,
		Code:          o.Code,
		ClientID:      o.Client.ClientID,
		QuotationID:   o.QuotationID,
		QuotationCode: o.QuotationCode,
		Items:         toOrderLines(o.Items),
		Total:         o.Total.StringFixed(entities.MoneyPlaces),
		DeliveryDate:  formatDate(o.DeliveryDate),
		Observation:   o.Observation,
		Status:        string(o.Status),
		CreatedBy:     o.CreatedBy,
		CreatedAt:     formatTime(o.CreatedAt),
		UpdatedAt:     formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	items, err := fromOrderLines(it.Items)
	if err != nil {
		return entities.Order{}, fmt.Errorf("order %s: %w", it.ID, err)
	}
	total, err := parseDecimal("total", it.Total)
	if err != nil {
		return entities.Order{}, fmt.Errorf("order %s: %w", it.ID, err)
	}
	delivery, err := parseDate(it.DeliveryDate)
	if err != nil {
		return entities.Order{}, fmt.Errorf("order %s: %w", it.ID, err)
	}
	createdAt, _ := parseTime(it.CreatedAt)
	updatedAt, _ := parseTime(it.UpdatedAt)
	return entities.Order{
		ID:            it.ID,
		Code:          it.Code,
		Client:        entities.ClientRef{ClientID: it.ClientID},
		QuotationID:   it.QuotationID,
		QuotationCode: it.QuotationCode,
		Items:         items,
		Total:         total,
		DeliveryDate:  delivery,
		Observation:   it.Observation,
		Status:        entities.OrderStatus(it.Status),
		CreatedBy:     it.CreatedBy,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}
