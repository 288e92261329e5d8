package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type quotationItem struct {
	ID           string     `dynamodbav:"id"`
	Code         string     `dynamodbav:"code"`
	Client       clientAttr `dynamodbav:"client"`
	Items        []lineAttr `dynamodbav:"items"`
	Total        string     `dynamodbav:"total"`
	Description  string     `dynamodbav:"description"`
	PaymentTerms string     `dynamodbav:"payment_terms"`
	IssueDate    string     `dynamodbav:"issue_date"`
	ValidityDays int        `dynamodbav:"validity_days"`
	Status       string     `dynamodbav:"status"`
	EmailSent    bool       `dynamodbav:"email_sent"`
	CreatedBy    string     `dynamodbav:"created_by"`
	CreatedAt    string     `dynamodbav:"created_at"`
	UpdatedAt    string     `dynamodbav:"updated_at"`
}

// QuotationDynamoRepository persists Quotation entities in DynamoDB.
//
// Table requirements:
//   - quotations PK: id (string)
//   - document_codes PK: code (string), shared by every document kind
//
// Creating a quotation writes the quotation and its code guard in one
// transaction, so two quotations can never share a code.
type QuotationDynamoRepository struct {
	ddb    *dynamodb.Client
	tables Tables
}

var _ interfaces.IQuotationRepository = (*QuotationDynamoRepository)(nil)

func NewQuotationDynamoRepository(ddb *dynamodb.Client, tables Tables) *QuotationDynamoRepository {
	return &QuotationDynamoRepository{ddb: ddb, tables: tables}
}

func (r *QuotationDynamoRepository) Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error) {
	av, err := attributevalue.MarshalMap(toQuotationItem(q))
	if err != nil {
		return entities.Quotation{}, err
	}
	guard, err := codeGuardPut(r.tables.DocumentCodes, q.Code, entities.DocumentKindQuotation, q.ID)
	if err != nil {
		return entities.Quotation{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tables.Quotations),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			guard,
		},
	})
	if err != nil {
		if reasons := cancellationReasons(err); len(reasons) == 2 && reasons[1] == reasonConditionalCheckFailed {
			return entities.Quotation{}, fmt.Errorf("%w: %s", interfaces.ErrDuplicateCode, q.Code)
		}
		return entities.Quotation{}, err
	}
	return q, nil
}

func (r *QuotationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Quotations),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quotation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quotation{}, nil
	}

	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it)
}

func (r *QuotationDynamoRepository) UpdateStatus(ctx context.Context, id string, expected, next entities.QuotationStatus) (entities.Quotation, error) {
	return r.update(ctx, id, expected, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(next)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuotationDynamoRepository) MarkEmailSent(ctx context.Context, id string, expected, next entities.QuotationStatus) (entities.Quotation, error) {
	return r.update(ctx, id, expected, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #email_sent = :email_sent, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(next)},
			":email_sent": &types.AttributeValueMemberBOOL{Value: true},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#email_sent": "email_sent",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// SetEmailSent raises email_sent whatever the status is. A missing item
// yields a zero Quotation and no error.
func (r *QuotationDynamoRepository) SetEmailSent(ctx context.Context, id string) (entities.Quotation, error) {
	out, err := r.ddb.UpdateItem(ctx, setEmailSentInput(r.tables.Quotations, id, time.Now().UTC()))
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quotation{}, nil
		}
		return entities.Quotation{}, err
	}
	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it)
}

func setEmailSentInput(table, id string, now time.Time) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #email_sent = :email_sent, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#email_sent": "email_sent",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email_sent": &types.AttributeValueMemberBOOL{Value: true},
			":updated_at": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	}
}

// update applies a conditional write guarded by the expected status.
//
// A missing item yields a zero Quotation and no error; an item in another
// status yields interfaces.ErrStatusConflict.
func (r *QuotationDynamoRepository) update(
	ctx context.Context,
	id string,
	expected entities.QuotationStatus,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quotation, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)
	values[":expected"] = &types.AttributeValueMemberS{Value: string(expected)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Quotations),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:                 aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:                    aws.String(updateExpr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) == 0 {
				return entities.Quotation{}, nil
			}
			return entities.Quotation{}, interfaces.ErrStatusConflict
		}
		return entities.Quotation{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quotation{}, nil
	}
	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it)
}

func toQuotationItem(q entities.Quotation) quotationItem {
	return quotationItem{
		ID:           q.ID,
		Code:         q.Code,
		Client:       toClientAttr(q.Client),
		Items:        toQuotationLines(q.Items),
		Total:        q.Total.StringFixed(entities.MoneyPlaces),
		Description:  q.Description,
		PaymentTerms: q.PaymentTerms,
		IssueDate:    formatDate(q.IssueDate),
		ValidityDays: q.ValidityDays,
		Status:       string(q.Status),
		EmailSent:    q.EmailSent,
		CreatedBy:    q.CreatedBy,
		CreatedAt:    formatTime(q.CreatedAt),
		UpdatedAt:    formatTime(q.UpdatedAt),
	}
}

func fromQuotationItem(it quotationItem) (entities.Quotation, error) {
	items, err := fromQuotationLines(it.Items)
	if err != nil {
		return entities.Quotation{}, fmt.Errorf("quotation %s: %w", it.ID, err)
	}
	total, err := parseDecimal("total", it.Total)
	if err != nil {
		return entities.Quotation{}, fmt.Errorf("quotation %s: %w", it.ID, err)
	}
	issueDate, err := parseDate(it.IssueDate)
	if err != nil {
		return entities.Quotation{}, fmt.Errorf("quotation %s: %w", it.ID, err)
	}
	createdAt, _ := parseTime(it.CreatedAt)
	updatedAt, _ := parseTime(it.UpdatedAt)
	return entities.Quotation{
		ID:           it.ID,
		Code:         it.Code,
		Client:       fromClientAttr(it.Client),
		Items:        items,
		Total:        total,
		Description:  it.Description,
		PaymentTerms: it.PaymentTerms,
		IssueDate:    issueDate,
		ValidityDays: it.ValidityDays,
		Status:       entities.QuotationStatus(it.Status),
		EmailSent:    it.EmailSent,
		CreatedBy:    it.CreatedBy,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func codeGuardPut(table, code string, kind entities.DocumentKind, documentID string) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(documentCodeItem{Code: code, Kind: string(kind), DocumentID: documentID})
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#code)"),
		ExpressionAttributeNames: map[string]string{"#code": "code"},
	}}, nil
}
