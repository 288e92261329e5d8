package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Positions of the writes inside a conversion transaction.
const (
	conversionQuotationIdx = iota
	conversionOrderIdx
	conversionRemissionIdx
	conversionOrderCodeIdx
	conversionRemissionCodeIdx
)

// ConversionDynamoTransactor writes a quotation conversion with a single
// TransactWriteItems call.
type ConversionDynamoTransactor struct {
	ddb    *dynamodb.Client
	tables Tables
	now    func() time.Time
}

var _ interfaces.IConversionTransactor = (*ConversionDynamoTransactor)(nil)

func NewConversionDynamoTransactor(ddb *dynamodb.Client, tables Tables) *ConversionDynamoTransactor {
	return &ConversionDynamoTransactor{ddb: ddb, tables: tables, now: time.Now}
}

func (t *ConversionDynamoTransactor) CommitConversion(ctx context.Context, unit interfaces.ConversionUnit) error {
	in, err := buildConversionTransaction(t.tables, unit, t.now())
	if err != nil {
		return err
	}

	_, err = t.ddb.TransactWriteItems(ctx, in)
	if err != nil {
		log.Printf("[conversion][dynamodb] commit failed quotation_id=%s err=%v", unit.QuotationID, err)
		return classifyConversionError(err, unit)
	}
	return nil
}

// buildConversionTransaction returns the five writes of a conversion: the
// conditional quotation status swap, the order, the remission and one code
// guard per new document. The order ID doubles as idempotency token.
func buildConversionTransaction(tables Tables, unit interfaces.ConversionUnit, now time.Time) (*dynamodb.TransactWriteItemsInput, error) {
	next, ok := unit.ExpectedStatus.NextStatus(entities.QuotationEventConvert)
	if !ok {
		return nil, fmt.Errorf("%w: quotation %s is %s", interfaces.ErrStatusConflict, unit.QuotationID, unit.ExpectedStatus)
	}

	orderPutItem, err := orderPut(tables.Orders, unit.Order)
	if err != nil {
		return nil, err
	}
	remissionPutItem, err := remissionPut(tables.Remissions, unit.Remission)
	if err != nil {
		return nil, err
	}
	orderGuard, err := codeGuardPut(tables.DocumentCodes, unit.Order.Code, entities.DocumentKindOrder, unit.Order.ID)
	if err != nil {
		return nil, err
	}
	remissionGuard, err := codeGuardPut(tables.DocumentCodes, unit.Remission.Code, entities.DocumentKindRemission, unit.Remission.ID)
	if err != nil {
		return nil, err
	}

	items := make([]types.TransactWriteItem, 5)
	items[conversionQuotationIdx] = types.TransactWriteItem{Update: &types.Update{
		TableName: aws.String(tables.Quotations),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: unit.QuotationID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected":   &types.AttributeValueMemberS{Value: string(unit.ExpectedStatus)},
			":status":     &types.AttributeValueMemberS{Value: string(next)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(now)},
		},
	}}
	items[conversionOrderIdx] = orderPutItem
	items[conversionRemissionIdx] = remissionPutItem
	items[conversionOrderCodeIdx] = orderGuard
	items[conversionRemissionCodeIdx] = remissionGuard

	return &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(unit.Order.ID),
	}, nil
}

// classifyConversionError maps the cancellation reasons of a failed conversion
// onto repository errors. Anything unrecognised is returned unchanged.
func classifyConversionError(err error, unit interfaces.ConversionUnit) error {
	reasons := cancellationReasons(err)
	if len(reasons) <= conversionRemissionCodeIdx {
		return err
	}
	switch {
	case reasons[conversionQuotationIdx] == reasonConditionalCheckFailed:
		return fmt.Errorf("%w: quotation %s is no longer %s", interfaces.ErrStatusConflict, unit.QuotationID, unit.ExpectedStatus)
	case reasons[conversionOrderCodeIdx] == reasonConditionalCheckFailed:
		return fmt.Errorf("%w: %s", interfaces.ErrDuplicateCode, unit.Order.Code)
	case reasons[conversionRemissionCodeIdx] == reasonConditionalCheckFailed:
		return fmt.Errorf("%w: %s", interfaces.ErrDuplicateCode, unit.Remission.Code)
	}
	return err
}
