package repository

import (
	"errors"
	"testing"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func testTables() Tables {
	return Tables{
		Quotations:    "quotations",
		Orders:        "orders",
		Remissions:    "remissions",
		DocumentCodes: "document_codes",
		Sequences:     "sequences",
	}
}

func testUnit() interfaces.ConversionUnit {
	item := entities.NewQuotationItem("p-1", "Taladro", decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromInt(10))
	delivery := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	return interfaces.ConversionUnit{
		QuotationID:    "q-1",
		ExpectedStatus: entities.QuotationStatusEnviada,
		Order: entities.Order{
			ID: "o-1", Code: "PED-000123", Client: entities.ClientRef{ClientID: "c-1"},
			QuotationID: "q-1", QuotationCode: "COT-000045",
			Items: []entities.OrderItem{item.ToOrderItem()}, Total: item.Subtotal,
			DeliveryDate: delivery, Status: entities.OrderStatusEntregado,
		},
		Remission: entities.Remission{
			ID: "r-1", Code: "REM-000087", Client: entities.ClientSnapshot{ClientID: "c-1", Name: "Ferretería"},
			Items: []entities.RemissionItem{item.ToRemissionItem()}, Total: item.Subtotal,
			DeliveryDate: delivery, OrderCode: "PED-000123", QuotationCode: "COT-000045",
			Status: entities.RemissionStatusActiva,
		},
	}
}

func stringAttr(t *testing.T, av types.AttributeValue) string {
	t.Helper()
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("expected string attribute, got %T", av)
	}
	return s.Value
}

func TestBuildConversionTransaction(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	in, err := buildConversionTransaction(testTables(), testUnit(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(in.TransactItems) != 5 {
		t.Fatalf("expected 5 writes, got %d", len(in.TransactItems))
	}
	if aws.ToString(in.ClientRequestToken) != "o-1" {
		t.Fatalf("unexpected token %q", aws.ToString(in.ClientRequestToken))
	}

	t.Run("quotation swap is conditional on expected status", func(t *testing.T) {
		upd := in.TransactItems[conversionQuotationIdx].Update
		if upd == nil || aws.ToString(upd.TableName) != "quotations" {
			t.Fatalf("expected quotation update, got %+v", in.TransactItems[conversionQuotationIdx])
		}
		if got := stringAttr(t, upd.ExpressionAttributeValues[":expected"]); got != "enviada" {
			t.Fatalf("unexpected expected status %q", got)
		}
		if got := stringAttr(t, upd.ExpressionAttributeValues[":status"]); got != "remisionada" {
			t.Fatalf("unexpected next status %q", got)
		}
	})

	t.Run("documents and code guards", func(t *testing.T) {
		order := in.TransactItems[conversionOrderIdx].Put
		if order == nil || aws.ToString(order.TableName) != "orders" || stringAttr(t, order.Item["code"]) != "PED-000123" {
			t.Fatalf("unexpected order put: %+v", order)
		}
		if stringAttr(t, order.Item["total"]) != "180.00" || stringAttr(t, order.Item["delivery_date"]) != "2026-03-11" {
			t.Fatalf("unexpected order amounts: %v", order.Item)
		}
		rem := in.TransactItems[conversionRemissionIdx].Put
		if rem == nil || aws.ToString(rem.TableName) != "remissions" || stringAttr(t, rem.Item["order_code"]) != "PED-000123" {
			t.Fatalf("unexpected remission put: %+v", rem)
		}
		for idx, code := range map[int]string{conversionOrderCodeIdx: "PED-000123", conversionRemissionCodeIdx: "REM-000087"} {
			guard := in.TransactItems[idx].Put
			if guard == nil || aws.ToString(guard.TableName) != "document_codes" || stringAttr(t, guard.Item["code"]) != code {
				t.Fatalf("unexpected guard at %d: %+v", idx, guard)
			}
			if aws.ToString(guard.ConditionExpression) != "attribute_not_exists(#code)" {
				t.Fatalf("guard at %d is unconditional", idx)
			}
		}
	})

	t.Run("terminal expected status", func(t *testing.T) {
		unit := testUnit()
		unit.ExpectedStatus = entities.QuotationStatusAnulada
		if _, err := buildConversionTransaction(testTables(), unit, now); !errors.Is(err, interfaces.ErrStatusConflict) {
			t.Fatalf("expected ErrStatusConflict, got %v", err)
		}
	})
}

func cancelled(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, c := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(c)}
	}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}

func TestClassifyConversionError(t *testing.T) {
	unit := testUnit()
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"quotation moved", cancelled("ConditionalCheckFailed", "None", "None", "None", "None"), interfaces.ErrStatusConflict},
		{"order code taken", cancelled("None", "None", "None", "ConditionalCheckFailed", "None"), interfaces.ErrDuplicateCode},
		{"remission code taken", cancelled("None", "None", "None", "None", "ConditionalCheckFailed"), interfaces.ErrDuplicateCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyConversionError(tc.err, unit); !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("other failures pass through", func(t *testing.T) {
		raw := errors.New("throttled")
		if got := classifyConversionError(raw, unit); got != raw {
			t.Fatalf("expected raw error, got %v", got)
		}
		conflict := cancelled("None", "TransactionConflict", "None", "None", "None")
		if got := classifyConversionError(conflict, unit); errors.Is(got, interfaces.ErrStatusConflict) || errors.Is(got, interfaces.ErrDuplicateCode) {
			t.Fatalf("transaction conflict misclassified: %v", got)
		}
	})
}

func TestSetEmailSentInput(t *testing.T) {
	in := setEmailSentInput("quotations", "q-1", time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC))
	if aws.ToString(in.ConditionExpression) != "attribute_exists(#id)" {
		t.Fatalf("flag write must not depend on status: %s", aws.ToString(in.ConditionExpression))
	}
	if _, ok := in.ExpressionAttributeNames["#status"]; ok {
		t.Fatal("flag write must not touch status")
	}
	flag, ok := in.ExpressionAttributeValues[":email_sent"].(*types.AttributeValueMemberBOOL)
	if !ok || !flag.Value {
		t.Fatalf("unexpected email_sent value %#v", in.ExpressionAttributeValues[":email_sent"])
	}
	if in.ReturnValues != types.ReturnValueAllNew {
		t.Fatalf("expected ALL_NEW, got %s", in.ReturnValues)
	}
}

func TestSequenceCounter(t *testing.T) {
	in := nextValueInput("sequences", entities.DocumentKindOrder)
	if aws.ToString(in.UpdateExpression) != "ADD #value :one" || in.ReturnValues != types.ReturnValueUpdatedNew {
		t.Fatalf("counter update is not an atomic add: %+v", in)
	}
	if stringAttr(t, in.Key["kind"]) != "order" {
		t.Fatalf("unexpected key %v", in.Key)
	}

	n, err := counterValue(map[string]types.AttributeValue{"value": &types.AttributeValueMemberN{Value: "123"}})
	if err != nil || n != 123 {
		t.Fatalf("unexpected counter %d %v", n, err)
	}
	if _, err := counterValue(map[string]types.AttributeValue{}); err == nil {
		t.Fatalf("expected error for missing value")
	}
}

func TestQuotationItemRoundTrip(t *testing.T) {
	q := entities.Quotation{
		ID: "q-1", Code: "COT-000001",
		Client:    entities.ClientSnapshot{ClientID: "c-1", Name: "Ferretería", Email: "a@b.co"},
		Items:     []entities.QuotationItem{entities.NewQuotationItem("p-1", "Taladro", decimal.NewFromInt(3), decimal.RequireFromString("33.33"), decimal.NewFromInt(15))},
		IssueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), ValidityDays: 30,
		Status: entities.QuotationStatusPendiente,
	}
	q.RecalculateTotals()

	got, err := fromQuotationItem(toQuotationItem(q))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.TotalsConsistent() || !got.Total.Equal(q.Total) || !got.Items[0].DiscountPercent.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("amounts lost in storage: %+v", got)
	}
	if got.Client != q.Client || !got.IssueDate.Equal(q.IssueDate) {
		t.Fatalf("header lost in storage: %+v", got)
	}
}
