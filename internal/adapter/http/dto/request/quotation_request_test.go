package request

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestConvertQuotationRequest_ResolveDeliveryDate(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)

	t.Run("calendar day in location", func(t *testing.T) {
		req := ConvertQuotationRequest{QuotationID: " Q001 ", DeliveryDate: "2026-03-11"}
		got, err := req.ResolveDeliveryDate(bogota)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		want := time.Date(2026, 3, 11, 0, 0, 0, 0, bogota)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		if req.ResolveQuotationID() != "Q001" {
			t.Fatalf("id not trimmed: %q", req.ResolveQuotationID())
		}
	})

	t.Run("nil location falls back to UTC", func(t *testing.T) {
		got, err := ConvertQuotationRequest{DeliveryDate: "2026-03-11"}.ResolveDeliveryDate(nil)
		if err != nil || got.Location() != time.UTC {
			t.Fatalf("expected UTC date, got %v err=%v", got, err)
		}
	})

	for _, raw := range []string{"", "11/03/2026", "2026-02-30", "2026-03-11T10:00:00Z"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := ConvertQuotationRequest{DeliveryDate: raw}.ResolveDeliveryDate(bogota)
			if !errors.Is(err, ErrInvalidDeliveryDate) {
				t.Fatalf("expected ErrInvalidDeliveryDate, got %v", err)
			}
		})
	}
}

func TestSendQuotationEmailRequest_ToInput(t *testing.T) {
	in := SendQuotationEmailRequest{QuotationID: " Q001", Recipient: " a@b.co ", Subject: "Hola", Body: " cuerpo "}.ToInput()
	if in.QuotationID != "Q001" || in.Recipient != "a@b.co" || in.Subject != "Hola" || in.Body != " cuerpo " {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestCreateQuotationRequest_ToInput(t *testing.T) {
	var req CreateQuotationRequest
	body := `{
		"client": {"clientId": "C-9", "name": "Tornillos SAS", "email": "compras@tornillo.example"},
		"items": [
			{"productId": "P1", "productName": "Tornillo", "quantity": 10, "unitPrice": "12.50", "discountPercent": 10},
			{"productId": "P2", "productName": "Tuerca", "quantity": "3", "unitPrice": 4}
		],
		"paymentTerms": "30 días",
		"issueDate": "2026-03-10",
		"validityDays": 15
	}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	in, err := req.ToInput(time.UTC)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.Client.ClientID != "C-9" || in.Client.Email != "compras@tornillo.example" {
		t.Fatalf("unexpected client %+v", in.Client)
	}
	if len(in.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(in.Items))
	}
	if !in.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.5")) || !in.Items[0].DiscountPercent.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected first item %+v", in.Items[0])
	}
	if !in.Items[1].DiscountPercent.IsZero() || !in.Items[1].Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("unexpected second item %+v", in.Items[1])
	}
	if !in.IssueDate.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) || in.ValidityDays != 15 {
		t.Fatalf("unexpected dates issue=%v validity=%d", in.IssueDate, in.ValidityDays)
	}

	t.Run("blank issue date is left for the use case", func(t *testing.T) {
		in, err := CreateQuotationRequest{}.ToInput(time.UTC)
		if err != nil || !in.IssueDate.IsZero() {
			t.Fatalf("expected zero issue date, got %v err=%v", in.IssueDate, err)
		}
	})

	t.Run("bad issue date", func(t *testing.T) {
		if _, err := (CreateQuotationRequest{IssueDate: "mañana"}).ToInput(time.UTC); !errors.Is(err, ErrInvalidIssueDate) {
			t.Fatalf("expected ErrInvalidIssueDate, got %v", err)
		}
	})
}
