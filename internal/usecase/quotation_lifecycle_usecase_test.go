package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestQuotationLifecycleUseCase_CreateQuotation(t *testing.T) {
	validInput := func() CreateQuotationInput {
		return CreateQuotationInput{
			Client: entities.ClientSnapshot{ClientID: "c-1", Name: " Ferretería El Tornillo ", Email: "compras@tornillo.example"},
			Items: []QuotationItemInput{
				{ProductID: "p-1", ProductName: "Taladro", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("99.99"), DiscountPercent: decimal.NewFromInt(10)},
			},
		}
	}

	t.Run("forbidden before validation", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), entities.CapabilityQuotationCreate).Return(false, nil)

		_, err := uc.CreateQuotation(context.Background(), seller(), CreateQuotationInput{})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	invalid := []struct {
		name  string
		edit  func(in *CreateQuotationInput)
		field string
	}{
		{"missing client", func(in *CreateQuotationInput) { in.Client.ClientID = "" }, "client.clientId"},
		{"no items", func(in *CreateQuotationInput) { in.Items = nil }, "items"},
		{"zero quantity", func(in *CreateQuotationInput) { in.Items[0].Quantity = decimal.Zero }, "items[0].quantity"},
		{"negative price", func(in *CreateQuotationInput) { in.Items[0].UnitPrice = decimal.NewFromInt(-1) }, "items[0].unitPrice"},
		{"discount over 100", func(in *CreateQuotationInput) { in.Items[0].DiscountPercent = decimal.NewFromInt(101) }, "items[0].discountPercent"},
		{"negative validity", func(in *CreateQuotationInput) { in.ValidityDays = -1 }, "validityDays"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newLifecycle(t, true)
			m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			in := validInput()
			tc.edit(&in)

			_, err := uc.CreateQuotation(context.Background(), seller(), in)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected ValidationError on %s, got %v", tc.field, err)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.sequences.EXPECT().NextCode(gomock.Any(), entities.DocumentKindQuotation).Return("COT-000046", nil)
		m.quotations.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quotation{})).DoAndReturn(
			func(_ context.Context, q entities.Quotation) (entities.Quotation, error) {
				if q.ID == "" || q.Code != "COT-000046" || q.Status != entities.QuotationStatusPendiente || q.EmailSent {
					t.Fatalf("unexpected quotation: %+v", q)
				}
				if q.Client.Name != "Ferretería El Tornillo" || q.CreatedBy != "user-7" {
					t.Fatalf("unexpected quotation header: %+v", q)
				}
				if !q.Total.Equal(decimal.RequireFromString("179.98")) {
					t.Fatalf("expected total 179.98, got %s", q.Total)
				}
				if q.IssueDate.Format(time.DateOnly) != "2026-03-10" || q.ValidityDays != defaultValidityDays {
					t.Fatalf("unexpected dates: %s %d", q.IssueDate, q.ValidityDays)
				}
				return q, nil
			},
		)

		res, err := uc.CreateQuotation(context.Background(), seller(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.TotalsConsistent() {
			t.Fatalf("expected consistent totals: %+v", res)
		}
	})

	t.Run("persist failure", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.sequences.EXPECT().NextCode(gomock.Any(), entities.DocumentKindQuotation).Return("COT-000046", nil)
		m.quotations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quotation{}, interfaces.ErrDuplicateCode)

		_, err := uc.CreateQuotation(context.Background(), seller(), validInput())
		if !errors.Is(err, ErrDependencyFailure) || !errors.Is(err, interfaces.ErrDuplicateCode) {
			t.Fatalf("expected wrapped ErrDuplicateCode, got %v", err)
		}
	})
}

func TestQuotationLifecycleUseCase_CancelQuotation(t *testing.T) {
	for _, from := range []entities.QuotationStatus{entities.QuotationStatusPendiente, entities.QuotationStatusEnviada} {
		t.Run("from "+string(from), func(t *testing.T) {
			uc, m := newLifecycle(t, true)
			q := pendingQuotation()
			q.Status = from
			m.quotations.EXPECT().GetByID(gomock.Any(), "q-001").Return(q, nil)
			m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), entities.CapabilityQuotationCancel).Return(true, nil)
			m.quotations.EXPECT().UpdateStatus(gomock.Any(), "q-001", from, entities.QuotationStatusAnulada).
				Return(entities.Quotation{ID: "q-001", Status: entities.QuotationStatusAnulada}, nil)

			res, err := uc.CancelQuotation(context.Background(), seller(), " q-001 ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != entities.QuotationStatusAnulada {
				t.Fatalf("unexpected status %s", res.Status)
			}
		})
	}

	t.Run("terminal quotation", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		q := pendingQuotation()
		q.Status = entities.QuotationStatusRemisionada
		m.quotations.EXPECT().GetByID(gomock.Any(), "q-001").Return(q, nil)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := uc.CancelQuotation(context.Background(), seller(), "q-001")
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("lost race", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.quotations.EXPECT().GetByID(gomock.Any(), "q-001").Return(pendingQuotation(), nil)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		m.quotations.EXPECT().UpdateStatus(gomock.Any(), "q-001", gomock.Any(), gomock.Any()).Return(entities.Quotation{}, interfaces.ErrStatusConflict)

		_, err := uc.CancelQuotation(context.Background(), seller(), "q-001")
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("load failure", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.quotations.EXPECT().GetByID(gomock.Any(), "q-001").Return(entities.Quotation{}, errors.New("db"))

		_, err := uc.CancelQuotation(context.Background(), seller(), "q-001")
		if !errors.Is(err, ErrDependencyFailure) {
			t.Fatalf("expected ErrDependencyFailure, got %v", err)
		}
	})
}

func TestQuotationLifecycleUseCase_Getters(t *testing.T) {
	t.Run("quotation", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.quotations.EXPECT().GetByID(gomock.Any(), "q-001").Return(pendingQuotation(), nil)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), entities.CapabilityQuotationView).Return(true, nil)

		q, err := uc.GetQuotation(context.Background(), seller(), "q-001")
		if err != nil || q.Code != "COT-000045" {
			t.Fatalf("unexpected result: %+v %v", q, err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{}, nil)

		_, err := uc.GetOrder(context.Background(), seller(), "o-1")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("order forbidden", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1"}, nil)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), entities.CapabilityOrderView).Return(false, nil)

		_, err := uc.GetOrder(context.Background(), seller(), "o-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("remission", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.remissions.EXPECT().GetByID(gomock.Any(), "r-1").Return(entities.Remission{ID: "r-1", Code: "REM-000087"}, nil)
		m.permissions.EXPECT().HasCapability(gomock.Any(), gomock.Any(), entities.CapabilityRemissionView).Return(true, nil)

		r, err := uc.GetRemission(context.Background(), seller(), "r-1")
		if err != nil || r.Code != "REM-000087" {
			t.Fatalf("unexpected result: %+v %v", r, err)
		}
	})

	t.Run("remission store failure", func(t *testing.T) {
		uc, m := newLifecycle(t, true)
		m.remissions.EXPECT().GetByID(gomock.Any(), "r-1").Return(entities.Remission{}, errors.New("db"))

		_, err := uc.GetRemission(context.Background(), seller(), "r-1")
		if !errors.Is(err, ErrDependencyFailure) {
			t.Fatalf("expected ErrDependencyFailure, got %v", err)
		}
	})
}
