package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

func seedQuotation(t *testing.T, s *Store, status entities.QuotationStatus) {
	t.Helper()
	_, err := s.Quotations().Create(context.Background(), entities.Quotation{ID: "q-1", Code: "COT-000001", Status: status})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func conversionUnit(expected entities.QuotationStatus) interfaces.ConversionUnit {
	return interfaces.ConversionUnit{
		QuotationID:    "q-1",
		ExpectedStatus: expected,
		Order:          entities.Order{ID: "o-1", Code: "PED-000001"},
		Remission:      entities.Remission{ID: "r-1", Code: "REM-000001"},
	}
}

func TestStore_CommitConversion(t *testing.T) {
	t.Run("writes everything", func(t *testing.T) {
		s := NewStore()
		seedQuotation(t, s, entities.QuotationStatusEnviada)

		if err := s.CommitConversion(context.Background(), conversionUnit(entities.QuotationStatusEnviada)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q, _ := s.Quotations().GetByID(context.Background(), "q-1")
		if q.Status != entities.QuotationStatusRemisionada {
			t.Fatalf("unexpected status %s", q.Status)
		}
		if _, o, r := s.Counts(); o != 1 || r != 1 {
			t.Fatalf("expected one order and one remission, got %d %d", o, r)
		}
	})

	t.Run("stale status writes nothing", func(t *testing.T) {
		s := NewStore()
		seedQuotation(t, s, entities.QuotationStatusAnulada)

		err := s.CommitConversion(context.Background(), conversionUnit(entities.QuotationStatusPendiente))
		if !errors.Is(err, interfaces.ErrStatusConflict) {
			t.Fatalf("expected ErrStatusConflict, got %v", err)
		}
		if _, o, r := s.Counts(); o != 0 || r != 0 {
			t.Fatalf("expected no documents, got %d %d", o, r)
		}
	})

	t.Run("duplicate code writes nothing", func(t *testing.T) {
		s := NewStore()
		seedQuotation(t, s, entities.QuotationStatusPendiente)
		unit := conversionUnit(entities.QuotationStatusPendiente)
		unit.Remission.Code = "COT-000001"

		err := s.CommitConversion(context.Background(), unit)
		if !errors.Is(err, interfaces.ErrDuplicateCode) {
			t.Fatalf("expected ErrDuplicateCode, got %v", err)
		}
		q, _ := s.Quotations().GetByID(context.Background(), "q-1")
		if q.Status != entities.QuotationStatusPendiente {
			t.Fatalf("status changed to %s", q.Status)
		}
	})
}

func TestQuotationRepository_Swap(t *testing.T) {
	s := NewStore()
	seedQuotation(t, s, entities.QuotationStatusPendiente)
	repo := s.Quotations()

	t.Run("missing quotation", func(t *testing.T) {
		q, err := repo.UpdateStatus(context.Background(), "nope", entities.QuotationStatusPendiente, entities.QuotationStatusAnulada)
		if err != nil || q.ID != "" {
			t.Fatalf("expected zero value, got %+v %v", q, err)
		}
	})

	t.Run("mark sent", func(t *testing.T) {
		q, err := repo.MarkEmailSent(context.Background(), "q-1", entities.QuotationStatusPendiente, entities.QuotationStatusEnviada)
		if err != nil || !q.EmailSent || q.Status != entities.QuotationStatusEnviada {
			t.Fatalf("unexpected result %+v %v", q, err)
		}
	})

	t.Run("stale expectation", func(t *testing.T) {
		_, err := repo.UpdateStatus(context.Background(), "q-1", entities.QuotationStatusPendiente, entities.QuotationStatusAnulada)
		if !errors.Is(err, interfaces.ErrStatusConflict) {
			t.Fatalf("expected ErrStatusConflict, got %v", err)
		}
	})
}

func TestQuotationRepository_SetEmailSent(t *testing.T) {
	s := NewStore()
	seedQuotation(t, s, entities.QuotationStatusRemisionada)

	q, err := s.Quotations().SetEmailSent(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.EmailSent || q.Status != entities.QuotationStatusRemisionada {
		t.Fatalf("expected flag raised and status kept, got %+v", q)
	}

	missing, err := s.Quotations().SetEmailSent(context.Background(), "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero quotation for unknown id, got %+v err=%v", missing, err)
	}
}

func TestOrderRepository_DeleteReleasesCode(t *testing.T) {
	s := NewStore()
	orders := s.Orders()
	o := entities.Order{ID: "o-1", Code: "PED-000009"}
	if _, err := orders.Create(context.Background(), o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := orders.Create(context.Background(), entities.Order{ID: "o-2", Code: "PED-000009"}); !errors.Is(err, interfaces.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
	if err := orders.Delete(context.Background(), "o-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := orders.Create(context.Background(), entities.Order{ID: "o-2", Code: "PED-000009"}); err != nil {
		t.Fatalf("expected code to be free again, got %v", err)
	}
}

func TestSequenceGenerator_NextCode(t *testing.T) {
	t.Run("continues from seed", func(t *testing.T) {
		g := NewSequenceGenerator(map[entities.DocumentKind]int64{entities.DocumentKindOrder: 122})
		code, err := g.NextCode(context.Background(), entities.DocumentKindOrder)
		if err != nil || code != "PED-000123" {
			t.Fatalf("unexpected %q %v", code, err)
		}
		code, err = g.NextCode(context.Background(), entities.DocumentKindRemission)
		if err != nil || code != "REM-000001" {
			t.Fatalf("unexpected %q %v", code, err)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		g := NewSequenceGenerator(nil)
		if _, err := g.NextCode(context.Background(), entities.DocumentKind("invoice")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unique under concurrency", func(t *testing.T) {
		g := NewSequenceGenerator(nil)
		const n = 200
		codes := make(chan string, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				code, err := g.NextCode(context.Background(), entities.DocumentKindQuotation)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				codes <- code
			}()
		}
		wg.Wait()
		close(codes)

		seen := map[string]bool{}
		for c := range codes {
			if seen[c] {
				t.Fatalf("duplicate code %s", c)
			}
			seen[c] = true
		}
		if len(seen) != n || !seen["COT-000200"] {
			t.Fatalf("expected %d distinct codes ending at COT-000200, got %d", n, len(seen))
		}
	})
}
