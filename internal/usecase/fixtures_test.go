package usecase

import (
	"testing"
	"time"

	"gestion_comercial/internal/domain/entities"
	mock_interfaces "gestion_comercial/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var bogota = time.FixedZone("COT", -5*3600)

// 2026-03-10 15:00 in Bogota.
var fixedNow = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

type lifecycleMocks struct {
	quotations  *mock_interfaces.MockIQuotationRepository
	orders      *mock_interfaces.MockIOrderRepository
	remissions  *mock_interfaces.MockIRemissionRepository
	transactor  *mock_interfaces.MockIConversionTransactor
	sequences   *mock_interfaces.MockISequenceGenerator
	notifier    *mock_interfaces.MockINotificationGateway
	permissions *mock_interfaces.MockIPermissionOracle
}

// newLifecycle builds the use case over fresh mocks. withTransactor selects
// the atomic conversion path; otherwise conversions run step by step.
func newLifecycle(t *testing.T, withTransactor bool) (*QuotationLifecycleUseCase, lifecycleMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := lifecycleMocks{
		quotations:  mock_interfaces.NewMockIQuotationRepository(ctrl),
		orders:      mock_interfaces.NewMockIOrderRepository(ctrl),
		remissions:  mock_interfaces.NewMockIRemissionRepository(ctrl),
		transactor:  mock_interfaces.NewMockIConversionTransactor(ctrl),
		sequences:   mock_interfaces.NewMockISequenceGenerator(ctrl),
		notifier:    mock_interfaces.NewMockINotificationGateway(ctrl),
		permissions: mock_interfaces.NewMockIPermissionOracle(ctrl),
	}
	deps := LifecycleDependencies{
		Quotations:  m.quotations,
		Orders:      m.orders,
		Remissions:  m.remissions,
		Sequences:   m.sequences,
		Notifier:    m.notifier,
		Permissions: m.permissions,
		Clock:       func() time.Time { return fixedNow },
		Location:    bogota,
	}
	if withTransactor {
		deps.Transactor = m.transactor
	}
	return NewQuotationLifecycleUseCase(deps), m
}

func seller() entities.Actor {
	return entities.Actor{ID: "user-7", Email: "ventas@example.com", Name: "Ventas"}
}

// pendingQuotation is Q001: two lines totalling 500.00.
func pendingQuotation() entities.Quotation {
	q := entities.Quotation{
		ID:   "q-001",
		Code: "COT-000045",
		Client: entities.ClientSnapshot{
			ClientID: "c-1",
			Name:     "Ferretería El Tornillo",
			Email:    "compras@tornillo.example",
			City:     "Bogotá",
		},
		Items: []entities.QuotationItem{
			entities.NewQuotationItem("p-1", "Taladro", decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.Zero),
			entities.NewQuotationItem("p-2", "Pulidora", decimal.NewFromInt(1), decimal.NewFromInt(375), decimal.NewFromInt(20)),
		},
		PaymentTerms: "30 días",
		IssueDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidityDays: 30,
		Status:       entities.QuotationStatusPendiente,
	}
	q.RecalculateTotals()
	return q
}

func tomorrow() time.Time {
	return time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
}
