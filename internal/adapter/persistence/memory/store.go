package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

// Store keeps quotations, orders and remissions in process memory.
//
// Every write holds the store mutex for its whole duration, so a conversion
// committed through CommitConversion is observed all at once or not at all.
// Documents are copied on the way in and out; callers never share slices with
// the store.
type Store struct {
	mu sync.Mutex

	quotations map[string]entities.Quotation
	orders     map[string]entities.Order
	remissions map[string]entities.Remission
	codes      map[string]string

	now func() time.Time
}

var _ interfaces.IConversionTransactor = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		quotations: map[string]entities.Quotation{},
		orders:     map[string]entities.Order{},
		remissions: map[string]entities.Remission{},
		codes:      map[string]string{},
		now:        time.Now,
	}
}

func (s *Store) Quotations() *QuotationRepository { return &QuotationRepository{s: s} }
func (s *Store) Orders() *OrderRepository         { return &OrderRepository{s: s} }
func (s *Store) Remissions() *RemissionRepository { return &RemissionRepository{s: s} }

// Counts reports how many documents of each collection exist.
func (s *Store) Counts() (quotations, orders, remissions int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quotations), len(s.orders), len(s.remissions)
}

func (s *Store) CommitConversion(ctx context.Context, unit interfaces.ConversionUnit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotations[unit.QuotationID]
	if !ok || q.Status != unit.ExpectedStatus {
		return interfaces.ErrStatusConflict
	}
	next, ok := q.Status.NextStatus(entities.QuotationEventConvert)
	if !ok {
		return interfaces.ErrStatusConflict
	}
	if _, ok := s.orders[unit.Order.ID]; ok {
		return fmt.Errorf("order %s already exists", unit.Order.ID)
	}
	if _, ok := s.remissions[unit.Remission.ID]; ok {
		return fmt.Errorf("remission %s already exists", unit.Remission.ID)
	}
	if err := s.checkCodesLocked(unit.Order.Code, unit.Remission.Code); err != nil {
		return err
	}

	q.Status = next
	q.UpdatedAt = s.now().UTC()
	s.quotations[q.ID] = q
	s.orders[unit.Order.ID] = copyOrder(unit.Order)
	s.remissions[unit.Remission.ID] = copyRemission(unit.Remission)
	s.codes[unit.Order.Code] = unit.Order.ID
	s.codes[unit.Remission.Code] = unit.Remission.ID
	return nil
}

func (s *Store) checkCodesLocked(codes ...string) error {
	for _, c := range codes {
		if _, taken := s.codes[c]; taken {
			return fmt.Errorf("%w: %s", interfaces.ErrDuplicateCode, c)
		}
	}
	return nil
}

func copyQuotation(q entities.Quotation) entities.Quotation {
	q.Items = append([]entities.QuotationItem(nil), q.Items...)
	return q
}

func copyOrder(o entities.Order) entities.Order {
	o.Items = append([]entities.OrderItem(nil), o.Items...)
	return o
}

func copyRemission(r entities.Remission) entities.Remission {
	r.Items = append([]entities.RemissionItem(nil), r.Items...)
	return r
}
