package memory

import (
	"context"
	"fmt"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

type QuotationRepository struct {
	s *Store
}

var _ interfaces.IQuotationRepository = (*QuotationRepository)(nil)

func (r *QuotationRepository) Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return entities.Quotation{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.quotations[q.ID]; ok {
		return entities.Quotation{}, fmt.Errorf("quotation %s already exists", q.ID)
	}
	if err := r.s.checkCodesLocked(q.Code); err != nil {
		return entities.Quotation{}, err
	}
	r.s.quotations[q.ID] = copyQuotation(q)
	r.s.codes[q.Code] = q.ID
	return copyQuotation(q), nil
}

func (r *QuotationRepository) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return entities.Quotation{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyQuotation(r.s.quotations[id]), nil
}

func (r *QuotationRepository) UpdateStatus(ctx context.Context, id string, expected, next entities.QuotationStatus) (entities.Quotation, error) {
	return r.swap(ctx, id, expected, func(q *entities.Quotation) {
		q.Status = next
	})
}

func (r *QuotationRepository) MarkEmailSent(ctx context.Context, id string, expected, next entities.QuotationStatus) (entities.Quotation, error) {
	return r.swap(ctx, id, expected, func(q *entities.Quotation) {
		q.Status = next
		q.EmailSent = true
	})
}

func (r *QuotationRepository) SetEmailSent(ctx context.Context, id string) (entities.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return entities.Quotation{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.quotations[id]
	if !ok {
		return entities.Quotation{}, nil
	}
	q.EmailSent = true
	q.UpdatedAt = r.s.now().UTC()
	r.s.quotations[id] = q
	return copyQuotation(q), nil
}

// swap applies mutate only if the quotation is still in the expected status.
// A missing quotation yields a zero value and no error.
func (r *QuotationRepository) swap(ctx context.Context, id string, expected entities.QuotationStatus, mutate func(q *entities.Quotation)) (entities.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return entities.Quotation{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.quotations[id]
	if !ok {
		return entities.Quotation{}, nil
	}
	if q.Status != expected {
		return entities.Quotation{}, interfaces.ErrStatusConflict
	}
	mutate(&q)
	q.UpdatedAt = r.s.now().UTC()
	r.s.quotations[id] = q
	return copyQuotation(q), nil
}
