package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// rollbackTimeout bounds the compensation writes, which run even if the
// caller's context is already cancelled.
const rollbackTimeout = 10 * time.Second

// ConversionResult carries the codes generated by a conversion.
type ConversionResult struct {
	OrderID       string
	OrderCode     string
	RemissionID   string
	RemissionCode string
}

// Convert ("remisionar") turns one quotation into exactly one order and one
// remission, or into neither.
//
// The order code is always allocated before the remission code. The quotation
// status write is conditional on the status read at the start, so of two
// concurrent conversions only one can win; the other gets ErrIllegalTransition.
// No email is sent.
func (u *QuotationLifecycleUseCase) Convert(ctx context.Context, actor entities.Actor, quotationID string, deliveryDate time.Time, observation string) (ConversionResult, error) {
	quotationID = strings.TrimSpace(quotationID)
	log.Printf("[quotation][usecase] convert start quotation_id=%s actor=%s delivery_date=%s", quotationID, actor.ID, deliveryDate.Format(time.DateOnly))
	if quotationID == "" {
		return ConversionResult{}, newValidationError("quotationId", "is required")
	}

	q, err := u.loadQuotation(ctx, quotationID)
	if err != nil {
		return ConversionResult{}, err
	}
	if err := u.authorize(ctx, actor, entities.CapabilityQuotationConvert); err != nil {
		return ConversionResult{}, err
	}
	next, ok := q.Status.NextStatus(entities.QuotationEventConvert)
	if !ok {
		log.Printf("[quotation][usecase] convert rejected quotation_id=%s status=%s", q.ID, q.Status)
		return ConversionResult{}, illegalTransition(q.Status, entities.QuotationEventConvert)
	}
	if len(q.Items) == 0 {
		return ConversionResult{}, newValidationError("items", "quotation has no items")
	}
	if deliveryDate.IsZero() {
		return ConversionResult{}, newValidationError("deliveryDate", "is required")
	}
	delivery := entities.DateOnly(deliveryDate, u.loc)
	today := entities.CivilDate(u.now(), u.loc)
	if delivery.Before(today) {
		return ConversionResult{}, newValidationError("deliveryDate", fmt.Sprintf("must not be before %s", today.Format(time.DateOnly)))
	}

	orderItems := make([]entities.OrderItem, 0, len(q.Items))
	remissionItems := make([]entities.RemissionItem, 0, len(q.Items))
	for _, it := range q.Items {
		orderItems = append(orderItems, it.ToOrderItem())
		remissionItems = append(remissionItems, it.ToRemissionItem())
	}

	orderCode, err := u.sequences.NextCode(ctx, entities.DocumentKindOrder)
	if err != nil {
		log.Printf("[quotation][usecase] convert order code failed quotation_id=%s err=%v", q.ID, err)
		return ConversionResult{}, dependencyFailure("allocate order code", err)
	}
	remissionCode, err := u.sequences.NextCode(ctx, entities.DocumentKindRemission)
	if err != nil {
		log.Printf("[quotation][usecase] convert remission code failed quotation_id=%s err=%v", q.ID, err)
		return ConversionResult{}, dependencyFailure("allocate remission code", err)
	}

	now := u.now().UTC()
	order := entities.Order{
		ID:            uuid.NewString(),
		Code:          orderCode,
		Client:        q.Client.Ref(),
		QuotationID:   q.ID,
		QuotationCode: q.Code,
		Items:         orderItems,
		Total:         entities.SumOrderItems(orderItems),
		DeliveryDate:  delivery,
		Observation:   observation,
		Status:        entities.OrderStatusEntregado,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	remission := entities.Remission{
		ID:            uuid.NewString(),
		Code:          remissionCode,
		Client:        q.Client,
		Items:         remissionItems,
		Total:         entities.SumRemissionItems(remissionItems),
		DeliveryDate:  delivery,
		Observation:   observation,
		OrderCode:     orderCode,
		QuotationCode: q.Code,
		Status:        entities.RemissionStatusActiva,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
	}

	unit := interfaces.ConversionUnit{
		QuotationID:    q.ID,
		ExpectedStatus: q.Status,
		Order:          order,
		Remission:      remission,
	}
	if err := u.persistConversion(ctx, unit, next); err != nil {
		return ConversionResult{}, err
	}

	log.Printf("[quotation][usecase] convert success quotation_id=%s order_code=%s remission_code=%s", q.ID, orderCode, remissionCode)
	return ConversionResult{
		OrderID:       order.ID,
		OrderCode:     orderCode,
		RemissionID:   remission.ID,
		RemissionCode: remissionCode,
	}, nil
}

func (u *QuotationLifecycleUseCase) persistConversion(ctx context.Context, unit interfaces.ConversionUnit, next entities.QuotationStatus) error {
	if u.transactor != nil {
		err := u.transactor.CommitConversion(ctx, unit)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, interfaces.ErrStatusConflict):
			log.Printf("[quotation][usecase] convert lost race quotation_id=%s expected=%s", unit.QuotationID, unit.ExpectedStatus)
			return illegalTransition(unit.ExpectedStatus, entities.QuotationEventConvert)
		default:
			log.Printf("[quotation][usecase] convert commit failed quotation_id=%s err=%v", unit.QuotationID, err)
			return dependencyFailure("commit conversion", err)
		}
	}
	return u.persistConversionStepwise(ctx, unit, next)
}

// persistConversionStepwise claims the quotation first, then writes the order
// and the remission. Any failure after the claim is undone before returning.
func (u *QuotationLifecycleUseCase) persistConversionStepwise(ctx context.Context, unit interfaces.ConversionUnit, next entities.QuotationStatus) error {
	if _, err := u.quotations.UpdateStatus(ctx, unit.QuotationID, unit.ExpectedStatus, next); err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			log.Printf("[quotation][usecase] convert lost race quotation_id=%s expected=%s", unit.QuotationID, unit.ExpectedStatus)
			return illegalTransition(unit.ExpectedStatus, entities.QuotationEventConvert)
		}
		return dependencyFailure("claim quotation", err)
	}

	if _, err := u.orders.Create(ctx, unit.Order); err != nil {
		return u.rollbackConversion(ctx, unit, next, false, dependencyFailure("create order", err))
	}
	if _, err := u.remissions.Create(ctx, unit.Remission); err != nil {
		return u.rollbackConversion(ctx, unit, next, true, dependencyFailure("create remission", err))
	}
	return nil
}

func (u *QuotationLifecycleUseCase) rollbackConversion(ctx context.Context, unit interfaces.ConversionUnit, claimed entities.QuotationStatus, orderCreated bool, cause error) error {
	log.Printf("[quotation][usecase] convert rollback start quotation_id=%s order_created=%t cause=%v", unit.QuotationID, orderCreated, cause)
	rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	var failures []error
	if orderCreated {
		if err := u.orders.Delete(rbCtx, unit.Order.ID); err != nil {
			failures = append(failures, fmt.Errorf("delete order %s: %w", unit.Order.ID, err))
		}
	}
	if _, err := u.quotations.UpdateStatus(rbCtx, unit.QuotationID, claimed, unit.ExpectedStatus); err != nil {
		failures = append(failures, fmt.Errorf("restore quotation %s to %s: %w", unit.QuotationID, unit.ExpectedStatus, err))
	}

	if len(failures) > 0 {
		rbErr := errors.Join(failures...)
		log.Printf("[quotation][usecase] convert rollback FAILED quotation_id=%s err=%v", unit.QuotationID, rbErr)
		return errors.Join(cause, fmt.Errorf("rollback incomplete: %w", rbErr))
	}
	log.Printf("[quotation][usecase] convert rollback done quotation_id=%s", unit.QuotationID)
	return cause
}
