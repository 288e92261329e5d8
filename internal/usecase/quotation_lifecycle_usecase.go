package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultValidityDays = 30

// IQuotationLifecycleUseCase exposes the sales-document lifecycle.
//
//   - "Crear cotización"    => CreateQuotation()
//   - "Enviar por correo"   => SendQuotationEmail()
//   - "Remisionar"          => Convert()
//   - "Anular"              => CancelQuotation()
type IQuotationLifecycleUseCase interface {
	CreateQuotation(ctx context.Context, actor entities.Actor, in CreateQuotationInput) (entities.Quotation, error)
	GetQuotation(ctx context.Context, actor entities.Actor, id string) (entities.Quotation, error)
	Convert(ctx context.Context, actor entities.Actor, quotationID string, deliveryDate time.Time, observation string) (ConversionResult, error)
	SendQuotationEmail(ctx context.Context, actor entities.Actor, in SendQuotationEmailInput) (entities.Quotation, error)
	CancelQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error)
	GetOrder(ctx context.Context, actor entities.Actor, id string) (entities.Order, error)
	GetRemission(ctx context.Context, actor entities.Actor, id string) (entities.Remission, error)
}

// LifecycleDependencies are the collaborators of the lifecycle engine.
//
// Transactor is optional. Without it, Convert writes step by step and undoes
// what it wrote when a later step fails.
type LifecycleDependencies struct {
	Quotations  interfaces.IQuotationRepository
	Orders      interfaces.IOrderRepository
	Remissions  interfaces.IRemissionRepository
	Transactor  interfaces.IConversionTransactor
	Sequences   interfaces.ISequenceGenerator
	Notifier    interfaces.INotificationGateway
	Permissions interfaces.IPermissionOracle

	Clock               func() time.Time
	Location            *time.Location
	DefaultValidityDays int
}

type QuotationLifecycleUseCase struct {
	quotations  interfaces.IQuotationRepository
	orders      interfaces.IOrderRepository
	remissions  interfaces.IRemissionRepository
	transactor  interfaces.IConversionTransactor
	sequences   interfaces.ISequenceGenerator
	notifier    interfaces.INotificationGateway
	permissions interfaces.IPermissionOracle

	now          func() time.Time
	loc          *time.Location
	validityDays int
}

var _ IQuotationLifecycleUseCase = (*QuotationLifecycleUseCase)(nil)

func NewQuotationLifecycleUseCase(deps LifecycleDependencies) *QuotationLifecycleUseCase {
	u := &QuotationLifecycleUseCase{
		quotations:   deps.Quotations,
		orders:       deps.Orders,
		remissions:   deps.Remissions,
		transactor:   deps.Transactor,
		sequences:    deps.Sequences,
		notifier:     deps.Notifier,
		permissions:  deps.Permissions,
		now:          deps.Clock,
		loc:          deps.Location,
		validityDays: deps.DefaultValidityDays,
	}
	if u.now == nil {
		u.now = time.Now
	}
	if u.loc == nil {
		u.loc = time.UTC
	}
	if u.validityDays <= 0 {
		u.validityDays = defaultValidityDays
	}
	return u
}

// QuotationItemInput is one requested line of a new quotation.
type QuotationItemInput struct {
	ProductID       string
	ProductName     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

type CreateQuotationInput struct {
	Client       entities.ClientSnapshot
	Items        []QuotationItemInput
	Description  string
	PaymentTerms string
	// IssueDate defaults to today.
	IssueDate time.Time
	// ValidityDays defaults to the configured validity.
	ValidityDays int
}

func (u *QuotationLifecycleUseCase) CreateQuotation(ctx context.Context, actor entities.Actor, in CreateQuotationInput) (entities.Quotation, error) {
	log.Printf("[quotation][usecase] create start actor=%s items=%d", actor.ID, len(in.Items))
	if err := u.authorize(ctx, actor, entities.CapabilityQuotationCreate); err != nil {
		return entities.Quotation{}, err
	}

	client := in.Client
	client.ClientID = strings.TrimSpace(client.ClientID)
	client.Name = strings.TrimSpace(client.Name)
	client.Email = strings.TrimSpace(client.Email)
	if client.ClientID == "" {
		return entities.Quotation{}, newValidationError("client.clientId", "is required")
	}
	if client.Name == "" {
		return entities.Quotation{}, newValidationError("client.name", "is required")
	}
	if in.ValidityDays < 0 {
		return entities.Quotation{}, newValidationError("validityDays", "must not be negative")
	}
	items, err := buildQuotationItems(in.Items)
	if err != nil {
		return entities.Quotation{}, err
	}

	code, err := u.sequences.NextCode(ctx, entities.DocumentKindQuotation)
	if err != nil {
		log.Printf("[quotation][usecase] create sequence failed actor=%s err=%v", actor.ID, err)
		return entities.Quotation{}, dependencyFailure("allocate quotation code", err)
	}

	now := u.now()
	issueDate := entities.CivilDate(now, u.loc)
	if !in.IssueDate.IsZero() {
		issueDate = entities.DateOnly(in.IssueDate, u.loc)
	}
	validity := in.ValidityDays
	if validity == 0 {
		validity = u.validityDays
	}

	q := entities.Quotation{
		ID:           uuid.NewString(),
		Code:         code,
		Client:       client,
		Items:        items,
		Description:  in.Description,
		PaymentTerms: in.PaymentTerms,
		IssueDate:    issueDate,
		ValidityDays: validity,
		Status:       entities.QuotationStatusPendiente,
		CreatedBy:    actor.ID,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	q.RecalculateTotals()

	created, err := u.quotations.Create(ctx, q)
	if err != nil {
		log.Printf("[quotation][usecase] create persist failed code=%s err=%v", code, err)
		return entities.Quotation{}, dependencyFailure("persist quotation", err)
	}
	log.Printf("[quotation][usecase] create success quotation_id=%s code=%s total=%s", created.ID, created.Code, created.Total.StringFixed(entities.MoneyPlaces))
	return created, nil
}

func buildQuotationItems(in []QuotationItemInput) ([]entities.QuotationItem, error) {
	if len(in) == 0 {
		return nil, newValidationError("items", "must contain at least one item")
	}
	items := make([]entities.QuotationItem, 0, len(in))
	for i, it := range in {
		field := func(name string) string { return "items[" + strconv.Itoa(i) + "]." + name }
		productID := strings.TrimSpace(it.ProductID)
		if productID == "" {
			return nil, newValidationError(field("productId"), "is required")
		}
		if !it.Quantity.IsPositive() {
			return nil, newValidationError(field("quantity"), "must be greater than zero")
		}
		if it.UnitPrice.IsNegative() {
			return nil, newValidationError(field("unitPrice"), "must not be negative")
		}
		if it.DiscountPercent.IsNegative() || it.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, newValidationError(field("discountPercent"), "must be between 0 and 100")
		}
		items = append(items, entities.NewQuotationItem(productID, strings.TrimSpace(it.ProductName), it.Quantity, it.UnitPrice, it.DiscountPercent))
	}
	return items, nil
}

func (u *QuotationLifecycleUseCase) GetQuotation(ctx context.Context, actor entities.Actor, id string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, newValidationError("quotationId", "is required")
	}
	q, err := u.loadQuotation(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if err := u.authorize(ctx, actor, entities.CapabilityQuotationView); err != nil {
		return entities.Quotation{}, err
	}
	return q, nil
}

func (u *QuotationLifecycleUseCase) CancelQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error) {
	quotationID = strings.TrimSpace(quotationID)
	log.Printf("[quotation][usecase] cancel start quotation_id=%s actor=%s", quotationID, actor.ID)
	if quotationID == "" {
		return entities.Quotation{}, newValidationError("quotationId", "is required")
	}

	q, err := u.loadQuotation(ctx, quotationID)
	if err != nil {
		return entities.Quotation{}, err
	}
	if err := u.authorize(ctx, actor, entities.CapabilityQuotationCancel); err != nil {
		return entities.Quotation{}, err
	}
	next, ok := q.Status.NextStatus(entities.QuotationEventCancel)
	if !ok {
		log.Printf("[quotation][usecase] cancel rejected quotation_id=%s status=%s", q.ID, q.Status)
		return entities.Quotation{}, illegalTransition(q.Status, entities.QuotationEventCancel)
	}

	updated, err := u.quotations.UpdateStatus(ctx, q.ID, q.Status, next)
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			log.Printf("[quotation][usecase] cancel lost race quotation_id=%s expected=%s", q.ID, q.Status)
			return entities.Quotation{}, illegalTransition(q.Status, entities.QuotationEventCancel)
		}
		return entities.Quotation{}, dependencyFailure("cancel quotation", err)
	}
	if updated.ID == "" {
		return entities.Quotation{}, notFound("quotation", q.ID)
	}
	log.Printf("[quotation][usecase] cancel success quotation_id=%s code=%s", updated.ID, updated.Code)
	return updated, nil
}

func (u *QuotationLifecycleUseCase) GetOrder(ctx context.Context, actor entities.Actor, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, newValidationError("orderId", "is required")
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, dependencyFailure("load order", err)
	}
	if o.ID == "" {
		return entities.Order{}, notFound("order", id)
	}
	if err := u.authorize(ctx, actor, entities.CapabilityOrderView); err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (u *QuotationLifecycleUseCase) GetRemission(ctx context.Context, actor entities.Actor, id string) (entities.Remission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Remission{}, newValidationError("remissionId", "is required")
	}
	r, err := u.remissions.GetByID(ctx, id)
	if err != nil {
		return entities.Remission{}, dependencyFailure("load remission", err)
	}
	if r.ID == "" {
		return entities.Remission{}, notFound("remission", id)
	}
	if err := u.authorize(ctx, actor, entities.CapabilityRemissionView); err != nil {
		return entities.Remission{}, err
	}
	return r, nil
}

func (u *QuotationLifecycleUseCase) loadQuotation(ctx context.Context, id string) (entities.Quotation, error) {
	q, err := u.quotations.GetByID(ctx, id)
	if err != nil {
		log.Printf("[quotation][usecase] load failed quotation_id=%s err=%v", id, err)
		return entities.Quotation{}, dependencyFailure("load quotation", err)
	}
	if q.ID == "" {
		return entities.Quotation{}, notFound("quotation", id)
	}
	if !q.TotalsConsistent() {
		log.Printf("[quotation][usecase] inconsistent totals quotation_id=%s total=%s", q.ID, q.Total.String())
		return entities.Quotation{}, ErrInconsistentTotals
	}
	return q, nil
}

func (u *QuotationLifecycleUseCase) authorize(ctx context.Context, actor entities.Actor, capability entities.Capability) error {
	allowed, err := u.permissions.HasCapability(ctx, actor, capability)
	if err != nil {
		return dependencyFailure("check permission", err)
	}
	if !allowed {
		log.Printf("[quotation][usecase] forbidden actor=%s capability=%s", actor.ID, capability)
		return forbidden(actor, capability)
	}
	return nil
}
