package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase/interfaces"
)

// SendQuotationEmailInput carries optional overrides. Empty fields fall back
// to the client snapshot email, the default subject and the composed body.
type SendQuotationEmailInput struct {
	QuotationID string
	Recipient   string
	Subject     string
	Body        string
}

// SendQuotationEmail mails the quotation and, only once the gateway accepted
// the message, sets EmailSent and moves it to enviada if it is still pending or
// sent. A gateway failure leaves the quotation untouched. The gateway bounds
// the delivery time.
func (u *QuotationLifecycleUseCase) SendQuotationEmail(ctx context.Context, actor entities.Actor, in SendQuotationEmailInput) (entities.Quotation, error) {
	quotationID := strings.TrimSpace(in.QuotationID)
	log.Printf("[quotation][usecase] send-email start quotation_id=%s actor=%s", quotationID, actor.ID)
	if quotationID == "" {
		return entities.Quotation{}, newValidationError("quotationId", "is required")
	}

	q, err := u.loadQuotation(ctx, quotationID)
	if err != nil {
		return entities.Quotation{}, err
	}
	if err := u.authorize(ctx, actor, entities.CapabilityQuotationSend); err != nil {
		return entities.Quotation{}, err
	}
	if _, ok := q.Status.NextStatus(entities.QuotationEventSend); !ok {
		log.Printf("[quotation][usecase] send-email rejected quotation_id=%s status=%s", q.ID, q.Status)
		return entities.Quotation{}, illegalTransition(q.Status, entities.QuotationEventSend)
	}

	msg := ComposeQuotationEmail(q, in.Recipient, in.Subject, in.Body)
	if msg.To == "" {
		return entities.Quotation{}, newValidationError("recipient", "is required when the client has no email")
	}
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return entities.Quotation{}, newValidationError("recipient", "is not a valid email address")
	}

	if err := u.notifier.Send(ctx, msg); err != nil {
		log.Printf("[quotation][usecase] send-email gateway failed quotation_id=%s to=%s err=%v", q.ID, msg.To, err)
		return entities.Quotation{}, notificationFailure(err)
	}
	log.Printf("[quotation][usecase] send-email gateway accepted quotation_id=%s to=%s", q.ID, msg.To)

	updated, err := u.markSent(ctx, q)
	if err != nil {
		return entities.Quotation{}, err
	}
	log.Printf("[quotation][usecase] send-email success quotation_id=%s status=%s", updated.ID, updated.Status)
	return updated, nil
}

// markSent records the delivery. The status advances only while the send
// transition still applies, retrying once if it moved in flight; otherwise
// only EmailSent is raised and the new status is kept.
func (u *QuotationLifecycleUseCase) markSent(ctx context.Context, q entities.Quotation) (entities.Quotation, error) {
	for attempt := 0; attempt < 2; attempt++ {
		next, ok := q.Status.NextStatus(entities.QuotationEventSend)
		if !ok {
			break
		}
		updated, err := u.quotations.MarkEmailSent(ctx, q.ID, q.Status, next)
		if err == nil {
			if updated.ID == "" {
				return entities.Quotation{}, notFound("quotation", q.ID)
			}
			return updated, nil
		}
		if !errors.Is(err, interfaces.ErrStatusConflict) {
			return entities.Quotation{}, dependencyFailure("mark quotation sent", err)
		}
		q, err = u.loadQuotation(ctx, q.ID)
		if err != nil {
			return entities.Quotation{}, err
		}
	}

	log.Printf("[quotation][usecase] send-email state moved, flag only quotation_id=%s status=%s", q.ID, q.Status)
	updated, err := u.quotations.SetEmailSent(ctx, q.ID)
	if err != nil {
		return entities.Quotation{}, dependencyFailure("mark quotation sent", err)
	}
	if updated.ID == "" {
		return entities.Quotation{}, notFound("quotation", q.ID)
	}
	return updated, nil
}

// ComposeQuotationEmail builds the message for a quotation. Non-empty
// overrides replace the defaults.
func ComposeQuotationEmail(q entities.Quotation, recipient, subject, body string) interfaces.EmailMessage {
	msg := interfaces.EmailMessage{
		To:      strings.TrimSpace(recipient),
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}
	if msg.To == "" {
		msg.To = strings.TrimSpace(q.Client.Email)
	}
	if msg.Subject == "" {
		msg.Subject = fmt.Sprintf("Cotización %s", q.Code)
	}
	if strings.TrimSpace(msg.Body) == "" {
		msg.Body = composeQuotationBody(q)
	}
	return msg
}

func composeQuotationBody(q entities.Quotation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Señor(a) %s,\n\n", q.Client.Name)
	fmt.Fprintf(&b, "Adjuntamos la cotización %s emitida el %s.\n\n", q.Code, q.IssueDate.Format(time.DateOnly))
	if q.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", q.Description)
	}
	for _, it := range q.Items {
		fmt.Fprintf(&b, "- %s x %s a %s", it.Quantity.String(), it.ProductName, it.UnitPrice.StringFixed(entities.MoneyPlaces))
		if !it.DiscountPercent.IsZero() {
			fmt.Fprintf(&b, " (descuento %s%%)", it.DiscountPercent.String())
		}
		fmt.Fprintf(&b, " = %s\n", it.Subtotal.StringFixed(entities.MoneyPlaces))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", q.Total.StringFixed(entities.MoneyPlaces))
	if q.PaymentTerms != "" {
		fmt.Fprintf(&b, "Condiciones de pago: %s\n", q.PaymentTerms)
	}
	if q.ValidityDays > 0 {
		fmt.Fprintf(&b, "Válida hasta: %s\n", q.ValidUntil().Format(time.DateOnly))
	}
	return b.String()
}
