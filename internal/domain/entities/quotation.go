package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle of a quotation (cotización).
//
//	pendiente  --send-->    enviada
//	pendiente  --convert--> remisionada
//	enviada    --convert--> remisionada
//	pendiente  --cancel-->  anulada
//	enviada    --cancel-->  anulada
//
// remisionada and anulada are terminal.
type QuotationStatus string

const (
	QuotationStatusPendiente   QuotationStatus = "pendiente"
	QuotationStatusEnviada     QuotationStatus = "enviada"
	QuotationStatusRemisionada QuotationStatus = "remisionada"
	QuotationStatusAnulada     QuotationStatus = "anulada"
)

func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusRemisionada || s == QuotationStatusAnulada
}

func (s QuotationStatus) Valid() bool {
	switch s {
	case QuotationStatusPendiente, QuotationStatusEnviada, QuotationStatusRemisionada, QuotationStatusAnulada:
		return true
	}
	return false
}

// QuotationEvent is a lifecycle event that may move a quotation between states.
type QuotationEvent string

const (
	QuotationEventSend    QuotationEvent = "send"
	QuotationEventConvert QuotationEvent = "convert"
	QuotationEventCancel  QuotationEvent = "cancel"
)

// quotationTransitions lists, per event, the states it may start from and the
// state it leads to. Re-sending an already sent quotation keeps it enviada.
var quotationTransitions = map[QuotationEvent]map[QuotationStatus]QuotationStatus{
	QuotationEventSend: {
		QuotationStatusPendiente: QuotationStatusEnviada,
		QuotationStatusEnviada:   QuotationStatusEnviada,
	},
	QuotationEventConvert: {
		QuotationStatusPendiente: QuotationStatusRemisionada,
		QuotationStatusEnviada:   QuotationStatusRemisionada,
	},
	QuotationEventCancel: {
		QuotationStatusPendiente: QuotationStatusAnulada,
		QuotationStatusEnviada:   QuotationStatusAnulada,
	},
}

// NextStatus returns the state reached by applying ev from s, and whether the
// transition is legal.
func (s QuotationStatus) NextStatus(ev QuotationEvent) (QuotationStatus, bool) {
	next, ok := quotationTransitions[ev][s]
	return next, ok
}

// Quotation is a priced proposal sent to a prospective client.
//
// Storage model (DynamoDB):
//   - PK: id
//   - code is unique; enforced through the document_codes guard table.
//
// Quotations are never deleted; cancellation is a status.
type Quotation struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Client       ClientSnapshot  `json:"client"`
	Items        []QuotationItem `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Description  string          `json:"description"`
	PaymentTerms string          `json:"payment_terms"`
	IssueDate    time.Time       `json:"issue_date"`
	ValidityDays int             `json:"validity_days"`
	Status       QuotationStatus `json:"status"`
	EmailSent    bool            `json:"email_sent"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RecalculateTotals refreshes every line subtotal and the total.
func (q *Quotation) RecalculateTotals() {
	for i := range q.Items {
		q.Items[i].Recalculate()
	}
	q.Total = SumQuotationItems(q.Items)
}

// TotalsConsistent reports whether the stored total and subtotals obey the
// subtotal law.
func (q Quotation) TotalsConsistent() bool {
	for _, it := range q.Items {
		if !it.Subtotal.Equal(it.ComputeSubtotal()) {
			return false
		}
	}
	return q.Total.Equal(SumQuotationItems(q.Items))
}

// ValidUntil is the last calendar day the quotation's prices hold.
func (q Quotation) ValidUntil() time.Time {
	return q.IssueDate.AddDate(0, 0, q.ValidityDays)
}
