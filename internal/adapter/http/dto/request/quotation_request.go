package request

import (
	"errors"
	"strings"
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDeliveryDate = errors.New("deliveryDate must be a YYYY-MM-DD date")
	ErrInvalidIssueDate    = errors.New("issueDate must be a YYYY-MM-DD date")
)

// ConvertQuotationRequest is the body of POST /convert-quotation.
type ConvertQuotationRequest struct {
	QuotationID  string `json:"quotationId" binding:"required"`
	DeliveryDate string `json:"deliveryDate" binding:"required"`
	Observation  string `json:"observation"`
}

func (r ConvertQuotationRequest) ResolveQuotationID() string {
	return strings.TrimSpace(r.QuotationID)
}

// ResolveDeliveryDate reads the date as a calendar day in loc.
func (r ConvertQuotationRequest) ResolveDeliveryDate(loc *time.Location) (time.Time, error) {
	return parseCalendarDate(r.DeliveryDate, loc, ErrInvalidDeliveryDate)
}

// SendQuotationEmailRequest is the body of POST /send-quotation-email. Empty
// overrides fall back to the quotation's defaults.
type SendQuotationEmailRequest struct {
	QuotationID string `json:"quotationId" binding:"required"`
	Recipient   string `json:"recipient"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

func (r SendQuotationEmailRequest) ToInput() usecase.SendQuotationEmailInput {
	return usecase.SendQuotationEmailInput{
		QuotationID: strings.TrimSpace(r.QuotationID),
		Recipient:   strings.TrimSpace(r.Recipient),
		Subject:     r.Subject,
		Body:        r.Body,
	}
}

// CancelQuotationRequest is the body of POST /cancel-quotation.
type CancelQuotationRequest struct {
	QuotationID string `json:"quotationId" binding:"required"`
}

func (r CancelQuotationRequest) ResolveQuotationID() string {
	return strings.TrimSpace(r.QuotationID)
}

type ClientRequest struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// QuotationItemRequest accepts amounts as JSON numbers or decimal strings.
type QuotationItemRequest struct {
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// CreateQuotationRequest is the body of POST /quotations.
type CreateQuotationRequest struct {
	Client       ClientRequest          `json:"client"`
	Items        []QuotationItemRequest `json:"items"`
	Description  string                 `json:"description"`
	PaymentTerms string                 `json:"paymentTerms"`
	IssueDate    string                 `json:"issueDate"`
	ValidityDays int                    `json:"validityDays"`
}

func (r CreateQuotationRequest) ToInput(loc *time.Location) (usecase.CreateQuotationInput, error) {
	var issueDate time.Time
	if strings.TrimSpace(r.IssueDate) != "" {
		d, err := parseCalendarDate(r.IssueDate, loc, ErrInvalidIssueDate)
		if err != nil {
			return usecase.CreateQuotationInput{}, err
		}
		issueDate = d
	}

	items := make([]usecase.QuotationItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.QuotationItemInput{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		})
	}

	return usecase.CreateQuotationInput{
		Client: entities.ClientSnapshot{
			ClientID: r.Client.ClientID,
			Name:     r.Client.Name,
			Phone:    r.Client.Phone,
			Email:    r.Client.Email,
			Address:  r.Client.Address,
			City:     r.Client.City,
		},
		Items:        items,
		Description:  r.Description,
		PaymentTerms: r.PaymentTerms,
		IssueDate:    issueDate,
		ValidityDays: r.ValidityDays,
	}, nil
}

func parseCalendarDate(raw string, loc *time.Location, invalid error) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, invalid
	}
	return d, nil
}
