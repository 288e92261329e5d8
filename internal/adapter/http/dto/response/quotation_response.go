package response

import (
	"time"

	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/usecase"
)

// Amounts are rendered as fixed two-place decimal strings.

type ConvertQuotationResponse struct {
	OrderCode     string `json:"orderCode"`
	RemissionCode string `json:"remissionCode"`
	OrderID       string `json:"orderId"`
	RemissionID   string `json:"remissionId"`
}

type SendQuotationEmailResponse struct {
	Sent   bool   `json:"sent"`
	Status string `json:"status"`
}

type CancelQuotationResponse struct {
	Cancelled bool   `json:"cancelled"`
	Status    string `json:"status"`
}

type ClientResponse struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
}

type LineItemResponse struct {
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	Quantity        string `json:"quantity"`
	UnitPrice       string `json:"unitPrice"`
	DiscountPercent string `json:"discountPercent,omitempty"`
	Subtotal        string `json:"subtotal"`
}

type QuotationResponse struct {
	ID           string             `json:"id"`
	Code         string             `json:"code"`
	Client       ClientResponse     `json:"client"`
	Items        []LineItemResponse `json:"items"`
	Total        string             `json:"total"`
	Description  string             `json:"description"`
	PaymentTerms string             `json:"paymentTerms"`
	IssueDate    string             `json:"issueDate"`
	ValidityDays int                `json:"validityDays"`
	Status       string             `json:"status"`
	EmailSent    bool               `json:"emailSent"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type OrderResponse struct {
	ID            string             `json:"id"`
	Code          string             `json:"code"`
	ClientID      string             `json:"clientId"`
	QuotationID   string             `json:"quotationId"`
	QuotationCode string             `json:"quotationCode"`
	Items         []LineItemResponse `json:"items"`
	Total         string             `json:"total"`
	DeliveryDate  string             `json:"deliveryDate"`
	Observation   string             `json:"observation"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type RemissionResponse struct {
	ID            string             `json:"id"`
	Code          string             `json:"code"`
	Client        ClientResponse     `json:"client"`
	Items         []LineItemResponse `json:"items"`
	Total         string             `json:"total"`
	DeliveryDate  string             `json:"deliveryDate"`
	Observation   string             `json:"observation"`
	OrderCode     string             `json:"orderCode"`
	QuotationCode string             `json:"quotationCode"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func FromConversionResult(r usecase.ConversionResult) ConvertQuotationResponse {
	return ConvertQuotationResponse{
		OrderCode:     r.OrderCode,
		RemissionCode: r.RemissionCode,
		OrderID:       r.OrderID,
		RemissionID:   r.RemissionID,
	}
}

func FromClientSnapshot(c entities.ClientSnapshot) ClientResponse {
	return ClientResponse{
		ClientID: c.ClientID,
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		Address:  c.Address,
		City:     c.City,
	}
}

func FromQuotation(q entities.Quotation) QuotationResponse {
	items := make([]LineItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, LineItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity.String(),
			UnitPrice:       it.UnitPrice.StringFixed(entities.MoneyPlaces),
			DiscountPercent: it.DiscountPercent.String(),
			Subtotal:        it.Subtotal.StringFixed(entities.MoneyPlaces),
		})
	}
	return QuotationResponse{
		ID:           q.ID,
		Code:         q.Code,
		Client:       FromClientSnapshot(q.Client),
		Items:        items,
		Total:        q.Total.StringFixed(entities.MoneyPlaces),
		Description:  q.Description,
		PaymentTerms: q.PaymentTerms,
		IssueDate:    formatDate(q.IssueDate),
		ValidityDays: q.ValidityDays,
		Status:       string(q.Status),
		EmailSent:    q.EmailSent,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func FromOrder(o entities.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, LineItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity.String(),
			UnitPrice:       it.UnitPrice.StringFixed(entities.MoneyPlaces),
			DiscountPercent: it.DiscountPercent.String(),
			Subtotal:        it.Subtotal.StringFixed(entities.MoneyPlaces),
		})
	}
	return OrderResponse{
		ID:            o.ID,
		Code:          o.Code,
		ClientID:      o.Client.ClientID,
		QuotationID:   o.QuotationID,
		QuotationCode: o.QuotationCode,
		Items:         items,
		Total:         o.Total.StringFixed(entities.MoneyPlaces),
		DeliveryDate:  formatDate(o.DeliveryDate),
		Observation:   o.Observation,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func FromRemission(r entities.Remission) RemissionResponse {
	items := make([]LineItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, LineItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity.String(),
			UnitPrice:   it.UnitPrice.StringFixed(entities.MoneyPlaces),
			Subtotal:    it.Subtotal.StringFixed(entities.MoneyPlaces),
		})
	}
	return RemissionResponse{
		ID:            r.ID,
		Code:          r.Code,
		Client:        FromClientSnapshot(r.Client),
		Items:         items,
		Total:         r.Total.StringFixed(entities.MoneyPlaces),
		DeliveryDate:  formatDate(r.DeliveryDate),
		Observation:   r.Observation,
		OrderCode:     r.OrderCode,
		QuotationCode: r.QuotationCode,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
