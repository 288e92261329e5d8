package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProgramado OrderStatus = "programado"
	OrderStatusDespachado OrderStatus = "despachado"
	OrderStatusEntregado  OrderStatus = "entregado"
	OrderStatusAnulado    OrderStatus = "anulado"
	OrderStatusDevuelto   OrderStatus = "devuelto"
)

// Order (pedido) is a committed delivery obligation.
//
// Storage model (DynamoDB):
//   - PK: id
//   - quotation_id is a provenance link only; the quotation lives on independently.
//
// Orders created by converting a quotation start as entregado, because the
// remission is issued in the same operation.
type Order struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Client        ClientRef       `json:"client"`
	QuotationID   string          `json:"quotation_id,omitempty"`
	QuotationCode string          `json:"quotation_code,omitempty"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	DeliveryDate  time.Time       `json:"delivery_date"`
	Observation   string          `json:"observation"`
	Status        OrderStatus     `json:"status"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
