package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type RemissionStatus string

const (
	RemissionStatusActiva  RemissionStatus = "activa"
	RemissionStatusAnulada RemissionStatus = "anulada"
)

// Remission (remisión) is the delivery record paired 1:1 with an order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - order_code and quotation_code are informational references, not foreign keys.
//
// A remission is voided, never deleted.
type Remission struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Client        ClientSnapshot  `json:"client"`
	Items         []RemissionItem `json:"items"`
	Total         decimal.Decimal `json:"total"`
	DeliveryDate  time.Time       `json:"delivery_date"`
	Observation   string          `json:"observation"`
	OrderCode     string          `json:"order_code"`
	QuotationCode string          `json:"quotation_code"`
	Status        RemissionStatus `json:"status"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
