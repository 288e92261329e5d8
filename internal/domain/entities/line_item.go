package entities

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every persisted amount is rounded to.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// QuotationItem is a priced line of a quotation.
//
// Subtotal is always derived: quantity × unit price × (1 − discount/100),
// rounded to MoneyPlaces. Callers should not set it by hand; use NewQuotationItem
// or Recalculate.
type QuotationItem struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

func NewQuotationItem(productID, productName string, quantity, unitPrice, discountPercent decimal.Decimal) QuotationItem {
	it := QuotationItem{
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
	}
	it.Subtotal = it.ComputeSubtotal()
	return it
}

// ComputeSubtotal applies the subtotal law without mutating the item.
func (it QuotationItem) ComputeSubtotal() decimal.Decimal {
	return it.Quantity.Mul(it.EffectiveUnitPriceExact()).Round(MoneyPlaces)
}

// EffectiveUnitPriceExact is the unit price after discount, unrounded.
func (it QuotationItem) EffectiveUnitPriceExact() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(it.DiscountPercent.Div(hundred))
	return it.UnitPrice.Mul(factor)
}

// Recalculate refreshes Subtotal from the other fields.
func (it *QuotationItem) Recalculate() {
	it.Subtotal = it.ComputeSubtotal()
}

// OrderItem is a quotation line copied into an order. It keeps the commercial
// negotiation (discount) that produced the price.
type OrderItem struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// RemissionItem records what was delivered and at which effective price.
// It has no discount field.
type RemissionItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ToOrderItem copies the line as-is, discount included.
func (it QuotationItem) ToOrderItem() OrderItem {
	return OrderItem{
		ProductID:       it.ProductID,
		ProductName:     it.ProductName,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		DiscountPercent: it.DiscountPercent,
		Subtotal:        it.ComputeSubtotal(),
	}
}

// ToRemissionItem folds the discount into the unit price.
func (it QuotationItem) ToRemissionItem() RemissionItem {
	effective := it.EffectiveUnitPriceExact().Round(MoneyPlaces)
	return RemissionItem{
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
		UnitPrice:   effective,
		Subtotal:    it.Quantity.Mul(effective).Round(MoneyPlaces),
	}
}

func SumQuotationItems(items []QuotationItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.ComputeSubtotal())
	}
	return total
}

func SumOrderItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

func SumRemissionItems(items []RemissionItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
