package repository

import (
	"gestion_comercial/internal/domain/entities"
)

type clientAttr struct {
	ClientID string `dynamodbav:"client_id"`
	Name     string `dynamodbav:"name,omitempty"`
	Phone    string `dynamodbav:"phone,omitempty"`
	Email    string `dynamodbav:"email,omitempty"`
	Address  string `dynamodbav:"address,omitempty"`
	City     string `dynamodbav:"city,omitempty"`
}

// lineAttr is shared by the three document kinds; remission lines leave
// discount_percent out.
type lineAttr struct {
	ProductID       string `dynamodbav:"product_id"`
	ProductName     string `dynamodbav:"product_name"`
	Quantity        string `dynamodbav:"quantity"`
	UnitPrice       string `dynamodbav:"unit_price"`
	DiscountPercent string `dynamodbav:"discount_percent,omitempty"`
	Subtotal        string `dynamodbav:"subtotal"`
}

type documentCodeItem struct {
	Code       string `dynamodbav:"code"`
	Kind       string `dynamodbav:"kind"`
	DocumentID string `dynamodbav:"document_id"`
}

func toClientAttr(c entities.ClientSnapshot) clientAttr {
	return clientAttr{
		ClientID: c.ClientID,
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		Address:  c.Address,
		City:     c.City,
	}
}

func fromClientAttr(c clientAttr) entities.ClientSnapshot {
	return entities.ClientSnapshot{
		ClientID: c.ClientID,
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		Address:  c.Address,
		City:     c.City,
	}
}

func toQuotationLines(items []entities.QuotationItem) []lineAttr {
	out := make([]lineAttr, 0, len(items))
	for _, it := range items {
		out = append(out, lineAttr{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity.String(),
			UnitPrice:       it.UnitPrice.String(),
			DiscountPercent: it.DiscountPercent.String(),
			Subtotal:        it.Subtotal.StringFixed(entities.MoneyPlaces),
		})
	}
	return out
}

func fromQuotationLines(lines []lineAttr) ([]entities.QuotationItem, error) {
	out := make([]entities.QuotationItem, 0, len(lines))
	for _, l := range lines {
		qty, err := parseDecimal("quantity", l.Quantity)
		if err != nil {
			return nil, err
		}
		price, err := parseDecimal("unit_price", l.UnitPrice)
		if err != nil {
			return nil, err
		}
		disc, err := parseDecimal("discount_percent", l.DiscountPercent)
		if err != nil {
			return nil, err
		}
		sub, err := parseDecimal("subtotal", l.Subtotal)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.QuotationItem{
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			Quantity:        qty,
			UnitPrice:       price,
			DiscountPercent: disc,
			Subtotal:        sub,
		})
	}
	return out, nil
}

func toOrderLines(items []entities.OrderItem) []lineAttr {
	out := make([]lineAttr, 0, len(items))
	for _, it := range items {
		out = append(out, lineAttr{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity.String(),
			UnitPrice:       it.UnitPrice.String(),
			DiscountPercent: it.DiscountPercent.String(),
			Subtotal:        it.Subtotal.StringFixed(entities.MoneyPlaces),
		})
	}
	return out
}

func fromOrderLines(lines []lineAttr) ([]entities.OrderItem, error) {
	qitems, err := fromQuotationLines(lines)
	if err != nil {
		return nil, err
	}
	out := make([]entities.OrderItem, 0, len(qitems))
	for _, it := range qitems {
		out = append(out, entities.OrderItem(it))
	}
	return out, nil
}

func toRemissionLines(items []entities.RemissionItem) []lineAttr {
	out := make([]lineAttr, 0, len(items))
	for _, it := range items {
		out = append(out, lineAttr{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity.String(),
			UnitPrice:   it.UnitPrice.StringFixed(entities.MoneyPlaces),
			Subtotal:    it.Subtotal.StringFixed(entities.MoneyPlaces),
		})
	}
	return out
}

func fromRemissionLines(lines []lineAttr) ([]entities.RemissionItem, error) {
	out := make([]entities.RemissionItem, 0, len(lines))
	for _, l := range lines {
		qty, err := parseDecimal("quantity", l.Quantity)
		if err != nil {
			return nil, err
		}
		price, err := parseDecimal("unit_price", l.UnitPrice)
		if err != nil {
			return nil, err
		}
		sub, err := parseDecimal("subtotal", l.Subtotal)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.RemissionItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    qty,
			UnitPrice:   price,
			Subtotal:    sub,
		})
	}
	return out, nil
}
