package model

import "github.com/shopspring/decimal"

// Invoice is a sales record owned by the upstream retail backend.
// It is read-only to this service.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	Items         []Item          `json:"items"`
	Discount      decimal.Decimal `json:"discount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	// CreatedAt is the ISO-8601 timestamp exactly as the upstream sent it.
	CreatedAt string `json:"createdAt"`
}

// Item is a single invoice line.
type Item struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
