package upstream

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"retailadmin/internal/model"
)

type itemDTO struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type invoiceDTO struct {
	ID            string          `json:"_id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	Items         []itemDTO       `json:"items"`
	Discount      decimal.Decimal `json:"discount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CreatedAt     string          `json:"createdAt"`
}

type supplierDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type updateResultDTO struct {
	Success bool `json:"success"`
}

// Invoices calls GET /api/invoice.
func (c *Client) Invoices(ctx context.Context) ([]model.Invoice, error) {
	var dtos []invoiceDTO
	if err := c.do(ctx, http.MethodGet, "/api/invoice", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]model.Invoice, 0, len(dtos))
	for _, d := range dtos {
		items := make([]model.Item, 0, len(d.Items))
		for _, it := range d.Items {
			items = append(items, model.Item{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
		}
		out = append(out, model.Invoice{
			ID:            d.ID,
			InvoiceNumber: d.InvoiceNumber,
			CustomerName:  d.CustomerName,
			Items:         items,
			Discount:      d.Discount,
			TotalAmount:   d.TotalAmount,
			CreatedAt:     d.CreatedAt,
		})
	}
	return out, nil
}

// Suppliers calls GET /api/suppliers/getSuppliers.
func (c *Client) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	var dtos []supplierDTO
	if err := c.do(ctx, http.MethodGet, "/api/suppliers/getSuppliers", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]model.Supplier, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, model.Supplier{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// UpdateProduct calls POST /api/product/update.
func (c *Client) UpdateProduct(ctx context.Context, p model.ProductUpdate) (bool, error) {
	var res updateResultDTO
	if err := c.do(ctx, http.MethodPost, "/api/product/update", p, &res); err != nil {
		return false, err
	}
	return res.Success, nil
}
