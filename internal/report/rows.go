package report

import (
	"fmt"
	"strings"
	"time"

	"retailadmin/internal/invoice"
	"retailadmin/internal/model"
)

// LongDateLayout renders dates as e.g. "March 5, 2024".
const LongDateLayout = "January 2, 2006"

// Columns are the fixed report table headings.
var Columns = []string{"Invoice Number", "Customer Name", "Items", "Discount", "Total Amount", "Date"}

// Row is one rendered table row.
type Row struct {
	InvoiceNumber string `json:"invoiceNumber"`
	CustomerName  string `json:"customerName"`
	Items         string `json:"items"`
	Discount      string `json:"discount"`
	TotalAmount   string `json:"totalAmount"`
	Date          string `json:"date"`
}

// Cells returns the row values in column order.
func (r Row) Cells() []string {
	return []string{r.InvoiceNumber, r.CustomerName, r.Items, r.Discount, r.TotalAmount, r.Date}
}

// Rows converts invoices to report rows, one per invoice, keeping order.
func Rows(invoices []model.Invoice, loc *time.Location) []Row {
	rows := make([]Row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, Row{
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			Items:         FormatItems(inv.Items),
			Discount:      inv.Discount.String(),
			TotalAmount:   inv.TotalAmount.String(),
			Date:          FormatDate(inv.CreatedAt, loc),
		})
	}
	return rows
}

// FormatItems renders items as "name (Qty: n, Price: p)" joined by ", ".
func FormatItems(items []model.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (Qty: %d, Price: %s)", it.Name, it.Quantity, it.Price.String()))
	}
	return strings.Join(parts, ", ")
}

// FormatDate renders a createdAt value in long form. Unparseable values are returned as-is.
func FormatDate(createdAt string, loc *time.Location) string {
	t, ok := invoice.ParseTimestamp(createdAt)
	if !ok {
		return createdAt
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(LongDateLayout)
}

// FileName is the download name for a report with the given date filter.
func FileName(date string) string {
	if date == "" {
		date = "all"
	}
	return "invoices_" + date + ".pdf"
}
