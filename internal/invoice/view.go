package invoice

import "retailadmin/internal/model"

// EmptyMessage is shown in place of rows when nothing matches.
const EmptyMessage = "No invoices available."

// View applies Filter then Sort. It is re-run on every parameter change.
func View(invoices []model.Invoice, p Params, match DateMatcher) []model.Invoice {
	return Sort(Filter(invoices, p, match), p.Order)
}

// DateLabel is the human-readable scope of a date filter.
func DateLabel(date string) string {
	if date == "" {
		return "All Dates"
	}
	return date
}
