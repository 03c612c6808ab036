package invoice

import (
	"slices"
	"time"

	"retailadmin/internal/model"
)

type keyed struct {
	inv   model.Invoice
	at    time.Time
	valid bool
}

// Sort returns a copy of invoices ordered by createdAt in the given order.
// Ties keep their input order. Invoices with an unparseable createdAt are
// placed last, in input order, whatever the direction.
func Sort(invoices []model.Invoice, order SortOrder) []model.Invoice {
	ks := make([]keyed, len(invoices))
	for i, inv := range invoices {
		at, ok := ParseTimestamp(inv.CreatedAt)
		ks[i] = keyed{inv: inv, at: at, valid: ok}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case !a.valid && !b.valid:
			return 0
		case !a.valid:
			return 1
		case !b.valid:
			return -1
		}
		c := a.at.Compare(b.at)
		if order == Descending {
			return -c
		}
		return c
	})

	out := make([]model.Invoice, len(ks))
	for i, k := range ks {
		out[i] = k.inv
	}
	return out
}
