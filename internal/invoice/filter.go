package invoice

import (
	"strings"
	"time"

	"retailadmin/internal/model"
)

// DateMatcher reports whether an invoice's createdAt falls on the selected day.
type DateMatcher func(createdAt, date string) bool

// PrefixMatch compares the date against the leading characters of the raw
// timestamp string. It ignores time zones entirely.
func PrefixMatch(createdAt, date string) bool {
	return strings.HasPrefix(createdAt, date)
}

// CalendarMatch compares the date against the timestamp's calendar day in loc.
// Unparseable timestamps never match.
func CalendarMatch(loc *time.Location) DateMatcher {
	if loc == nil {
		loc = time.UTC
	}
	return func(createdAt, date string) bool {
		t, ok := ParseTimestamp(createdAt)
		if !ok {
			return false
		}
		return t.In(loc).Format(DateLayout) == date
	}
}

// MatcherFor resolves a configured mode name. Unknown modes fall back to prefix matching.
func MatcherFor(mode string, loc *time.Location) DateMatcher {
	if strings.EqualFold(mode, "calendar") {
		return CalendarMatch(loc)
	}
	return PrefixMatch
}

// Filter returns the invoices whose customer name or invoice number contains
// p.Search (case-insensitive) and, when p.Date is set, whose creation date matches.
// The result preserves input order and never aliases the input.
func Filter(invoices []model.Invoice, p Params, match DateMatcher) []model.Invoice {
	if match == nil {
		match = PrefixMatch
	}
	term := strings.ToLower(p.Search)

	out := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !matchesTerm(inv, term) {
			continue
		}
		if p.Date != "" && !match(inv.CreatedAt, p.Date) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

func matchesTerm(inv model.Invoice, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(inv.CustomerName), term) ||
		strings.Contains(strings.ToLower(inv.InvoiceNumber), term)
}
