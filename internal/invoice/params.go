// Package invoice holds the pure invoice list pipeline: filter, sort and view.
// Nothing here performs I/O or keeps state between calls.
package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format accepted for the date filter.
const DateLayout = "2006-01-02"

var (
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidDate      = errors.New("invalid date")
)

// SortOrder is the direction invoices are ordered by creation time.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Toggle flips the order.
func (o SortOrder) Toggle() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// Label is the human-readable name of the order.
func (o SortOrder) Label() string {
	if o == Descending {
		return "Descending"
	}
	return "Ascending"
}

// ParseSortOrder accepts "asc", "desc" or empty (ascending).
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Ascending):
		return Ascending, nil
	case string(Descending):
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
}

// Params are the user-adjustable list parameters.
type Params struct {
	Search string    `json:"search"`
	Date   string    `json:"date"`
	Order  SortOrder `json:"sort"`
}

// ParseParams builds Params from raw query values, validating the date and sort order.
func ParseParams(search, date, sort string) (Params, error) {
	order, err := ParseSortOrder(sort)
	if err != nil {
		return Params{}, err
	}
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return Params{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
	}
	return Params{Search: search, Date: date, Order: order}, nil
}
