package tui

import "retailadmin/internal/model"

type invoicesLoadedMsg struct {
	invoices []model.Invoice
	err      error
}

type exportDoneMsg struct {
	path string
	rows int
	err  error
}
