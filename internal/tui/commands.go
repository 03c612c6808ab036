package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"retailadmin/internal/model"
)

const loadTimeout = 30 * time.Second

func cmdLoadInvoices(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Source == nil {
			return invoicesLoadedMsg{err: errors.New("invoice source is nil")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		invs, err := deps.Source.Invoices(ctx)
		if err != nil {
			deps.Logger.Error("invoices.load.failed", "err", err)
			return invoicesLoadedMsg{err: err}
		}
		deps.Logger.Info("invoices.loaded", "count", len(invs))
		return invoicesLoadedMsg{invoices: invs}
	}
}

// cmdExport renders rows, which must already be the current view, and saves the report.
func cmdExport(deps Deps, rows []model.Invoice, date string) tea.Cmd {
	return func() tea.Msg {
		if deps.Exporter == nil {
			return exportDoneMsg{err: errors.New("exporter is nil")}
		}
		doc, err := deps.Exporter.Render(rows, date)
		if err != nil {
			deps.Logger.Error("export.render.failed", "err", err)
			return exportDoneMsg{err: err}
		}
		path, err := doc.SaveTo(deps.OutDir)
		if err != nil {
			deps.Logger.Error("export.save.failed", "err", err)
			return exportDoneMsg{err: err}
		}
		deps.Logger.Info("export.ok", "path", path, "rows", doc.Rows, "pages", doc.Pages)
		if doc.Substituted > 0 {
			deps.Logger.Warn("export.characters_substituted", "path", path, "count", doc.Substituted)
		}
		return exportDoneMsg{path: path, rows: doc.Rows}
	}
}
