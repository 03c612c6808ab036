package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"retailadmin/internal/invoice"
	"retailadmin/internal/model"
	"retailadmin/internal/report"
	"retailadmin/internal/upstream"
)

type viewFlags struct {
	search string
	date   string
	sort   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "match customer name or invoice number (case-insensitive)")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "only invoices created on this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.sort, "sort", "asc", "order by creation time: asc or desc")
}

// load fetches a snapshot and applies the view parameters.
func (f *viewFlags) load(cmd *cobra.Command, e *env) (invoice.Params, []model.Invoice, error) {
	p, err := invoice.ParseParams(f.search, f.date, f.sort)
	if err != nil {
		return p, nil, err
	}
	invs, err := e.source.Invoices(cmd.Context())
	if err != nil {
		e.log.Error("invoices.fetch_failed", "err", err)
		return p, nil, err
	}
	return p, invoice.View(invs, p, e.match), nil
}

func invoicesCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "invoices",
		Short: "List or export invoices",
	}

	c.AddCommand(invoicesListCmd(opts))
	c.AddCommand(invoicesExportCmd(opts))
	return c
}

func invoicesListCmd(opts *rootOptions) *cobra.Command {
	var (
		vf     viewFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered, sorted invoice list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.closeLog() }()

			// An unreachable backend still prints the empty view, then fails the command.
			p, rows, fetchErr := vf.load(cmd, e)
			if fetchErr != nil && !errors.Is(fetchErr, upstream.ErrUnavailable) {
				return fetchErr
			}
			if rows == nil {
				rows = []model.Invoice{}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return err
				}
			} else {
				printInvoices(out, p, rows, e)
			}

			if fetchErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Invoice service unavailable; the list above is empty.")
			}
			return fetchErr
		},
	}

	vf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw invoices as JSON")
	return cmd
}

func printInvoices(w io.Writer, p invoice.Params, rows []model.Invoice, e *env) {
	fmt.Fprintf(w, "Date: %s • Sort: %s\n\n", invoice.DateLabel(p.Date), p.Order.Label())
	if len(rows) == 0 {
		fmt.Fprintln(w, invoice.EmptyMessage)
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(report.Columns...)
	for _, r := range report.Rows(rows, e.loc) {
		t.Row(r.Cells()...)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d invoice(s)\n", len(rows))
}

func invoicesExportCmd(opts *rootOptions) *cobra.Command {
	var (
		vf  viewFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the filtered, sorted invoice list to a PDF report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.closeLog() }()

			p, rows, err := vf.load(cmd, e)
			if err != nil {
				return err
			}

			doc, err := e.exporter.Render(rows, p.Date)
			if err != nil {
				e.log.Error("export.render_failed", "err", err)
				return err
			}
			path, err := doc.SaveTo(out)
			if err != nil {
				return err
			}

			e.log.Info("export.ok", "path", path, "rows", doc.Rows, "pages", doc.Pages)
			if doc.Substituted > 0 {
				e.log.Warn("export.characters_substituted", "path", path, "count", doc.Substituted)
				fmt.Fprintf(cmd.ErrOrStderr(), "%d character(s) are not in the report font; set REPORT_FONT_FILE to a TrueType font that has them.\n", doc.Substituted)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows, %d pages)\n", path, doc.Rows, doc.Pages)
			return nil
		},
	}

	vf.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", ".", "directory to write the report into")
	return cmd
}
