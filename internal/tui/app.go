// Package tui is the terminal invoice browser behind `retailctl browse`.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"retailadmin/internal/invoice"
	"retailadmin/internal/logger"
	"retailadmin/internal/model"
	"retailadmin/internal/report"
)

type field int

const (
	fieldSearch field = iota
	fieldDate
)

var columnWidths = []int{14, 20, 40, 9, 12, 18}

type browser struct {
	theme Theme
	deps  Deps

	search textinput.Model
	date   textinput.Model
	focus  field
	order  invoice.SortOrder
	table  table.Model

	loading   bool
	available bool
	all       []model.Invoice
	rows      []model.Invoice
	dateErr   string

	status    string
	statusErr bool
}

func Run(deps Deps) error {
	p := tea.NewProgram(newBrowser(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newBrowser(deps Deps) browser {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	if deps.Match == nil {
		deps.Match = invoice.PrefixMatch
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "customer name or invoice number"
	search.CharLimit = 120
	search.Focus()

	date := textinput.New()
	date.Prompt = ""
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = len(invoice.DateLayout)

	cols := make([]table.Column, len(report.Columns))
	for i, title := range report.Columns {
		cols[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return browser{
		theme:   DefaultTheme(),
		deps:    deps,
		search:  search,
		date:    date,
		focus:   fieldSearch,
		order:   invoice.Ascending,
		table:   t,
		loading: true,
	}
}

func (m browser) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, cmdLoadInvoices(m.deps))
}

// params reads the inputs. An incomplete or invalid date is not applied.
func (m browser) params() invoice.Params {
	p, err := invoice.ParseParams(m.search.Value(), m.date.Value(), string(m.order))
	if err != nil {
		p, _ = invoice.ParseParams(m.search.Value(), "", string(m.order))
	}
	return p
}

func (m browser) refresh() browser {
	m.dateErr = ""
	if d := strings.TrimSpace(m.date.Value()); d != "" {
		if _, err := time.Parse(invoice.DateLayout, d); err != nil {
			m.dateErr = "date must be YYYY-MM-DD"
		}
	}

	m.rows = invoice.View(m.all, m.params(), m.deps.Match)

	cells := report.Rows(m.rows, m.deps.Location)
	trs := make([]table.Row, len(cells))
	for i, r := range cells {
		trs[i] = table.Row(r.Cells())
	}
	m.table.SetRows(trs)
	return m
}

func (m browser) setFocus(f field) (browser, tea.Cmd) {
	m.focus = f
	if f == fieldDate {
		m.search.Blur()
		return m, m.date.Focus()
	}
	m.date.Blur()
	return m, m.search.Focus()
}

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 14; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case invoicesLoadedMsg:
		m.loading = false
		m.available = msg.err == nil
		m.all = msg.invoices
		if msg.err != nil {
			m.status, m.statusErr = "Could not load invoices: "+msg.err.Error(), true
		}
		return m.refresh(), nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status, m.statusErr = "Export failed: "+msg.err.Error(), true
		} else {
			m.status, m.statusErr = fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.path), false
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab":
			if m.focus == fieldSearch {
				return m.setFocus(fieldDate)
			}
			return m.setFocus(fieldSearch)

		case "ctrl+s":
			m.order = m.order.Toggle()
			return m.refresh(), nil

		case "ctrl+e":
			if m.loading {
				return m, nil
			}
			p := m.params()
			m.status, m.statusErr = "Exporting…", false
			return m, cmdExport(m.deps, m.rows, p.Date)

		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		if m.focus == fieldDate {
			m.date, cmd = m.date.Update(msg)
		} else {
			m.search, cmd = m.search.Update(msg)
		}
		return m.refresh(), cmd
	}

	var cmd tea.Cmd
	if m.focus == fieldDate {
		m.date, cmd = m.date.Update(msg)
	} else {
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m browser) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("Invoices") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("Date: %s • Sort: %s", invoice.DateLabel(m.params().Date), m.order.Label())) + "\n"

	inputs := m.theme.Label.Render("Search") + m.search.View() + "\n" +
		m.theme.Label.Render("Date") + m.date.View()
	if m.dateErr != "" {
		inputs += "  " + m.theme.Error.Render(m.dateErr)
	}

	var body string
	switch {
	case m.loading:
		body = m.theme.Empty.Render("Loading invoices…")
	case len(m.rows) == 0:
		body = m.theme.Empty.Render(invoice.EmptyMessage)
	default:
		body = m.table.View()
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = m.theme.Error.Render(m.status)
		} else {
			status = m.theme.Status.Render(m.status)
		}
	}

	help := m.theme.Help.Render("tab switch field • ctrl+s toggle sort • ctrl+e export PDF • ↑/↓ scroll • esc quit")
	return wrap.Render(header + "\n" + m.theme.Card.Render(inputs) + "\n\n" + body + "\n" + status + "\n" + help)
}
