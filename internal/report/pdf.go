// Package report renders the invoice list into a paginated PDF table.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"

	"retailadmin/internal/invoice"
	"retailadmin/internal/model"
)

// ContentType of every rendered report.
const ContentType = "application/pdf"

var ErrRender = errors.New("report render failed")

// Page geometry in millimetres.
const (
	marginX     = 14.0
	titleY      = 16.0
	scopeY      = 22.0
	tableY      = 26.0
	bottomSpace = 14.0
	lineHeight  = 5.0
	cellPadY    = 1.5
)

const (
	coreFamily = "Helvetica"
	utf8Family = "ReportSans"
)

var columnWidths = []float64{28, 32, 58, 18, 20, 26}

var newDocument = func() *gofpdf.Fpdf {
	return gofpdf.New("P", "mm", "A4", "")
}

// Document is a finished report ready to be saved or streamed.
type Document struct {
	FileName     string
	ContentType  string
	SelectedDate string
	Rows         int
	Pages        int
	// Substituted counts characters the report font could not show; they are printed as '.'.
	Substituted int
	Data        []byte
}

// Exporter renders reports. It is safe for concurrent use.
type Exporter struct {
	loc      *time.Location
	now      func() time.Time
	compress bool
	font     []byte
}

// NewExporter creates an Exporter that formats dates in loc.
func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{loc: loc, now: time.Now, compress: true}
}

// UseFontFile embeds the TrueType font at path in every report, so text outside
// cp1252 is drawn instead of being replaced. Call it before the first Render.
func (e *Exporter) UseFontFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read report font: %w", err)
	}
	if len(b) == 0 {
		return fmt.Errorf("read report font: %s is empty", path)
	}
	e.font = b
	return nil
}

// Render draws the title, the date scope and one table row per invoice.
// The invoices must already be filtered and sorted; their order is kept.
func (e *Exporter) Render(invoices []model.Invoice, date string) (*Document, error) {
	rows := Rows(invoices, e.loc)

	pdf := newDocument()
	pdf.SetCompression(e.compress)
	pdf.SetCreationDate(e.now())
	pdf.SetTitle("Invoices Report", true)
	pdf.SetMargins(marginX, tableY, marginX)
	pdf.SetAutoPageBreak(false, bottomSpace)
	face := e.typeface(pdf)

	pdf.AddPage()
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}
	pdf.SetFont(face.family, "", 16)
	pdf.Text(marginX, titleY, "Invoices Report")
	pdf.SetFont(face.family, "", 12)
	pdf.Text(marginX, scopeY, face.text("Date: "+invoice.DateLabel(date)))

	tb := newTable(pdf, face)
	for _, r := range rows {
		tb.row(r.Cells())
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Document{
		FileName:     FileName(date),
		ContentType:  ContentType,
		SelectedDate: date,
		Rows:         len(rows),
		Pages:        pdf.PageCount(),
		Substituted:  face.substituted,
		Data:         buf.Bytes(),
	}, nil
}

// typeface is the font a report is drawn with and the encoding its text needs.
type typeface struct {
	family      string
	utf8        bool
	tr          func(string) string
	substituted int
}

func (e *Exporter) typeface(pdf *gofpdf.Fpdf) *typeface {
	if len(e.font) > 0 {
		pdf.AddUTF8FontFromBytes(utf8Family, "", e.font)
		pdf.AddUTF8FontFromBytes(utf8Family, "B", e.font)
		return &typeface{family: utf8Family, utf8: true}
	}
	return &typeface{family: coreFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// text encodes s for the current font and counts the characters it had to replace.
func (f *typeface) text(s string) string {
	if f.utf8 {
		return s
	}
	out := f.tr(s)
	for _, r := range s {
		if r >= utf8.RuneSelf && f.tr(string(r)) == "." {
			f.substituted++
		}
	}
	return out
}

// table draws rows below a header that repeats on every page. A row taller than
// the room left on a page continues on the next one.
type table struct {
	pdf  *gofpdf.Fpdf
	face *typeface
	// pageLines is how many body lines fit under the header of an empty page.
	pageLines int
}

func newTable(pdf *gofpdf.Fpdf, face *typeface) *table {
	t := &table{pdf: pdf, face: face}
	pdf.SetXY(marginX, tableY)
	t.header()
	t.pageLines = t.room()
	return t
}

func (t *table) header() {
	t.pdf.SetFont(t.face.family, "B", 9)
	t.pdf.SetFillColor(41, 128, 185)
	t.pdf.SetTextColor(255, 255, 255)
	lines := t.wrap(Columns)
	t.draw(lines, 0, height(lines), true)
	t.pdf.SetTextColor(0, 0, 0)
	t.pdf.SetFont(t.face.family, "", 9)
}

func (t *table) newPage() {
	t.pdf.AddPage()
	t.pdf.SetXY(marginX, tableY)
	t.header()
}

// room is the number of body lines that still fit on the current page.
func (t *table) room() int {
	_, pageH := t.pdf.GetPageSize()
	n := int((pageH - bottomSpace - t.pdf.GetY() - 2*cellPadY) / lineHeight)
	return max(n, 0)
}

func (t *table) row(cells []string) {
	lines := t.wrap(cells)
	total := height(lines)
	if total > t.room() && total <= t.pageLines {
		t.newPage()
	}
	for start := 0; start < total; {
		n := min(t.room(), total-start)
		if n == 0 {
			t.newPage()
			continue
		}
		t.draw(lines, start, n, false)
		start += n
	}
}

// wrap splits every cell into lines that fit its column.
func (t *table) wrap(cells []string) [][]string {
	lines := make([][]string, len(cells))
	for i, c := range cells {
		lines[i] = wrapText(t.pdf, t.face.text(c), columnWidths[i])
	}
	return lines
}

// draw outputs lines [start, start+n) of every cell as one bordered band.
func (t *table) draw(lines [][]string, start, n int, fill bool) {
	h := float64(n)*lineHeight + 2*cellPadY
	x, y := marginX, t.pdf.GetY()
	style := "D"
	if fill {
		style = "FD"
	}
	for i, col := range lines {
		w := columnWidths[i]
		t.pdf.Rect(x, y, w, h, style)
		for j := start; j < start+n && j < len(col); j++ {
			t.pdf.SetXY(x, y+cellPadY+float64(j-start)*lineHeight)
			t.pdf.CellFormat(w, lineHeight, col[j], "", 0, "L", false, 0, "")
		}
		x += w
	}
	t.pdf.SetXY(marginX, y+h)
}

func height(lines [][]string) int {
	h := 1
	for _, col := range lines {
		h = max(h, len(col))
	}
	return h
}

// wrapText breaks s into lines no wider than a column of width w. Lines break at
// spaces; a word wider than the column is cut between characters.
func wrapText(pdf *gofpdf.Fpdf, s string, w float64) []string {
	limit := w - 2*pdf.GetCellMargin()
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r", ""), "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			next := word
			if line != "" {
				next = line + " " + word
			}
			if pdf.GetStringWidth(next) <= limit {
				line = next
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for pdf.GetStringWidth(word) > limit {
				cut := fitPrefix(pdf, word, limit)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// fitPrefix returns the byte length of the longest prefix of s that fits in limit,
// never less than one character.
func fitPrefix(pdf *gofpdf.Fpdf, s string, limit float64) int {
	cut := 0
	for cut < len(s) {
		_, size := utf8.DecodeRuneInString(s[cut:])
		if cut > 0 && pdf.GetStringWidth(s[:cut+size]) > limit {
			break
		}
		cut += size
	}
	return cut
}
