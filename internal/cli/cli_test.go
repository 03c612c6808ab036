package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailadmin/internal/invoice"
	"retailadmin/internal/model"
	"retailadmin/internal/upstream"
)

const invoicesJSON = `[
	{"_id":"1","invoiceNumber":"INV-1","customerName":"Alice","items":[{"name":"Hammer","quantity":2,"price":12.5}],"discount":0,"totalAmount":25,"createdAt":"2024-01-02T00:00:00Z"},
	{"_id":"2","invoiceNumber":"INV-2","customerName":"Bob","items":[],"discount":0,"totalAmount":10,"createdAt":"2024-01-01T00:00:00Z"}
]`

func fakeUpstream(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/invoice", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("INVOICE_DATE_MATCH", "prefix")
	t.Setenv("TZ_NAME", "UTC")
	t.Setenv("REPORT_FONT_FILE", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "retailctl.log")))
	err := cmd.Execute()
	return out.String(), err
}

func TestInvoicesList_Table(t *testing.T) {
	url := fakeUpstream(t, http.StatusOK, invoicesJSON)

	out, err := run(t, "invoices", "list", "--upstream", url)
	require.NoError(t, err)

	assert.Contains(t, out, "Date: All Dates • Sort: Ascending")
	assert.Contains(t, out, "Invoice Number")
	assert.Less(t, strings.Index(out, "INV-2"), strings.Index(out, "INV-1"))
	assert.Contains(t, out, "2 invoice(s)")
}

func TestInvoicesList_FiltersAndJSON(t *testing.T) {
	url := fakeUpstream(t, http.StatusOK, invoicesJSON)

	out, err := run(t, "invoices", "list", "--upstream", url, "--search", "ALICE", "--json")
	require.NoError(t, err)

	var got []model.Invoice
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "INV-1", got[0].InvoiceNumber)
}

func TestInvoicesList_Empty(t *testing.T) {
	url := fakeUpstream(t, http.StatusOK, invoicesJSON)

	out, err := run(t, "invoices", "list", "--upstream", url, "--date", "2023-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, invoice.EmptyMessage)
}

func TestInvoicesList_InvalidParams(t *testing.T) {
	_, err := run(t, "invoices", "list", "--upstream", "http://127.0.0.1:1", "--date", "01/02/2024")
	assert.ErrorIs(t, err, invoice.ErrInvalidDate)

	_, err = run(t, "invoices", "list", "--upstream", "http://127.0.0.1:1", "--sort", "up")
	assert.ErrorIs(t, err, invoice.ErrInvalidSortOrder)
}

func TestInvoicesList_UpstreamFailure(t *testing.T) {
	url := fakeUpstream(t, http.StatusInternalServerError, "boom")

	out, err := run(t, "invoices", "list", "--upstream", url)
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
	assert.Contains(t, out, "Date: All Dates")
	assert.Contains(t, out, invoice.EmptyMessage)
	assert.Contains(t, out, "Invoice service unavailable")

	out, err = run(t, "invoices", "list", "--upstream", url, "--json")
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
	assert.True(t, strings.HasPrefix(out, "[]\n"), out)
}

func TestInvoicesExport_UpstreamFailure(t *testing.T) {
	url := fakeUpstream(t, http.StatusInternalServerError, "boom")
	dir := t.TempDir()

	_, err := run(t, "invoices", "export", "--upstream", url, "--out", dir)
	assert.ErrorIs(t, err, upstream.ErrUnavailable)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRoot_MissingReportFont(t *testing.T) {
	url := fakeUpstream(t, http.StatusOK, invoicesJSON)
	t.Setenv("REPORT_FONT_FILE", filepath.Join(t.TempDir(), "missing.ttf"))

	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"invoices", "export", "--upstream", url, "--out", t.TempDir(), "--log-file", filepath.Join(t.TempDir(), "retailctl.log")})
	assert.ErrorIs(t, cmd.Execute(), os.ErrNotExist)
}

func TestInvoicesExport(t *testing.T) {
	url := fakeUpstream(t, http.StatusOK, invoicesJSON)
	dir := t.TempDir()

	out, err := run(t, "invoices", "export", "--upstream", url, "--date", "2024-01-02", "--out", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "invoices_2024-01-02.pdf")
	assert.Contains(t, out, "Wrote "+path+" (1 rows, 1 pages)")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}
