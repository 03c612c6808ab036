package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"retailadmin/internal/invoice"
	"retailadmin/internal/report"
	"retailadmin/internal/service"
)

// HeaderReportID carries the archive id of an exported report, when it was archived.
const HeaderReportID = "X-Report-ID"

func parseInvoiceParams(c *fiber.Ctx) (invoice.Params, *ErrorEnvelope) {
	p, err := invoice.ParseParams(c.Query("search"), c.Query("date"), c.Query("sort"))
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, invoice.ErrInvalidDate):
		return p, &ErrorEnvelope{Code: "INVALID_DATE", Message: "date must be YYYY-MM-DD"}
	case errors.Is(err, invoice.ErrInvalidSortOrder):
		return p, &ErrorEnvelope{Code: "INVALID_SORT", Message: "sort must be asc or desc"}
	default:
		return p, &ErrorEnvelope{Code: "BAD_REQUEST", Message: "bad request"}
	}
}

// ListInvoices returns the filtered, sorted invoice view.
//
//	@Summary	List invoices
//	@Tags		invoices
//	@Produce	json
//	@Param		search	query		string	false	"customer name or invoice number, case-insensitive"
//	@Param		date	query		string	false	"creation day, YYYY-MM-DD"
//	@Param		sort	query		string	false	"asc or desc by creation time"	Enums(asc, desc)
//	@Success	200		{object}	service.InvoiceListResult
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/invoices [get]
func ListInvoices(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, perr := parseInvoiceParams(c)
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, perr.Code, perr.Message)
		}

		res, err := svc.List(c.UserContext(), p)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ExportInvoices renders the current view as a PDF attachment.
//
//	@Summary	Export invoices report
//	@Tags		invoices
//	@Produce	application/pdf
//	@Param		search	query		string	false	"customer name or invoice number, case-insensitive"
//	@Param		date	query		string	false	"creation day, YYYY-MM-DD"
//	@Param		sort	query		string	false	"asc or desc by creation time"	Enums(asc, desc)
//	@Success	200		{file}		binary
//	@Failure	400		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/api/invoices/export [get]
func ExportInvoices(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, perr := parseInvoiceParams(c)
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, perr.Code, perr.Message)
		}

		res, err := svc.Export(c.UserContext(), p)
		if err != nil {
			if errors.Is(err, report.ErrRender) {
				return writeError(c, fiber.StatusInternalServerError, "REPORT_RENDER_FAILED", "could not render report")
			}
			return writeError(c, fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "invoice source unavailable")
		}

		doc := res.Document
		if res.Report != nil {
			c.Set(HeaderReportID, res.Report.ID)
		}
		c.Set("X-Report-Rows", strconv.Itoa(doc.Rows))
		c.Attachment(doc.FileName)
		return c.Status(fiber.StatusOK).Send(doc.Data)
	}
}
