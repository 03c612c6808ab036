package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"retailadmin/internal/service"
)

// ListReports lists archived reports with limit and offset.
//
//	@Summary	List archived reports
//	@Tags		reports
//	@Produce	json
//	@Param		limit	query		int	false	"page size"	default(10)
//	@Param		offset	query		int	false	"page offset"	default(0)
//	@Success	200		{object}	service.ReportListResult
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/reports [get]
func ListReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// reportError maps report service errors onto responses.
func reportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "report not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func reportID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// GetReport returns report metadata with a presigned download URL.
//
//	@Summary	Get an archived report
//	@Tags		reports
//	@Produce	json
//	@Param		id	path		string	true	"report id"	format(uuid)
//	@Success	200	{object}	service.ReportDetail
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/reports/{id} [get]
func GetReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		detail, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return reportError(c, err)
		}
		return c.JSON(detail)
	}
}

// DownloadReport streams an archived report.
//
//	@Summary	Download an archived report
//	@Tags		reports
//	@Produce	application/pdf
//	@Param		id	path		string	true	"report id"	format(uuid)
//	@Success	200	{file}		binary
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/reports/{id}/download [get]
func DownloadReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, rec, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return reportError(c, err)
		}

		c.Attachment(rec.Filename)
		if rec.ContentType != "" {
			c.Set(fiber.HeaderContentType, rec.ContentType)
		}
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, int(rec.Size))
	}
}

// DeleteReport removes an archived report.
//
//	@Summary	Delete an archived report
//	@Tags		reports
//	@Param		id	path	string	true	"report id"	format(uuid)
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/reports/{id} [delete]
func DeleteReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return reportError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
