package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"retailadmin/internal/service"
	"retailadmin/internal/upstream"
)

// ListSuppliers proxies the upstream supplier list.
//
//	@Summary	List suppliers
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}		model.Supplier
//	@Failure	502	{object}	ErrorResponse
//	@Router		/api/suppliers [get]
func ListSuppliers(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sup, err := svc.Suppliers(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "supplier source unavailable")
		}
		return c.JSON(sup)
	}
}

// ListCategories returns the fixed product categories.
//
//	@Summary	List product categories
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/api/products/categories [get]
func ListCategories(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Categories())
	}
}

// UpdateProduct validates a product edit and forwards it upstream.
//
//	@Summary	Update a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		service.ProductForm	true	"product fields"
//	@Success	200		{object}	service.UpdateOutcome
//	@Failure	400		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/api/product/update [post]
func UpdateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form service.ProductForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON product")
		}

		out, err := svc.Update(c.UserContext(), form)
		if err == nil {
			return c.JSON(out)
		}

		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", ve.Error(), ve.Field)
		case errors.Is(err, service.ErrUpdateRejected):
			return writeOutcome(c, "PRODUCT_UPDATE_REJECTED", out)
		case errors.Is(err, upstream.ErrUnavailable):
			return writeOutcome(c, "UPSTREAM_UNAVAILABLE", out)
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}

func writeOutcome(c *fiber.Ctx, code string, out *service.UpdateOutcome) error {
	return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
		RequestID: requestIDFromCtx(c),
		Error:     ErrorEnvelope{Code: code, Message: out.Message, Title: out.Title},
	})
}
