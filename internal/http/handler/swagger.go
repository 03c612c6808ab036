package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"retailadmin/docs"
)

// RegisterSwagger serves the API docs at /swagger/*. The document's host and schemes
// are fixed here, before the app serves requests. An empty host makes the UI call
// whichever host served it.
func RegisterSwagger(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{}
	app.Get("/swagger/*", swagger.HandlerDefault)
}
