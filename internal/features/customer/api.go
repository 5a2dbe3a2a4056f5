package customer

import (
	"github.com/gofiber/fiber/v2"
)

type CustomerApi struct {
	controller *CustomerController
}

func NewCustomerApi(controller *CustomerController) *CustomerApi {
	return &CustomerApi{controller: controller}
}

// Setup registers all customer-related routes
func (h *CustomerApi) Setup(app *fiber.App) {
	customers := app.Group("/customers")

	// export before :id so the literal segment wins
	customers.Get("/export", h.controller.ExportCustomers)

	customers.Post("/", h.controller.CreateCustomer)
	customers.Get("/", h.controller.ListCustomers)
	customers.Get("/:id", h.controller.GetCustomer)
	customers.Put("/:id", h.controller.UpdateCustomer)
	customers.Delete("/:id", h.controller.DeleteCustomer)
}
