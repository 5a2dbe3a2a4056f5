package customer

import (
	"fmt"
	"strconv"

	"go-support/internal/common/apperr"
	"go-support/internal/common/response"

	"github.com/gofiber/fiber/v2"
)

type CustomerController struct {
	CustomerService CustomerService
}

func NewCustomerController(customerService CustomerService) *CustomerController {
	return &CustomerController{
		CustomerService: customerService,
	}
}

// CreateCustomer godoc
// @Summary      Create customer
// @Router       /customers [post]
func (ctrl *CustomerController) CreateCustomer(c *fiber.Ctx) error {
	var customer Customer
	if err := c.BodyParser(&customer); err != nil {
		return apperr.Validation("", "invalid request body")
	}

	created, err := ctrl.CustomerService.Create(c.Context(), &customer)
	if err != nil {
		return err
	}

	return response.Created(c, created, "New customer created successfully")
}

// GetCustomer godoc
// @Summary      Get customer by ID
// @Router       /customers/{id} [get]
func (ctrl *CustomerController) GetCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	customer, err := ctrl.CustomerService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, customer, fmt.Sprintf("Customer with %s found.", id))
}

// ListCustomers godoc
// @Summary      List customers
// @Router       /customers [get]
func (ctrl *CustomerController) ListCustomers(c *fiber.Ctx) error {
	q, err := listQueryFromCtx(c)
	if err != nil {
		return err
	}

	customers, err := ctrl.CustomerService.List(c.Context(), q)
	if err != nil {
		return err
	}

	params := map[string]any{
		"skip":  q.Skip,
		"limit": q.Limit,
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.IsActive != nil {
		params["is_active"] = *q.IsActive
	}

	return response.SuccessWithParams(c, customers, "Customers list.", params)
}

// UpdateCustomer godoc
// @Summary      Update customer
// @Router       /customers/{id} [put]
func (ctrl *CustomerController) UpdateCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var update CustomerUpdate
	if err := c.BodyParser(&update); err != nil {
		return apperr.Validation("", "invalid request body")
	}

	customer, err := ctrl.CustomerService.Update(c.Context(), id, &update)
	if err != nil {
		return err
	}

	return response.Success(c, customer, fmt.Sprintf("Customer with %s updated.", id))
}

// DeleteCustomer godoc
// @Summary      Delete customer
// @Router       /customers/{id} [delete]
func (ctrl *CustomerController) DeleteCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	deleted, err := ctrl.CustomerService.Delete(c.Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, deleted, fmt.Sprintf("Customer with %s deleted.", id))
}

// ExportCustomers godoc
// @Summary      Export customers to XLSX
// @Router       /customers/export [get]
func (ctrl *CustomerController) ExportCustomers(c *fiber.Ctx) error {
	q, err := listQueryFromCtx(c)
	if err != nil {
		return err
	}

	// the export covers the whole filtered set unless the caller caps it
	if c.Query("limit") == "" {
		q.Limit = -1
	}

	data, filename, err := ctrl.CustomerService.ExportXLSX(c.Context(), q)
	if err != nil {
		return err
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func listQueryFromCtx(c *fiber.Ctx) (ListQuery, error) {
	skip, _ := strconv.ParseInt(c.Query("skip", "0"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if limit <= 0 {
		limit = 10
	}

	q := ListQuery{
		Skip:   skip,
		Limit:  limit,
		Search: c.Query("search"),
	}

	// is_active defaults to true; passing is_active=false lists inactive
	// customers instead.
	isActive, err := strconv.ParseBool(c.Query("is_active", "true"))
	if err != nil {
		return ListQuery{}, apperr.Validation("is_active", "is_active must be a boolean")
	}
	q.IsActive = &isActive

	return q, nil
}
