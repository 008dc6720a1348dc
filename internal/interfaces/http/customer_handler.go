package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/pos-api/internal/application/customers"
	"github.com/dukapos/pos-api/internal/application/dto"
)

// CustomerHandler HTTP surface for customers and their ledger (protected).
type CustomerHandler struct {
	uc *customers.CustomerUseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(uc *customers.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Create customer
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Customer data"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get customer with derived balance
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Customer ID"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List customers with derived balances
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      List a customer's ledger entries
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "Customer ID"
// @Param        limit  query  int     false  "Limit"  default(50)
// @Success      200    {array}  dto.CustomerTransactionResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/transactions [get]
func (h *CustomerHandler) ListTransactions(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.ListTransactions(c.UserContext(), id, c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
