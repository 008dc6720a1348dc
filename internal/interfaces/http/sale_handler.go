package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/application/sales"
)

// SaleHandler HTTP surface for recording, reading, editing and cancelling
// sales (protected).
type SaleHandler struct {
	createUC *sales.CreateSaleUseCase
	updateUC *sales.UpdateSaleUseCase
}

// NewSaleHandler builds the handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, updateUC *sales.UpdateSaleUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, updateUC: updateUC}
}

// Create godoc
// @Summary      Record a sale
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Sale data"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id required"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.CustomerID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id and items are required"})
	}
	out, err := h.createUC.CreateSale(c.UserContext(), userID, in)
	if err != nil {
		observeSaleOutcome("create", err)
		return respondError(c, err)
	}
	observeSaleOutcome("create", nil)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a sale
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Sale ID"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.createUC.GetSale(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.createUC.ListSales(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Edit a sale
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Sale ID"
// @Param        body  body  dto.UpdateSaleRequest  true  "Fields to change"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.updateUC.UpdateSale(c.UserContext(), id, in)
	if err != nil {
		observeSaleOutcome("update", err)
		return respondError(c, err)
	}
	observeSaleOutcome("update", nil)
	return c.JSON(out)
}

// Delete godoc
// @Summary      Cancel a sale
// @Tags         sales
// @Security     Bearer
// @Param        id  path  string  true  "Sale ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	if err := h.updateUC.DeleteSale(c.UserContext(), id); err != nil {
		observeSaleOutcome("delete", err)
		return respondError(c, err)
	}
	observeSaleOutcome("delete", nil)
	return c.SendStatus(fiber.StatusNoContent)
}
