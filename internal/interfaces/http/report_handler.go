package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/application/ledger"
)

// ReportHandler read-side reports derived from the ledgers (protected).
type ReportHandler struct {
	agg *ledger.Aggregator
}

// NewReportHandler builds the handler.
func NewReportHandler(agg *ledger.Aggregator) *ReportHandler {
	return &ReportHandler{agg: agg}
}

// parseRange reads from/to query params (YYYY-MM-DD). Defaults to the first
// day of the current month through today; the upper bound is exclusive of
// nothing, it covers the whole "to" day.
func parseRange(c *fiber.Ctx) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// ProfitLoss godoc
// @Summary      Profit and loss over a date range
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Start date (YYYY-MM-DD). Default: first day of the month."
// @Param        to    query  string  false  "End date (YYYY-MM-DD). Default: today."
// @Success      200   {object}  dto.ProfitLossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	from, to, ok := parseRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "from/to must be YYYY-MM-DD with from <= to"})
	}
	out, err := h.agg.ProfitAndLoss(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CashFlow godoc
// @Summary      Collected vs outstanding over a date range
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Start date (YYYY-MM-DD). Default: first day of the month."
// @Param        to    query  string  false  "End date (YYYY-MM-DD). Default: today."
// @Success      200   {object}  dto.CashFlowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/cash-flow [get]
func (h *ReportHandler) CashFlow(c *fiber.Ctx) error {
	from, to, ok := parseRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "from/to must be YYYY-MM-DD with from <= to"})
	}
	out, err := h.agg.CashFlow(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Valuation godoc
// @Summary      Current inventory valuation
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.agg.InventoryValuation(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CustomerBalances godoc
// @Summary      Derived balances for every customer
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerBalanceResponse
// @Router       /api/reports/customer-balances [get]
func (h *ReportHandler) CustomerBalances(c *fiber.Ctx) error {
	out, err := h.agg.CustomerBalances(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
