package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/application/milling"
)

// StockHandler serves the read-side stock endpoints (protected).
type StockHandler struct {
	uc *milling.StockOverviewUseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(uc *milling.StockOverviewUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Overview godoc
// @Summary      Full stock snapshot
// @Description  Batches, production totals, product inventory, bag sizes and
//               bagged stock, read in one consistent transaction.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockOverviewResponse
// @Router       /api/stock/overview [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	out, err := h.uc.Overview(c.Context(), scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Totals godoc
// @Summary      Production totals ledger
// @Description  Cumulative kilograms produced per rice type and byproduct.
//               Never decremented by bagging or sales.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockTotalsResponse
// @Router       /api/stock/totals [get]
func (h *StockHandler) Totals(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	out, err := h.uc.Totals(c.Context(), scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Per-product inventory
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductInventoryResponse
// @Router       /api/stock/inventory [get]
func (h *StockHandler) Inventory(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	out, err := h.uc.Inventory(c.Context(), scope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
