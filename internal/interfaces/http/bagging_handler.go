package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/domain"
)

// BaggingHandler serves bag creation, sale and listing (protected).
type BaggingHandler struct {
	createUC *milling.CreateBagsUseCase
	sellUC   *milling.SellBagsUseCase
	stockUC  *milling.StockOverviewUseCase
}

// NewBaggingHandler builds the handler.
func NewBaggingHandler(createUC *milling.CreateBagsUseCase, sellUC *milling.SellBagsUseCase, stockUC *milling.StockOverviewUseCase) *BaggingHandler {
	return &BaggingHandler{createUC: createUC, sellUC: sellUC, stockUC: stockUC}
}

// Create godoc
// @Summary      Bag loose batch output
// @Description  Converts loose kilograms of a batch product into sellable
//               bags. Merges into the existing available line for the same
//               batch, product, rice type and size.
// @Tags         bags
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBagsRequest  true  "batch_id, product_type, rice_type (rice only), bag_size_kg, bag_count"
// @Success      201   {object}  dto.BaggedStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bags [post]
func (h *BaggingHandler) Create(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateBagsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.createUC.CreateBags(c.Context(), scope, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid bagging inputs"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "batch or product stream not found"})
		}
		if err == domain.ErrInsufficientQuantity {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: "requested weight exceeds remaining batch quantity"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Sell godoc
// @Summary      Sell bags from a stock line
// @Tags         bags
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Bagged stock ID"
// @Param        body  body  dto.SellBagsRequest  true  "bag_count"
// @Success      200   {object}  dto.BaggedStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bags/{id}/sell [post]
func (h *BaggingHandler) Sell(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.SellBagsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.sellUC.SellBags(c.Context(), scope, c.Params("id"), in.BagCount)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bagged stock not found"})
		}
		if err == domain.ErrSoldOut {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SOLD_OUT", Message: "stock line already sold out"})
		}
		if err == domain.ErrInsufficientQuantity {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: "not enough bags on the line"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one bagged stock line
// @Tags         bags
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Bagged stock ID"
// @Success      200  {object}  dto.BaggedStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bags/{id} [get]
func (h *BaggingHandler) GetByID(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	out, err := h.stockUC.GetBaggedStock(c.Context(), scope, c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bagged stock not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List bagged stock
// @Tags         bags
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filter: available or soldOut. Empty = all."
// @Param        limit   query  int     false  "Page size (default 20, max 100)"
// @Param        offset  query  int     false  "Page offset"
// @Success      200  {array}  dto.BaggedStockResponse
// @Router       /api/bags [get]
func (h *BaggingHandler) List(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	out, err := h.stockUC.BaggedStock(c.Context(), scope, c.Query("status"), page)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid status filter"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
