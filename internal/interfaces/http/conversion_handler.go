package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chamodh/ricemill-api/internal/application/dto"
	"github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/domain"
)

// ConversionHandler serves the milling conversion endpoints (protected).
type ConversionHandler struct {
	uc *milling.RecordConversionUseCase
}

// NewConversionHandler builds the handler.
func NewConversionHandler(uc *milling.RecordConversionUseCase) *ConversionHandler {
	return &ConversionHandler{uc: uc}
}

// Record godoc
// @Summary      Record a paddy-to-rice conversion
// @Description  Validates the run, prices it by cost allocation and writes the
//               batch plus the stock aggregates in one transaction.
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordConversionRequest  true  "Conversion inputs"
// @Success      201   {object}  dto.ConversionBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/conversions [post]
func (h *ConversionHandler) Record(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordConversionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.RecordConversion(c.Context(), scope, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid conversion inputs"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "purchase or employee not found"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "purchase already converted"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "conversion already recorded"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PreviewPricing godoc
// @Summary      Preview conversion pricing
// @Description  Runs the cost allocation over the given inputs without
//               persisting anything.
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreviewPricingRequest  true  "Cost inputs"
// @Success      200   {object}  dto.PricingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/conversions/pricing-preview [post]
func (h *ConversionHandler) PreviewPricing(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.PreviewPricingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.PreviewPricing(c.Context(), scope, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pricing inputs"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "employee not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a conversion batch by ID
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Batch ID"
// @Success      200  {object}  dto.ConversionBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id} [get]
func (h *ConversionHandler) GetByID(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	out, err := h.uc.GetBatch(c.Context(), scope, c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "batch not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List conversion batches
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Page size (default 20, max 100)"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}  dto.ConversionBatchResponse
// @Router       /api/conversions [get]
func (h *ConversionHandler) List(c *fiber.Ctx) error {
	scope, ok := GetScope(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	out, err := h.uc.ListBatches(c.Context(), scope, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
