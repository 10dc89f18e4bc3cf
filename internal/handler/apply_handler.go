package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/couponsapp/coupons-api/internal/model"
)

// ApplyServiceInterface defines the interface for coupon redemption logic.
type ApplyServiceInterface interface {
	Apply(ctx context.Context, code string, orderAmount float64, userID string) (*model.ApplyCouponResponse, error)
}

// ApplyHandler handles HTTP requests for coupon redemption.
type ApplyHandler struct {
	service   ApplyServiceInterface
	validator *validator.Validate
}

// NewApplyHandler creates a new ApplyHandler with the given service and validator.
func NewApplyHandler(svc ApplyServiceInterface, v *validator.Validate) *ApplyHandler {
	return &ApplyHandler{service: svc, validator: v}
}

// ApplyCoupon handles POST /api/coupons/apply requests.
// Business rejections (unknown code, inactive, expired, exhausted, below
// minimum) are expected outcomes: they return 200 with valid:false and a
// reason, never an HTTP error. Only malformed requests get a 400 and only
// store failures get a 500.
func (h *ApplyHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req model.ApplyCouponRequest

	// Parse JSON body
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	outcome, err := h.service.Apply(c.Context(), req.Code, *req.OrderAmount, req.UserID)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("code", req.Code).
			Msg("failed to apply coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	if outcome.Valid {
		log.Info().
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("code", outcome.Code).
			Float64("discount_amount", outcome.DiscountAmount).
			Float64("final_amount", outcome.FinalAmount).
			Msg("coupon applied")
	}

	return c.JSON(outcome)
}
