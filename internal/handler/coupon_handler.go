package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/couponsapp/coupons-api/internal/model"
	"github.com/couponsapp/coupons-api/internal/service"
)

// CouponServiceInterface defines the interface for coupon business logic.
type CouponServiceInterface interface {
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.CouponResponse, error)
	List(ctx context.Context) ([]model.CouponSummary, error)
}

// CouponHandler handles HTTP requests for coupon management.
type CouponHandler struct {
	service   CouponServiceInterface
	validator *validator.Validate
}

// NewCouponHandler creates a new CouponHandler with the given service and validator.
func NewCouponHandler(svc CouponServiceInterface, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, validator: v}
}

// formatValidationError converts validator errors to client-facing messages.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "Code":
				if tag == "required" {
					return "invalid request: code is required"
				}
				if tag == "notblank" {
					return "invalid request: code cannot be whitespace only"
				}
				if tag == "max" {
					return "invalid request: code exceeds maximum length of 64"
				}
				return "invalid request: code is invalid"
			case "DiscountType":
				if tag == "required" {
					return "invalid request: discount_type is required"
				}
				return "invalid request: discount_type must be percent or fixed"
			case "Value":
				if tag == "required" {
					return "invalid request: value is required"
				}
				return "invalid request: value must be greater than 0"
			case "MaxUses":
				return "invalid request: max_uses must be at least 1"
			case "MinOrderAmount":
				return "invalid request: min_order_amount cannot be negative"
			case "OrderAmount":
				if tag == "required" {
					return "invalid request: order_amount is required"
				}
				return "invalid request: order_amount cannot be negative"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// CreateCoupon handles POST /api/coupons requests to create a new coupon.
func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var req model.CreateCouponRequest

	// Parse JSON body
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	// Create coupon via service
	coupon, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Coupon code already exists"})
		}
		if errors.Is(err, service.ErrInvalidDiscountValue) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Percent discount must be between 0 and 100"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to create coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("code", coupon.Code).
		Str("discount_type", coupon.DiscountType).
		Msg("coupon created")

	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// ListCoupons handles GET /api/coupons requests to list all coupons with
// derived status and usage counts.
func (h *CouponHandler) ListCoupons(c *fiber.Ctx) error {
	summaries, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(summaries)
}
