package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/couponsapp/coupons-api/internal/model"
)

// Rejection reasons returned to clients on an invalid apply outcome.
const (
	ReasonInvalidCode  = "Invalid code"
	ReasonInactive     = "Coupon inactive"
	ReasonExpired      = "Coupon expired"
	ReasonUsageLimit   = "Usage limit reached"
	ReasonBelowMinimum = "Order below minimum amount"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, coupon *model.Coupon) (string, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	ListAll(ctx context.Context) ([]model.Coupon, error)
}

// RedemptionRepositoryInterface defines the interface for redemption data access.
type RedemptionRepositoryInterface interface {
	Insert(ctx context.Context, redemption *model.Redemption) (string, error)
	CountByCode(ctx context.Context, code string) (int64, error)
}

// CouponService provides business logic for coupon creation, listing and
// redemption.
type CouponService struct {
	couponRepo     CouponRepositoryInterface
	redemptionRepo RedemptionRepositoryInterface
}

// NewCouponService creates a new CouponService with the given repositories.
func NewCouponService(couponRepo CouponRepositoryInterface, redemptionRepo RedemptionRepositoryInterface) *CouponService {
	return &CouponService{
		couponRepo:     couponRepo,
		redemptionRepo: redemptionRepo,
	}
}

// NormalizeCode canonicalizes a coupon code: whitespace trimmed, upper-cased.
// All lookups and writes go through the normalized form, so "save10",
// "SAVE10" and " SAVE10 " address the same coupon.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// round2 rounds to 2 decimal places, half away from zero. Applied uniformly
// to discount and final amounts.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Create creates a new coupon from the request.
// Returns ErrDuplicateCode if a coupon with the same normalized code exists,
// ErrInvalidDiscountValue if a percent value is outside (0, 100].
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.CouponResponse, error) {
	// Defense-in-depth: check for nil pointer even though handler validates
	if req == nil || req.Value == nil {
		return nil, ErrInvalidRequest
	}

	code := NormalizeCode(req.Code)

	existing, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("check duplicate code: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateCode
	}

	if req.DiscountType == model.DiscountPercent && (*req.Value <= 0 || *req.Value > 100) {
		return nil, ErrInvalidDiscountValue
	}

	coupon := &model.Coupon{
		Code:         code,
		DiscountType: req.DiscountType,
		Value:        *req.Value,
		MaxUses:      req.MaxUses,
		ExpiresAt:    req.ExpiresAt,
		IsActive:     true,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = *req.MinOrderAmount
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	id, err := s.couponRepo.Insert(ctx, coupon)
	if err != nil {
		return nil, fmt.Errorf("insert coupon: %w", err)
	}

	return &model.CouponResponse{
		ID:             id,
		Code:           coupon.Code,
		DiscountType:   coupon.DiscountType,
		Value:          coupon.Value,
		MaxUses:        coupon.MaxUses,
		ExpiresAt:      coupon.ExpiresAt,
		MinOrderAmount: coupon.MinOrderAmount,
		IsActive:       coupon.IsActive,
		Uses:           0,
	}, nil
}

// List returns a summary of every stored coupon with its current redemption
// count and derived status. Pure read: no side effects, store iteration order
// preserved.
func (s *CouponService) List(ctx context.Context) ([]model.CouponSummary, error) {
	coupons, err := s.couponRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}

	now := time.Now().UTC()
	summaries := make([]model.CouponSummary, 0, len(coupons))
	for i := range coupons {
		c := &coupons[i]
		uses, err := s.redemptionRepo.CountByCode(ctx, c.Code)
		if err != nil {
			return nil, fmt.Errorf("count redemptions for %s: %w", c.Code, err)
		}
		summaries = append(summaries, model.CouponSummary{
			ID:        c.ID.Hex(),
			Code:      c.Code,
			Status:    deriveStatus(c, uses, now),
			Type:      c.DiscountType,
			Value:     c.Value,
			Uses:      int(uses),
			MaxUses:   c.MaxUses,
			ExpiresAt: c.ExpiresAt,
		})
	}
	return summaries, nil
}

// deriveStatus classifies a coupon at read time. Strict priority order,
// first match wins: inactive, expired, exhausted, active.
func deriveStatus(c *model.Coupon, uses int64, now time.Time) string {
	switch {
	case !c.IsActive:
		return model.StatusInactive
	case c.ExpiresAt != nil && c.ExpiresAt.Before(now):
		return model.StatusExpired
	case c.MaxUses != nil && uses >= int64(*c.MaxUses):
		return model.StatusExhausted
	default:
		return model.StatusActive
	}
}

// Apply validates a coupon against an order amount and, on success, records
// a redemption. The checks form a short-circuiting pipeline: the first
// failing check determines the rejection reason. Rejections are business
// outcomes, not errors; only store failures return a non-nil error.
//
// Note: the usage-count check and the redemption insert are separate store
// operations with no transaction around them, so concurrent applies near
// max_uses can exceed the limit. Faithful to the current design; see
// DESIGN.md for the enhancement path.
func (s *CouponService) Apply(ctx context.Context, code string, orderAmount float64, userID string) (*model.ApplyCouponResponse, error) {
	code = NormalizeCode(code)

	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find coupon: %w", err)
	}
	if coupon == nil {
		return &model.ApplyCouponResponse{Valid: false, Reason: ReasonInvalidCode}, nil
	}

	if !coupon.IsActive {
		return &model.ApplyCouponResponse{Valid: false, Reason: ReasonInactive}, nil
	}

	now := time.Now().UTC()
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(now) {
		return &model.ApplyCouponResponse{Valid: false, Reason: ReasonExpired}, nil
	}

	uses, err := s.redemptionRepo.CountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("count redemptions: %w", err)
	}
	if coupon.MaxUses != nil && uses >= int64(*coupon.MaxUses) {
		return &model.ApplyCouponResponse{Valid: false, Reason: ReasonUsageLimit}, nil
	}

	if orderAmount < coupon.MinOrderAmount {
		return &model.ApplyCouponResponse{Valid: false, Reason: ReasonBelowMinimum}, nil
	}

	var discount float64
	if coupon.DiscountType == model.DiscountPercent {
		discount = round2(orderAmount * coupon.Value / 100)
	} else {
		// Fixed discount never exceeds the order amount
		discount = coupon.Value
		if orderAmount < coupon.Value {
			discount = orderAmount
		}
	}
	finalAmount := round2(orderAmount - discount)

	redemption := &model.Redemption{
		CouponCode:     code,
		OrderAmount:    orderAmount,
		DiscountAmount: discount,
		FinalAmount:    finalAmount,
		UserID:         userID,
		Context:        map[string]any{},
		CreatedAt:      now,
	}
	if _, err := s.redemptionRepo.Insert(ctx, redemption); err != nil {
		return nil, fmt.Errorf("insert redemption: %w", err)
	}

	return &model.ApplyCouponResponse{
		Valid:          true,
		Code:           code,
		DiscountAmount: discount,
		FinalAmount:    finalAmount,
	}, nil
}
