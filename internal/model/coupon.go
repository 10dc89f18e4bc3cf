package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discount types supported by the system.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Derived coupon statuses, computed at read time and never persisted.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusExpired   = "expired"
	StatusExhausted = "exhausted"
)

// Coupon is a stored discount rule. Code is normalized (trimmed, upper-cased)
// before any comparison or write; uniqueness is enforced on the normalized form.
type Coupon struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code           string             `bson:"code" json:"code"`
	DiscountType   string             `bson:"discount_type" json:"discount_type"`
	Value          float64            `bson:"value" json:"value"`
	MaxUses        *int               `bson:"max_uses,omitempty" json:"max_uses,omitempty"`
	ExpiresAt      *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	MinOrderAmount float64            `bson:"min_order_amount" json:"min_order_amount"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"-"`
}

// Redemption records one successful coupon application to an order.
// CouponCode is a denormalized reference, not an enforced relation.
type Redemption struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CouponCode     string             `bson:"coupon_code" json:"coupon_code"`
	OrderAmount    float64            `bson:"order_amount" json:"order_amount"`
	DiscountAmount float64            `bson:"discount_amount" json:"discount_amount"`
	FinalAmount    float64            `bson:"final_amount" json:"final_amount"`
	UserID         string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Context        map[string]any     `bson:"context" json:"context"`
	CreatedAt      time.Time          `bson:"created_at" json:"-"`
}

// CreateCouponRequest is the DTO for POST /api/coupons.
type CreateCouponRequest struct {
	Code           string     `json:"code" validate:"required,notblank,max=64"`
	DiscountType   string     `json:"discount_type" validate:"required,oneof=percent fixed"`
	Value          *float64   `json:"value" validate:"required,gt=0"`
	MaxUses        *int       `json:"max_uses" validate:"omitempty,gte=1"`
	ExpiresAt      *time.Time `json:"expires_at"`
	MinOrderAmount *float64   `json:"min_order_amount" validate:"omitempty,gte=0"`
	IsActive       *bool      `json:"is_active"`
	Notes          string     `json:"notes"`
}

// CouponResponse is the API response DTO for a created coupon.
type CouponResponse struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	DiscountType   string     `json:"discount_type"`
	Value          float64    `json:"value"`
	MaxUses        *int       `json:"max_uses"`
	ExpiresAt      *time.Time `json:"expires_at"`
	MinOrderAmount float64    `json:"min_order_amount"`
	IsActive       bool       `json:"is_active"`
	Uses           int        `json:"uses"`
}

// CouponSummary is one element of the GET /api/coupons listing.
type CouponSummary struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Status    string     `json:"status"`
	Type      string     `json:"type"`
	Value     float64    `json:"value"`
	Uses      int        `json:"uses"`
	MaxUses   *int       `json:"max_uses"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ApplyCouponRequest is the DTO for POST /api/coupons/apply.
type ApplyCouponRequest struct {
	Code        string   `json:"code" validate:"required,notblank,max=64"`
	OrderAmount *float64 `json:"order_amount" validate:"required,gte=0"`
	UserID      string   `json:"user_id"`
}

// ApplyCouponResponse is the outcome of a coupon application. Business
// rejections are not errors: Valid is false and Reason carries the cause.
type ApplyCouponResponse struct {
	Valid          bool    `json:"valid"`
	Reason         string  `json:"reason,omitempty"`
	Code           string  `json:"code,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}
