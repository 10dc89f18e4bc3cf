package service

import "errors"

var (
	// ErrDuplicateCode is returned when creating a coupon whose normalized
	// code already exists
	ErrDuplicateCode = errors.New("coupon code already exists")

	// ErrInvalidDiscountValue is returned when a percent coupon's value is
	// outside (0, 100]
	ErrInvalidDiscountValue = errors.New("percent discount must be between 0 and 100")

	// ErrCouponNotFound is returned when a coupon cannot be found
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")
)
