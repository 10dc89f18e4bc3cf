package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/couponsapp/coupons-api/internal/model"
	"github.com/couponsapp/coupons-api/internal/service"
)

// CouponCollection is the logical collection holding coupon documents.
const CouponCollection = "coupon"

// CouponRepository provides data access for coupons using MongoDB.
type CouponRepository struct {
	collection *mongo.Collection
}

// NewCouponRepository creates a new CouponRepository backed by the given database.
func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{collection: db.Collection(CouponCollection)}
}

// Insert inserts a new coupon document and returns its generated id.
// Returns service.ErrDuplicateCode when the unique index on code rejects the
// write; the service's pre-insert lookup catches most duplicates, the index
// backs it up.
func (r *CouponRepository) Insert(ctx context.Context, coupon *model.Coupon) (string, error) {
	res, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", service.ErrDuplicateCode
		}
		return "", fmt.Errorf("insert coupon: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// FindByCode retrieves a coupon by its normalized code.
// Returns nil, nil if the coupon is not found (service layer handles this).
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Not found - let service handle
		}
		return nil, fmt.Errorf("find coupon by code %s: %w", code, err)
	}
	return &coupon, nil
}

// ListAll retrieves every coupon document in store iteration order.
// On success, returns an empty slice (not nil) when no coupons exist.
func (r *CouponRepository) ListAll(ctx context.Context) ([]model.Coupon, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	coupons := []model.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}
	return coupons, nil
}
