package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/couponsapp/coupons-api/internal/model"
)

// RedemptionCollection is the logical collection holding redemption records.
const RedemptionCollection = "redemption"

// RedemptionRepository provides data access for redemptions using MongoDB.
type RedemptionRepository struct {
	collection *mongo.Collection
}

// NewRedemptionRepository creates a new RedemptionRepository backed by the given database.
func NewRedemptionRepository(db *mongo.Database) *RedemptionRepository {
	return &RedemptionRepository{collection: db.Collection(RedemptionCollection)}
}

// Insert inserts a new redemption record and returns its generated id.
// Redemptions are written once and never updated.
func (r *RedemptionRepository) Insert(ctx context.Context, redemption *model.Redemption) (string, error) {
	res, err := r.collection.InsertOne(ctx, redemption)
	if err != nil {
		return "", fmt.Errorf("insert redemption: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// CountByCode counts redemption records for a normalized coupon code.
// This is the only read the system performs on redemptions.
func (r *RedemptionRepository) CountByCode(ctx context.Context, code string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"coupon_code": code})
	if err != nil {
		return 0, fmt.Errorf("count redemptions for %s: %w", code, err)
	}
	return count, nil
}
