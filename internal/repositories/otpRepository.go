package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skilltwin/internal/database"
	"skilltwin/internal/models"
)

// OTPRepository holds at most one code per (email, owner kind). Every state
// change is a single-document atomic operation.
type OTPRepository interface {
	// Upsert replaces the code for (email, kind) and resets it to unused.
	Upsert(ctx context.Context, email string, kind models.AccountKind, codeHash string, expiresAt time.Time) (*models.OTP, error)
	// FindActive returns the unused, unexpired record or mongo.ErrNoDocuments.
	FindActive(ctx context.Context, email string, kind models.AccountKind, now time.Time) (*models.OTP, error)
	// Consume marks an active record used and stamps ticketID on it. It
	// reports false when the record was no longer active.
	Consume(ctx context.Context, id primitive.ObjectID, ticketID string, now, holdUntil time.Time) (bool, error)
	// RecordFailedAttempt bumps the attempt counter and burns the record once
	// it reaches maxAttempts.
	RecordFailedAttempt(ctx context.Context, id primitive.ObjectID, maxAttempts int) (*models.OTP, error)
	// ClaimConsumed marks the consumed record a reset ticket refers to as
	// claimed and reports whether this call was the one that claimed it.
	ClaimConsumed(ctx context.Context, email string, kind models.AccountKind, ticketID string) (bool, error)
	// ReleaseClaim makes a claimed ticket redeemable again.
	ReleaseClaim(ctx context.Context, email string, kind models.AccountKind, ticketID string) error
	DeleteAllFor(ctx context.Context, email string, kind models.AccountKind) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type otpRepository struct {
	db database.Service
}

func NewOTPRepository(db database.Service) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) collection() *mongo.Collection {
	return r.db.DB().Collection(otpCollection)
}

func (r *otpRepository) Upsert(ctx context.Context, email string, kind models.AccountKind, codeHash string, expiresAt time.Time) (_ *models.OTP, err error) {
	defer trackQuery("otp", "upsert")(&err)

	now := time.Now().UTC()
	filter := bson.M{"email": email, "owner_kind": kind}
	update := bson.M{
		"$set": bson.M{
			"code_hash":  codeHash,
			"expires_at": expiresAt.UTC(),
			"is_used":    false,
			"attempts":   0,
			"claimed":    false,
			"updated_at": now,
		},
		"$unset":       bson.M{"ticket_id": ""},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var otp models.OTP
	if err = r.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&otp); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("Failed to upsert OTP")
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}
	return &otp, nil
}

func (r *otpRepository) FindActive(ctx context.Context, email string, kind models.AccountKind, now time.Time) (_ *models.OTP, err error) {
	defer trackQuery("otp", "findActive")(&err)

	filter := bson.M{
		"email":      email,
		"owner_kind": kind,
		"is_used":    false,
		"expires_at": bson.M{"$gt": now},
	}
	var otp models.OTP
	if err = r.collection().FindOne(ctx, filter).Decode(&otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) Consume(ctx context.Context, id primitive.ObjectID, ticketID string, now, holdUntil time.Time) (_ bool, err error) {
	defer trackQuery("otp", "consume")(&err)

	filter := bson.M{
		"_id":        id,
		"is_used":    false,
		"expires_at": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"is_used":    true,
		"ticket_id":  ticketID,
		"expires_at": holdUntil.UTC(),
		"updated_at": now,
	}}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *otpRepository) RecordFailedAttempt(ctx context.Context, id primitive.ObjectID, maxAttempts int) (_ *models.OTP, err error) {
	defer trackQuery("otp", "recordFailedAttempt")(&err)

	next := bson.M{"$add": bson.A{"$attempts", 1}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"attempts":   next,
			"is_used":    bson.M{"$or": bson.A{"$is_used", bson.M{"$gte": bson.A{next, maxAttempts}}}},
			"updated_at": "$$NOW",
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var otp models.OTP
	if err = r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id, "is_used": false}, update, opts).Decode(&otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) ClaimConsumed(ctx context.Context, email string, kind models.AccountKind, ticketID string) (_ bool, err error) {
	defer trackQuery("otp", "claimConsumed")(&err)

	filter := bson.M{
		"email":      email,
		"owner_kind": kind,
		"is_used":    true,
		"ticket_id":  ticketID,
		"claimed":    bson.M{"$ne": true},
	}
	update := bson.M{"$set": bson.M{"claimed": true, "updated_at": time.Now().UTC()}}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to claim reset ticket: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *otpRepository) ReleaseClaim(ctx context.Context, email string, kind models.AccountKind, ticketID string) (err error) {
	defer trackQuery("otp", "releaseClaim")(&err)

	filter := bson.M{
		"email":      email,
		"owner_kind": kind,
		"ticket_id":  ticketID,
		"claimed":    true,
	}
	update := bson.M{"$set": bson.M{"claimed": false, "updated_at": time.Now().UTC()}}
	if _, err = r.collection().UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release reset ticket: %w", err)
	}
	return nil
}

func (r *otpRepository) DeleteAllFor(ctx context.Context, email string, kind models.AccountKind) (_ int64, err error) {
	defer trackQuery("otp", "deleteAllFor")(&err)

	result, err := r.collection().DeleteMany(ctx, bson.M{"email": email, "owner_kind": kind})
	if err != nil {
		return 0, fmt.Errorf("failed to delete otps: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (_ int64, err error) {
	defer trackQuery("otp", "deleteExpired")(&err)

	result, err := r.collection().DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", err)
	}
	return result.DeletedCount, nil
}
