package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/database"
	"skilltwin/internal/models"
)

// AccountRepository stores users and admins. The kind argument selects the
// collection; lookups return mongo.ErrNoDocuments when nothing matches.
type AccountRepository interface {
	Create(ctx context.Context, kind models.AccountKind, account *models.Account) (*models.Account, error)
	FindByEmail(ctx context.Context, kind models.AccountKind, email string) (*models.Account, error)
	FindByID(ctx context.Context, kind models.AccountKind, id primitive.ObjectID) (*models.Account, error)
	UpdatePassword(ctx context.Context, kind models.AccountKind, id primitive.ObjectID, passwordHash string) error
	CountAll(ctx context.Context, kind models.AccountKind) (int64, error)
	CountCreatedBetween(ctx context.Context, kind models.AccountKind, start, end time.Time) (int64, error)
}

type accountRepository struct {
	db database.Service
}

func NewAccountRepository(db database.Service) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) collection(kind models.AccountKind) *mongo.Collection {
	return r.db.DB().Collection(kind.Collection())
}

func (r *accountRepository) Create(ctx context.Context, kind models.AccountKind, account *models.Account) (_ *models.Account, err error) {
	defer trackQuery("account", "create")(&err)

	now := time.Now().UTC()
	account.ID = primitive.NewObjectID()
	account.Role = kind
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err = r.collection(kind).InsertOne(ctx, account); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			log.Error().Err(err).Str("kind", string(kind)).Str("email", account.Email).Msg("Failed to insert account into database")
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, kind models.AccountKind, email string) (_ *models.Account, err error) {
	defer trackQuery("account", "findByEmail")(&err)

	var account models.Account
	if err = r.collection(kind).FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByID(ctx context.Context, kind models.AccountKind, id primitive.ObjectID) (_ *models.Account, err error) {
	defer trackQuery("account", "findById")(&err)

	var account models.Account
	if err = r.collection(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&account); err != nil {
		return nil, err // Can be mongo.ErrNoDocuments
	}
	return &account, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, kind models.AccountKind, id primitive.ObjectID, passwordHash string) (err error) {
	defer trackQuery("account", "updatePassword")(&err)

	update := bson.M{"$set": bson.M{"password": passwordHash, "updated_at": time.Now().UTC()}}
	result, err := r.collection(kind).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("account_id", id.Hex()).Msg("Error updating account password")
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *accountRepository) CountAll(ctx context.Context, kind models.AccountKind) (_ int64, err error) {
	defer trackQuery("account", "countAll")(&err)

	count, err := r.collection(kind).CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("Failed to count accounts")
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

func (r *accountRepository) CountCreatedBetween(ctx context.Context, kind models.AccountKind, start, end time.Time) (_ int64, err error) {
	defer trackQuery("account", "countCreatedBetween")(&err)

	filter := bson.M{
		"created_at": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}
	count, err := r.collection(kind).CountDocuments(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count accounts created between dates")
		return 0, fmt.Errorf("failed to count accounts created between dates: %w", err)
	}
	return count, nil
}
