package repositories

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/database"
	"skilltwin/internal/models"
	"skilltwin/internal/utils"
)

const (
	otpCollection        = "otps"
	blogCollection       = "blogs"
	leadCollection       = "leads"
	enrollmentCollection = "enrollments"
	catalogCollection    = "catalog"
	expertCollection     = "experts"
	sessionLogCollection = "session_logs"
	taskCollection       = "tasks"
)

// EnsureIndexes creates every index the repositories rely on. It is safe to
// call on every start.
func EnsureIndexes(ctx context.Context, db database.Service) error {
	d := db.DB()

	for _, kind := range []models.AccountKind{models.KindUser, models.KindAdmin} {
		if err := utils.CreateUniqueIndex(ctx, d.Collection(kind.Collection()), bson.D{{Key: "email", Value: 1}}, "email"); err != nil {
			return err
		}
	}

	otps := d.Collection(otpCollection)
	if err := utils.CreateUniqueIndex(ctx, otps, bson.D{{Key: "email", Value: 1}, {Key: "owner_kind", Value: 1}}, "otp owner"); err != nil {
		return err
	}
	if err := utils.CreateTTLIndex(ctx, otps, "expires_at"); err != nil {
		return err
	}

	if err := utils.CreateUniqueIndex(ctx, d.Collection(blogCollection), bson.D{{Key: "slug", Value: 1}}, "slug"); err != nil {
		return err
	}
	if err := utils.CreateUniqueIndex(ctx, d.Collection(catalogCollection), bson.D{{Key: "kind", Value: 1}, {Key: "slug", Value: 1}}, "slug"); err != nil {
		return err
	}

	plain := map[string]bson.D{
		blogCollection:       {{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}},
		leadCollection:       {{Key: "source", Value: 1}, {Key: "created_at", Value: -1}},
		enrollmentCollection: {{Key: "created_at", Value: -1}},
		sessionLogCollection: {{Key: "enrollment_id", Value: 1}},
	}
	for name, keys := range plain {
		if _, err := d.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
			return err
		}
	}

	log.Info().Msg("Database indexes ensured")
	return nil
}
