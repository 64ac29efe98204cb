package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skilltwin/internal/config"
)

type Service interface {
	Health() map[string]string
	Client() *mongo.Client
	DB() *mongo.Database
	// Redis is nil when no REDIS_ADDR is configured.
	Redis() *redis.Client
	Close(ctx context.Context) error
}

type service struct {
	db     *mongo.Client
	dbName string
	rdb    *redis.Client
}

func New(ctx context.Context, mongoCfg config.MongoConfig, redisCfg config.RedisConfig) (Service, error) {
	if mongoCfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is not set")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoCfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Info().Str("database", mongoCfg.Database).Msg("Connected to MongoDB")

	s := &service{db: client, dbName: mongoCfg.Database}

	if redisCfg.Addr != "" {
		rdb, err := newRedis(connectCtx, redisCfg)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		s.rdb = rdb
	}

	return s, nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info().Str("addr", cfg.Addr).Msg("Connected to Redis")
	return rdb, nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := s.db.Ping(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"status":  "down",
			"message": "db down",
			"error":   err.Error(),
		}
	}

	stats := map[string]string{
		"status":  "up",
		"message": "It's healthy",
	}
	if s.rdb != nil {
		if err := s.rdb.Ping(ctx).Err(); err != nil {
			log.Error().Err(err).Msg("Redis health check failed")
			stats["redis"] = "down"
			stats["status"] = "degraded"
		} else {
			stats["redis"] = "up"
		}
	}
	return stats
}

func (s *service) Client() *mongo.Client {
	return s.db
}

func (s *service) DB() *mongo.Database {
	return s.db.Database(s.dbName)
}

func (s *service) Redis() *redis.Client {
	return s.rdb
}

func (s *service) Close(ctx context.Context) error {
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
	return s.db.Disconnect(ctx)
}
