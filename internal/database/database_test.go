package database

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"

	"skilltwin/internal/config"
)

var mongoURI string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	dbContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not start mongodb container")
	}

	mongoURI, err = dbContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not read mongodb connection string")
	}

	code := m.Run()

	if err := testcontainers.TerminateContainer(dbContainer); err != nil {
		log.Fatal().Err(err).Msg("Could not teardown mongodb container")
	}
	os.Exit(code)
}

func TestNew(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	srv, err := New(context.Background(), config.MongoConfig{URI: mongoURI, Database: "skilltwin_test"}, config.RedisConfig{})
	require.NoError(t, err)
	defer srv.Close(context.Background())

	assert.Equal(t, "skilltwin_test", srv.DB().Name())
	assert.Nil(t, srv.Redis())
}

func TestHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	srv, err := New(context.Background(), config.MongoConfig{URI: mongoURI, Database: "skilltwin_test"}, config.RedisConfig{})
	require.NoError(t, err)
	defer srv.Close(context.Background())

	stats := srv.Health()

	assert.Equal(t, "It's healthy", stats["message"])
	assert.Equal(t, "up", stats["status"])
	_, hasRedis := stats["redis"]
	assert.False(t, hasRedis)
}

func TestNew_MissingURI(t *testing.T) {
	_, err := New(context.Background(), config.MongoConfig{}, config.RedisConfig{})
	assert.Error(t, err)
}

func TestHealth_WithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, redisContainer)
	require.NoError(t, err)

	addr, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err)

	srv, err := New(ctx, config.MongoConfig{URI: mongoURI, Database: "skilltwin_test"}, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer srv.Close(context.Background())

	require.NotNil(t, srv.Redis())
	stats := srv.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "up", stats["redis"])
}
