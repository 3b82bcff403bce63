package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
env: production
http:
  address: ":9090"
  cors_origins: ["http://localhost:3000"]
database:
  host: db
  user: hotel
  password: ${HOTEL_DB_PASSWORD}
  name: hotelbooking
auth:
  jwt_secret: "0123456789abcdef0123"
kafka:
  brokers: ["kafka:9092"]
`

func TestParse(t *testing.T) {
	t.Setenv("HOTEL_DB_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "host=db port=5432 user=hotel password=s3cret dbname=hotelbooking sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "booking-events", cfg.Kafka.BookingTopic)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout())
	assert.Equal(t, 5*time.Minute, cfg.Catalog.HotelsCacheTTL())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 15*time.Minute, cfg.Worker.CompletionSweepInterval())
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "http: [oops"},
		{name: "missing secret", yaml: "database: {user: u, name: n}"},
		{name: "short secret", yaml: "database: {user: u, name: n}\nauth: {jwt_secret: short}"},
		{name: "unknown env", yaml: "env: staging\ndatabase: {user: u, name: n}\nauth: {jwt_secret: 0123456789abcdef}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "hotelbooking", cfg.Database.Name)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_OnlyBracedEnvReferencesExpand(t *testing.T) {
	t.Setenv("HOTEL_DB_USER", "hotel")
	t.Setenv("word", "leaked")

	cfg, err := Parse([]byte(`
database:
  user: ${HOTEL_DB_USER}
  password: "pa$word$$1"
  name: hotelbooking
auth:
  jwt_secret: "0123456789abcdef$secret"
`))
	require.NoError(t, err)

	assert.Equal(t, "hotel", cfg.Database.User)
	assert.Equal(t, "pa$word$$1", cfg.Database.Password)
	assert.Equal(t, "0123456789abcdef$secret", cfg.Auth.JWTSecret)
}
