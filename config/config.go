package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env" validate:"oneof=development production"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Auth     AuthConfig     `yaml:"auth"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address                string   `yaml:"address" validate:"required"`
	CORSOrigins            []string `yaml:"cors_origins"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds" validate:"gte=0"`
}

func (h HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(h.ShutdownTimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Host        string `yaml:"host" validate:"required"`
	Port        int    `yaml:"port" validate:"gt=0"`
	User        string `yaml:"user" validate:"required"`
	Password    string `yaml:"password"`
	Name        string `yaml:"name" validate:"required"`
	SSLMode     string `yaml:"ssl_mode"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type CatalogConfig struct {
	HotelsCacheTTLSeconds int `yaml:"hotels_cache_ttl_seconds" validate:"gte=0"`
	TopRatedLimit         int `yaml:"top_rated_limit" validate:"gte=0"`
}

func (c CatalogConfig) HotelsCacheTTL() time.Duration {
	return time.Duration(c.HotelsCacheTTLSeconds) * time.Second
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret" validate:"required,min=16"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" validate:"gt=0"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type WorkerConfig struct {
	CompletionSweepMinutes int `yaml:"completion_sweep_minutes" validate:"gte=0"`
}

func (w WorkerConfig) CompletionSweepInterval() time.Duration {
	return time.Duration(w.CompletionSweepMinutes) * time.Minute
}

func defaults() Config {
	return Config{
		Env: "development",
		HTTP: HTTPConfig{
			Address:                ":8080",
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			BookingTopic:       "booking-events",
			NotificationsTopic: "notifications",
			GroupID:            "hotelbooking-worker",
		},
		Catalog: CatalogConfig{
			HotelsCacheTTLSeconds: 300,
			TopRatedLimit:         10,
		},
		Auth:   AuthConfig{TokenTTLMinutes: 24 * 60},
		Worker: WorkerConfig{CompletionSweepMinutes: 15},
	}
}

// LoadConfig reads a YAML file, expanding ${VAR} references from the
// environment. A .env file next to the process is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references only; a bare $ stays literal.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(envRef.FindSubmatch(ref)[1])))
	})
}

func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(expandEnv(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
