package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvDevelopment = "development"

type Config struct {
	Environment string
	HTTPPort    string
	GRPCPort    string

	DB      DB
	Redis   Redis
	Kafka   Kafka
	Log     Log
	Sweeper Sweeper
	Tariff  Tariff

	FileStoreURL     string
	FileStoreTimeout time.Duration

	TokenSecret string
	TokenTTL    time.Duration
	// Location is the zone reservation dates and times are expressed in.
	Location *time.Location
	// MaxReservationDays caps the number of days one reservation may cover.
	MaxReservationDays int

	AdminUsername string
	AdminPassword string

	AuditBatchSize     int
	AuditFlushInterval time.Duration
	AuditWorkers       int
}

type DB struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

func (c DB) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type Kafka struct {
	Brokers          []string
	ConsumerGroup    string
	PublishInterval  time.Duration
	PublishBatchSize int
	// PublishMaxAttempts is how many deliveries a task gets before it stays FAILED.
	PublishMaxAttempts int
}

type Log struct {
	Level  string
	Format string
}

type Sweeper struct {
	FrequentInterval time.Duration
	FullInterval     time.Duration
	StoreTimeout     time.Duration
	Workers          int
	CacheTTL         time.Duration
}

// Tariff holds per-bag per-day prices in minor currency units.
type Tariff struct {
	Small  int64
	Medium int64
	Large  int64
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	loadEnvFile()

	locName := getEnv("LOCATION", "UTC")
	loc, err := time.LoadLocation(locName)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCATION %q: %w", locName, err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", EnvDevelopment),
		HTTPPort:    getEnv("HTTP_PORT", "9000"),
		GRPCPort:    getEnv("GRPC_PORT", "50051"),
		DB: DB{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Name:     getEnv("POSTGRES_DB", "luggage"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Kafka: Kafka{
			Brokers:            getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			ConsumerGroup:      getEnv("KAFKA_CONSUMER_GROUP", "luggage-notifications"),
			PublishInterval:    getEnvAsDuration("OUTBOX_PUBLISH_INTERVAL", 2*time.Second),
			PublishBatchSize:   getEnvAsInt("OUTBOX_BATCH_SIZE", 50),
			PublishMaxAttempts: getEnvAsInt("OUTBOX_MAX_ATTEMPTS", 5),
		},
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Sweeper: Sweeper{
			FrequentInterval: getEnvAsDuration("SWEEP_INTERVAL", 10*time.Minute),
			FullInterval:     getEnvAsDuration("SWEEP_FULL_INTERVAL", 24*time.Hour),
			StoreTimeout:     getEnvAsDuration("SWEEP_STORE_TIMEOUT", 30*time.Second),
			Workers:          getEnvAsInt("SWEEP_WORKERS", 4),
			CacheTTL:         getEnvAsDuration("SWEEP_CACHE_TTL", time.Hour),
		},
		Tariff: Tariff{
			Small:  int64(getEnvAsInt("TARIFF_SMALL", 3000)),
			Medium: int64(getEnvAsInt("TARIFF_MEDIUM", 4000)),
			Large:  int64(getEnvAsInt("TARIFF_LARGE", 5000)),
		},
		FileStoreURL:       getEnv("FILESTORE_URL", "http://localhost:8081"),
		FileStoreTimeout:   getEnvAsDuration("FILESTORE_TIMEOUT", 10*time.Second),
		TokenSecret:        getEnv("PICKUP_TOKEN_SECRET", ""),
		TokenTTL:           getEnvAsDuration("PICKUP_TOKEN_TTL", 30*24*time.Hour),
		Location:           loc,
		MaxReservationDays: getEnvAsInt("MAX_RESERVATION_DAYS", 90),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AuditBatchSize:     getEnvAsInt("AUDIT_BATCH_SIZE", 5),
		AuditFlushInterval: getEnvAsDuration("AUDIT_FLUSH_INTERVAL", 500*time.Millisecond),
		AuditWorkers:       getEnvAsInt("AUDIT_WORKERS", 2),
	}

	if cfg.Sweeper.Workers < 1 {
		return nil, fmt.Errorf("SWEEP_WORKERS must be positive, got %d", cfg.Sweeper.Workers)
	}
	if cfg.MaxReservationDays < 1 {
		return nil, fmt.Errorf("MAX_RESERVATION_DAYS must be positive, got %d", cfg.MaxReservationDays)
	}
	if cfg.TokenSecret == "" {
		if cfg.Environment != EnvDevelopment {
			return nil, fmt.Errorf("PICKUP_TOKEN_SECRET is required outside %s", EnvDevelopment)
		}
		if cfg.TokenSecret, err = randomSecret(); err != nil {
			return nil, err
		}
	}
	if cfg.Tariff.Small < 0 || cfg.Tariff.Medium < 0 || cfg.Tariff.Large < 0 {
		return nil, fmt.Errorf("tariffs must not be negative")
	}
	return cfg, nil
}

// randomSecret returns a per-process signing key. Tokens signed with it do
// not survive a restart.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// loadEnvFile looks for .env in the working directory and two parents.
// A missing file is not an error: the environment may already be set.
func loadEnvFile() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	for _, dir := range []string{wd, filepath.Join(wd, ".."), filepath.Join(wd, "..", "..")} {
		if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return result
}

// getEnvAsSlice splits a comma separated list. A variable that is set but
// empty yields an empty list.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
