package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Outbox  OutboxConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Sao_Paulo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Sao_Paulo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-10800"` // -3*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// BookingConfig drives the availability engine and the write-path serialization.
type BookingConfig struct {
	SlotGranularity int           `envconfig:"BOOKING_SLOT_GRANULARITY" default:"30"`
	LockTimeout     time.Duration `envconfig:"BOOKING_LOCK_TIMEOUT" default:"3s"`
	CommitTimeout   time.Duration `envconfig:"BOOKING_COMMIT_TIMEOUT" default:"5s"`
	TimeZone        string        `envconfig:"BOOKING_TIMEZONE" default:"America/Sao_Paulo"`
	StorageDriver   string        `envconfig:"STORAGE_DRIVER" default:"postgres"`
	RetryAfter      time.Duration `envconfig:"BOOKING_RETRY_AFTER" default:"1s"`
}

// Addr empty disables the occupied-interval cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_OCCUPANCY_TTL" default:"15s"`
}

// Brokers empty disables the outbox relay.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"appointments"`
}

type OutboxConfig struct {
	Schedule  string `envconfig:"OUTBOX_SCHEDULE" default:"@every 5s"`
	BatchSize int    `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves TimeZone. LoadConfig rejects unknown zones, so the UTC fallback only
// applies to hand-built configs.
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c BookingConfig) UsesMemoryStorage() bool {
	return c.StorageDriver == StorageDriverMemory
}

func (c *Config) validate() error {
	switch c.Booking.StorageDriver {
	case StorageDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required when STORAGE_DRIVER=%s", StorageDriverPostgres)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Booking.StorageDriver)
	}
	if c.Booking.SlotGranularity <= 0 {
		return fmt.Errorf("BOOKING_SLOT_GRANULARITY must be positive, got %d", c.Booking.SlotGranularity)
	}
	if c.Booking.LockTimeout <= 0 || c.Booking.CommitTimeout <= 0 {
		return fmt.Errorf("booking lock and commit timeouts must be positive")
	}
	if c.Booking.TimeZone == "" {
		return fmt.Errorf("BOOKING_TIMEZONE must name an IANA zone")
	}
	if _, err := time.LoadLocation(c.Booking.TimeZone); err != nil {
		return fmt.Errorf("BOOKING_TIMEZONE %q: %w", c.Booking.TimeZone, err)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "America/Sao_Paulo",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Sao_Paulo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -10800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Booking: BookingConfig{
			SlotGranularity: 30,
			LockTimeout:     time.Second,
			CommitTimeout:   2 * time.Second,
			TimeZone:        "America/Sao_Paulo",
			StorageDriver:   StorageDriverMemory,
			RetryAfter:      time.Second,
		},
		Redis: RedisConfig{TTL: 15 * time.Second},
		Kafka: KafkaConfig{Topic: "appointments"},
		Outbox: OutboxConfig{
			Schedule:  "@every 5s",
			BatchSize: 100,
		},
	}
}
