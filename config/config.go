package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	FrontDesk FrontDeskConfig `yaml:"frontdesk"`
	Log       LogConfig       `yaml:"log"`
}

type HTTPConfig struct {
	Address     string   `yaml:"address"`
	SwaggerDir  string   `yaml:"swagger_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type StorageConfig struct {
	// Backend is memory, redis or postgres.
	Backend   string `yaml:"backend"`
	KeyPrefix string `yaml:"key_prefix"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	LifecycleTopic     string   `yaml:"lifecycle_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 && k.LifecycleTopic != "" }

type FrontDeskConfig struct {
	MaxDocumentBytes int64 `yaml:"max_document_bytes"`
	SeedOnEmpty      bool  `yaml:"seed_on_empty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaults() Config {
	return Config{
		HTTP:    HTTPConfig{Address: ":8080", SwaggerDir: "docs"},
		Storage: StorageConfig{Backend: BackendMemory, KeyPrefix: "frontdesk"},
		Database: DatabaseConfig{
			Host: "localhost", Port: 5432, User: "postgres", Name: "frontdesk", SSLMode: "disable",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			LifecycleTopic:     "reservation-lifecycle",
			NotificationsTopic: "guest-notifications",
			GroupID:            "frontdesk-worker",
		},
		FrontDesk: FrontDeskConfig{MaxDocumentBytes: 5 << 20, SeedOnEmpty: true},
		Log:       LogConfig{Level: "info", Format: "json"},
	}
}

// LoadConfig reads .env (if present) into the environment, then the YAML file
// at path over the defaults, then the environment overrides.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("HTTP_ADDRESS", &cfg.HTTP.Address)
	str("STORAGE_BACKEND", &cfg.Storage.Backend)
	str("REDIS_ADDR", &cfg.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	str("DATABASE_HOST", &cfg.Database.Host)
	str("DATABASE_USER", &cfg.Database.User)
	str("DATABASE_PASSWORD", &cfg.Database.Password)
	str("DATABASE_NAME", &cfg.Database.Name)
	str("DATABASE_SSL_MODE", &cfg.Database.SSLMode)
	str("LOG_LEVEL", &cfg.Log.Level)

	if v, ok := lookup("DATABASE_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DATABASE_PORT: %w", err)
		}
		cfg.Database.Port = port
	}
	if v, ok := lookup("KAFKA_BROKERS"); ok && v != "" {
		cfg.Kafka.Brokers = nil
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		cfg.HTTP.CORSOrigins = strings.Split(v, ",")
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.HTTP.Address == "" {
		return errors.New("http.address is required")
	}
	if c.FrontDesk.MaxDocumentBytes <= 0 {
		return errors.New("frontdesk.max_document_bytes must be positive")
	}
	return nil
}
