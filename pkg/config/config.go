package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	SnapshotBackendDB    = "db"
	SnapshotBackendRedis = "redis"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	OrderSync    OrderSyncConfig
	Snapshot     SnapshotConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Snapshot.validate(); err != nil {
		return nil, err
	}
	if cfg.Snapshot.UsesRedis() && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("redis snapshot backend requires HARVESTLINK_REDIS_URL or HARVESTLINK_REDIS_ADDR")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HARVESTLINK_APP_ENV" default:"dev"`
	Port         string `envconfig:"HARVESTLINK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"HARVESTLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HARVESTLINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"HARVESTLINK_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"HARVESTLINK_DB_DSN" default:"harvestlink.db"`

	MaxOpenConns    int           `envconfig:"HARVESTLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HARVESTLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HARVESTLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HARVESTLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HARVESTLINK_REDIS_URL"`
	Address      string        `envconfig:"HARVESTLINK_REDIS_ADDR"`
	Password     string        `envconfig:"HARVESTLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"HARVESTLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HARVESTLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HARVESTLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HARVESTLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HARVESTLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HARVESTLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"HARVESTLINK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HARVESTLINK_JWT_ISSUER" default:"harvestlink"`
	ExpirationMinutes int    `envconfig:"HARVESTLINK_JWT_EXPIRATION_MINUTES" default:"60"`
}

// OrderSyncConfig drives the best-effort mirror to the remote order service.
type OrderSyncConfig struct {
	BaseURL    string        `envconfig:"HARVESTLINK_ORDER_SYNC_BASE_URL"`
	Timeout    time.Duration `envconfig:"HARVESTLINK_ORDER_SYNC_TIMEOUT" default:"10s"`
	QueueSize  int           `envconfig:"HARVESTLINK_ORDER_SYNC_QUEUE_SIZE" default:"128"`
	OrderPath  string        `envconfig:"HARVESTLINK_ORDER_SYNC_ORDER_PATH" default:"/api/orders"`
	MirrorPath string        `envconfig:"HARVESTLINK_ORDER_SYNC_MIRROR_PATH" default:"/api/cart-events"`
}

func (o OrderSyncConfig) Enabled() bool {
	return strings.TrimSpace(o.BaseURL) != ""
}

type SnapshotConfig struct {
	Backend string        `envconfig:"HARVESTLINK_SNAPSHOT_BACKEND" default:"db"`
	TTL     time.Duration `envconfig:"HARVESTLINK_SNAPSHOT_TTL" default:"0"`
}

func (s SnapshotConfig) UsesRedis() bool {
	return strings.EqualFold(s.Backend, SnapshotBackendRedis)
}

func (s SnapshotConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case SnapshotBackendDB, SnapshotBackendRedis:
		return nil
	}
	return fmt.Errorf("unknown snapshot backend %q", s.Backend)
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HARVESTLINK_AUTO_MIGRATE" default:"false"`
}
