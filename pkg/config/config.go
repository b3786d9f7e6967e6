package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PRATOQUENTE_DB_DSN"
	EnvDBHost = "PRATOQUENTE_DB_HOST"
	EnvDBUser = "PRATOQUENTE_DB_USER"
	EnvDBName = "PRATOQUENTE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Analytics    AnalyticsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRATOQUENTE_APP_ENV" required:"true"`
	Port         string `envconfig:"PRATOQUENTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRATOQUENTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRATOQUENTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRATOQUENTE_DB_DSN"`
	Driver string `envconfig:"PRATOQUENTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRATOQUENTE_DB_HOST"`
	LegacyPort     int    `envconfig:"PRATOQUENTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRATOQUENTE_DB_USER"`
	LegacyPassword string `envconfig:"PRATOQUENTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRATOQUENTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRATOQUENTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRATOQUENTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRATOQUENTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRATOQUENTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRATOQUENTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRATOQUENTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRATOQUENTE_REDIS_ADDR"`
	Password     string        `envconfig:"PRATOQUENTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRATOQUENTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRATOQUENTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRATOQUENTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRATOQUENTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRATOQUENTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRATOQUENTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CacheConfig bounds the read-through cache in front of the sales queries.
type CacheConfig struct {
	RowsTTL       time.Duration `envconfig:"PRATOQUENTE_CACHE_ROWS_TTL" default:"10m"`
	DateLimitsTTL time.Duration `envconfig:"PRATOQUENTE_CACHE_DATE_LIMITS_TTL" default:"1h"`
	Disabled      bool          `envconfig:"PRATOQUENTE_CACHE_DISABLED" default:"false"`
}

type AnalyticsConfig struct {
	DefaultLimit int `envconfig:"PRATOQUENTE_ANALYTICS_DEFAULT_LIMIT" default:"10"`
	MaxLimit     int `envconfig:"PRATOQUENTE_ANALYTICS_MAX_LIMIT" default:"100"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRATOQUENTE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
