package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Sendgrid      SendgridConfig
	Client        ClientConfig
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
	Env          string `envconfig:"TASTE_APP_ENV" required:"true"`
	Port         string `envconfig:"TASTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TASTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TASTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TASTE_DB_DSN"`
	Driver string `envconfig:"TASTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TASTE_DB_HOST"`
	LegacyPort     int    `envconfig:"TASTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TASTE_DB_USER"`
	LegacyPassword string `envconfig:"TASTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TASTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TASTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TASTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TASTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TASTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TASTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TASTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TASTE_REDIS_ADDR"`
	Password     string        `envconfig:"TASTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TASTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TASTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TASTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TASTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TASTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TASTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"TASTE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"TASTE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"TASTE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"TASTE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TASTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TASTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TASTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TASTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TASTE_ARGON_KEY_LEN" default:"32"`

	MinLength int `envconfig:"TASTE_PASSWORD_MIN_LENGTH" default:"8"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TASTE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TASTE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TASTE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TASTE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TASTE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TASTE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TASTE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TASTE_AUTO_MIGRATE" default:"false"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"TASTE_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"TASTE_SENDGRID_FROM_EMAIL"`
	DisplayName string `envconfig:"TASTE_SENDGRID_DISPLAY_NAME" default:"Knight Meat Taste"`
}

// Enabled reports whether outbound mail can actually be delivered.
func (s SendgridConfig) Enabled() bool {
	return strings.TrimSpace(s.APIKey) != "" && strings.TrimSpace(s.DefaultFrom) != ""
}

type ClientConfig struct {
	// BaseURL is the web frontend origin embedded into verification and
	// password reset links.
	BaseURL string `envconfig:"TASTE_CLIENT_URL" default:"http://localhost:3000"`
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
