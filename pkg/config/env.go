package config

// EnvPrefix scopes envconfig lookups for variables without explicit tags.
const EnvPrefix = "taste"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "TASTE_APP_ENV"
	EnvPort       = "TASTE_APP_PORT"
	EnvRedisURL   = "TASTE_REDIS_URL"
	EnvJWTSecret  = "TASTE_JWT_SECRET"
	EnvJWTIssuer  = "TASTE_JWT_ISSUER"
	EnvJWTExpMins = "TASTE_JWT_EXPIRATION_MINUTES"

	EnvDBDSN  = "TASTE_DB_DSN"
	EnvDBHost = "TASTE_DB_HOST"
	EnvDBUser = "TASTE_DB_USER"
	EnvDBName = "TASTE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
