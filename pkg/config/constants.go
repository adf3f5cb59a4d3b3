package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "catalog"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, shared with tests and deploy tooling.
const (
	EnvAppEnv   = "CATALOG_APP_ENV"
	EnvPort     = "CATALOG_APP_PORT"
	EnvLogLevel = "CATALOG_LOG_LEVEL"
	EnvDBDSN    = "CATALOG_DB_DSN"
	EnvRedisURL = "CATALOG_REDIS_URL"
)
