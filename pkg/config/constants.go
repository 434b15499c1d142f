package config

const EnvPrefix = "GRADEFLOW"

// MaxBootstrapThresholds matches the number of tier slots a product can hold.
const MaxBootstrapThresholds = 4

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "GRADEFLOW_APP_ENV"
	EnvPort      = "GRADEFLOW_APP_PORT"
	EnvLogLevel  = "GRADEFLOW_LOG_LEVEL"
	EnvLogFormat = "GRADEFLOW_LOG_FORMAT"

	EnvDBDSN    = "GRADEFLOW_DB_DSN"
	EnvDBDriver = "GRADEFLOW_DB_DRIVER"
	EnvDBHost   = "GRADEFLOW_DB_HOST"
	EnvDBUser   = "GRADEFLOW_DB_USER"
	EnvDBName   = "GRADEFLOW_DB_NAME"

	EnvRedisURL = "GRADEFLOW_REDIS_URL"

	EnvBootstrapThresholds  = "GRADEFLOW_PRICING_BOOTSTRAP_THRESHOLDS"
	EnvBootstrapStepPercent = "GRADEFLOW_PRICING_BOOTSTRAP_STEP_PERCENT"
	EnvPricingCacheTTL      = "GRADEFLOW_PRICING_SETTINGS_CACHE_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)
