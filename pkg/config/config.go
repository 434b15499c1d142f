package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Pricing PricingConfig
	Grades  GradesConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every inconsistency at once so a bad deploy shows the full list.
func (c *Config) Validate() error {
	var errs error
	switch c.DB.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be %s or %s", EnvDBDriver, DBDriverPostgres, DBDriverSQLite))
	}
	if len(c.Pricing.BootstrapThresholds) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must list at least one threshold", EnvBootstrapThresholds))
	}
	if len(c.Pricing.BootstrapThresholds) > MaxBootstrapThresholds {
		errs = multierr.Append(errs, fmt.Errorf("%s accepts at most %d thresholds", EnvBootstrapThresholds, MaxBootstrapThresholds))
	}
	last := 0
	for _, threshold := range c.Pricing.BootstrapThresholds {
		if threshold < 1 {
			errs = multierr.Append(errs, fmt.Errorf("%s values must be >= 1", EnvBootstrapThresholds))
			break
		}
		if threshold <= last {
			errs = multierr.Append(errs, fmt.Errorf("%s must be strictly ascending", EnvBootstrapThresholds))
			break
		}
		last = threshold
	}
	if c.Pricing.BootstrapStepPercent < 0 || c.Pricing.BootstrapStepPercent >= 100 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be in [0,100)", EnvBootstrapStepPercent))
	}
	if c.Pricing.BootstrapStepPercent*float64(len(c.Pricing.BootstrapThresholds)-1) >= 100 {
		errs = multierr.Append(errs, fmt.Errorf("%s too large for %d thresholds", EnvBootstrapStepPercent, len(c.Pricing.BootstrapThresholds)))
	}
	if c.Pricing.SettingsCacheTTL < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be non-negative", EnvPricingCacheTTL))
	}
	return errs
}

type AppConfig struct {
	Env          string `envconfig:"GRADEFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"GRADEFLOW_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GRADEFLOW_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"GRADEFLOW_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"GRADEFLOW_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"GRADEFLOW_AUTO_MIGRATE" default:"false"`

	CORSAllowedOrigins []string `envconfig:"GRADEFLOW_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GRADEFLOW_DB_DSN"`
	Driver string `envconfig:"GRADEFLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GRADEFLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"GRADEFLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GRADEFLOW_DB_USER"`
	LegacyPassword string `envconfig:"GRADEFLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"GRADEFLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"GRADEFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GRADEFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GRADEFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GRADEFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GRADEFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GRADEFLOW_REDIS_URL"`
	Address      string        `envconfig:"GRADEFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"GRADEFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"GRADEFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GRADEFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GRADEFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GRADEFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GRADEFLOW_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"GRADEFLOW_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// PricingConfig holds the store-overridable seed tiers used by gradual wholesale pricing.
type PricingConfig struct {
	BootstrapThresholds  []int         `envconfig:"GRADEFLOW_PRICING_BOOTSTRAP_THRESHOLDS" default:"1,10,50,100"`
	BootstrapStepPercent float64       `envconfig:"GRADEFLOW_PRICING_BOOTSTRAP_STEP_PERCENT" default:"10"`
	SettingsCacheTTL     time.Duration `envconfig:"GRADEFLOW_PRICING_SETTINGS_CACHE_TTL" default:"2m"`
}

// GradesConfig seeds new flexible grade configurations.
type GradesConfig struct {
	DefaultHalfGradePercentage int `envconfig:"GRADEFLOW_GRADES_DEFAULT_HALF_PERCENTAGE" default:"50"`
	DefaultCustomMixMinPairs   int `envconfig:"GRADEFLOW_GRADES_DEFAULT_CUSTOM_MIN_PAIRS" default:"6"`
	DefaultCustomMixMaxColors  int `envconfig:"GRADEFLOW_GRADES_DEFAULT_CUSTOM_MAX_COLORS" default:"3"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DBDriverSQLite {
		db.DSN = "file:gradeflow.db?cache=shared"
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
