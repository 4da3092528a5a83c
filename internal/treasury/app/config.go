package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/treasury/internal/treasury/store/drivers/sqlstore"
)

// ConfigFileEnv names the YAML file overlaid under the environment.
const ConfigFileEnv = "TREASURY_CONFIG_FILE"

type Config struct {
	// DBDriver is sqlite or postgres. DatabaseFile is used by sqlite and
	// DatabaseURL by postgres.
	DBDriver     string `env:"TREASURY_DB_DRIVER" envDefault:"sqlite"`
	DatabaseFile string `env:"TREASURY_DATABASE_FILE" envDefault:"treasury.db"`
	DatabaseURL  string `env:"TREASURY_DATABASE_URL"`

	// Both files are created on first start.
	PepperFile     string `env:"TREASURY_PEPPER_FILE" envDefault:"pepper"`
	SigningKeyFile string `env:"TREASURY_SIGNING_KEY_FILE" envDefault:"signing.pem"`

	Issuer         string        `env:"TREASURY_ISSUER" envDefault:"treasury"`
	AccessTTL      time.Duration `env:"TREASURY_ACCESS_TTL" envDefault:"12h"`
	BootstrapToken string        `env:"BOOTSTRAP_TOKEN"` // empty disables bootstrap

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads the process environment, overlaid on configFile when one
// is given (or named by TREASURY_CONFIG_FILE).
func LoadConfig(configFile string) (Config, error) {
	if configFile == "" {
		configFile = os.Getenv(ConfigFileEnv)
	}
	return loadConfig(configFile, env.ToMap(os.Environ()))
}

// loadConfig merges the YAML file under environ and parses the result. The
// file uses the same keys as the environment:
//
//	TREASURY_DB_DRIVER: postgres
//	PORT: 9090
func loadConfig(configFile string, environ map[string]string) (Config, error) {
	merged := map[string]string{}
	if configFile != "" {
		buf, err := os.ReadFile(configFile) // #nosec G304 -- operator supplied path
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		var fileVals map[string]any
		if err := yaml.Unmarshal(buf, &fileVals); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
		for k, v := range fileVals {
			if v == nil {
				continue
			}
			merged[k] = fmt.Sprint(v)
		}
	}
	for k, v := range environ {
		merged[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: merged}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch sqlstore.Dialect(c.DBDriver) {
	case sqlstore.DialectSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("TREASURY_DATABASE_FILE is required for sqlite"))
		}
	case sqlstore.DialectPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("TREASURY_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported TREASURY_DB_DRIVER %q", c.DBDriver))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("TREASURY_ACCESS_TTL must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	return errors.Join(errs...)
}

// DSN is the argument sqlstore.Open expects for the configured driver.
func (c Config) DSN() string {
	if sqlstore.Dialect(c.DBDriver) == sqlstore.DialectPostgres {
		return c.DatabaseURL
	}
	return c.DatabaseFile
}
