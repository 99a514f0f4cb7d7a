// In general, configs are loaded via yaml files, then selected values can be overridden from
// the environment (and .env files). Validation is a separate step, see Validate.

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
)

type (
	DatabaseType string
	Environment  string
	LogStyle     string
)

const (
	None     DatabaseType = "none"
	Inmemory DatabaseType = "inmemory"
	Mysql    DatabaseType = "mysql"

	EnvironmentTest Environment = "test"
	EnvironmentProd Environment = "prod"

	Plain LogStyle = "plain"
	Json  LogStyle = "json"
)

const (
	TestBaseUrl = "https://test.bitpay.com"
	ProdBaseUrl = "https://bitpay.com"

	EnvPrefix = "bitpay"
)

type (
	Application struct {
		Service   ServiceConfig     `yaml:"service"`
		Transport TransportConfig   `yaml:"transport"`
		Identity  IdentityConfig    `yaml:"identity"`
		Tokens    map[string]string `yaml:"tokens"`
		Database  DatabaseConfig    `yaml:"database"`
		Logging   LoggingConfig     `yaml:"logging"`
	}

	ServiceConfig struct {
		Name        string      `yaml:"name"`
		Environment Environment `yaml:"environment"`
		BaseUrl     string      `yaml:"base_url"`
		PluginInfo  string      `yaml:"plugin_info"`
	}

	TransportConfig struct {
		TimeoutSeconds int  `yaml:"timeout_seconds"`
		CircuitBreaker bool `yaml:"circuit_breaker"`
	}

	// IdentityConfig holds the secp256k1 key requests are signed with. Signing is off if both are empty.
	IdentityConfig struct {
		PrivateKeyHex  string `yaml:"private_key_hex"`
		PrivateKeyPath string `yaml:"private_key_path"`
	}

	DatabaseConfig struct {
		Use        DatabaseType `yaml:"use"`
		Username   string       `yaml:"username"`
		Password   string       `yaml:"password"`
		Database   string       `yaml:"database"`
		Parameters []string     `yaml:"parameters"`
	}

	LoggingConfig struct {
		Severity string   `yaml:"severity"`
		Style    LogStyle `yaml:"style"`
	}
)

// environmentOverrides are read from BITPAY_* variables.
type environmentOverrides struct {
	Environment      string `envconfig:"ENVIRONMENT"`
	BaseUrl          string `envconfig:"BASE_URL"`
	MerchantToken    string `envconfig:"MERCHANT_TOKEN"`
	PayoutToken      string `envconfig:"PAYOUT_TOKEN"`
	PosToken         string `envconfig:"POS_TOKEN"`
	PrivateKeyHex    string `envconfig:"PRIVATE_KEY_HEX"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD"`
	LogSeverity      string `envconfig:"LOG_SEVERITY"`
}

// Default is used when no configuration file is given.
func Default() *Application {
	conf := &Application{}
	conf.setDefaults()
	return conf
}

func UnmarshalFromYamlConfiguration(file io.Reader) (*Application, error) {
	d := yaml.NewDecoder(file)
	d.KnownFields(true)

	conf := &Application{}
	if err := d.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	conf.setDefaults()
	return conf, nil
}

// Load reads the yaml file at filename (if not empty) and applies the environment overrides.
//
// dotenvFiles are loaded into the environment first, missing files are skipped.
func Load(filename string, dotenvFiles ...string) (*Application, error) {
	conf := Default()
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		conf, err = UnmarshalFromYamlConfiguration(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %s: %w", filename, err)
		}
	}

	if err := loadDotenv(dotenvFiles); err != nil {
		return nil, err
	}
	if err := conf.ApplyEnvironmentOverrides(); err != nil {
		return nil, err
	}

	return conf, nil
}

func loadDotenv(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnvironmentOverrides overwrites configuration values for every BITPAY_* variable that is set.
func (a *Application) ApplyEnvironmentOverrides() error {
	o := environmentOverrides{}
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return fmt.Errorf("couldn't process environment: %w", err)
	}

	overrideString(&a.Service.BaseUrl, o.BaseUrl)
	overrideString(&a.Identity.PrivateKeyHex, o.PrivateKeyHex)
	overrideString(&a.Database.Password, o.DatabasePassword)
	overrideString(&a.Logging.Severity, o.LogSeverity)
	if o.Environment != "" {
		a.Service.Environment = Environment(o.Environment)
	}

	for facade, token := range map[entities.Facade]string{
		entities.FacadeMerchant: o.MerchantToken,
		entities.FacadePayout:   o.PayoutToken,
		entities.FacadePos:      o.PosToken,
	} {
		if token == "" {
			continue
		}
		if a.Tokens == nil {
			a.Tokens = make(map[string]string)
		}
		a.Tokens[string(facade)] = token
	}

	return nil
}

func overrideString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func (a *Application) setDefaults() {
	if a.Service.Name == "" {
		a.Service.Name = "reg-bitpay-client"
	}
	if a.Service.Environment == "" {
		a.Service.Environment = EnvironmentTest
	}
	if a.Transport.TimeoutSeconds == 0 {
		a.Transport.TimeoutSeconds = 30
	}
	if a.Database.Use == "" {
		a.Database.Use = None
	}
	if a.Logging.Severity == "" {
		a.Logging.Severity = "INFO"
	}
	if a.Logging.Style == "" {
		a.Logging.Style = Plain
	}
}

// BaseUrl is the explicit override, or the BitPay host of the configured environment.
func (a *Application) BaseUrl() string {
	if a.Service.BaseUrl != "" {
		return strings.TrimSuffix(a.Service.BaseUrl, "/")
	}
	if a.Service.Environment == EnvironmentProd {
		return ProdBaseUrl
	}
	return TestBaseUrl
}

// FacadeTokens converts the tokens section. Keys are parsed like facade names, so payroll means payout.
func (a *Application) FacadeTokens() (map[entities.Facade]string, error) {
	result := make(map[entities.Facade]string, len(a.Tokens))
	for key, token := range a.Tokens {
		facade, err := entities.ParseFacade(key)
		if err != nil {
			return nil, err
		}
		if _, dup := result[facade]; dup {
			return nil, fmt.Errorf("more than one token configured for facade %s", facade)
		}
		result[facade] = token
	}
	return result, nil
}

// KeyHex returns the hex encoded private key, reading it from PrivateKeyPath if configured.
// Empty means requests are not signed.
func (c IdentityConfig) KeyHex() (string, error) {
	if c.PrivateKeyHex != "" {
		return strings.TrimSpace(c.PrivateKeyHex), nil
	}
	if c.PrivateKeyPath == "" {
		return "", nil
	}

	content, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return "", fmt.Errorf("failed to read private key: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}
