package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
)

func Validate(conf *Application, logFunc func(format string, v ...interface{})) error {
	errs := url.Values{}
	validateServiceConfiguration(errs, conf.Service)
	validateTransportConfiguration(errs, conf.Transport)
	validateIdentityConfiguration(errs, conf.Identity)
	validateTokensConfiguration(errs, conf.Tokens)
	validateDatabaseConfiguration(errs, conf.Database)
	validateLoggingConfiguration(errs, conf.Logging)

	if len(errs) > 0 {
		logValidationErrorDetails(errs, logFunc)
		return errors.New("configuration values failed to validate, bailing out")
	}

	return nil
}

const baseUrlPattern = "^https?://.*[^/]$"

var allowedEnvironments = []Environment{EnvironmentTest, EnvironmentProd}

func validateServiceConfiguration(errs url.Values, c ServiceConfig) {
	checkLength(&errs, 1, 256, "service.name", c.Name)
	if notInAllowedValues(allowedEnvironments[:], c.Environment) {
		errs.Add("service.environment", "must be one of test, prod")
	}
	if c.BaseUrl != "" && violatesPattern(baseUrlPattern, c.BaseUrl) {
		errs.Add("service.base_url", "base url must start with http:// or https:// and may not end in a /")
	}
	checkLength(&errs, 0, 256, "service.plugin_info", c.PluginInfo)
}

func validateTransportConfiguration(errs url.Values, c TransportConfig) {
	checkIntValueRange(errs, 1, 300, "transport.timeout_seconds", c.TimeoutSeconds)
}

const privateKeyPattern = "^[0-9a-fA-F]{64}$"

func validateIdentityConfiguration(errs url.Values, c IdentityConfig) {
	if c.PrivateKeyHex != "" && c.PrivateKeyPath != "" {
		errs.Add("identity", "configure at most one of private_key_hex, private_key_path")
	}
	if c.PrivateKeyHex != "" {
		if violatesPattern(privateKeyPattern, c.PrivateKeyHex) {
			errs.Add("identity.private_key_hex", "must be 32 hex encoded bytes")
		} else if _, err := hex.DecodeString(c.PrivateKeyHex); err != nil {
			errs.Add("identity.private_key_hex", err.Error())
		}
	}
}

func validateTokensConfiguration(errs url.Values, tokens map[string]string) {
	seen := make(map[entities.Facade]string)
	for key, token := range tokens {
		facade, err := entities.ParseFacade(key)
		if err != nil {
			errs.Add(fmt.Sprintf("tokens.%s", key), "must be one of merchant, payout, pos")
			continue
		}
		if other, dup := seen[facade]; dup {
			errs.Add(fmt.Sprintf("tokens.%s", key), fmt.Sprintf("duplicates tokens.%s", other))
		}
		seen[facade] = key
		checkLength(&errs, 1, 256, fmt.Sprintf("tokens.%s", key), token)
	}
}

var allowedDatabases = []DatabaseType{None, Mysql, Inmemory}

func validateDatabaseConfiguration(errs url.Values, c DatabaseConfig) {
	if notInAllowedValues(allowedDatabases[:], c.Use) {
		errs.Add("database.use", "must be one of none, mysql, inmemory")
	}
	if c.Use == Mysql {
		checkLength(&errs, 1, 256, "database.username", c.Username)
		checkLength(&errs, 1, 256, "database.password", c.Password)
		checkLength(&errs, 1, 256, "database.database", c.Database)
	}
}

var (
	allowedSeverities = []string{"DEBUG", "INFO", "WARN", "ERROR"}
	allowedStyles     = []LogStyle{Plain, Json}
)

func validateLoggingConfiguration(errs url.Values, c LoggingConfig) {
	if notInAllowedValues(allowedSeverities[:], c.Severity) {
		errs.Add("logging.severity", "must be one of DEBUG, INFO, WARN, ERROR")
	}
	if notInAllowedValues(allowedStyles[:], c.Style) {
		errs.Add("logging.style", "must be one of plain, json")
	}
}

func violatesPattern(pattern string, value string) bool {
	matched, err := regexp.MatchString(pattern, value)
	if err != nil {
		return true
	}
	return !matched
}

func checkLength(errs *url.Values, min int, max int, key string, value string) {
	if len(value) < min || len(value) > max {
		errs.Add(key, fmt.Sprintf("%s field must be at least %d and at most %d characters long", key, min, max))
	}
}

func checkIntValueRange(errs url.Values, min int, max int, key string, value int) {
	if value < min || value > max {
		errs.Add(key, fmt.Sprintf("%s field must be an integer at least %d and at most %d", key, min, max))
	}
}

func notInAllowedValues[T comparable](allowed []T, value T) bool {
	return !sliceContains(allowed, value)
}

func sliceContains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

func logValidationErrorDetails(errs url.Values, logFunc func(format string, v ...interface{})) {
	var keys []string
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		val := errs[k]
		logFunc("configuration error: %s: %s", key, val[0])
	}
}
