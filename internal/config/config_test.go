package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
)

func recordingLogFunc() (*strings.Builder, func(format string, v ...interface{})) {
	logRecording := &strings.Builder{}
	return logRecording, func(format string, v ...interface{}) {
		logRecording.WriteString(fmt.Sprintf(format, v...))
		logRecording.WriteString("\n")
	}
}

func TestUnmarshalConfig(t *testing.T) {
	s := []byte(`service:
  name: 'TestServiceName'
  environment: prod
  plugin_info: 'reg-bitpay-client/1.0'
transport:
  timeout_seconds: 20
  circuit_breaker: true
identity:
  private_key_hex: '9f36f2b4c4a1b39e1f2a01b7c8f6d7e2a35a4b17d1e0a8c8c4f0a1e2b3c4d5e6'
tokens:
  merchant: 'merchant-token-1234'
  payroll: 'payout-token-5678'
database:
  use: inmemory
logging:
  severity: DEBUG
  style: json
`)

	conf, err := UnmarshalFromYamlConfiguration(bytes.NewBuffer(s))
	require.NoError(t, err)

	logRecording, logFunc := recordingLogFunc()
	err = Validate(conf, logFunc)
	require.Equal(t, "", logRecording.String())
	require.NoError(t, err)

	require.Equal(t, "TestServiceName", conf.Service.Name)
	require.Equal(t, EnvironmentProd, conf.Service.Environment)
	require.Equal(t, ProdBaseUrl, conf.BaseUrl())
	require.Equal(t, 20, conf.Transport.TimeoutSeconds)
	require.True(t, conf.Transport.CircuitBreaker)
	require.Equal(t, Inmemory, conf.Database.Use)
	require.Equal(t, Json, conf.Logging.Style)

	tokens, err := conf.FacadeTokens()
	require.NoError(t, err)
	require.Equal(t, map[entities.Facade]string{
		entities.FacadeMerchant: "merchant-token-1234",
		entities.FacadePayout:   "payout-token-5678",
	}, tokens)
}

func TestUnmarshalEmptyAppliesDefaults(t *testing.T) {
	conf, err := UnmarshalFromYamlConfiguration(bytes.NewBufferString(""))
	require.NoError(t, err)

	require.Equal(t, EnvironmentTest, conf.Service.Environment)
	require.Equal(t, TestBaseUrl, conf.BaseUrl())
	require.Equal(t, 30, conf.Transport.TimeoutSeconds)
	require.Equal(t, None, conf.Database.Use)
	require.Equal(t, "INFO", conf.Logging.Severity)

	_, logFunc := recordingLogFunc()
	require.NoError(t, Validate(conf, logFunc))
}

func TestBaseUrlOverride(t *testing.T) {
	conf := Default()
	conf.Service.BaseUrl = "http://localhost:8080/"
	require.Equal(t, "http://localhost:8080", conf.BaseUrl())
}

func TestUnmarshalConfigInvalid(t *testing.T) {
	s := []byte(`---
service:
    name: 'TestServiceName'
transport:
timeout_seconds: 30
        circuit_breaker: true
`)

	conf, err := UnmarshalFromYamlConfiguration(bytes.NewBuffer(s))
	require.Error(t, err)
	require.Nil(t, conf)
}

func TestUnmarshalUnknownFields(t *testing.T) {
	s := []byte(`service:
  name: 'TestServiceName'
tokens_with_typo_we_want_to_detect:
  merchant: 'abc'
`)

	conf, err := UnmarshalFromYamlConfiguration(bytes.NewBuffer(s))
	require.Error(t, err)
	require.Contains(t, err.Error(), "tokens_with_typo_we_want_to_detect")
	require.Nil(t, conf)
}

func TestValidationErrors1(t *testing.T) {
	s := []byte(`service:
  name: 'TestServiceName'
  environment: staging
  base_url: 'test.bitpay.com/'
transport:
  timeout_seconds: 900
identity:
  private_key_hex: 'abc'
  private_key_path: '/tmp/key'
tokens:
  merchant: 'merchant-token-1234'
  public: 'public-token'
database:
  use: papyrus
logging:
  severity: CAT
  style: fancy
`)

	conf, err := UnmarshalFromYamlConfiguration(bytes.NewBuffer(s))
	require.NoError(t, err)

	logRecording, logFunc := recordingLogFunc()
	err = Validate(conf, logFunc)

	expected := `configuration error: database.use: must be one of none, mysql, inmemory
configuration error: identity: configure at most one of private_key_hex, private_key_path
configuration error: identity.private_key_hex: must be 32 hex encoded bytes
configuration error: logging.severity: must be one of DEBUG, INFO, WARN, ERROR
configuration error: logging.style: must be one of plain, json
configuration error: service.base_url: base url must start with http:// or https:// and may not end in a /
configuration error: service.environment: must be one of test, prod
configuration error: tokens.public: must be one of merchant, payout, pos
configuration error: transport.timeout_seconds: transport.timeout_seconds field must be an integer at least 1 and at most 300
`
	require.Equal(t, expected, logRecording.String())
	require.Error(t, err)
}

func TestValidationDuplicateFacade(t *testing.T) {
	conf := Default()
	conf.Tokens = map[string]string{
		"payout":  "abc",
		"payroll": "def",
	}

	logRecording, logFunc := recordingLogFunc()
	require.Error(t, Validate(conf, logFunc))
	require.Contains(t, logRecording.String(), "duplicates tokens.")

	_, err := conf.FacadeTokens()
	require.Error(t, err)
}

func TestValidationMysqlRequiresCredentials(t *testing.T) {
	conf := Default()
	conf.Database.Use = Mysql

	logRecording, logFunc := recordingLogFunc()
	require.Error(t, Validate(conf, logFunc))

	expected := `configuration error: database.database: database.database field must be at least 1 and at most 256 characters long
configuration error: database.password: database.password field must be at least 1 and at most 256 characters long
configuration error: database.username: database.username field must be at least 1 and at most 256 characters long
`
	require.Equal(t, expected, logRecording.String())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("BITPAY_ENVIRONMENT", "prod")
	t.Setenv("BITPAY_MERCHANT_TOKEN", "env-merchant-token")
	t.Setenv("BITPAY_LOG_SEVERITY", "WARN")

	conf := Default()
	conf.Tokens = map[string]string{"merchant": "file-token", "pos": "pos-token"}
	require.NoError(t, conf.ApplyEnvironmentOverrides())

	require.Equal(t, EnvironmentProd, conf.Service.Environment)
	require.Equal(t, "WARN", conf.Logging.Severity)
	require.Equal(t, "env-merchant-token", conf.Tokens["merchant"])
	require.Equal(t, "pos-token", conf.Tokens["pos"])
}

func TestLoadWithDotenv(t *testing.T) {
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "config.yaml")
	envFile := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(yamlFile, []byte("tokens:\n  pos: 'pos-token'\n"), 0o600))
	require.NoError(t, os.WriteFile(envFile, []byte("BITPAY_BASE_URL=http://localhost:9000\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BITPAY_BASE_URL") })

	conf, err := Load(yamlFile, envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	require.Equal(t, "http://localhost:9000", conf.BaseUrl())
	require.Equal(t, "pos-token", conf.Tokens["pos"])
}

func TestIdentityKeyHexFromFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, os.WriteFile(keyFile, []byte("  abcdef\n"), 0o600))

	key, err := IdentityConfig{PrivateKeyPath: keyFile}.KeyHex()
	require.NoError(t, err)
	require.Equal(t, "abcdef", key)

	key, err = IdentityConfig{}.KeyHex()
	require.NoError(t, err)
	require.Equal(t, "", key)
}
