package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/server"
	"github.com/eurofurence/reg-bitpay-client/internal/simulator"
)

const tstMerchantToken = "merchant-token-X"

func tstConfig(t *testing.T, baseUrl string, extra string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "service:\n  base_url: '" + baseUrl + "'\ntokens:\n  merchant: '" + tstMerchantToken + "'\n" + extra
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithErrOutput(t, args...)
	return out, err
}

func runWithErrOutput(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root := newRootCommand()
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestBillCommandsAgainstSimulator(t *testing.T) {
	sim := simulator.New(map[entities.Facade]string{entities.FacadeMerchant: tstMerchantToken}, "http://bitpay.example")
	srv := httptest.NewServer(server.CreateRouter(sim))
	defer srv.Close()

	conf := tstConfig(t, srv.URL, "")
	billFile := filepath.Join(t.TempDir(), "bill.json")
	require.NoError(t, os.WriteFile(billFile, []byte(`{"number":"bill-0001","currency":"EUR","email":"john.doe@example.com",`+
		`"items":[{"description":"Membership","price":12.5,"quantity":2}]}`), 0o600))

	out, err := run(t, "--config", conf, "bills", "create", "-f", billFile)
	require.NoError(t, err)
	id := gjson.Get(out, "id").String()
	require.NotEmpty(t, id)
	require.Equal(t, "draft", gjson.Get(out, "status").String())
	require.Equal(t, 12.5, gjson.Get(out, "items.0.price").Float())

	out, err = run(t, "--config", conf, "bills", "deliver", id)
	require.NoError(t, err)
	require.Equal(t, "Success\n", out)

	out, err = run(t, "--config", conf, "bills", "list", "--status", "sent")
	require.NoError(t, err)
	require.Equal(t, int64(1), gjson.Get(out, "#").Int())
	require.Equal(t, id, gjson.Get(out, "0.id").String())
}

func TestSettlementReportCommand(t *testing.T) {
	sim := simulator.New(map[entities.Facade]string{entities.FacadeMerchant: tstMerchantToken}, "http://bitpay.example")
	sim.SeedSettlements()
	srv := httptest.NewServer(server.CreateRouter(sim))
	defer srv.Close()

	conf := tstConfig(t, srv.URL, "")

	out, err := run(t, "--config", conf, "settlements", "list", "--currency", "EUR")
	require.NoError(t, err)
	require.Equal(t, int64(1), gjson.Get(out, "#").Int())
	id := gjson.Get(out, "0.id").String()

	out, err = run(t, "--config", conf, "settlements", "report", id)
	require.NoError(t, err)
	require.Equal(t, int64(2), gjson.Get(out, "ledgerEntries.#").Int())
}

func TestConfigValidateCommand(t *testing.T) {
	out, err := run(t, "--config", tstConfig(t, "http://localhost:9000", ""), "config", "validate")
	require.NoError(t, err)
	require.Contains(t, out, "configuration ok")
	require.Contains(t, out, "base url: http://localhost:9000")
	require.Contains(t, out, "[merchant]")
	require.Contains(t, out, "requests are not signed")

	_, err = run(t, "--config", tstConfig(t, "http://localhost:9000", "logging:\n  severity: LOUD\n"), "config", "validate")
	require.Error(t, err)
}

func TestTokensCommandsNeedDatabase(t *testing.T) {
	_, err := run(t, "--config", tstConfig(t, "http://localhost:9000", ""), "tokens", "set", "merchant", "abc")
	require.Error(t, err)

	_, err = run(t, "--config", tstConfig(t, "http://localhost:9000", "database:\n  use: inmemory\n"), "tokens", "set", "payroll", "abc")
	require.NoError(t, err)

	_, err = run(t, "--config", tstConfig(t, "http://localhost:9000", "database:\n  use: inmemory\n"), "tokens", "set", "public", "abc")
	require.Error(t, err)
}

func TestIdentityGenerate(t *testing.T) {
	out, err := run(t, "identity", "generate")
	require.NoError(t, err)
	require.Regexp(t, `private key: [0-9a-f]{64}\npublic key:  0[23][0-9a-f]{64}\n`, out)
}

func TestErrorsArePrinted(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "invalid status filter",
			args:     []string{"--config", tstConfig(t, "http://localhost:9000", ""), "subscriptions", "list", "--status", "bogus"},
			expected: `Error: invalid status "bogus": must be one of draft, active, cancelled`,
		},
		{
			name:     "missing configuration file",
			args:     []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "config", "validate"},
			expected: "Error: failed to load configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := runWithErrOutput(t, tt.args...)
			require.Error(t, err)
			require.Empty(t, out)
			require.Contains(t, errOut, tt.expected)
		})
	}
}
