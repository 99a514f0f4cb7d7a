package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eurofurence/reg-bitpay-client/internal/config"
	"github.com/eurofurence/reg-bitpay-client/internal/interaction"
	"github.com/eurofurence/reg-bitpay-client/internal/logging"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/database"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/database/inmemory"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/database/mysql"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams/restcli"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/tokens"
)

// app holds what the subcommands share. It is filled in by the persistent pre run.
type app struct {
	configFile string
	envFiles   []string

	conf *config.Application
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bitpayctl",
		Short:         "Manage BitPay subscriptions, bills and settlements",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "yaml configuration file, defaults apply if empty")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "dotenv files loaded before the BITPAY_* overrides, missing files are skipped")

	root.AddCommand(
		a.subscriptionsCommand(),
		a.billsCommand(),
		a.settlementsCommand(),
		a.tokensCommand(),
		a.configCommand(),
		a.identityCommand(),
		a.simulateCommand(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	conf, err := config.Load(a.configFile, a.envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFunc := func(format string, v ...interface{}) {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", v...)
	}
	if err := config.Validate(conf, logFunc); err != nil {
		return err
	}

	logging.Setup(conf.Logging.Severity, string(conf.Logging.Style))
	a.conf = conf

	cmd.SetContext(logging.ContextWithRequestID(cmd.Context(), uuid.NewString()[:8]))
	return nil
}

// client assembles the resource clients: identity, transport and token store.
func (a *app) client(ctx context.Context) (*interaction.Client, error) {
	identity, err := a.identity()
	if err != nil {
		return nil, err
	}

	transport, err := restcli.New(a.conf.BaseUrl(), restcli.Options{
		PluginInfo:     a.conf.Service.PluginInfo,
		Identity:       identity,
		Timeout:        time.Duration(a.conf.Transport.TimeoutSeconds) * time.Second,
		CircuitBreaker: a.conf.Transport.CircuitBreaker,
	})
	if err != nil {
		return nil, err
	}

	store, err := a.tokenStore(ctx)
	if err != nil {
		return nil, err
	}

	return interaction.NewClient(transport, store)
}

func (a *app) identity() (*downstreams.Identity, error) {
	keyHex, err := a.conf.Identity.KeyHex()
	if err != nil || keyHex == "" {
		return nil, err
	}
	return downstreams.NewIdentityFromHex(keyHex)
}

// tokenStore reads the tokens from the database if one is configured, from the configuration otherwise.
func (a *app) tokenStore(ctx context.Context) (*tokens.Store, error) {
	if a.conf.Database.Use == config.None {
		facadeTokens, err := a.conf.FacadeTokens()
		if err != nil {
			return nil, err
		}
		return tokens.New(facadeTokens)
	}

	repo, err := a.repository(ctx)
	if err != nil {
		return nil, err
	}
	return tokens.LoadFromRepository(ctx, repo)
}

func (a *app) repository(ctx context.Context) (database.Repository, error) {
	var repo database.Repository
	switch a.conf.Database.Use {
	case config.Mysql:
		var err error
		repo, err = mysql.NewMySQLConnector(a.conf.Database, logging.LoggerFromContext(ctx))
		if err != nil {
			return nil, err
		}
	case config.Inmemory:
		repo = inmemory.NewInMemoryProvider()
	default:
		return nil, fmt.Errorf("no database configured, set database.use")
	}

	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// readInput reads a file, or standard input for "-".
func readInput(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "" {
		return nil, fmt.Errorf("--file is required")
	}
	if filename == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(filename)
}
