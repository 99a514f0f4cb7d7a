package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams"
	dbentities "github.com/eurofurence/reg-bitpay-client/internal/repository/entities"
)

func (a *app) tokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Provision api tokens in the configured database",
	}

	var comment string
	set := &cobra.Command{
		Use:   "set <facade> <token>",
		Short: "Store the api token of a facade, replacing an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := entities.ParseFacade(args[0])
			if err != nil {
				return err
			}
			if args[1] == "" {
				return fmt.Errorf("token must not be empty")
			}

			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			return repo.SaveApiToken(cmd.Context(), dbentities.ApiToken{
				Facade:  string(facade),
				Token:   args[1],
				Comment: comment,
			})
		},
	}
	set.Flags().StringVar(&comment, "comment", "", "free text stored with the token")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show which facades have a token, without the tokens themselves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			stored, err := repo.ListApiTokens(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range stored {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", t.Facade, t.Comment)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <facade>",
		Short: "Remove the api token of a facade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, err := entities.ParseFacade(args[0])
			if err != nil {
				return err
			}
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			return repo.DeleteApiToken(cmd.Context(), string(facade))
		},
	}

	cmd.AddCommand(set, list, remove)
	return cmd
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration, then show where requests would go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// loading and validation already happened in the pre run
			store, err := a.tokenStore(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "configuration ok")
			fmt.Fprintf(out, "base url: %s\n", a.conf.BaseUrl())
			fmt.Fprintf(out, "facades:  %v\n", store.Facades())

			identity, err := a.identity()
			if err != nil {
				return err
			}
			if identity != nil {
				fmt.Fprintf(out, "identity: %s\n", identity.PublicKeyHex())
			} else {
				fmt.Fprintf(out, "identity: none, requests are not signed\n")
			}
			return nil
		},
	}

	cmd.AddCommand(validate)
	return cmd
}

func (a *app) identityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage the key pair requests are signed with",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new private key",
		Long:  "Prints a new private key for identity.private_key_hex and the public key to pair with BitPay.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := downstreams.GenerateIdentity()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\npublic key:  %s\n", identity.PrivateKeyHex(), identity.PublicKeyHex())
			return nil
		},
	}

	cmd.AddCommand(generate)
	return cmd
}
