package main

import (
	"github.com/spf13/cobra"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
)

func (a *app) subscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "sub"},
		Short:   "Create, read and update subscriptions",
	}

	var file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a subscription from a json file in BitPay wire format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			subscription, err := mapping.SubscriptionMapper.DecodeOne(raw)
			if err != nil {
				return err
			}

			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			created, err := client.CreateSubscription(cmd.Context(), subscription)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.SubscriptionToWire(created))
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "json file, - for standard input")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			subscription, err := client.GetSubscription(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.SubscriptionToWire(subscription))
		},
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			subscriptions, err := client.GetSubscriptions(cmd.Context(), entities.SubscriptionStatus(status))
			if err != nil {
				return err
			}

			result := make([]mapping.SubscriptionDto, 0, len(subscriptions))
			for _, s := range subscriptions {
				result = append(result, mapping.SubscriptionToWire(s))
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	list.Flags().StringVar(&status, "status", "", "draft, active or cancelled")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a subscription with the fields present in a json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, updateFile)
			if err != nil {
				return err
			}
			subscription, err := mapping.SubscriptionMapper.DecodeOne(raw)
			if err != nil {
				return err
			}

			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := client.UpdateSubscription(cmd.Context(), subscription, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.SubscriptionToWire(updated))
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "json file, - for standard input")

	cmd.AddCommand(create, get, list, update)
	return cmd
}
