package main

import (
	"github.com/spf13/cobra"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
)

func (a *app) settlementsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settlements",
		Aliases: []string{"settlement"},
		Short:   "Read settlements and their reconciliation reports",
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			settlement, err := client.GetSettlement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.SettlementToWire(settlement))
		},
	}

	var query entities.SettlementQuery
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List settlements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			query.Status = entities.SettlementStatus(status)
			settlements, err := client.GetSettlements(cmd.Context(), query)
			if err != nil {
				return err
			}

			result := make([]mapping.SettlementDto, 0, len(settlements))
			for _, s := range settlements {
				result = append(result, mapping.SettlementToWire(s))
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	list.Flags().StringVar(&query.Currency, "currency", "", "currency code")
	list.Flags().StringVar(&query.DateStart, "from", "", "first day, yyyy-mm-dd")
	list.Flags().StringVar(&query.DateEnd, "to", "", "last day, yyyy-mm-dd")
	list.Flags().StringVar(&status, "status", "", "new, processing, rejected or completed")
	list.Flags().IntVar(&query.Limit, "limit", 0, "maximum number of results, 0 for the server default")
	list.Flags().IntVar(&query.Offset, "offset", 0, "number of results to skip")

	report := &cobra.Command{
		Use:   "report <id>",
		Short: "Show the reconciliation report of a settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			settlement, err := client.GetSettlement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			settlement, err = client.GetReconciliationReport(cmd.Context(), settlement.ID, settlement.Token)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.SettlementToWire(settlement))
		},
	}

	cmd.AddCommand(get, list, report)
	return cmd
}
