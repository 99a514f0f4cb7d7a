package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
)

func (a *app) billsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bills",
		Aliases: []string{"bill"},
		Short:   "Create, read, update and deliver bills",
	}

	var file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a bill from a json file in BitPay wire format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			bill, err := mapping.BillMapper.DecodeOne(raw)
			if err != nil {
				return err
			}

			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			created, err := client.CreateBill(cmd.Context(), bill)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.BillToWire(created))
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "json file, - for standard input")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			bill, err := client.GetBill(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.BillToWire(bill))
		},
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List bills, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			bills, err := client.GetBills(cmd.Context(), entities.BillStatus(status))
			if err != nil {
				return err
			}

			result := make([]mapping.BillDto, 0, len(bills))
			for _, b := range bills {
				result = append(result, mapping.BillToWire(b))
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	list.Flags().StringVar(&status, "status", "", "draft, sent, new, paid or complete")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a bill with the fields present in a json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, updateFile)
			if err != nil {
				return err
			}
			bill, err := mapping.BillMapper.DecodeOne(raw)
			if err != nil {
				return err
			}

			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := client.UpdateBill(cmd.Context(), bill, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), mapping.BillToWire(updated))
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "json file, - for standard input")

	deliver := &cobra.Command{
		Use:   "deliver <id>",
		Short: "Send a bill to its recipient",
		Long:  "Fetches the bill for its resource token, then asks BitPay to deliver it by email.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			bill, err := client.GetBill(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result, err := client.DeliverBill(cmd.Context(), bill.ID, bill.Token)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
			return err
		},
	}

	cmd.AddCommand(create, get, list, update, deliver)
	return cmd
}
