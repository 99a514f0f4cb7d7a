package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/logging"
	"github.com/eurofurence/reg-bitpay-client/internal/server"
	"github.com/eurofurence/reg-bitpay-client/internal/simulator"
)

func (a *app) simulateCommand() *cobra.Command {
	var host string
	var port int
	var seed bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run an in-memory BitPay api for local testing",
		Long: "Serves subscriptions, bills and settlements with the token rules of BitPay. " +
			"The configured tokens are accepted as facade tokens. Without a merchant token one is generated.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := logging.LoggerFromContext(ctx)

			facadeTokens, err := a.conf.FacadeTokens()
			if err != nil {
				return err
			}
			if _, ok := facadeTokens[entities.FacadeMerchant]; !ok {
				facadeTokens[entities.FacadeMerchant] = uuid.NewString()
			}
			for facade, token := range facadeTokens {
				fmt.Fprintf(cmd.OutOrStdout(), "accepting %s token %s\n", facade, token)
			}

			address := fmt.Sprintf("%s:%d", host, port)
			sim := simulator.New(facadeTokens, "http://"+address)
			if seed {
				sim.SeedSettlements()
			}

			srv := server.NewServer(ctx, address, server.CreateRouter(sim))
			go func() {
				<-ctx.Done()
				logger.Info("Stopping simulator now")

				tCtx, tcancel := context.WithTimeout(context.Background(), time.Second*5)
				defer tcancel()

				if err := srv.Shutdown(tCtx); err != nil {
					logger.Error("Couldn't shutdown simulator gracefully: %v", err)
				}
			}()

			logger.Info("Simulator listening on %s", address)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "address to listen on")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	cmd.Flags().BoolVar(&seed, "seed", true, "add example settlements")

	return cmd
}
