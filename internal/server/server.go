// Package server serves the BitPay api simulator over http.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams"
	"github.com/eurofurence/reg-bitpay-client/internal/restapi/middleware"
	v1bills "github.com/eurofurence/reg-bitpay-client/internal/restapi/v1/bills"
	v1health "github.com/eurofurence/reg-bitpay-client/internal/restapi/v1/health"
	v1settlements "github.com/eurofurence/reg-bitpay-client/internal/restapi/v1/settlements"
	v1subscriptions "github.com/eurofurence/reg-bitpay-client/internal/restapi/v1/subscriptions"
	"github.com/eurofurence/reg-bitpay-client/internal/simulator"
)

func NewServer(ctx context.Context, address string, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 120,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
}

func CreateRouter(sim *simulator.Simulator) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestIdMiddleware())
	router.Use(middleware.RequestLogMiddleware(sim.Record))

	setupRoutes(router, sim)

	return router
}

func setupRoutes(router chi.Router, sim *simulator.Simulator) {
	v1health.Create(router)

	router.Group(func(r chi.Router) {
		r.Use(middleware.SignatureMiddleware(downstreams.VerifySignature))
		v1subscriptions.Create(r, sim)
		v1bills.Create(r, sim)
		v1settlements.Create(r, sim)
	})
}
