package v1subscriptions

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/eurofurence/reg-bitpay-client/internal/logging"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
	"github.com/eurofurence/reg-bitpay-client/internal/restapi/common"
	"github.com/eurofurence/reg-bitpay-client/internal/simulator"
)

const facade = "merchant/subscription"

type subscriptionHandler struct {
	sim *simulator.Simulator
}

func Create(router chi.Router, sim *simulator.Simulator) {
	handler := subscriptionHandler{
		sim: sim,
	}

	router.Post("/subscriptions", common.CreateHandler(handler.create, common.ParseResourceRequest, common.DataResponseHandler[mapping.SubscriptionDto](facade)))
	router.Get("/subscriptions", common.CreateHandler(handler.list, common.ParseResourceRequest, common.DataResponseHandler[[]mapping.SubscriptionDto](facade)))
	router.Get("/subscriptions/{id}", common.CreateHandler(handler.get, common.ParseResourceRequest, common.DataResponseHandler[mapping.SubscriptionDto](facade)))
	router.Put("/subscriptions/{id}", common.CreateHandler(handler.update, common.ParseResourceRequest, common.DataResponseHandler[mapping.SubscriptionDto](facade)))
}

func (h *subscriptionHandler) create(_ context.Context, req *common.ResourceRequest, logger logging.Logger) (*mapping.SubscriptionDto, error) {
	result, err := h.sim.CreateSubscription(req.Body)
	if err != nil {
		return nil, err
	}
	logger.Info("created subscription %s", result.ID)
	return &result, nil
}

func (h *subscriptionHandler) get(_ context.Context, req *common.ResourceRequest, _ logging.Logger) (*mapping.SubscriptionDto, error) {
	result, err := h.sim.GetSubscription(req.Token, req.ID)
	return &result, err
}

func (h *subscriptionHandler) list(_ context.Context, req *common.ResourceRequest, _ logging.Logger) (*[]mapping.SubscriptionDto, error) {
	result, err := h.sim.ListSubscriptions(req.Token, req.Query.Get("status"))
	return &result, err
}

func (h *subscriptionHandler) update(_ context.Context, req *common.ResourceRequest, logger logging.Logger) (*mapping.SubscriptionDto, error) {
	result, err := h.sim.UpdateSubscription(req.ID, req.Body)
	if err != nil {
		return nil, err
	}
	logger.Info("updated subscription %s, status now %s", result.ID, result.Status)
	return &result, nil
}
