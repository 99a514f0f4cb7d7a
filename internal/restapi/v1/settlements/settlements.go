package v1settlements

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/eurofurence/reg-bitpay-client/internal/logging"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
	"github.com/eurofurence/reg-bitpay-client/internal/restapi/common"
	"github.com/eurofurence/reg-bitpay-client/internal/simulator"
)

const facade = "merchant/settlement"

type settlementHandler struct {
	sim *simulator.Simulator
}

func Create(router chi.Router, sim *simulator.Simulator) {
	handler := settlementHandler{
		sim: sim,
	}

	router.Get("/settlements", common.CreateHandler(handler.list, common.ParseResourceRequest, common.DataResponseHandler[[]mapping.SettlementDto](facade)))
	router.Get("/settlements/{id}", common.CreateHandler(handler.get, common.ParseResourceRequest, common.DataResponseHandler[mapping.SettlementDto](facade)))
	router.Get("/settlements/{id}/reconciliationReport", common.CreateHandler(handler.report, common.ParseResourceRequest, common.DataResponseHandler[mapping.SettlementDto](facade)))
}

func (h *settlementHandler) get(_ context.Context, req *common.ResourceRequest, _ logging.Logger) (*mapping.SettlementDto, error) {
	result, err := h.sim.GetSettlement(req.Token, req.ID)
	return &result, err
}

func (h *settlementHandler) list(_ context.Context, req *common.ResourceRequest, _ logging.Logger) (*[]mapping.SettlementDto, error) {
	filter, err := simulator.ParseSettlementFilter(req.Query.Get)
	if err != nil {
		return nil, err
	}
	result, err := h.sim.ListSettlements(req.Token, filter)
	return &result, err
}

func (h *settlementHandler) report(_ context.Context, req *common.ResourceRequest, _ logging.Logger) (*mapping.SettlementDto, error) {
	result, err := h.sim.ReconciliationReport(req.Token, req.ID)
	return &result, err
}
