package v1bills

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/eurofurence/reg-bitpay-client/internal/logging"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
	"github.com/eurofurence/reg-bitpay-client/internal/restapi/common"
	"github.com/eurofurence/reg-bitpay-client/internal/simulator"
)

const facade = "merchant/bill"

type billHandler struct {
	sim *simulator.Simulator
}

func Create(router chi.Router, sim *simulator.Simulator) {
	handler := billHandler{
		sim: sim,
	}

	router.Post("/bills", common.CreateHandler(handler.create, common.ParseResourceRequest, common.DataResponseHandler[mapping.BillDto](facade)))
	router.Get("/bills", common.CreateHandler(handler.list, common.ParseResourceRequest, common.DataResponseHandler[[]mapping.BillDto](facade)))
	router.Get("/bills/{id}", common.CreateHandler(handler.get, common.ParseResourceRequest, common.DataResponseHandler[mapping.BillDto](facade)))
	router.Put("/bills/{id}", common.CreateHandler(handler.update, common.ParseResourceRequest, common.DataResponseHandler[mapping.BillDto](facade)))
	router.Post("/bills/{id}/deliveries", common.CreateHandler(handler.deliver, common.ParseResourceRequest, common.DataResponseHandler[string](facade)))
}

func (h *billHandler) create(_ context.Context, req *common.ResourceRequest, logger logging.Logger) (*mapping.BillDto, error) {
	result, err := h.sim.CreateBill(req.Body)
	if err != nil {
		return nil, err
	}
	logger.Info("created bill %s", result.ID)
	return &result, nil
}

func (h *billHandler) get(_ context.Context, req *common.ResourceRequest, _ logging.Logger) (*mapping.BillDto, error) {
	result, err := h.sim.GetBill(req.Token, req.ID)
	return &result, err
}

func (h *billHandler) list(_ context.Context, req *common.ResourceRequest, _ logging.Logger) (*[]mapping.BillDto, error) {
	result, err := h.sim.ListBills(req.Token, req.Query.Get("status"))
	return &result, err
}

func (h *billHandler) update(_ context.Context, req *common.ResourceRequest, logger logging.Logger) (*mapping.BillDto, error) {
	result, err := h.sim.UpdateBill(req.ID, req.Body)
	if err != nil {
		return nil, err
	}
	logger.Info("updated bill %s", result.ID)
	return &result, nil
}

func (h *billHandler) deliver(_ context.Context, req *common.ResourceRequest, logger logging.Logger) (*string, error) {
	result, err := h.sim.DeliverBill(req.ID, req.Body)
	if err != nil {
		return nil, err
	}
	logger.Info("delivered bill %s", req.ID)
	return &result, nil
}
