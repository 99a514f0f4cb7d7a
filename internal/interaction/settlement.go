package interaction

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams/restcli"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/tokens"
)

const settlementDateFormat = "2006-01-02"

// SettlementClient reads settlements. Settlements are created by BitPay, never by the client.
type SettlementClient interface {
	GetSettlement(ctx context.Context, id string) (entities.Settlement, error)
	GetSettlements(ctx context.Context, query entities.SettlementQuery) ([]entities.Settlement, error)

	// GetReconciliationReport needs the resource token of the settlement, as returned by GetSettlement.
	GetReconciliationReport(ctx context.Context, id string, settlementToken string) (entities.Settlement, error)
}

type settlementClient struct {
	resource *restResource[entities.Settlement, mapping.SettlementDto]
}

func NewSettlementClient(transport restcli.Transport, tokenStore *tokens.Store) SettlementClient {
	return &settlementClient{
		resource: &restResource[entities.Settlement, mapping.SettlementDto]{
			transport: transport,
			tokens:    tokenStore,
			facade:    entities.FacadeMerchant,
			path:      "/settlements",
			mapper:    mapping.SettlementMapper,
			// read only, so no create or update hooks
		},
	}
}

func (c *settlementClient) GetSettlement(ctx context.Context, id string) (entities.Settlement, error) {
	return c.resource.get(ctx, id)
}

func (c *settlementClient) GetSettlements(ctx context.Context, query entities.SettlementQuery) ([]entities.Settlement, error) {
	filter, err := settlementFilter(query)
	if err != nil {
		return nil, err
	}
	return c.resource.list(ctx, filter)
}

func (c *settlementClient) GetReconciliationReport(ctx context.Context, id string, settlementToken string) (entities.Settlement, error) {
	if id == "" {
		return entities.Settlement{}, apierrors.NewValidation("id", "", "must not be empty")
	}
	if settlementToken == "" {
		return entities.Settlement{}, apierrors.NewValidation("token", "", "the settlement token is required for the reconciliation report")
	}

	raw, err := c.resource.transport.Get(ctx, c.resource.itemPath(id, "reconciliationReport"), url.Values{"token": []string{settlementToken}})
	if err != nil {
		return entities.Settlement{}, err
	}

	return c.resource.mapper.DecodeOne(raw)
}

func settlementFilter(q entities.SettlementQuery) (url.Values, error) {
	if q.Currency != "" && !entities.IsValidCurrency(q.Currency) {
		return nil, apierrors.NewInvalidCurrency(q.Currency)
	}
	if q.Status != "" && !q.Status.IsValid() {
		return nil, apierrors.NewValidation("status", string(q.Status), "must be one of new, processing, rejected, completed")
	}
	for field, value := range map[string]string{"dateStart": q.DateStart, "dateEnd": q.DateEnd} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(settlementDateFormat, value); err != nil {
			return nil, apierrors.NewValidation(field, value, "must be a date in the format yyyy-mm-dd")
		}
	}
	if q.Limit < 0 {
		return nil, apierrors.NewValidation("limit", strconv.Itoa(q.Limit), "must not be negative")
	}
	if q.Offset < 0 {
		return nil, apierrors.NewValidation("offset", strconv.Itoa(q.Offset), "must not be negative")
	}

	filter := url.Values{}
	filter.Set("currency", q.Currency)
	filter.Set("dateStart", q.DateStart)
	filter.Set("dateEnd", q.DateEnd)
	filter.Set("status", string(q.Status))
	if q.Limit > 0 {
		filter.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		filter.Set("offset", strconv.Itoa(q.Offset))
	}
	return filter, nil
}
