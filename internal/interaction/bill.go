package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams/restcli"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/tokens"
)

type BillClient interface {
	CreateBill(ctx context.Context, bill entities.Bill) (entities.Bill, error)
	GetBill(ctx context.Context, id string) (entities.Bill, error)
	GetBills(ctx context.Context, status entities.BillStatus) ([]entities.Bill, error)
	UpdateBill(ctx context.Context, bill entities.Bill, id string) (entities.Bill, error)

	// DeliverBill asks BitPay to email the bill. billToken is the resource token of the bill.
	DeliverBill(ctx context.Context, id string, billToken string) (string, error)
}

type billClient struct {
	resource *restResource[entities.Bill, mapping.BillDto]
}

func NewBillClient(transport restcli.Transport, tokenStore *tokens.Store) BillClient {
	return &billClient{
		resource: &restResource[entities.Bill, mapping.BillDto]{
			transport: transport,
			tokens:    tokenStore,
			facade:    entities.FacadeMerchant,
			path:      "/bills",
			mapper:    mapping.BillMapper,
			idOf:      func(b entities.Bill) string { return b.ID },
			tokenOf:   func(b entities.Bill) string { return b.Token },
			setToken:  func(d *mapping.BillDto, token string) { d.Token = token },
			validate:  validateBill,
		},
	}
}

func validateBill(b entities.Bill) error {
	if b.Status != "" && !b.Status.IsValid() {
		return apierrors.NewValidation("status", string(b.Status), "must be one of draft, sent, new, paid, complete")
	}
	return nil
}

func (c *billClient) CreateBill(ctx context.Context, bill entities.Bill) (entities.Bill, error) {
	return c.resource.create(ctx, bill)
}

func (c *billClient) GetBill(ctx context.Context, id string) (entities.Bill, error) {
	return c.resource.get(ctx, id)
}

func (c *billClient) GetBills(ctx context.Context, status entities.BillStatus) ([]entities.Bill, error) {
	if status != "" && !status.IsValid() {
		return nil, apierrors.NewValidation("status", string(status), "must be one of draft, sent, new, paid, complete")
	}
	return c.resource.list(ctx, url.Values{"status": []string{string(status)}})
}

func (c *billClient) UpdateBill(ctx context.Context, bill entities.Bill, id string) (entities.Bill, error) {
	return c.resource.update(ctx, bill, id)
}

func (c *billClient) DeliverBill(ctx context.Context, id string, billToken string) (string, error) {
	if id == "" {
		return "", apierrors.NewValidation("id", "", "must not be empty")
	}
	if billToken == "" {
		return "", apierrors.NewValidation("token", "", "the bill token is required for delivery")
	}

	body, err := json.Marshal(mapping.TokenDto{Token: billToken})
	if err != nil {
		return "", err
	}

	raw, err := c.resource.transport.Post(ctx, c.resource.itemPath(id, "deliveries"), body)
	if err != nil {
		return "", err
	}

	if !gjson.ValidBytes(raw) {
		return "", apierrors.NewDeserialize("Bill", errors.New("delivery response is not valid json"))
	}
	result := gjson.ParseBytes(raw)
	if result.Type != gjson.String {
		return "", apierrors.NewDeserialize("Bill", fmt.Errorf("expected a delivery status string but got %s", result.Raw))
	}
	return result.String(), nil
}
