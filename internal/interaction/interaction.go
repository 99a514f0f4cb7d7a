package interaction

import (
	"errors"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams/restcli"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/tokens"
)

// Client bundles the resource clients of one authenticated session.
//
// All of them share the same Transport and token Store, and none of them keeps
// state between calls.
type Client struct {
	SubscriptionClient
	BillClient
	SettlementClient
}

func NewClient(transport restcli.Transport, tokenStore *tokens.Store) (*Client, error) {
	if transport == nil {
		return nil, errors.New("transport must not be nil")
	}

	if tokenStore == nil {
		return nil, errors.New("token store must not be nil")
	}

	return &Client{
		SubscriptionClient: NewSubscriptionClient(transport, tokenStore),
		BillClient:         NewBillClient(transport, tokenStore),
		SettlementClient:   NewSettlementClient(transport, tokenStore),
	}, nil
}
