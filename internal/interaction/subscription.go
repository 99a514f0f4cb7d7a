package interaction

import (
	"context"
	"net/url"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams/restcli"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/tokens"
)

type SubscriptionClient interface {
	// CreateSubscription creates a new subscription with the merchant token. The result carries
	// the server assigned id, status and resource token.
	CreateSubscription(ctx context.Context, subscription entities.Subscription) (entities.Subscription, error)

	GetSubscription(ctx context.Context, id string) (entities.Subscription, error)

	// GetSubscriptions lists subscriptions, optionally only those in status. Never returns nil without an error.
	GetSubscriptions(ctx context.Context, status entities.SubscriptionStatus) ([]entities.Subscription, error)

	// UpdateSubscription fetches the subscription to obtain its resource token, then sends the changes.
	// The response is merged into subscription.
	UpdateSubscription(ctx context.Context, subscription entities.Subscription, id string) (entities.Subscription, error)
}

type subscriptionClient struct {
	resource *restResource[entities.Subscription, mapping.SubscriptionDto]
}

func NewSubscriptionClient(transport restcli.Transport, tokenStore *tokens.Store) SubscriptionClient {
	return &subscriptionClient{
		resource: &restResource[entities.Subscription, mapping.SubscriptionDto]{
			transport: transport,
			tokens:    tokenStore,
			facade:    entities.FacadeMerchant,
			path:      "/subscriptions",
			mapper:    mapping.SubscriptionMapper,
			idOf:      func(s entities.Subscription) string { return s.ID },
			tokenOf:   func(s entities.Subscription) string { return s.Token },
			setToken:  func(d *mapping.SubscriptionDto, token string) { d.Token = token },
			validate:  validateSubscription,
		},
	}
}

func validateSubscription(s entities.Subscription) error {
	if s.Schedule != "" {
		if err := s.Schedule.Validate(); err != nil {
			return err
		}
	}
	if s.Status != "" && !s.Status.IsValid() {
		return apierrors.NewValidation("status", string(s.Status), "must be one of draft, active, cancelled")
	}
	return nil
}

func (c *subscriptionClient) CreateSubscription(ctx context.Context, subscription entities.Subscription) (entities.Subscription, error) {
	return c.resource.create(ctx, subscription)
}

func (c *subscriptionClient) GetSubscription(ctx context.Context, id string) (entities.Subscription, error) {
	return c.resource.get(ctx, id)
}

func (c *subscriptionClient) GetSubscriptions(ctx context.Context, status entities.SubscriptionStatus) ([]entities.Subscription, error) {
	if status != "" && !status.IsValid() {
		return nil, apierrors.NewValidation("status", string(status), "must be one of draft, active, cancelled")
	}
	return c.resource.list(ctx, url.Values{"status": []string{string(status)}})
}

func (c *subscriptionClient) UpdateSubscription(ctx context.Context, subscription entities.Subscription, id string) (entities.Subscription, error) {
	return c.resource.update(ctx, subscription, id)
}
