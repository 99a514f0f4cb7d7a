package simulator

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
)

const simulatedMerchant = "7HyKWn3d4xdhAMQYAEVxVq"

func (s *Simulator) CreateSubscription(body []byte) (mapping.SubscriptionDto, error) {
	var dto mapping.SubscriptionDto
	if err := json.Unmarshal(body, &dto); err != nil {
		return mapping.SubscriptionDto{}, invalid("invalid request body: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(dto.Token, entities.FacadeMerchant); err != nil {
		return mapping.SubscriptionDto{}, err
	}
	if dto.ID != "" {
		return mapping.SubscriptionDto{}, invalid("id is assigned by the server")
	}
	if dto.BillData == nil || len(dto.BillData.Items) == 0 {
		return mapping.SubscriptionDto{}, invalid("billData with at least one item is required")
	}
	if dto.Schedule == "" {
		dto.Schedule = string(entities.ScheduleMonthly)
	}
	if dto.Status == "" {
		dto.Status = string(entities.SubscriptionStatusDraft)
	}
	if err := validateSubscription(dto); err != nil {
		return mapping.SubscriptionDto{}, err
	}

	dto.ID = newID()
	dto.Token = newToken()
	dto.Merchant = simulatedMerchant
	dto.CreatedDate = s.timestamp()
	s.activate(&dto)

	s.subscriptions.add(dto.ID, &dto)
	return clone(dto), nil
}

func (s *Simulator) GetSubscription(token string, id string) (mapping.SubscriptionDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(token, entities.FacadeMerchant); err != nil {
		return mapping.SubscriptionDto{}, err
	}
	stored, err := s.subscriptions.find(id)
	if err != nil {
		return mapping.SubscriptionDto{}, err
	}
	return clone(*stored), nil
}

func (s *Simulator) ListSubscriptions(token string, status string) ([]mapping.SubscriptionDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(token, entities.FacadeMerchant); err != nil {
		return nil, err
	}
	if status != "" && !entities.SubscriptionStatus(status).IsValid() {
		return nil, invalid("invalid status " + status)
	}

	result := make([]mapping.SubscriptionDto, 0)
	for _, stored := range s.subscriptions.all() {
		if status == "" || stored.Status == status {
			result = append(result, clone(*stored))
		}
	}
	return result, nil
}

// UpdateSubscription needs the resource token of the subscription in the body.
func (s *Simulator) UpdateSubscription(id string, body []byte) (mapping.SubscriptionDto, error) {
	if !gjson.ValidBytes(body) {
		return mapping.SubscriptionDto{}, invalid("invalid request body")
	}
	token := gjson.GetBytes(body, "token").String()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.subscriptions.find(id)
	if err != nil {
		return mapping.SubscriptionDto{}, err
	}
	if err := requireResourceToken(token, stored.Token); err != nil {
		return mapping.SubscriptionDto{}, err
	}

	updated, err := merge(*stored, body)
	if err != nil {
		return mapping.SubscriptionDto{}, err
	}
	updated.ID = stored.ID
	updated.Token = stored.Token
	updated.Merchant = stored.Merchant
	updated.CreatedDate = stored.CreatedDate
	if err := validateSubscription(updated); err != nil {
		return mapping.SubscriptionDto{}, err
	}
	s.activate(&updated)

	*stored = updated
	return clone(updated), nil
}

// active subscriptions deliver immediately unless a delivery date is set
func (s *Simulator) activate(dto *mapping.SubscriptionDto) {
	if dto.Status == string(entities.SubscriptionStatusActive) && dto.NextDelivery == "" {
		dto.NextDelivery = s.now().UTC().Format(entities.DateTimeFormat)
	}
}

func validateSubscription(dto mapping.SubscriptionDto) error {
	if err := entities.Schedule(dto.Schedule).Validate(); err != nil {
		return invalid(err.Error())
	}
	if _, err := mapping.SubscriptionFromWire(dto); err != nil {
		return invalid(err.Error())
	}
	return nil
}
