package simulator

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
)

const DeliverySuccess = "Success"

func (s *Simulator) CreateBill(body []byte) (mapping.BillDto, error) {
	var dto mapping.BillDto
	if err := json.Unmarshal(body, &dto); err != nil {
		return mapping.BillDto{}, invalid("invalid request body: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(dto.Token, entities.FacadeMerchant); err != nil {
		return mapping.BillDto{}, err
	}
	if dto.ID != "" {
		return mapping.BillDto{}, invalid("id is assigned by the server")
	}
	if len(dto.Items) == 0 {
		return mapping.BillDto{}, invalid("at least one item is required")
	}
	if dto.Status == "" {
		dto.Status = string(entities.BillStatusDraft)
	}
	if _, err := mapping.BillFromWire(dto); err != nil {
		return mapping.BillDto{}, invalid(err.Error())
	}

	dto.ID = newID()
	dto.Token = newToken()
	dto.Merchant = simulatedMerchant
	dto.CreatedDate = s.timestamp()
	dto.URL = s.baseUrl + "/bill?id=" + dto.ID
	for i := range dto.Items {
		dto.Items[i].ID = newID()
	}

	s.bills.add(dto.ID, &dto)
	return clone(dto), nil
}

func (s *Simulator) GetBill(token string, id string) (mapping.BillDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(token, entities.FacadeMerchant); err != nil {
		return mapping.BillDto{}, err
	}
	stored, err := s.bills.find(id)
	if err != nil {
		return mapping.BillDto{}, err
	}
	return clone(*stored), nil
}

func (s *Simulator) ListBills(token string, status string) ([]mapping.BillDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(token, entities.FacadeMerchant); err != nil {
		return nil, err
	}
	if status != "" && !entities.BillStatus(status).IsValid() {
		return nil, invalid("invalid status " + status)
	}

	result := make([]mapping.BillDto, 0)
	for _, stored := range s.bills.all() {
		if status == "" || stored.Status == status {
			result = append(result, clone(*stored))
		}
	}
	return result, nil
}

func (s *Simulator) UpdateBill(id string, body []byte) (mapping.BillDto, error) {
	if !gjson.ValidBytes(body) {
		return mapping.BillDto{}, invalid("invalid request body")
	}
	token := gjson.GetBytes(body, "token").String()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.bills.find(id)
	if err != nil {
		return mapping.BillDto{}, err
	}
	if err := requireResourceToken(token, stored.Token); err != nil {
		return mapping.BillDto{}, err
	}

	updated, err := merge(*stored, body)
	if err != nil {
		return mapping.BillDto{}, err
	}
	updated.ID = stored.ID
	updated.Token = stored.Token
	updated.URL = stored.URL
	updated.Merchant = stored.Merchant
	updated.CreatedDate = stored.CreatedDate
	if _, err := mapping.BillFromWire(updated); err != nil {
		return mapping.BillDto{}, invalid(err.Error())
	}
	for i := range updated.Items {
		if updated.Items[i].ID == "" {
			updated.Items[i].ID = newID()
		}
	}

	*stored = updated
	return clone(updated), nil
}

// DeliverBill marks the bill as sent. The body must carry the resource token of the bill.
func (s *Simulator) DeliverBill(id string, body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", invalid("invalid request body")
	}
	token := gjson.GetBytes(body, "token").String()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.bills.find(id)
	if err != nil {
		return "", err
	}
	if err := requireResourceToken(token, stored.Token); err != nil {
		return "", err
	}

	stored.Status = string(entities.BillStatusSent)
	return DeliverySuccess, nil
}
