package simulator

import (
	"encoding/json"
	"strconv"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
)

type SettlementFilter struct {
	Currency  string
	Status    string
	DateStart string
	DateEnd   string
	Limit     int
	Offset    int
}

// ParseSettlementFilter reads the query parameters of a settlement listing.
func ParseSettlementFilter(get func(key string) string) (SettlementFilter, error) {
	f := SettlementFilter{
		Currency:  get("currency"),
		Status:    get("status"),
		DateStart: get("dateStart"),
		DateEnd:   get("dateEnd"),
	}
	if f.Status != "" && !entities.SettlementStatus(f.Status).IsValid() {
		return SettlementFilter{}, invalid("invalid status " + f.Status)
	}

	var err error
	if f.Limit, err = nonNegative(get("limit")); err != nil {
		return SettlementFilter{}, invalid("invalid limit")
	}
	if f.Offset, err = nonNegative(get("offset")); err != nil {
		return SettlementFilter{}, invalid("invalid offset")
	}
	return f, nil
}

func nonNegative(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func (f SettlementFilter) matches(dto *mapping.SettlementDto) bool {
	if f.Currency != "" && dto.Currency != f.Currency {
		return false
	}
	if f.Status != "" && dto.Status != f.Status {
		return false
	}
	// dateCreated starts with yyyy-mm-dd, so prefix comparison works
	day := dto.DateCreated
	if len(day) > 10 {
		day = day[:10]
	}
	if f.DateStart != "" && day < f.DateStart {
		return false
	}
	if f.DateEnd != "" && day > f.DateEnd {
		return false
	}
	return true
}

// AddSettlement stores a settlement as if BitPay had created it. Missing id, token, status and
// creation date are filled in. Returns the stored settlement including its resource token.
func (s *Simulator) AddSettlement(dto mapping.SettlementDto) mapping.SettlementDto {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clone(dto)
	if stored.ID == "" {
		stored.ID = newID()
	}
	if stored.Token == "" {
		stored.Token = newToken()
	}
	if stored.Status == "" {
		stored.Status = string(entities.SettlementStatusNew)
	}
	if stored.DateCreated == "" {
		stored.DateCreated = s.timestamp()
	}

	s.settlements.add(stored.ID, &stored)
	return clone(stored)
}

func (s *Simulator) GetSettlement(token string, id string) (mapping.SettlementDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(token, entities.FacadeMerchant); err != nil {
		return mapping.SettlementDto{}, err
	}
	stored, err := s.settlements.find(id)
	if err != nil {
		return mapping.SettlementDto{}, err
	}
	return withoutLedger(*stored), nil
}

func (s *Simulator) ListSettlements(token string, filter SettlementFilter) ([]mapping.SettlementDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFacade(token, entities.FacadeMerchant); err != nil {
		return nil, err
	}

	result := make([]mapping.SettlementDto, 0)
	skipped := 0
	for _, stored := range s.settlements.all() {
		if !filter.matches(stored) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
		result = append(result, withoutLedger(*stored))
	}
	return result, nil
}

// ReconciliationReport returns the settlement including its ledger entries.
// It needs the resource token of the settlement.
func (s *Simulator) ReconciliationReport(token string, id string) (mapping.SettlementDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.settlements.find(id)
	if err != nil {
		return mapping.SettlementDto{}, err
	}
	if err := requireResourceToken(token, stored.Token); err != nil {
		return mapping.SettlementDto{}, err
	}
	return clone(*stored), nil
}

func withoutLedger(dto mapping.SettlementDto) mapping.SettlementDto {
	result := clone(dto)
	result.LedgerEntries = nil
	return result
}

// SeedSettlements adds a few settlements for manual testing against the simulator.
func (s *Simulator) SeedSettlements() {
	amount := func(v string) *json.Number {
		n := json.Number(v)
		return &n
	}

	s.AddSettlement(mapping.SettlementDto{
		AccountID:        "YJCgTf3jrXHkUVzLQ7y4eg",
		Currency:         "EUR",
		Status:           string(entities.SettlementStatusCompleted),
		DateCreated:      "2024-01-05T09:05:00.176Z",
		OpeningBalance:   amount("23.27"),
		LedgerEntriesSum: amount("20.82"),
		WithHoldingsSum:  amount("8.21"),
		TotalAmount:      amount("35.88"),
		WithHoldings: []mapping.WithHoldingsDto{
			{Amount: amount("8.21"), Code: "W005", Description: "Pending Refunds"},
		},
		LedgerEntries: []mapping.SettlementLedgerEntryDto{
			{Code: 1000, InvoiceID: "Hpqc63wvE1ZjzeeH4kEycF", Amount: amount("5.83"), Timestamp: "2024-01-04T11:52:29.681Z", Description: "Test invoice"},
			{Code: 1000, InvoiceID: "Tj8WnZ4Ce9YfhcE1LMGiUr", Amount: amount("14.99"), Timestamp: "2024-01-04T15:03:12.201Z", Description: "Test invoice"},
		},
	})
	s.AddSettlement(mapping.SettlementDto{
		AccountID:      "YJCgTf3jrXHkUVzLQ7y4eg",
		Currency:       "USD",
		Status:         string(entities.SettlementStatusProcessing),
		DateCreated:    "2024-02-05T09:05:00.176Z",
		OpeningBalance: amount("0"),
		TotalAmount:    amount("120.50"),
	})
}
