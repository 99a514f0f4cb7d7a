package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eurofurence/reg-bitpay-client/internal/entities"
)

func ItemToWire(item entities.Item) ItemDto {
	return ItemDto{
		ID:          item.ID,
		Description: item.Description,
		Price:       decimalPtrToWire(item.Price),
		Quantity:    copyPtr(item.Quantity),
	}
}

func ItemFromWire(dto ItemDto) (entities.Item, error) {
	price, err := decimalPtrFromWire("price", dto.Price)
	if err != nil {
		return entities.Item{}, err
	}

	return entities.Item{
		ID:          dto.ID,
		Price:       price,
		Quantity:    copyPtr(dto.Quantity),
		Description: dto.Description,
	}, nil
}

func BillDataToWire(b entities.BillData) BillDataDto {
	return BillDataDto{
		EmailBill:         copyPtr(b.EmailBill),
		Cc:                copySlice(b.Cc),
		Number:            b.Number,
		Currency:          b.Currency(),
		Name:              b.Name,
		Address1:          b.Address1,
		Address2:          b.Address2,
		City:              b.City,
		State:             b.State,
		Zip:               b.Zip,
		Country:           b.Country,
		Email:             b.Email,
		Phone:             b.Phone,
		DueDate:           b.DueDate,
		PassProcessingFee: copyPtr(b.PassProcessingFee),
		Items:             itemsToWire(b.Items),
	}
}

func BillDataFromWire(dto BillDataDto) (entities.BillData, error) {
	b := entities.BillData{
		EmailBill:         copyPtr(dto.EmailBill),
		Cc:                copySlice(dto.Cc),
		Number:            dto.Number,
		Name:              dto.Name,
		Address1:          dto.Address1,
		Address2:          dto.Address2,
		City:              dto.City,
		State:             dto.State,
		Zip:               dto.Zip,
		Country:           dto.Country,
		Email:             dto.Email,
		Phone:             dto.Phone,
		DueDate:           dto.DueDate,
		PassProcessingFee: copyPtr(dto.PassProcessingFee),
	}

	if dto.Currency != "" {
		if err := b.SetCurrency(dto.Currency); err != nil {
			return entities.BillData{}, err
		}
	}

	items, err := itemsFromWire(dto.Items)
	if err != nil {
		return entities.BillData{}, err
	}
	b.Items = items

	return b, nil
}

func (d BillDataDto) isEmpty() bool {
	return d.EmailBill == nil && len(d.Cc) == 0 && d.Number == "" && d.Currency == "" &&
		d.Name == "" && d.Address1 == "" && d.Address2 == "" && d.City == "" && d.State == "" &&
		d.Zip == "" && d.Country == "" && d.Email == "" && d.Phone == "" && d.DueDate == "" &&
		d.PassProcessingFee == nil && len(d.Items) == 0
}

func SubscriptionToWire(s entities.Subscription) SubscriptionDto {
	dto := SubscriptionDto{
		ID:           s.ID,
		Status:       string(s.Status),
		Merchant:     s.Merchant,
		Schedule:     string(s.Schedule),
		NextDelivery: s.NextDelivery,
		CreatedDate:  s.CreatedDate,
		Token:        s.Token,
	}

	if billData := BillDataToWire(s.BillData); !billData.isEmpty() {
		dto.BillData = &billData
	}

	return dto
}

func SubscriptionFromWire(dto SubscriptionDto) (entities.Subscription, error) {
	status := entities.SubscriptionStatus(dto.Status)
	if status != "" && !status.IsValid() {
		return entities.Subscription{}, fmt.Errorf("unknown subscription status %q", dto.Status)
	}

	s := entities.Subscription{
		ID:           dto.ID,
		Status:       status,
		Merchant:     dto.Merchant,
		Schedule:     entities.Schedule(dto.Schedule),
		NextDelivery: dto.NextDelivery,
		CreatedDate:  dto.CreatedDate,
		Token:        dto.Token,
	}

	if dto.BillData != nil {
		billData, err := BillDataFromWire(*dto.BillData)
		if err != nil {
			return entities.Subscription{}, fmt.Errorf("billData: %w", err)
		}
		s.BillData = billData
	}

	return s, nil
}

func BillToWire(b entities.Bill) BillDto {
	return BillDto{
		ID:          b.ID,
		Status:      string(b.Status),
		URL:         b.URL,
		CreatedDate: b.CreatedDate,
		Merchant:    b.Merchant,
		Token:       b.Token,
		BillDataDto: BillDataToWire(b.BillData),
	}
}

func BillFromWire(dto BillDto) (entities.Bill, error) {
	status := entities.BillStatus(dto.Status)
	if status != "" && !status.IsValid() {
		return entities.Bill{}, fmt.Errorf("unknown bill status %q", dto.Status)
	}

	billData, err := BillDataFromWire(dto.BillDataDto)
	if err != nil {
		return entities.Bill{}, err
	}

	return entities.Bill{
		ID:          dto.ID,
		Status:      status,
		URL:         dto.URL,
		CreatedDate: dto.CreatedDate,
		Merchant:    dto.Merchant,
		Token:       dto.Token,
		BillData:    billData,
	}, nil
}

func SettlementToWire(s entities.Settlement) SettlementDto {
	dto := SettlementDto{
		ID:               s.ID,
		AccountID:        s.AccountID,
		Currency:         s.Currency,
		Status:           string(s.Status),
		DateCreated:      s.DateCreated,
		DateExecuted:     s.DateExecuted,
		DateCompleted:    s.DateCompleted,
		OpeningDate:      s.OpeningDate,
		ClosingDate:      s.ClosingDate,
		OpeningBalance:   decimalToWire(s.OpeningBalance),
		LedgerEntriesSum: decimalToWire(s.LedgerEntriesSum),
		WithHoldingsSum:  decimalToWire(s.WithHoldingsSum),
		TotalAmount:      decimalToWire(s.TotalAmount),
		Token:            s.Token,
	}

	for _, w := range s.WithHoldings {
		dto.WithHoldings = append(dto.WithHoldings, WithHoldingsDto{
			Amount:      decimalToWire(w.Amount),
			Code:        w.Code,
			Description: w.Description,
			Notes:       w.Notes,
			Label:       w.Label,
			BankCountry: w.BankCountry,
		})
	}
	for _, e := range s.LedgerEntries {
		dto.LedgerEntries = append(dto.LedgerEntries, SettlementLedgerEntryDto{
			Code:        e.Code,
			InvoiceID:   e.InvoiceID,
			Amount:      decimalToWire(e.Amount),
			Timestamp:   e.Timestamp,
			Description: e.Description,
			Reference:   e.Reference,
		})
	}

	return dto
}

func SettlementFromWire(dto SettlementDto) (entities.Settlement, error) {
	status := entities.SettlementStatus(dto.Status)
	if status != "" && !status.IsValid() {
		return entities.Settlement{}, fmt.Errorf("unknown settlement status %q", dto.Status)
	}

	s := entities.Settlement{
		ID:            dto.ID,
		AccountID:     dto.AccountID,
		Currency:      dto.Currency,
		Status:        status,
		DateCreated:   dto.DateCreated,
		DateExecuted:  dto.DateExecuted,
		DateCompleted: dto.DateCompleted,
		OpeningDate:   dto.OpeningDate,
		ClosingDate:   dto.ClosingDate,
		Token:         dto.Token,
	}

	amounts := []struct {
		field  string
		source *json.Number
		target *decimal.Decimal
	}{
		{"openingBalance", dto.OpeningBalance, &s.OpeningBalance},
		{"ledgerEntriesSum", dto.LedgerEntriesSum, &s.LedgerEntriesSum},
		{"withHoldingsSum", dto.WithHoldingsSum, &s.WithHoldingsSum},
		{"totalAmount", dto.TotalAmount, &s.TotalAmount},
	}
	for _, a := range amounts {
		if err := decimalFromWire(a.field, a.source, a.target); err != nil {
			return entities.Settlement{}, err
		}
	}

	for i, w := range dto.WithHoldings {
		entry := entities.WithHoldings{
			Code:        w.Code,
			Description: w.Description,
			Notes:       w.Notes,
			Label:       w.Label,
			BankCountry: w.BankCountry,
		}
		if err := decimalFromWire(fmt.Sprintf("withHoldings[%d].amount", i), w.Amount, &entry.Amount); err != nil {
			return entities.Settlement{}, err
		}
		s.WithHoldings = append(s.WithHoldings, entry)
	}

	for i, e := range dto.LedgerEntries {
		entry := entities.SettlementLedgerEntry{
			Code:        e.Code,
			InvoiceID:   e.InvoiceID,
			Timestamp:   e.Timestamp,
			Description: e.Description,
			Reference:   e.Reference,
		}
		if err := decimalFromWire(fmt.Sprintf("ledgerEntries[%d].amount", i), e.Amount, &entry.Amount); err != nil {
			return entities.Settlement{}, err
		}
		s.LedgerEntries = append(s.LedgerEntries, entry)
	}

	return s, nil
}

func itemsToWire(items []entities.Item) []ItemDto {
	if len(items) == 0 {
		return nil
	}

	result := make([]ItemDto, 0, len(items))
	for _, item := range items {
		result = append(result, ItemToWire(item))
	}
	return result
}

func itemsFromWire(items []ItemDto) ([]entities.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}

	result := make([]entities.Item, 0, len(items))
	for i, dto := range items {
		item, err := ItemFromWire(dto)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		result = append(result, item)
	}
	return result, nil
}

// zero amounts are left out, there is no presence bit on server assigned amounts
func decimalToWire(d decimal.Decimal) *json.Number {
	if d.IsZero() {
		return nil
	}
	n := json.Number(d.String())
	return &n
}

func decimalPtrToWire(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := json.Number(d.String())
	return &n
}

func decimalFromWire(field string, n *json.Number, target *decimal.Decimal) error {
	if n == nil {
		return nil
	}

	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*target = d
	return nil
}

func decimalPtrFromWire(field string, n *json.Number) (*decimal.Decimal, error) {
	if n == nil {
		return nil, nil
	}

	var d decimal.Decimal
	if err := decimalFromWire(field, n, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copySlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
