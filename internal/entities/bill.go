package entities

type BillStatus string

const (
	BillStatusDraft    BillStatus = "draft"
	BillStatusSent     BillStatus = "sent"
	BillStatusNew      BillStatus = "new"
	BillStatusPaid     BillStatus = "paid"
	BillStatusComplete BillStatus = "complete"
)

func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusDraft, BillStatusSent, BillStatusNew, BillStatusPaid, BillStatusComplete:
		return true
	}

	return false
}

// Bill is a one-off bill. The billing fields are the same as for subscriptions
// and travel flat on the wire.
type Bill struct {
	ID          string
	Status      BillStatus
	URL         string
	CreatedDate string
	Merchant    string
	Token       string

	BillData
}

// NewBill creates a minimal request bill. An empty currency means USD.
func NewBill(number string, currency string, email string, items []Item) (Bill, error) {
	data, err := NewBillData(number, currency, email, items)
	if err != nil {
		return Bill{}, err
	}
	// emailBill is a subscription setting
	data.EmailBill = nil

	return Bill{BillData: data}, nil
}
