package entities

import "github.com/shopspring/decimal"

type SettlementStatus string

const (
	SettlementStatusNew        SettlementStatus = "new"
	SettlementStatusProcessing SettlementStatus = "processing"
	SettlementStatusRejected   SettlementStatus = "rejected"
	SettlementStatusCompleted  SettlementStatus = "completed"
)

func (s SettlementStatus) IsValid() bool {
	switch s {
	case SettlementStatusNew, SettlementStatusProcessing, SettlementStatusRejected, SettlementStatusCompleted:
		return true
	}

	return false
}

type WithHoldings struct {
	Amount      decimal.Decimal
	Code        string
	Description string
	Notes       string
	Label       string
	BankCountry string
}

type SettlementLedgerEntry struct {
	Code        int
	InvoiceID   string
	Amount      decimal.Decimal
	Timestamp   string
	Description string
	Reference   string
}

// Settlement is read only from the client side.
type Settlement struct {
	ID               string
	AccountID        string
	Currency         string
	Status           SettlementStatus
	DateCreated      string
	DateExecuted     string
	DateCompleted    string
	OpeningDate      string
	ClosingDate      string
	OpeningBalance   decimal.Decimal
	LedgerEntriesSum decimal.Decimal
	WithHoldings     []WithHoldings
	WithHoldingsSum  decimal.Decimal
	TotalAmount      decimal.Decimal
	// LedgerEntries is only filled in reconciliation reports
	LedgerEntries []SettlementLedgerEntry
	// Token is the resource scoped token needed for the reconciliation report
	Token string
}

// SettlementQuery filters a settlement listing. Zero values are not sent.
type SettlementQuery struct {
	Currency string
	// DateStart and DateEnd as yyyy-mm-dd
	DateStart string
	DateEnd   string
	Status    SettlementStatus
	Limit     int
	Offset    int
}
