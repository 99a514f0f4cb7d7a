package mapping

import "encoding/json"

// Wire representations. Field order is the order of the keys on the wire.
//
// Strings and slices are omitted when empty. Booleans and numbers that the
// caller may legitimately set to false/0 are pointers and only omitted when nil.
// Decimals travel as JSON numbers.

type ItemDto struct {
	ID          string       `json:"id,omitempty"`
	Description string       `json:"description,omitempty"`
	Price       *json.Number `json:"price,omitempty"`
	Quantity    *int         `json:"quantity,omitempty"`
}

type BillDataDto struct {
	EmailBill         *bool     `json:"emailBill,omitempty"`
	Cc                []string  `json:"cc,omitempty"`
	Number            string    `json:"number,omitempty"`
	Currency          string    `json:"currency,omitempty"`
	Name              string    `json:"name,omitempty"`
	Address1          string    `json:"address1,omitempty"`
	Address2          string    `json:"address2,omitempty"`
	City              string    `json:"city,omitempty"`
	State             string    `json:"state,omitempty"`
	Zip               string    `json:"zip,omitempty"`
	Country           string    `json:"country,omitempty"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	DueDate           string    `json:"dueDate,omitempty"`
	PassProcessingFee *bool     `json:"passProcessingFee,omitempty"`
	Items             []ItemDto `json:"items,omitempty"`
}

type SubscriptionDto struct {
	ID           string       `json:"id,omitempty"`
	Status       string       `json:"status,omitempty"`
	BillData     *BillDataDto `json:"billData,omitempty"`
	Merchant     string       `json:"merchant,omitempty"`
	Schedule     string       `json:"schedule,omitempty"`
	NextDelivery string       `json:"nextDelivery,omitempty"`
	CreatedDate  string       `json:"createdDate,omitempty"`
	Token        string       `json:"token,omitempty"`
}

// BillDto carries the billing fields flat, next to the bill's own fields.
type BillDto struct {
	ID          string `json:"id,omitempty"`
	Status      string `json:"status,omitempty"`
	URL         string `json:"url,omitempty"`
	CreatedDate string `json:"createdDate,omitempty"`
	Merchant    string `json:"merchant,omitempty"`
	Token       string `json:"token,omitempty"`
	BillDataDto
}

type WithHoldingsDto struct {
	Amount      *json.Number `json:"amount,omitempty"`
	Code        string       `json:"code,omitempty"`
	Description string       `json:"description,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Label       string       `json:"label,omitempty"`
	BankCountry string       `json:"bankCountry,omitempty"`
}

type SettlementLedgerEntryDto struct {
	Code        int          `json:"code,omitempty"`
	InvoiceID   string       `json:"invoiceId,omitempty"`
	Amount      *json.Number `json:"amount,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Description string       `json:"description,omitempty"`
	Reference   string       `json:"reference,omitempty"`
}

type SettlementDto struct {
	ID               string                     `json:"id,omitempty"`
	AccountID        string                     `json:"accountId,omitempty"`
	Currency         string                     `json:"currency,omitempty"`
	Status           string                     `json:"status,omitempty"`
	DateCreated      string                     `json:"dateCreated,omitempty"`
	DateExecuted     string                     `json:"dateExecuted,omitempty"`
	DateCompleted    string                     `json:"dateCompleted,omitempty"`
	OpeningDate      string                     `json:"openingDate,omitempty"`
	ClosingDate      string                     `json:"closingDate,omitempty"`
	OpeningBalance   *json.Number               `json:"openingBalance,omitempty"`
	LedgerEntriesSum *json.Number               `json:"ledgerEntriesSum,omitempty"`
	WithHoldings     []WithHoldingsDto          `json:"withHoldings,omitempty"`
	WithHoldingsSum  *json.Number               `json:"withHoldingsSum,omitempty"`
	TotalAmount      *json.Number               `json:"totalAmount,omitempty"`
	LedgerEntries    []SettlementLedgerEntryDto `json:"ledgerEntries,omitempty"`
	Token            string                     `json:"token,omitempty"`
}

// TokenDto is the request body of calls that only carry a resource token.
type TokenDto struct {
	Token string `json:"token"`
}
