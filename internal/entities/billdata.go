package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
)

// DateTimeFormat is the BitPay wire format for timestamps, always UTC.
const DateTimeFormat = "2006-01-02T15:04:05Z"

// Item is one line of a bill.
//
// Price and Quantity are pointers so that an explicit zero can be told apart
// from a value that was never set.
type Item struct {
	// ID is assigned by the server (bills only)
	ID          string
	Price       *decimal.Decimal
	Quantity    *int
	Description string
}

func NewItem(price decimal.Decimal, quantity int, description string) Item {
	return Item{
		Price:       &price,
		Quantity:    &quantity,
		Description: description,
	}
}

// BillData holds the recurring billing information of a subscription.
type BillData struct {
	// if true, BitPay emails each generated bill to Email once the subscription is active
	EmailBill *bool
	Cc        []string
	Number    string
	currency  string
	Name      string
	Address1  string
	Address2  string
	City      string
	State     string
	Zip       string
	Country   string
	Email     string
	Phone     string
	// due date in DateTimeFormat
	DueDate string
	// if true, the BitPay processing fee is added to the amount charged
	PassProcessingFee *bool
	Items             []Item
}

// NewBillData creates a minimal bill data object. An empty currency means USD,
// emailBill defaults to true.
func NewBillData(number string, currency string, email string, items []Item) (BillData, error) {
	b := BillData{
		EmailBill: Ptr(true),
		Number:    number,
		Email:     email,
		Items:     items,
	}

	if currency == "" {
		currency = CurrencyUSD
	}
	if err := b.SetCurrency(currency); err != nil {
		return BillData{}, err
	}

	return b, nil
}

// Currency returns the ISO 4217 / crypto code, empty if never set.
func (b BillData) Currency() string {
	return b.currency
}

// SetCurrency assigns the currency, rejecting codes outside the registry.
func (b *BillData) SetCurrency(code string) error {
	if !IsValidCurrency(code) {
		return apierrors.NewInvalidCurrency(code)
	}

	b.currency = code
	return nil
}

func (b *BillData) SetDueDate(due time.Time) {
	b.DueDate = FormatDateTime(due)
}

func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

func ParseDateTime(value string) (time.Time, error) {
	return time.Parse(DateTimeFormat, value)
}

// Ptr returns a pointer to a copy of v, handy for the optional fields.
func Ptr[T any](v T) *T {
	return &v
}
