package entities

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
)

// SubscriptionStatus - subscriptions in status active create new bills on the NextDelivery date.
type SubscriptionStatus string

const (
	SubscriptionStatusDraft     SubscriptionStatus = "draft"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusDraft, SubscriptionStatusActive, SubscriptionStatusCancelled:
		return true
	}

	return false
}

// Schedule of repeat bill due dates.
//
// Either one of the keywords, or a cron expression with exactly six fields:
//
//	second (0-59) minute (0-59) hour (0-23) day-of-month (1-31) month (1-12) day-of-week (0-6)
type Schedule string

const (
	ScheduleWeekly    Schedule = "weekly"
	ScheduleMonthly   Schedule = "monthly"
	ScheduleQuarterly Schedule = "quarterly"
	ScheduleYearly    Schedule = "yearly"
)

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func (s Schedule) IsKeyword() bool {
	switch s {
	case ScheduleWeekly, ScheduleMonthly, ScheduleQuarterly, ScheduleYearly:
		return true
	}

	return false
}

// Validate accepts the keywords and range checked six field cron expressions.
func (s Schedule) Validate() error {
	if s.IsKeyword() {
		return nil
	}

	value := string(s)
	if fields := strings.Fields(value); len(fields) != 6 {
		return apierrors.NewValidation("schedule", value,
			fmt.Sprintf("must be weekly, monthly, quarterly, yearly or a cron expression with 6 fields, got %d fields", len(fields)))
	}
	if strings.HasPrefix(value, "@") {
		return apierrors.NewValidation("schedule", value, "cron descriptors are not supported")
	}
	if _, err := cronParser.Parse(value); err != nil {
		return apierrors.NewValidation("schedule", value, err.Error())
	}

	return nil
}

type Subscription struct {
	// ID is assigned by the server
	ID     string
	Status SubscriptionStatus
	// BillData is the template for the bills this subscription generates
	BillData BillData
	// Merchant is an internal BitPay identifier, can be ignored
	Merchant string
	Schedule Schedule
	// NextDelivery in DateTimeFormat. Current or past dates mean the bill is delivered immediately.
	NextDelivery string
	// CreatedDate is assigned by the server
	CreatedDate string
	// Token is the resource scoped token, derived from the merchant token and tied to this subscription
	Token string
}

// NewSubscription creates a minimal request subscription on a monthly schedule.
func NewSubscription(billData BillData) Subscription {
	return Subscription{
		BillData: billData,
		Schedule: ScheduleMonthly,
	}
}
