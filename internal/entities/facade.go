package entities

import (
	"fmt"
	"strings"
)

// Facade is the permission scope an API token was issued for.
type Facade string

const (
	FacadeMerchant Facade = "merchant"
	FacadePayout   Facade = "payout"
	FacadePos      Facade = "pos"
)

// legacy name of the payout facade
const facadePayroll = "payroll"

func (f Facade) IsValid() bool {
	switch f {
	case FacadeMerchant, FacadePayout, FacadePos:
		return true
	}

	return false
}

func ParseFacade(value string) (Facade, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == facadePayroll {
		return FacadePayout, nil
	}

	f := Facade(v)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown facade %q, must be one of merchant, payout, pos", value)
	}
	return f, nil
}
