package mapping

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
)

// Mapper converts between a domain object T and its wire representation D.
//
// Every decode failure is returned as an apierrors.DeserializeError naming ResourceType.
type Mapper[T any, D any] struct {
	ResourceType string
	ToWire       func(T) D
	FromWire     func(D) (T, error)
}

var SubscriptionMapper = Mapper[entities.Subscription, SubscriptionDto]{
	ResourceType: "Subscription",
	ToWire:       SubscriptionToWire,
	FromWire:     SubscriptionFromWire,
}

var BillMapper = Mapper[entities.Bill, BillDto]{
	ResourceType: "Bill",
	ToWire:       BillToWire,
	FromWire:     BillFromWire,
}

var SettlementMapper = Mapper[entities.Settlement, SettlementDto]{
	ResourceType: "Settlement",
	ToWire:       SettlementToWire,
	FromWire:     SettlementFromWire,
}

// Encode renders the request body. Absent fields are left out.
func (m Mapper[T, D]) Encode(value T) ([]byte, error) {
	return json.Marshal(m.ToWire(value))
}

// DecodeOne maps a single JSON object. Unknown keys are ignored.
func (m Mapper[T, D]) DecodeOne(raw []byte) (T, error) {
	var zero T
	var dto D
	return m.decodeInto(raw, dto, zero)
}

// DecodeOneInto maps a JSON object on top of base. Fields present in raw overwrite
// those of base, everything else keeps the value of base. base itself is not modified.
func (m Mapper[T, D]) DecodeOneInto(raw []byte, base T) (T, error) {
	return m.decodeInto(raw, m.ToWire(base), base)
}

// DecodeList maps a JSON array. A single malformed element fails the whole list.
func (m Mapper[T, D]) DecodeList(raw []byte) ([]T, error) {
	if !gjson.ValidBytes(raw) {
		return nil, m.fail(errors.New("response is not valid json"))
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		return nil, m.fail(fmt.Errorf("expected a json array but got %s", describe(parsed)))
	}

	elements := parsed.Array()
	result := make([]T, 0, len(elements))
	for i, element := range elements {
		if !element.IsObject() {
			return nil, m.fail(fmt.Errorf("element %d: expected a json object but got %s", i, describe(element)))
		}

		var dto D
		if err := json.Unmarshal([]byte(element.Raw), &dto); err != nil {
			return nil, m.fail(fmt.Errorf("element %d: %w", i, err))
		}
		value, err := m.FromWire(dto)
		if err != nil {
			return nil, m.fail(fmt.Errorf("element %d: %w", i, err))
		}
		result = append(result, value)
	}
	return result, nil
}

func (m Mapper[T, D]) decodeInto(raw []byte, dto D, fallback T) (T, error) {
	if !gjson.ValidBytes(raw) {
		return fallback, m.fail(errors.New("response is not valid json"))
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		return fallback, m.fail(fmt.Errorf("expected a json object but got %s", describe(parsed)))
	}

	if err := json.Unmarshal(raw, &dto); err != nil {
		return fallback, m.fail(err)
	}
	value, err := m.FromWire(dto)
	if err != nil {
		return fallback, m.fail(err)
	}
	return value, nil
}

func (m Mapper[T, D]) fail(cause error) error {
	return apierrors.NewDeserialize(m.ResourceType, cause)
}

func describe(r gjson.Result) string {
	if r.IsArray() {
		return "array"
	}
	if r.IsObject() {
		return "object"
	}
	return r.Type.String()
}
