// Package simulator keeps the state of an in-memory BitPay api.
//
// It works on the wire representations and enforces the token rules of the real api:
// the facade token creates, reads and lists resources, while changes to a resource need
// the resource token handed out with it.
package simulator

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
)

const (
	CodeGeneric      = "000000"
	CodeUnauthorized = "000001"
	CodeNotFound     = "000002"
	CodeInvalid      = "000003"
)

type RecordedRequest struct {
	Method string
	Path   string
}

type Simulator struct {
	mu sync.Mutex

	facadeTokens map[string]entities.Facade
	baseUrl      string
	now          func() time.Time

	subscriptions *collection[mapping.SubscriptionDto]
	bills         *collection[mapping.BillDto]
	settlements   *collection[mapping.SettlementDto]

	requests []RecordedRequest
}

// New creates an empty simulator accepting the given facade tokens. baseUrl is used for bill urls.
func New(facadeTokens map[entities.Facade]string, baseUrl string) *Simulator {
	byToken := make(map[string]entities.Facade, len(facadeTokens))
	for facade, token := range facadeTokens {
		byToken[token] = facade
	}

	return &Simulator{
		facadeTokens:  byToken,
		baseUrl:       strings.TrimSuffix(baseUrl, "/"),
		now:           time.Now,
		subscriptions: newCollection[mapping.SubscriptionDto](),
		bills:         newCollection[mapping.BillDto](),
		settlements:   newCollection[mapping.SettlementDto](),
	}
}

func (s *Simulator) Record(method string, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, RecordedRequest{Method: method, Path: path})
}

// Requests returns every request received so far, in order.
func (s *Simulator) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RecordedRequest{}, s.requests...)
}

func (s *Simulator) requireFacade(token string, facade entities.Facade) error {
	if token == "" {
		return apierrors.NewAPIError(http.StatusUnauthorized, CodeUnauthorized, "Missing token")
	}
	if f, ok := s.facadeTokens[token]; !ok || f != facade {
		return apierrors.NewAPIError(http.StatusUnauthorized, CodeUnauthorized, "Unauthorized: invalid token for facade "+string(facade))
	}
	return nil
}

func requireResourceToken(token string, expected string) error {
	if token == "" {
		return apierrors.NewAPIError(http.StatusUnauthorized, CodeUnauthorized, "Missing token")
	}
	if token != expected {
		return apierrors.NewAPIError(http.StatusForbidden, CodeUnauthorized, "Unauthorized: this action requires the resource token")
	}
	return nil
}

func invalid(message string) error {
	return apierrors.NewAPIError(http.StatusBadRequest, CodeInvalid, message)
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:22]
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (s *Simulator) timestamp() string {
	return s.now().UTC().Format("2006-01-02T15:04:05.000Z")
}

type collection[R any] struct {
	records map[string]*R
	order   []string
}

func newCollection[R any]() *collection[R] {
	return &collection[R]{records: make(map[string]*R)}
}

func (c *collection[R]) add(id string, record *R) {
	c.records[id] = record
	c.order = append(c.order, id)
}

func (c *collection[R]) find(id string) (*R, error) {
	record, ok := c.records[id]
	if !ok {
		return nil, apierrors.NewAPIError(http.StatusNotFound, CodeNotFound, "Object not found")
	}
	return record, nil
}

// all returns the records in creation order
func (c *collection[R]) all() []*R {
	result := make([]*R, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.records[id])
	}
	return result
}

func clone[D any](dto D) D {
	var result D
	raw, _ := json.Marshal(dto)
	_ = json.Unmarshal(raw, &result)
	return result
}

// merge applies the keys present in body on top of a copy of dto.
func merge[D any](dto D, body []byte) (D, error) {
	result := clone(dto)
	if err := json.Unmarshal(body, &result); err != nil {
		return dto, invalid("invalid request body: " + err.Error())
	}
	return result, nil
}
