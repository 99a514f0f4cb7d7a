package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/logging"
	"github.com/eurofurence/reg-bitpay-client/internal/mapping"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams/restcli"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/tokens"
)

// restResource implements create, get, list and update for one resource family.
type restResource[T any, D any] struct {
	transport restcli.Transport
	tokens    *tokens.Store
	facade    entities.Facade
	path      string
	mapper    mapping.Mapper[T, D]

	// idOf, tokenOf and setToken are only used by create and update
	idOf     func(T) string
	tokenOf  func(T) string
	setToken func(*D, string)
	// validate runs before anything is sent, may be nil
	validate func(T) error
}

func (r *restResource[T, D]) create(ctx context.Context, resource T) (T, error) {
	var zero T
	if id := r.idOf(resource); id != "" {
		return zero, apierrors.NewValidation("id", id, fmt.Sprintf("%s already exists on the server, use update", r.mapper.ResourceType))
	}
	if err := r.check(resource); err != nil {
		return zero, err
	}

	token, err := r.tokens.GetTokenByFacade(r.facade)
	if err != nil {
		return zero, err
	}

	body, err := r.encode(resource, token)
	if err != nil {
		return zero, err
	}

	logging.LoggerFromContext(ctx).Debug("creating %s", r.mapper.ResourceType)
	raw, err := r.transport.Post(ctx, r.path, body)
	if err != nil {
		return zero, err
	}

	return r.mapper.DecodeOne(raw)
}

func (r *restResource[T, D]) get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, apierrors.NewValidation("id", "", "must not be empty")
	}

	token, err := r.tokens.GetTokenByFacade(r.facade)
	if err != nil {
		return zero, err
	}

	raw, err := r.transport.Get(ctx, r.itemPath(id), url.Values{"token": []string{token}})
	if err != nil {
		return zero, err
	}

	return r.mapper.DecodeOne(raw)
}

// list adds filter to the query. Empty filter values are not sent.
func (r *restResource[T, D]) list(ctx context.Context, filter url.Values) ([]T, error) {
	token, err := r.tokens.GetTokenByFacade(r.facade)
	if err != nil {
		return nil, err
	}

	query := url.Values{"token": []string{token}}
	for key, values := range filter {
		for _, v := range values {
			if v != "" {
				query.Add(key, v)
			}
		}
	}

	raw, err := r.transport.Get(ctx, r.path, query)
	if err != nil {
		return nil, err
	}

	return r.mapper.DecodeList(raw)
}

// update always fetches the resource first, because only the resource token handed
// out by get is accepted for changes. The resource is read by its own id and written
// to id, each falling back to the other if empty.
func (r *restResource[T, D]) update(ctx context.Context, resource T, id string) (T, error) {
	var zero T
	getID, putID := r.idOf(resource), id
	if getID == "" {
		getID = id
	}
	if putID == "" {
		putID = getID
	}
	if getID == "" {
		return zero, apierrors.NewValidation("id", "", "must not be empty")
	}
	if err := r.check(resource); err != nil {
		return zero, err
	}

	current, err := r.get(ctx, getID)
	if err != nil {
		return zero, err
	}
	resourceToken := r.tokenOf(current)
	if resourceToken == "" {
		return zero, apierrors.NewDeserialize(r.mapper.ResourceType, errors.New("response carries no resource token"))
	}

	body, err := r.encode(resource, resourceToken)
	if err != nil {
		return zero, err
	}

	logging.LoggerFromContext(ctx).Debug("updating %s %s", r.mapper.ResourceType, putID)
	raw, err := r.transport.Update(ctx, r.itemPath(putID), body)
	if err != nil {
		return zero, err
	}

	return r.mapper.DecodeOneInto(raw, resource)
}

func (r *restResource[T, D]) check(resource T) error {
	if r.validate == nil {
		return nil
	}
	return r.validate(resource)
}

func (r *restResource[T, D]) encode(resource T, token string) ([]byte, error) {
	dto := r.mapper.ToWire(resource)
	r.setToken(&dto, token)

	body, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", r.mapper.ResourceType, err)
	}
	return body, nil
}

func (r *restResource[T, D]) itemPath(id string, sub ...string) string {
	p := r.path + "/" + url.PathEscape(id)
	for _, s := range sub {
		p = p + "/" + s
	}
	return p
}
