package database

import (
	"context"
	"errors"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/entities"
)

var ErrApiTokenNotFound = errors.New("no api token stored for this facade")

type Repository interface {
	Migrate() error
	ApiTokenCRUD
}

type ApiTokenCRUD interface {
	// ListApiTokens returns all stored tokens ordered by facade.
	ListApiTokens(ctx context.Context) ([]entities.ApiToken, error)
	// SaveApiToken inserts the token, or replaces the token already stored for the same facade.
	SaveApiToken(ctx context.Context, tok entities.ApiToken) error
	DeleteApiToken(ctx context.Context, facade string) error
}
