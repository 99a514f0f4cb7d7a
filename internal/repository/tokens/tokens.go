// Package tokens holds the API tokens of the configured facades.
//
// A Store is populated once and never changes afterwards, so it can be shared
// between goroutines without locking.
package tokens

import (
	"context"
	"fmt"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/database"
)

type Store struct {
	tokens map[entities.Facade]string
}

// New copies the given tokens. Unknown facades and empty tokens are rejected.
func New(tokens map[entities.Facade]string) (*Store, error) {
	copied := make(map[entities.Facade]string, len(tokens))
	for facade, token := range tokens {
		if !facade.IsValid() {
			return nil, fmt.Errorf("unknown facade %q", facade)
		}
		if token == "" {
			return nil, fmt.Errorf("empty api token for facade %s", facade)
		}
		copied[facade] = token
	}

	return &Store{tokens: copied}, nil
}

// LoadFromRepository builds a Store from the tokens provisioned in the database.
func LoadFromRepository(ctx context.Context, repo database.Repository) (*Store, error) {
	stored, err := repo.ListApiTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read api tokens: %w", err)
	}

	tokens := make(map[entities.Facade]string, len(stored))
	for _, s := range stored {
		facade, err := entities.ParseFacade(s.Facade)
		if err != nil {
			return nil, err
		}
		if _, dup := tokens[facade]; dup {
			return nil, fmt.Errorf("more than one api token stored for facade %s", facade)
		}
		tokens[facade] = s.Token
	}

	return New(tokens)
}

// GetTokenByFacade returns the token for facade, or a TokenNotConfiguredError.
func (s *Store) GetTokenByFacade(facade entities.Facade) (string, error) {
	token, ok := s.tokens[facade]
	if !ok {
		return "", apierrors.NewTokenNotConfigured(string(facade))
	}
	return token, nil
}

// Facades lists the facades a token is configured for.
func (s *Store) Facades() []entities.Facade {
	result := make([]entities.Facade, 0, len(s.tokens))
	for _, f := range []entities.Facade{entities.FacadeMerchant, entities.FacadePayout, entities.FacadePos} {
		if _, ok := s.tokens[f]; ok {
			result = append(result, f)
		}
	}
	return result
}
