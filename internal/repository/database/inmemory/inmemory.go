package inmemory

import (
	"sync"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/database"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/entities"
)

var _ database.Repository = (*inmemoryProvider)(nil)

type inmemoryProvider struct {
	mu         sync.RWMutex
	apiTokens  map[string]entities.ApiToken
	idSequence uint32
}

func NewInMemoryProvider() database.Repository {
	return &inmemoryProvider{
		apiTokens: make(map[string]entities.ApiToken),
	}
}

func (m *inmemoryProvider) Migrate() error {
	// Nothing to do here
	return nil
}
