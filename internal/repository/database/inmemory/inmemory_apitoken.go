package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/database"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/entities"
)

func (m *inmemoryProvider) ListApiTokens(ctx context.Context) ([]entities.ApiToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]entities.ApiToken, 0, len(m.apiTokens))
	for _, t := range m.apiTokens {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Facade < result[j].Facade
	})

	return result, nil
}

func (m *inmemoryProvider) SaveApiToken(ctx context.Context, tok entities.ApiToken) error {
	if tok.Facade == "" {
		return errors.New("api token needs a facade")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if existing, ok := m.apiTokens[tok.Facade]; ok {
		tok.ID = existing.ID
		tok.CreatedAt = existing.CreatedAt
	} else {
		tok.ID = uint(atomic.AddUint32(&m.idSequence, 1))
		tok.CreatedAt = now
	}
	tok.UpdatedAt = now

	m.apiTokens[tok.Facade] = tok
	return nil
}

func (m *inmemoryProvider) DeleteApiToken(ctx context.Context, facade string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.apiTokens[facade]; !ok {
		return database.ErrApiTokenNotFound
	}
	delete(m.apiTokens, facade)
	return nil
}
