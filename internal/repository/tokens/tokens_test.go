package tokens

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/entities"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/database/inmemory"
	dbentities "github.com/eurofurence/reg-bitpay-client/internal/repository/entities"
)

func TestGetTokenByFacade(t *testing.T) {
	store, err := New(map[entities.Facade]string{
		entities.FacadeMerchant: "merchant-token",
	})
	require.NoError(t, err)

	token, err := store.GetTokenByFacade(entities.FacadeMerchant)
	require.NoError(t, err)
	require.Equal(t, "merchant-token", token)

	_, err = store.GetTokenByFacade(entities.FacadePayout)
	require.Error(t, err)
	require.True(t, apierrors.IsTokenNotConfigured(err))
	require.Equal(t, "no api token configured for facade payout", err.Error())
}

func TestNewCopiesInput(t *testing.T) {
	input := map[entities.Facade]string{entities.FacadePos: "pos-token"}
	store, err := New(input)
	require.NoError(t, err)

	input[entities.FacadePos] = "changed"
	input[entities.FacadeMerchant] = "added"

	token, err := store.GetTokenByFacade(entities.FacadePos)
	require.NoError(t, err)
	require.Equal(t, "pos-token", token)
	require.Equal(t, []entities.Facade{entities.FacadePos}, store.Facades())
}

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		tokens map[entities.Facade]string
	}{
		{name: "unknown facade", tokens: map[entities.Facade]string{"public": "abc"}},
		{name: "empty token", tokens: map[entities.Facade]string{entities.FacadeMerchant: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tokens)
			require.Error(t, err)
		})
	}
}

func TestEmptyStore(t *testing.T) {
	store, err := New(nil)
	require.NoError(t, err)
	require.Empty(t, store.Facades())

	_, err = store.GetTokenByFacade(entities.FacadeMerchant)
	require.True(t, apierrors.IsTokenNotConfigured(err))
}

func TestConcurrentReaders(t *testing.T) {
	store, err := New(map[entities.Facade]string{entities.FacadeMerchant: "merchant-token"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := store.GetTokenByFacade(entities.FacadeMerchant)
			require.NoError(t, err)
			require.Equal(t, "merchant-token", token)
		}()
	}
	wg.Wait()
}

func TestLoadFromRepository(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewInMemoryProvider()
	require.NoError(t, repo.SaveApiToken(ctx, dbentities.ApiToken{Facade: "merchant", Token: "merchant-token"}))
	require.NoError(t, repo.SaveApiToken(ctx, dbentities.ApiToken{Facade: "payroll", Token: "payout-token"}))

	store, err := LoadFromRepository(ctx, repo)
	require.NoError(t, err)

	token, err := store.GetTokenByFacade(entities.FacadePayout)
	require.NoError(t, err)
	require.Equal(t, "payout-token", token)
	require.Equal(t, []entities.Facade{entities.FacadeMerchant, entities.FacadePayout}, store.Facades())
}

func TestLoadFromRepositoryDuplicateFacade(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewInMemoryProvider()
	require.NoError(t, repo.SaveApiToken(ctx, dbentities.ApiToken{Facade: "payout", Token: "a"}))
	require.NoError(t, repo.SaveApiToken(ctx, dbentities.ApiToken{Facade: "payroll", Token: "b"}))

	_, err := LoadFromRepository(ctx, repo)
	require.Error(t, err)
}
