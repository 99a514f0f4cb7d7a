package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-bitpay-client/internal/repository/database"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/entities"
)

func TestSaveAndListApiTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryProvider()
	require.NoError(t, repo.Migrate())

	require.NoError(t, repo.SaveApiToken(ctx, entities.ApiToken{Facade: "pos", Token: "pos-1"}))
	require.NoError(t, repo.SaveApiToken(ctx, entities.ApiToken{Facade: "merchant", Token: "merchant-1"}))
	require.NoError(t, repo.SaveApiToken(ctx, entities.ApiToken{Facade: "merchant", Token: "merchant-2", Comment: "rotated"}))

	list, err := repo.ListApiTokens(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Equal(t, "merchant", list[0].Facade)
	require.Equal(t, "merchant-2", list[0].Token)
	require.Equal(t, "rotated", list[0].Comment)
	require.Equal(t, uint(2), list[0].ID, "replacing keeps the id")
	require.Equal(t, "pos", list[1].Facade)
}

func TestSaveApiTokenRequiresFacade(t *testing.T) {
	repo := NewInMemoryProvider()
	require.Error(t, repo.SaveApiToken(context.Background(), entities.ApiToken{Token: "abc"}))
}

func TestDeleteApiToken(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryProvider()
	require.NoError(t, repo.SaveApiToken(ctx, entities.ApiToken{Facade: "merchant", Token: "merchant-1"}))

	require.NoError(t, repo.DeleteApiToken(ctx, "merchant"))
	require.ErrorIs(t, repo.DeleteApiToken(ctx, "merchant"), database.ErrApiTokenNotFound)

	list, err := repo.ListApiTokens(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}
