package wallet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solpocket/internal/client"
	"solpocket/internal/confirm"
	"solpocket/internal/model"
	"solpocket/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPriceService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewService(
		zap.NewNop(),
		store.New(),
		nil,
		client.NewPriceClient(server.URL, 10, zap.NewNop()),
		confirm.Static(true),
		"",
		0,
	)
}

func TestRefreshPrices(t *testing.T) {
	svc := newPriceService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"solana":{"usd":150.0},"usd-coin":{"usd":1.0}}`))
	})

	// Pre-existing state in another currency and another token
	svc.Store().MergePrices("eur", map[string]float64{"solana": 140.0})
	svc.Store().MergePrices("usd", map[string]float64{"bonk": 0.00002})

	err := svc.RefreshPrices(context.Background(), []string{"solana", "usd-coin"}, "usd")
	require.NoError(t, err)

	t.Run("merged into the currency", func(t *testing.T) {
		usd := svc.Store().Prices("usd")
		assert.Equal(t, 150.0, usd["solana"])
		assert.Equal(t, 1.0, usd["usd-coin"])
		assert.Equal(t, 0.00002, usd["bonk"], "unrelated token kept")
	})

	t.Run("other currencies untouched", func(t *testing.T) {
		assert.Equal(t, 140.0, svc.Store().Prices("eur")["solana"])
	})

	t.Run("lifecycle fulfilled", func(t *testing.T) {
		assert.Equal(t, model.OpFulfilled, svc.Store().Status(OpRefreshPrices).State)
	})

	t.Run("missing currency fails fast", func(t *testing.T) {
		assert.Error(t, svc.RefreshPrices(context.Background(), nil, ""))
	})
}

func TestRefreshPricesFailure(t *testing.T) {
	svc := newPriceService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := svc.RefreshPrices(context.Background(), []string{"solana"}, "usd")
	require.Error(t, err)
	assert.Equal(t, model.OpRejected, svc.Store().Status(OpRefreshPrices).State)
}

func TestLoadBalanceHistory(t *testing.T) {
	svc := newPriceService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices":[[1700000000000,100.0],[1700003600000,200.0]]}`))
	})

	// 1.5 SOL in wallet plus 0.5 SOL in escrow
	svc.Store().SetAccountBalances(model.ClusterMainnet, model.AccountBalances{
		Address:        "addr1",
		Lamports:       1_500_000_000,
		EscrowLamports: 500_000_000,
		UpdatedAt:      time.Now(),
	})

	t.Run("scales the price series by holdings", func(t *testing.T) {
		entries, err := svc.LoadBalanceHistory(context.Background(), model.ClusterMainnet, "addr1", "usd", 7)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.InDelta(t, 200.0, entries[0].Value, 0.0001)
		assert.InDelta(t, 400.0, entries[1].Value, 0.0001)

		stored := svc.Store().History(model.ClusterMainnet, "addr1", "usd")
		assert.Len(t, stored, 2)
		assert.Equal(t, model.OpFulfilled, svc.Store().Status(OpLoadHistory).State)
	})

	t.Run("requires a synced snapshot", func(t *testing.T) {
		_, err := svc.LoadBalanceHistory(context.Background(), model.ClusterDevnet, "addr1", "usd", 7)
		assert.ErrorContains(t, err, "no synced balances")
	})
}
