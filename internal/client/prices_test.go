package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetPrices(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns prices keyed by token id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "solana,usd-coin", r.URL.Query().Get("ids"))
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
			w.Write([]byte(`{"solana":{"usd":147.35},"usd-coin":{"usd":1.0}}`))
		}))
		defer server.Close()

		c := NewPriceClient(server.URL, 10, logger)
		prices, err := c.GetPrices(context.Background(), []string{"solana", "usd-coin"}, "usd")

		require.NoError(t, err)
		assert.Equal(t, 147.35, prices["solana"])
		assert.Equal(t, 1.0, prices["usd-coin"])
	})

	t.Run("empty ids short-circuits without a request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))
		defer server.Close()

		c := NewPriceClient(server.URL, 10, logger)
		prices, err := c.GetPrices(context.Background(), nil, "usd")

		require.NoError(t, err)
		assert.Empty(t, prices)
	})

	t.Run("surfaces non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewPriceClient(server.URL, 10, logger)
		_, err := c.GetPrices(context.Background(), []string{"solana"}, "usd")
		assert.Error(t, err)
	})
}

func TestGetHistory(t *testing.T) {
	logger := zap.NewNop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/solana/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Write([]byte(`{"prices":[[1700000000000,58.21],[1700003600000,59.0]]}`))
	}))
	defer server.Close()

	c := NewPriceClient(server.URL, 10, logger)
	entries, err := c.GetHistory(context.Background(), "solana", "usd", 7)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 58.21, entries[0].Value)
	assert.Equal(t, int64(1700000000000), entries[0].Timestamp.UnixMilli())
	assert.Equal(t, 59.0, entries[1].Value)
}
