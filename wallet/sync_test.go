package wallet

import (
	"context"
	"encoding/json"
	"testing"

	"solpocket/internal/client"
	"solpocket/internal/confirm"
	"solpocket/internal/model"
	"solpocket/internal/store"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSyncService(t *testing.T, serverURL, escrowProgram string) *Service {
	t.Helper()
	chain, err := client.NewChainClient(model.ClusterDevnet, serverURL, escrowProgram, zap.NewNop())
	require.NoError(t, err)

	return NewService(
		zap.NewNop(),
		store.New(),
		map[model.Cluster]*client.ChainClient{model.ClusterDevnet: chain},
		nil,
		confirm.Static(true),
		"",
		0,
	)
}

func TestSyncBalances(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	ata := solana.NewWallet().PublicKey()
	escrowProgram := solana.NewWallet().PublicKey()

	handlers := map[string]func(json.RawMessage) any{
		"getBalance": balanceResult(3_000_000_000),
		"getTokenAccountsByOwner": func(json.RawMessage) any {
			return map[string]any{
				"context": map[string]any{"slot": 1},
				"value": []any{
					map[string]any{
						"pubkey":  ata.String(),
						"account": b64Account(tokenAccountData(mint, owner, 42_000_000), solana.TokenProgramID),
					},
				},
			}
		},
		"getTokenAccountBalance": func(json.RawMessage) any {
			return map[string]any{
				"context": map[string]any{"slot": 1},
				"value":   map[string]any{"amount": "42000000", "decimals": 6, "uiAmountString": "42"},
			}
		},
		// Escrow account exists but holds garbage: sync must still succeed
		"getAccountInfo": func(json.RawMessage) any {
			return map[string]any{
				"context": map[string]any{"slot": 1},
				"value":   b64Account([]byte{0xde, 0xad}, escrowProgram),
			}
		},
	}

	_, server := newRPCFake(t, handlers)
	svc := newSyncService(t, server.URL, escrowProgram.String())

	snapshot, err := svc.SyncBalances(context.Background(), model.ClusterDevnet, owner.String())
	require.NoError(t, err)

	t.Run("snapshot is consolidated", func(t *testing.T) {
		assert.Equal(t, owner.String(), snapshot.Address)
		assert.Equal(t, uint64(3_000_000_000), snapshot.Lamports)
		require.Len(t, snapshot.TokenAccounts, 1)
		assert.Equal(t, mint.String(), snapshot.TokenAccounts[0].Mint)
		assert.Equal(t, uint64(42_000_000), snapshot.TokenAccounts[0].Amount)
	})

	t.Run("undecodable escrow reads zero without failing sync", func(t *testing.T) {
		assert.Zero(t, snapshot.EscrowLamports)
	})

	t.Run("recorded under the synced cluster and address only", func(t *testing.T) {
		got, ok := svc.Store().Balances(model.ClusterDevnet, owner.String())
		require.True(t, ok)
		assert.Equal(t, snapshot.Lamports, got.Lamports)

		_, ok = svc.Store().Balances(model.ClusterMainnet, owner.String())
		assert.False(t, ok)
	})

	t.Run("lifecycle fulfilled", func(t *testing.T) {
		assert.Equal(t, model.OpFulfilled, svc.Store().Status(OpSyncBalances).State)
	})
}

func TestSyncBalancesFailures(t *testing.T) {
	t.Run("unknown cluster fails fast", func(t *testing.T) {
		_, server := newRPCFake(t, nil)
		svc := newSyncService(t, server.URL, "")

		_, err := svc.SyncBalances(context.Background(), model.ClusterTestnet, "whatever")
		assert.ErrorContains(t, err, "no connection configured")
	})

	t.Run("invalid address fails before any fetch", func(t *testing.T) {
		fake, server := newRPCFake(t, nil)
		svc := newSyncService(t, server.URL, "")

		_, err := svc.SyncBalances(context.Background(), model.ClusterDevnet, "not-an-address!!")
		assert.Error(t, err)
		assert.Empty(t, fake.callCount("getBalance"))
	})

	t.Run("fetch failure rejects the lifecycle", func(t *testing.T) {
		owner := solana.NewWallet().PublicKey()
		handlers := map[string]func(json.RawMessage) any{
			"getBalance": balanceResult(1),
			"getTokenAccountsByOwner": func(json.RawMessage) any {
				return rpcError{code: -32005, message: "node is behind"}
			},
		}
		_, server := newRPCFake(t, handlers)
		svc := newSyncService(t, server.URL, "")

		_, err := svc.SyncBalances(context.Background(), model.ClusterDevnet, owner.String())
		require.Error(t, err)
		assert.Equal(t, model.OpRejected, svc.Store().Status(OpSyncBalances).State)

		_, ok := svc.Store().Balances(model.ClusterDevnet, owner.String())
		assert.False(t, ok, "failed sync must not write a snapshot")
	})
}
