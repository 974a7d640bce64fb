package wallet

import (
	"path/filepath"
	"testing"

	"solpocket/internal/confirm"
	"solpocket/internal/keystore"
	"solpocket/internal/store"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.spk")
	svc := NewService(zap.NewNop(), store.New(), nil, nil, confirm.Static(true), path, 0)

	address, err := svc.GenerateWallet(testPassword)
	require.NoError(t, err)

	t.Run("address is a valid pubkey", func(t *testing.T) {
		_, err := solana.PublicKeyFromBase58(address)
		assert.NoError(t, err)
	})

	t.Run("key file holds the address", func(t *testing.T) {
		stored, err := keystore.ReadAddress(path)
		require.NoError(t, err)
		assert.Equal(t, address, stored)
	})

	t.Run("receive screen data", func(t *testing.T) {
		resp, err := svc.Receive()
		require.NoError(t, err)
		assert.Equal(t, address, resp.Address)
		assert.NotEmpty(t, resp.QR)
	})

	t.Run("second generate refuses to overwrite", func(t *testing.T) {
		_, err := svc.GenerateWallet(testPassword)
		require.Error(t, err)
		assert.True(t, IsFileExistsError(err))
	})
}

func TestGenerateWalletRequiresExtension(t *testing.T) {
	svc := NewService(zap.NewNop(), store.New(), nil, nil, confirm.Static(true),
		filepath.Join(t.TempDir(), "wallet.json"), 0)

	_, err := svc.GenerateWallet(testPassword)
	assert.Error(t, err)
}
