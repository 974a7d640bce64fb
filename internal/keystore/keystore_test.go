package keystore

import (
	"path/filepath"
	"testing"

	"solpocket/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.spk")
	password := []byte("correct horse")

	privateKey := make([]byte, 64)
	for i := range privateKey {
		privateKey[i] = byte(i)
	}

	err := EncryptKeyFile(path, "solana", "SomeAddress111", "qr-png-b64", &model.WalletData{
		PrivateKey: privateKey,
		CreatedAt:  "2026-01-02T15:04:05Z",
	}, password)
	require.NoError(t, err)

	t.Run("address and QR readable without password", func(t *testing.T) {
		address, err := ReadAddress(path)
		require.NoError(t, err)
		assert.Equal(t, "SomeAddress111", address)

		qr, err := ReadQR(path)
		require.NoError(t, err)
		assert.Equal(t, "qr-png-b64", qr)
	})

	t.Run("decrypts with the right password", func(t *testing.T) {
		keyFile, walletData, err := DecryptKeyFile(path, password)
		require.NoError(t, err)
		assert.Equal(t, "solana", keyFile.Network)
		assert.Equal(t, privateKey, walletData.PrivateKey)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, _, err := DecryptKeyFile(path, []byte("wrong"))
		require.Error(t, err)
		assert.EqualError(t, err, "invalid password")
	})

	t.Run("refuses to overwrite a non-empty file", func(t *testing.T) {
		err := EncryptKeyFile(path, "solana", "Other", "", &model.WalletData{PrivateKey: privateKey}, password)
		assert.Error(t, err)
	})
}

func TestRotateKeyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wallet.spk")
	oldPassword := []byte("old password")
	newPassword := []byte("new password")

	privateKey := make([]byte, 64)
	for i := range privateKey {
		privateKey[i] = byte(64 - i)
	}

	err := EncryptKeyFile(path, "solana", "SomeAddress111", "qr-png-b64", &model.WalletData{
		PrivateKey: privateKey,
		CreatedAt:  "2026-01-02T15:04:05Z",
	}, oldPassword)
	require.NoError(t, err)

	t.Run("wrong old password leaves the file untouched", func(t *testing.T) {
		err := RotateKeyFile(path, []byte("wrong"), newPassword)
		require.Error(t, err)

		_, walletData, err := DecryptKeyFile(path, oldPassword)
		require.NoError(t, err)
		assert.Equal(t, privateKey, walletData.PrivateKey)
	})

	t.Run("rotates and preserves key material and metadata", func(t *testing.T) {
		require.NoError(t, RotateKeyFile(path, oldPassword, newPassword))

		keyFile, walletData, err := DecryptKeyFile(path, newPassword)
		require.NoError(t, err)
		assert.Equal(t, privateKey, walletData.PrivateKey)
		assert.Equal(t, "SomeAddress111", keyFile.Address)
		assert.Equal(t, "qr-png-b64", keyFile.QR)

		_, _, err = DecryptKeyFile(path, oldPassword)
		assert.EqualError(t, err, "invalid password")
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		leftovers, err := filepath.Glob(filepath.Join(dir, ".rekey-*"))
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})
}

func TestEncryptRequiresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.txt")
	err := EncryptKeyFile(path, "solana", "A", "", &model.WalletData{}, []byte("pw"))
	assert.Error(t, err)
}

func TestReadAddressMissingFile(t *testing.T) {
	_, err := ReadAddress(filepath.Join(t.TempDir(), "nope.spk"))
	assert.EqualError(t, err, "file does not exist")
}
