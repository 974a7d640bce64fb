package keystore

import (
	"fmt"
	"os"
	"path/filepath"
)

// RotateKeyFile re-encrypts an .spk file under a new password with a
// fresh salt and nonce. The replacement is written to a temp file next
// to the original and renamed over it only after encryption succeeds,
// so a failure mid-rotation never destroys the existing key material.
func RotateKeyFile(filePath string, oldPassword, newPassword []byte) error {
	keyFile, walletData, err := DecryptKeyFile(filePath, oldPassword)
	if err != nil {
		return err
	}
	defer clear(walletData.PrivateKey)

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".rekey-*"+FileExt)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := EncryptKeyFile(tmpPath, keyFile.Network, keyFile.Address, keyFile.QR, walletData, newPassword); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace key file: %w", err)
	}
	return nil
}
