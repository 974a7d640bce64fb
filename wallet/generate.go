package wallet

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solpocket/internal/keystore"
	"solpocket/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

const networkSolana = "solana"

// FileExistsError is an error when the key file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	_, ok := err.(*FileExistsError)
	return ok
}

// GenerateWallet generates a new Solana keypair and saves it to the
// .spk file. Returns the generated public address on success.
// password must be []byte for security (caller should zero it after use)
func (s *Service) GenerateWallet(password []byte) (address string, err error) {
	if ext := filepath.Ext(s.filePath); ext != keystore.FileExt {
		return "", fmt.Errorf("file must have %s extension", keystore.FileExt)
	}

	if fileInfo, err := os.Stat(s.filePath); err == nil && fileInfo.Size() > 0 {
		return "", &FileExistsError{Message: "file is not empty"}
	}

	w := solana.NewWallet()
	defer clear(w.PrivateKey)

	address = w.PublicKey().String()

	qrCode, err := receiveQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		PrivateKey: w.PrivateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := keystore.EncryptKeyFile(s.filePath, networkSolana, address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// Receive returns what the receive screen needs: the active account's
// address and its QR code.
func (s *Service) Receive() (*model.ReceiveResponse, error) {
	address, err := s.activeAddress()
	if err != nil {
		return nil, err
	}

	qr, err := keystore.ReadQR(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read QR: %w", err)
	}
	if qr == "" {
		// Older key files may predate the embedded QR
		qr, err = receiveQRCode(address)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
	}

	return &model.ReceiveResponse{
		Address: address,
		QR:      qr,
	}, nil
}

// receiveQRCode generates a QR code of the address in base64
func receiveQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
