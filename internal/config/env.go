package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"solpocket/internal/model"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	Cluster        string        `envconfig:"SOLANA_CLUSTER" default:"mainnet-beta"`
	MainnetRPCURL  string        `envconfig:"MAINNET_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	TestnetRPCURL  string        `envconfig:"TESTNET_RPC_URL" default:"https://api.testnet.solana.com"`
	DevnetRPCURL   string        `envconfig:"DEVNET_RPC_URL" default:"https://api.devnet.solana.com"`
	EscrowProgram  string        `envconfig:"ESCROW_PROGRAM_ID" default:""`
	PriceAPIURL    string        `envconfig:"PRICE_API_URL" default:"https://api.coingecko.com/api/v3"`
	PriceAPIRPS    int           `envconfig:"PRICE_API_RPS" default:"2"`
	SyncInterval   time.Duration `envconfig:"SYNC_INTERVAL" default:"30s"`
	WalletFilePath string        `envconfig:"WALLET_FILE_PATH" required:"true"`
	ConfirmMode    string        `envconfig:"CONFIRM_MODE" default:"prompt"`
	PayCooldown    int           `envconfig:"PAY_COOLDOWN_MINUTES" default:"4"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if _, err := model.ParseCluster(cfg.Cluster); err != nil {
		return fmt.Errorf("invalid SOLANA_CLUSTER: %w", err)
	}
	switch cfg.ConfirmMode {
	case "prompt", "approve", "deny":
	default:
		return fmt.Errorf("invalid CONFIRM_MODE %q: must be prompt, approve or deny", cfg.ConfirmMode)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetCluster returns the active cluster from configuration
func GetCluster() model.Cluster {
	c, _ := model.ParseCluster(Get().Cluster)
	return c
}

// GetRPCURL returns the RPC endpoint for a cluster
func GetRPCURL(cluster model.Cluster) string {
	switch cluster {
	case model.ClusterTestnet:
		return Get().TestnetRPCURL
	case model.ClusterDevnet:
		return Get().DevnetRPCURL
	default:
		return Get().MainnetRPCURL
	}
}

// GetWalletFilePath returns path to .spk file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetPayCooldown returns cooldown in minutes from configuration
func GetPayCooldown() int {
	return Get().PayCooldown
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
