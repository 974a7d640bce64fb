// Package wallet orchestrates balance synchronization, price refresh
// and the transaction-submission pipeline on top of the Solana RPC
// client, the price API and the confirmation collaborator.
package wallet

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"solpocket/internal/client"
	"solpocket/internal/confirm"
	"solpocket/internal/keystore"
	"solpocket/internal/model"
	"solpocket/internal/store"

	"go.uber.org/zap"
)

// Operation names for the store's async lifecycle flags
const (
	OpSyncBalances  = "balances/sync"
	OpSubmitTx      = "transaction/submit"
	OpRefreshPrices = "prices/refresh"
	OpLoadHistory   = "history/load"
)

// ErrUserRejected is returned when the user declines a confirmation
// request. Nothing has been signed or dispatched at that point.
var ErrUserRejected = errors.New("transaction rejected by user")

// Service wires the wallet operations together
type Service struct {
	log       *zap.Logger
	store     *store.Store
	chains    map[model.Cluster]*client.ChainClient
	prices    *client.PriceClient
	confirmer confirm.Confirmer
	filePath  string

	cooldownMinutes int
	payMu           sync.Mutex
	lastPayTime     time.Time
}

// NewService creates a wallet Service
func NewService(
	log *zap.Logger,
	st *store.Store,
	chains map[model.Cluster]*client.ChainClient,
	prices *client.PriceClient,
	confirmer confirm.Confirmer,
	filePath string,
	cooldownMinutes int,
) *Service {
	return &Service{
		log:             log,
		store:           st,
		chains:          chains,
		prices:          prices,
		confirmer:       confirmer,
		filePath:        filePath,
		cooldownMinutes: cooldownMinutes,
	}
}

// Store exposes the state container the API renders from
func (s *Service) Store() *store.Store {
	return s.store
}

// chain returns the RPC client for a cluster, failing fast when no
// connection is configured for it
func (s *Service) chain(cluster model.Cluster) (*client.ChainClient, error) {
	c, ok := s.chains[cluster]
	if !ok || c == nil {
		return nil, fmt.Errorf("no connection configured for cluster %s", cluster)
	}
	return c, nil
}

// activeAddress reads the active account's address from the key file,
// failing fast when no wallet exists yet
func (s *Service) activeAddress() (string, error) {
	address, err := keystore.ReadAddress(s.filePath)
	if err != nil {
		return "", fmt.Errorf("no active account: %w", err)
	}
	return address, nil
}

// checkCooldown enforces the minimum interval between payments
func (s *Service) checkCooldown() error {
	s.payMu.Lock()
	defer s.payMu.Unlock()

	if s.lastPayTime.IsZero() {
		return nil
	}
	cooldownDuration := time.Duration(s.cooldownMinutes) * time.Minute
	if time.Since(s.lastPayTime) < cooldownDuration {
		remaining := cooldownDuration - time.Since(s.lastPayTime)
		return fmt.Errorf("cooldown active, please wait %v", remaining.Round(time.Second))
	}
	return nil
}

func (s *Service) markPaid() {
	s.payMu.Lock()
	s.lastPayTime = time.Now()
	s.payMu.Unlock()
}
