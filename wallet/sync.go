package wallet

import (
	"context"
	"fmt"
	"time"

	"solpocket/internal/model"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SyncBalances fetches the native balance, all owned token accounts and
// the escrow balance for one address on one cluster, concurrently, and
// replaces the (cluster, address) snapshot in the store.
// An empty address syncs the active account.
func (s *Service) SyncBalances(ctx context.Context, cluster model.Cluster, address string) (model.AccountBalances, error) {
	chain, err := s.chain(cluster)
	if err != nil {
		return model.AccountBalances{}, err
	}

	if address == "" {
		address, err = s.activeAddress()
		if err != nil {
			return model.AccountBalances{}, err
		}
	}

	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return model.AccountBalances{}, fmt.Errorf("invalid address: %w", err)
	}

	s.store.Begin(OpSyncBalances)

	var (
		lamports      uint64
		escrow        uint64
		tokenAccounts []model.TokenAccount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lamports, err = chain.GetNativeBalance(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		tokenAccounts, err = chain.GetTokenAccounts(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		escrow, err = chain.GetEscrowBalance(gctx, owner)
		return err
	})

	if err := g.Wait(); err != nil {
		s.store.Reject(OpSyncBalances, err)
		return model.AccountBalances{}, fmt.Errorf("failed to sync balances: %w", err)
	}

	snapshot := model.AccountBalances{
		Address:        address,
		Lamports:       lamports,
		EscrowLamports: escrow,
		TokenAccounts:  tokenAccounts,
		UpdatedAt:      time.Now(),
	}

	s.store.SetAccountBalances(cluster, snapshot)
	s.store.Fulfill(OpSyncBalances)

	s.log.Debug("balances synced",
		zap.String("cluster", string(cluster)),
		zap.String("address", address),
		zap.Int("tokenAccounts", len(tokenAccounts)),
	)

	return snapshot, nil
}
