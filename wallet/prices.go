package wallet

import (
	"context"
	"fmt"
	"strconv"

	"solpocket/internal/common"
	"solpocket/internal/model"
)

// nativeTokenID is the price API id for the native token
const nativeTokenID = "solana"

// RefreshPrices fetches current prices for the given token ids in one
// vs-currency and merges them into the store. Prices recorded under
// other currencies stay untouched.
func (s *Service) RefreshPrices(ctx context.Context, ids []string, vsCurrency string) error {
	if vsCurrency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(ids) == 0 {
		ids = []string{nativeTokenID}
	}

	s.store.Begin(OpRefreshPrices)

	prices, err := s.prices.GetPrices(ctx, ids, vsCurrency)
	if err != nil {
		s.store.Reject(OpRefreshPrices, err)
		return fmt.Errorf("failed to refresh prices: %w", err)
	}

	s.store.MergePrices(vsCurrency, prices)
	s.store.Fulfill(OpRefreshPrices)
	return nil
}

// LoadBalanceHistory builds the historical valuation series of one
// account's native holdings (wallet + escrow) in one vs-currency and
// stores it under (cluster, address, currency). The account must have
// a synced snapshot first.
func (s *Service) LoadBalanceHistory(ctx context.Context, cluster model.Cluster, address, vsCurrency string, days int) ([]model.BalanceHistoryEntry, error) {
	if address == "" {
		var err error
		address, err = s.activeAddress()
		if err != nil {
			return nil, err
		}
	}

	snapshot, ok := s.store.Balances(cluster, address)
	if !ok {
		return nil, fmt.Errorf("no synced balances for %s on %s: sync first", address, cluster)
	}

	s.store.Begin(OpLoadHistory)

	series, err := s.prices.GetHistory(ctx, nativeTokenID, vsCurrency, days)
	if err != nil {
		s.store.Reject(OpLoadHistory, err)
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// Scale the price series by current holdings. Uses float only for
	// valuation display, never for on-chain amounts.
	totalLamports := snapshot.Lamports + snapshot.EscrowLamports
	sol := common.LamportsToSOL(totalLamports)
	solFloat, _ := strconv.ParseFloat(sol, 64)

	entries := make([]model.BalanceHistoryEntry, len(series))
	for i, point := range series {
		entries[i] = model.BalanceHistoryEntry{
			Timestamp: point.Timestamp,
			Value:     point.Value * solFloat,
		}
	}

	s.store.SetHistory(cluster, address, vsCurrency, entries)
	s.store.Fulfill(OpLoadHistory)
	return entries, nil
}
