// Package store holds the in-memory wallet state the API renders from.
// All mutations are synchronous methods behind one RWMutex, so updates
// are serialized the same way reducer callbacks are.
package store

import (
	"sync"
	"time"

	"solpocket/internal/model"
)

const recentLimit = 50

type historyKey struct {
	cluster  model.Cluster
	address  string
	currency string
}

// Store is the in-memory wallet state.
// Balance state is always keyed by cluster first, then by account
// address - never merged across clusters.
type Store struct {
	mu       sync.RWMutex
	balances map[model.Cluster]map[string]model.AccountBalances
	prices   map[string]map[string]float64 // vs-currency -> token id -> price
	history  map[historyKey][]model.BalanceHistoryEntry
	ops      map[string]model.OpStatus
	recent   []model.SubmittedTransaction
}

// New creates an empty Store
func New() *Store {
	return &Store{
		balances: make(map[model.Cluster]map[string]model.AccountBalances),
		prices:   make(map[string]map[string]float64),
		history:  make(map[historyKey][]model.BalanceHistoryEntry),
		ops:      make(map[string]model.OpStatus),
	}
}

// SetAccountBalances replaces the whole snapshot for (cluster, address)
func (s *Store) SetAccountBalances(cluster model.Cluster, snapshot model.AccountBalances) {
	s.mu.Lock()
	defer s.mu.Unlock()

	perAccount, ok := s.balances[cluster]
	if !ok {
		perAccount = make(map[string]model.AccountBalances)
		s.balances[cluster] = perAccount
	}
	perAccount[snapshot.Address] = snapshot
}

// UpdateTokenAccountBalance updates one token-account balance located
// by its (address, mint) pair. No-op when the account or the pair is
// not present.
func (s *Store) UpdateTokenAccountBalance(cluster model.Cluster, address, mint string, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	perAccount, ok := s.balances[cluster]
	if !ok {
		return
	}
	snapshot, ok := perAccount[address]
	if !ok {
		return
	}
	for i := range snapshot.TokenAccounts {
		if snapshot.TokenAccounts[i].Mint == mint {
			snapshot.TokenAccounts[i].Amount = amount
			snapshot.UpdatedAt = time.Now()
			perAccount[address] = snapshot
			return
		}
	}
}

// Balances returns a copy of the snapshot for (cluster, address)
func (s *Store) Balances(cluster model.Cluster, address string) (model.AccountBalances, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perAccount, ok := s.balances[cluster]
	if !ok {
		return model.AccountBalances{}, false
	}
	snapshot, ok := perAccount[address]
	if !ok {
		return model.AccountBalances{}, false
	}

	out := snapshot
	out.TokenAccounts = make([]model.TokenAccount, len(snapshot.TokenAccounts))
	copy(out.TokenAccounts, snapshot.TokenAccounts)
	return out, true
}

// MergePrices merges token prices for one vs-currency. Prices recorded
// under other currencies are left untouched.
func (s *Store) MergePrices(currency string, prices map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	perToken, ok := s.prices[currency]
	if !ok {
		perToken = make(map[string]float64)
		s.prices[currency] = perToken
	}
	for id, price := range prices {
		perToken[id] = price
	}
}

// Prices returns a copy of the price map for one vs-currency
func (s *Store) Prices(currency string) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(s.prices[currency]))
	for id, price := range s.prices[currency] {
		out[id] = price
	}
	return out
}

// SetHistory replaces the balance series for (cluster, address, currency)
func (s *Store) SetHistory(cluster model.Cluster, address, currency string, entries []model.BalanceHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := historyKey{cluster: cluster, address: address, currency: currency}
	kept := make([]model.BalanceHistoryEntry, len(entries))
	copy(kept, entries)
	s.history[key] = kept
}

// History returns a copy of the balance series for (cluster, address, currency)
func (s *Store) History(cluster model.Cluster, address, currency string) []model.BalanceHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.history[historyKey{cluster: cluster, address: address, currency: currency}]
	out := make([]model.BalanceHistoryEntry, len(entries))
	copy(out, entries)
	return out
}

// Begin marks an operation as pending
func (s *Store) Begin(op string) {
	s.setOp(op, model.OpPending, "")
}

// Fulfill marks an operation as fulfilled
func (s *Store) Fulfill(op string) {
	s.setOp(op, model.OpFulfilled, "")
}

// Reject marks an operation as rejected with a human-readable message
func (s *Store) Reject(op string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	s.setOp(op, model.OpRejected, msg)
}

func (s *Store) setOp(op string, state model.OpState, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[op] = model.OpStatus{
		Op:        op,
		State:     state,
		Error:     msg,
		UpdatedAt: time.Now(),
	}
}

// Status returns the lifecycle flags for one operation.
// Operations never dispatched report the idle state.
func (s *Store) Status(op string) model.OpStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.ops[op]
	if !ok {
		return model.OpStatus{Op: op, State: model.OpIdle}
	}
	return status
}

// AppendSubmitted records a submitted transaction, keeping the most
// recent entries first
func (s *Store) AppendSubmitted(tx model.SubmittedTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = append([]model.SubmittedTransaction{tx}, s.recent...)
	if len(s.recent) > recentLimit {
		s.recent = s.recent[:recentLimit]
	}
}

// Submitted returns a copy of the recent-submission list
func (s *Store) Submitted() []model.SubmittedTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SubmittedTransaction, len(s.recent))
	copy(out, s.recent)
	return out
}
