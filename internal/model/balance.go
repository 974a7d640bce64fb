package model

import "time"

// TokenAccount is one associated token account owned by a wallet:
// (account address, mint, raw balance)
type TokenAccount struct {
	Address  string `json:"address"`
	Mint     string `json:"mint"`
	Amount   uint64 `json:"amount"`
	Decimals uint8  `json:"decimals"`
}

// AccountBalances is the consolidated balance snapshot for one wallet
// address on one cluster. A sync replaces the whole snapshot.
type AccountBalances struct {
	Address        string         `json:"address"`
	Lamports       uint64         `json:"lamports"`
	EscrowLamports uint64         `json:"escrowLamports"`
	TokenAccounts  []TokenAccount `json:"tokenAccounts"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// BalanceHistoryEntry is one point of a historical balance series
type BalanceHistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// BalancesResponse represents response for GET /balances
type BalancesResponse struct {
	Cluster  Cluster         `json:"cluster"`
	Balances AccountBalances `json:"balances"`
	SOL      string          `json:"sol"`
	Escrow   string          `json:"escrow"`
}

// SyncRequest represents request for POST /balances/sync
type SyncRequest struct {
	Cluster string `json:"cluster,omitempty"`
	Address string `json:"address,omitempty"`
}

// SyncResponse represents response for POST /balances/sync
type SyncResponse struct {
	Cluster  Cluster         `json:"cluster"`
	Balances AccountBalances `json:"balances"`
}
