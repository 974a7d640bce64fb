package model

import "fmt"

// RefreshPricesRequest represents request for POST /prices/refresh
type RefreshPricesRequest struct {
	Currency string   `json:"currency"`
	IDs      []string `json:"ids,omitempty"`
}

// PricesResponse represents response for GET /prices
type PricesResponse struct {
	Currency string             `json:"currency"`
	Prices   map[string]float64 `json:"prices"`
}

// HistoryRequest represents request parameters for GET /history
type HistoryRequest struct {
	Cluster  string `form:"cluster"`
	Address  string `form:"address"`
	Currency string `form:"currency"`
	Days     int    `form:"days"`
}

// Validate validates HistoryRequest parameters.
func (r *HistoryRequest) Validate() error {
	if r.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if r.Days < 0 {
		return fmt.Errorf("days must be positive")
	}
	if r.Cluster != "" {
		if _, err := ParseCluster(r.Cluster); err != nil {
			return err
		}
	}
	return nil
}

// HistoryResponse represents response for GET /history
type HistoryResponse struct {
	Cluster  Cluster               `json:"cluster"`
	Address  string                `json:"address"`
	Currency string                `json:"currency"`
	Entries  []BalanceHistoryEntry `json:"entries"`
}
