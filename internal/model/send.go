package model

// SendRequest represents request for POST /send/...
type SendRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount,omitempty"`
	Mint      string `json:"mint,omitempty"`
}

// SendResponse represents response for POST /send/...
type SendResponse struct {
	TxID string `json:"txId"`
}
