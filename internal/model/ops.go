package model

import "time"

// OpState is the coarse lifecycle state of a dispatched async operation
type OpState string

const (
	OpIdle      OpState = "idle"
	OpPending   OpState = "pending"
	OpFulfilled OpState = "fulfilled"
	OpRejected  OpState = "rejected"
)

// OpStatus represents the lifecycle flags exposed for one operation.
// Only a coarse state and a human-readable message are kept; no
// structured error classification is propagated into state.
type OpStatus struct {
	Op        string    `json:"op"`
	State     OpState   `json:"state"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubmittedTransaction records one transaction accepted by the node
type SubmittedTransaction struct {
	Signature string    `json:"signature"`
	Cluster   Cluster   `json:"cluster"`
	Kind      string    `json:"kind"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
