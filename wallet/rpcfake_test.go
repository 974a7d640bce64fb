package wallet

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
)

// rpcFake fakes a Solana JSON-RPC node and counts calls per method
type rpcFake struct {
	t        *testing.T
	handlers map[string]func(params json.RawMessage) any

	mu    sync.Mutex
	calls map[string]int
}

func newRPCFake(t *testing.T, handlers map[string]func(params json.RawMessage) any) (*rpcFake, *httptest.Server) {
	t.Helper()
	f := &rpcFake{t: t, handlers: handlers, calls: make(map[string]int)}
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)
	return f, server
}

func (f *rpcFake) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     any             `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.t.Errorf("bad RPC request: %v", err)
		return
	}

	f.mu.Lock()
	f.calls[req.Method]++
	f.mu.Unlock()

	h, ok := f.handlers[req.Method]
	if !ok {
		f.t.Errorf("unexpected RPC method %s", req.Method)
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": req.ID,
			"error": map[string]any{"code": -32601, "message": "method not found"},
		})
		return
	}

	result := h(req.Params)
	if rpcErr, ok := result.(rpcError); ok {
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": req.ID,
			"error": map[string]any{"code": rpcErr.code, "message": rpcErr.message},
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0", "id": req.ID, "result": result,
	})
}

// rpcError makes a handler answer with a JSON-RPC error instead of a result
type rpcError struct {
	code    int
	message string
}

func (f *rpcFake) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func balanceResult(lamports uint64) func(json.RawMessage) any {
	return func(json.RawMessage) any {
		return map[string]any{"context": map[string]any{"slot": 1}, "value": lamports}
	}
}

func blockhashResult() func(json.RawMessage) any {
	var h solana.Hash
	h[0] = 7
	return func(json.RawMessage) any {
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value":   map[string]any{"blockhash": h.String(), "lastValidBlockHeight": 100},
		}
	}
}

// tokenAccountData builds the 165-byte SPL token account layout
func tokenAccountData(mint, owner solana.PublicKey, amount uint64) []byte {
	data := make([]byte, 165)
	copy(data[0:32], mint[:])
	copy(data[32:64], owner[:])
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = 1 // state: initialized
	return data
}

func b64Account(data []byte, owner solana.PublicKey) map[string]any {
	return map[string]any{
		"lamports":   2039280,
		"owner":      owner.String(),
		"data":       []any{base64.StdEncoding.EncodeToString(data), "base64"},
		"executable": false,
		"rentEpoch":  0,
	}
}
