package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"solpocket/internal/common"
	"solpocket/internal/config"
	"solpocket/internal/model"
	"solpocket/wallet"
)

// WalletHandler serves the wallet API on top of the Service
type WalletHandler struct {
	svc            *wallet.Service
	defaultCluster model.Cluster
}

// NewWalletHandler creates a WalletHandler with config values
func NewWalletHandler(svc *wallet.Service) (*WalletHandler, error) {
	if svc == nil {
		return nil, errors.New("wallet service is required")
	}
	return &WalletHandler{
		svc:            svc,
		defaultCluster: config.GetCluster(),
	}, nil
}

func (h *WalletHandler) cluster(raw string) (model.Cluster, error) {
	if raw == "" {
		return h.defaultCluster, nil
	}
	return model.ParseCluster(raw)
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new Solana keypair and saves it to the .spk key file
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	address, err := h.svc.GenerateWallet(passwordBytes)
	if err != nil {
		if wallet.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
	})
}

// Receive handles GET /wallet/receive
// @Summary      Get receive screen data
// @Description  Gets the active account's address and its QR code
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ReceiveResponse
// @Router       /wallet/receive [get]
func (h *WalletHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.svc.Receive()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Balances handles GET /balances
// @Summary      Get synced balances
// @Description  Gets the last synced balance snapshot for (cluster, address)
// @Tags         balances
// @Produce      json
// @Param        cluster  query     string  false  "Cluster: mainnet-beta, testnet or devnet"
// @Param        address  query     string  false  "Account address (defaults to the active account)"
// @Success      200  {object}  model.BalancesResponse
// @Router       /balances [get]
func (h *WalletHandler) Balances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	cluster, err := h.cluster(r.URL.Query().Get("cluster"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		resp, err := h.svc.Receive()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		address = resp.Address
	}

	snapshot, ok := h.svc.Store().Balances(cluster, address)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no synced balances: sync first"))
		return
	}

	writeJSON(w, http.StatusOK, model.BalancesResponse{
		Cluster:  cluster,
		Balances: snapshot,
		SOL:      common.LamportsToSOL(snapshot.Lamports),
		Escrow:   common.LamportsToSOL(snapshot.EscrowLamports),
	})
}

// Sync handles POST /balances/sync
// @Summary      Sync balances
// @Description  Fetches native, token and escrow balances and replaces the snapshot
// @Tags         balances
// @Accept       json
// @Produce      json
// @Param        request  body      model.SyncRequest  false  "Sync target"
// @Success      200      {object}  model.SyncResponse
// @Router       /balances/sync [post]
func (h *WalletHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SyncRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	cluster, err := h.cluster(req.Cluster)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snapshot, err := h.svc.SyncBalances(r.Context(), cluster, req.Address)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SyncResponse{
		Cluster:  cluster,
		Balances: snapshot,
	})
}

// Prices handles GET /prices
// @Summary      Get cached prices
// @Description  Gets the merged price state for one vs-currency
// @Tags         prices
// @Produce      json
// @Param        currency  query     string  true  "vs-currency, e.g. usd"
// @Success      200  {object}  model.PricesResponse
// @Router       /prices [get]
func (h *WalletHandler) Prices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		writeError(w, http.StatusBadRequest, errors.New("currency is required"))
		return
	}

	writeJSON(w, http.StatusOK, model.PricesResponse{
		Currency: currency,
		Prices:   h.svc.Store().Prices(currency),
	})
}

// RefreshPrices handles POST /prices/refresh
// @Summary      Refresh prices
// @Description  Fetches current token prices and merges them into state
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        request  body      model.RefreshPricesRequest  true  "Tokens and currency"
// @Success      200      {object}  model.PricesResponse
// @Router       /prices/refresh [post]
func (h *WalletHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RefreshPricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Currency == "" {
		writeError(w, http.StatusBadRequest, errors.New("currency is required"))
		return
	}

	if err := h.svc.RefreshPrices(r.Context(), req.IDs, req.Currency); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PricesResponse{
		Currency: req.Currency,
		Prices:   h.svc.Store().Prices(req.Currency),
	})
}

// History handles GET /history
// @Summary      Get balance history
// @Description  Loads the historical valuation series for one account
// @Tags         prices
// @Produce      json
// @Param        cluster   query     string  false  "Cluster"
// @Param        address   query     string  false  "Account address (defaults to the active account)"
// @Param        currency  query     string  true   "vs-currency, e.g. usd"
// @Param        days      query     int     false  "Series length in days (default 30)"
// @Success      200  {object}  model.HistoryResponse
// @Router       /history [get]
func (h *WalletHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	req := model.HistoryRequest{
		Cluster:  r.URL.Query().Get("cluster"),
		Address:  r.URL.Query().Get("address"),
		Currency: r.URL.Query().Get("currency"),
	}
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid days: must be an integer"))
			return
		}
		req.Days = days
	}
	if req.Days == 0 {
		req.Days = 30
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cluster, err := h.cluster(req.Cluster)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entries, err := h.svc.LoadBalanceHistory(r.Context(), cluster, req.Address, req.Currency, req.Days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	address := req.Address
	if address == "" {
		if resp, err := h.svc.Receive(); err == nil {
			address = resp.Address
		}
	}

	writeJSON(w, http.StatusOK, model.HistoryResponse{
		Cluster:  cluster,
		Address:  address,
		Currency: req.Currency,
		Entries:  entries,
	})
}

// OpStatus handles GET /ops
// @Summary      Get operation lifecycle flags
// @Description  Gets the pending/fulfilled/rejected state of one async operation
// @Tags         ops
// @Produce      json
// @Param        op  query     string  true  "Operation name, e.g. balances/sync"
// @Success      200  {object}  model.OpStatus
// @Router       /ops [get]
func (h *WalletHandler) OpStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	op := r.URL.Query().Get("op")
	if op == "" {
		writeError(w, http.StatusBadRequest, errors.New("op is required"))
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Store().Status(op))
}

// Submitted handles GET /transactions
// @Summary      Get recent submissions
// @Description  Gets the transactions submitted during this session, newest first
// @Tags         ops
// @Produce      json
// @Success      200  {array}  model.SubmittedTransaction
// @Router       /transactions [get]
func (h *WalletHandler) Submitted(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Store().Submitted())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}
