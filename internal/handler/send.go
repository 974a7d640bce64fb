package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"solpocket/internal/config"
	"solpocket/internal/model"
	"solpocket/wallet"
)

// SendSOL handles POST /send/sol
// @Summary      Send SOL
// @Description  Composes a SOL transfer, asks for confirmation, then submits it
// @Tags         send
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Payment data"
// @Success      200      {object}  model.SendResponse
// @Router       /send/sol [post]
func (h *WalletHandler) SendSOL(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, func(req model.SendRequest, password []byte, cluster model.Cluster) (string, error) {
		if req.Amount == "" {
			return "", errors.New("amount is required")
		}
		return h.svc.SendSOL(r.Context(), password, cluster, req.ToAddress, req.Amount)
	})
}

// SendToken handles POST /send/token
// @Summary      Send SPL token
// @Description  Composes an SPL token transfer, asks for confirmation, then submits it
// @Tags         send
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Payment data (mint required)"
// @Success      200      {object}  model.SendResponse
// @Router       /send/token [post]
func (h *WalletHandler) SendToken(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, func(req model.SendRequest, password []byte, cluster model.Cluster) (string, error) {
		if req.Mint == "" {
			return "", errors.New("mint is required")
		}
		if req.Amount == "" {
			return "", errors.New("amount is required")
		}
		return h.svc.SendToken(r.Context(), password, cluster, req.Mint, req.ToAddress, req.Amount)
	})
}

// SendCollectable handles POST /send/collectable
// @Summary      Send collectable
// @Description  Composes a collectable (NFT) transfer, asks for confirmation, then submits it
// @Tags         send
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Payment data (mint required, amount ignored)"
// @Success      200      {object}  model.SendResponse
// @Router       /send/collectable [post]
func (h *WalletHandler) SendCollectable(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, func(req model.SendRequest, password []byte, cluster model.Cluster) (string, error) {
		if req.Mint == "" {
			return "", errors.New("mint is required")
		}
		return h.svc.SendCollectable(r.Context(), password, cluster, req.Mint, req.ToAddress)
	})
}

func (h *WalletHandler) send(w http.ResponseWriter, r *http.Request, do func(model.SendRequest, []byte, model.Cluster) (string, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		model.SendRequest
		Cluster string `json:"cluster,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ToAddress == "" {
		writeError(w, http.StatusBadRequest, errors.New("toAddress is required"))
		return
	}

	cluster, err := h.cluster(req.Cluster)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	txID, err := do(req.SendRequest, passwordBytes, cluster)
	if err != nil {
		if errors.Is(err, wallet.ErrUserRejected) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SendResponse{TxID: txID})
}
