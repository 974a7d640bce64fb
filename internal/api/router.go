package api

import (
	"net/http"

	"solpocket/internal/handler"
	"solpocket/wallet"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "solpocket/docs"
)

// SetupRouter sets up the router with handlers
func SetupRouter(svc *wallet.Service) (http.Handler, error) {
	walletHandler, err := handler.NewWalletHandler(svc)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/generate", walletHandler.Generate)
	mux.HandleFunc("/wallet/receive", walletHandler.Receive)

	// Balance endpoints
	mux.HandleFunc("/balances", walletHandler.Balances)
	mux.HandleFunc("/balances/sync", walletHandler.Sync)

	// Price endpoints
	mux.HandleFunc("/prices", walletHandler.Prices)
	mux.HandleFunc("/prices/refresh", walletHandler.RefreshPrices)
	mux.HandleFunc("/history", walletHandler.History)

	// Submission endpoints
	mux.HandleFunc("/send/sol", walletHandler.SendSOL)
	mux.HandleFunc("/send/token", walletHandler.SendToken)
	mux.HandleFunc("/send/collectable", walletHandler.SendCollectable)
	mux.HandleFunc("/ops", walletHandler.OpStatus)
	mux.HandleFunc("/transactions", walletHandler.Submitted)

	return mux, nil
}
