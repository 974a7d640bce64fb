// @title           solpocket wallet API
// @version         1.0
// @description     Balance sync, prices and transaction submission for a Solana wallet
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solpocket/internal/api"
	"solpocket/internal/client"
	"solpocket/internal/config"
	"solpocket/internal/confirm"
	"solpocket/internal/model"
	"solpocket/internal/store"
	"solpocket/wallet"

	"go.uber.org/zap"
)

func main() {
	if err := config.Init(); err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg := config.Get()

	// The wallet password is held in memory for the whole session, the
	// same way the mobile app holds an unlocked keystore
	if err := config.PromptForPassword(); err != nil {
		return err
	}

	chains := make(map[model.Cluster]*client.ChainClient, 3)
	for _, cluster := range []model.Cluster{model.ClusterMainnet, model.ClusterTestnet, model.ClusterDevnet} {
		c, err := client.NewChainClient(cluster, config.GetRPCURL(cluster), cfg.EscrowProgram, logger)
		if err != nil {
			return err
		}
		chains[cluster] = c
	}

	prices := client.NewPriceClient(cfg.PriceAPIURL, cfg.PriceAPIRPS, logger)

	var confirmer confirm.Confirmer
	switch cfg.ConfirmMode {
	case "approve":
		confirmer = confirm.Static(true)
	case "deny":
		confirmer = confirm.Static(false)
	default:
		confirmer = confirm.Terminal{}
	}

	svc := wallet.NewService(
		logger,
		store.New(),
		chains,
		prices,
		confirmer,
		cfg.WalletFilePath,
		cfg.PayCooldown,
	)

	router, err := api.SetupRouter(svc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go syncLoop(ctx, logger, svc, config.GetCluster(), cfg.SyncInterval)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

// syncLoop periodically re-syncs the active account's balances
func syncLoop(ctx context.Context, logger *zap.Logger, svc *wallet.Service, cluster model.Cluster, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.SyncBalances(ctx, cluster, ""); err != nil {
				// No wallet file yet is normal before first generate
				logger.Debug("periodic sync skipped", zap.Error(err))
			}
		}
	}
}
