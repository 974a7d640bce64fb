package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"solpocket/internal/model"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// escrowSeed is the PDA seed prefix the escrow program derives
// per-wallet accounts from
var escrowSeed = []byte("escrow")

// escrowState is the on-chain layout of one escrow account (borsh)
type escrowState struct {
	Owner  solana.PublicKey
	Amount uint64
}

// ChainClient is a client for working with one cluster's Solana RPC
type ChainClient struct {
	rpcClient     *rpc.Client
	rpcURL        string
	cluster       model.Cluster
	escrowProgram *solana.PublicKey
	log           *zap.Logger
}

// NewChainClient creates a Solana RPC client for one cluster.
// escrowProgramID may be empty when the protocol escrow is not deployed
// on that cluster; escrow balances then read as zero.
func NewChainClient(cluster model.Cluster, rpcURL, escrowProgramID string, log *zap.Logger) (*ChainClient, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("no RPC URL configured for cluster %s", cluster)
	}

	c := &ChainClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
		cluster:   cluster,
		log:       log,
	}

	if escrowProgramID != "" {
		program, err := solana.PublicKeyFromBase58(escrowProgramID)
		if err != nil {
			return nil, fmt.Errorf("invalid escrow program id: %w", err)
		}
		c.escrowProgram = &program
	}

	return c, nil
}

// Cluster returns the cluster this client talks to
func (c *ChainClient) Cluster() model.Cluster {
	return c.cluster
}

// GetNativeBalance gets the SOL balance in lamports
func (c *ChainClient) GetNativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	balance, err := c.rpcClient.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return balance.Value, nil
}

// GetTokenAccounts gets all SPL token accounts owned by the wallet
func (c *ChainClient) GetTokenAccounts(ctx context.Context, owner solana.PublicKey) ([]model.TokenAccount, error) {
	out, err := c.rpcClient.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{
			ProgramId: solana.TokenProgramID.ToPointer(),
		},
		&rpc.GetTokenAccountsOpts{
			Commitment: rpc.CommitmentConfirmed,
			Encoding:   solana.EncodingBase64,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get token accounts: %w", err)
	}

	accounts := make([]model.TokenAccount, 0, len(out.Value))
	for _, entry := range out.Value {
		var ta token.Account
		if err := bin.NewBinDecoder(entry.Account.Data.GetBinary()).Decode(&ta); err != nil {
			// Accounts owned by the token program but not in the
			// standard layout are skipped, not fatal
			c.log.Warn("skipping undecodable token account",
				zap.String("pubkey", entry.Pubkey.String()),
				zap.Error(err))
			continue
		}

		decimals, err := c.tokenAccountDecimals(ctx, entry.Pubkey)
		if err != nil {
			c.log.Warn("failed to resolve token account decimals",
				zap.String("pubkey", entry.Pubkey.String()),
				zap.Error(err))
		}

		accounts = append(accounts, model.TokenAccount{
			Address:  entry.Pubkey.String(),
			Mint:     ta.Mint.String(),
			Amount:   ta.Amount,
			Decimals: decimals,
		})
	}

	return accounts, nil
}

func (c *ChainClient) tokenAccountDecimals(ctx context.Context, account solana.PublicKey) (uint8, error) {
	balance, err := c.rpcClient.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, err
	}
	if balance.Value == nil {
		return 0, nil
	}
	return balance.Value.Decimals, nil
}

// GetEscrowBalance gets the wallet's escrow balance in lamports.
// A missing escrow account or an undecodable one reads as zero; only
// transport failures surface as errors, so one bad escrow account
// never fails a whole sync.
func (c *ChainClient) GetEscrowBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	if c.escrowProgram == nil {
		return 0, nil
	}

	escrowAddr, _, err := solana.FindProgramAddress(
		[][]byte{escrowSeed, owner.Bytes()},
		*c.escrowProgram,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to derive escrow address: %w", err)
	}

	info, err := c.rpcClient.GetAccountInfo(ctx, escrowAddr)
	if err != nil {
		if isAccountNotFoundError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get escrow account: %w", err)
	}
	if info.Value == nil {
		return 0, nil
	}

	var state escrowState
	if err := bin.NewBorshDecoder(info.Value.Data.GetBinary()).Decode(&state); err != nil {
		c.log.Warn("failed to decode escrow account, treating balance as zero",
			zap.String("account", escrowAddr.String()),
			zap.Error(err))
		return 0, nil
	}

	if !state.Owner.Equals(owner) {
		c.log.Warn("escrow account owner mismatch, treating balance as zero",
			zap.String("account", escrowAddr.String()))
		return 0, nil
	}

	return state.Amount, nil
}

// GetTokenBalance gets the raw balance and decimals of one token account
func (c *ChainClient) GetTokenBalance(ctx context.Context, account solana.PublicKey) (uint64, uint8, error) {
	balance, err := c.rpcClient.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, 0, err
	}
	if balance.Value == nil {
		return 0, 0, nil
	}

	amount, err := strconv.ParseUint(balance.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse token balance amount: %w", err)
	}
	return amount, balance.Value.Decimals, nil
}

// AccountExists reports whether an account exists on chain
func (c *ChainClient) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	info, err := c.rpcClient.GetAccountInfo(ctx, account)
	if err != nil {
		if isAccountNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get account info: %w", err)
	}
	return info.Value != nil, nil
}

// LatestBlockhash gets a recent blockhash for transaction building
func (c *ChainClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	return recent.Value.Blockhash, nil
}

// SubmitTransaction sends a signed transaction to the node
func (c *ChainClient) SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false, // transaction validation before the node accepts it
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// isAccountNotFoundError checks if error indicates that the account doesn't exist
func isAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rpc.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "could not find account") ||
		strings.Contains(errStr, "not found")
}
