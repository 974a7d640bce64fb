package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solpocket/internal/client"
	"solpocket/internal/common"
	"solpocket/internal/confirm"
	"solpocket/internal/keystore"
	"solpocket/internal/model"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

const (
	solFeeLamports = 5000 // fee in lamports (0.000005 SOL)

	kindSendSOL         = "send/sol"
	kindSendToken       = "send/token"
	kindSendCollectable = "send/collectable"
)

// SendSOL composes, confirms and submits a native SOL transfer.
// password must be []byte for security (caller should zero it after use)
func (s *Service) SendSOL(ctx context.Context, password []byte, cluster model.Cluster, toAddress, amount string) (string, error) {
	chain, owner, err := s.sendPreconditions(cluster, toAddress)
	if err != nil {
		return "", err
	}

	lamports, err := common.SOLToLamports(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %w", err)
	}
	if cmp, err := common.CompareAmounts(amount, "0", common.SOLDecimals); err != nil || cmp <= 0 {
		return "", errors.New("amount must be greater than zero")
	}

	// Check SOL sufficiency (amount + fee)
	solBal, err := chain.GetNativeBalance(ctx, owner)
	if err != nil {
		return "", fmt.Errorf("failed to check balance: %w", err)
	}
	requiredLamports := lamports + solFeeLamports
	if solBal < requiredLamports {
		var maxLamports uint64
		if solBal > solFeeLamports {
			maxLamports = solBal - solFeeLamports
		}
		return "", fmt.Errorf("insufficient SOL balance. Transaction fee: %s SOL. Max you can send: %s SOL",
			common.LamportsToSOL(solFeeLamports), common.LamportsToSOL(maxLamports))
	}

	blockhash, err := chain.LatestBlockhash(ctx)
	if err != nil {
		return "", err
	}

	toPubkey, _ := solana.PublicKeyFromBase58(toAddress)
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, owner, toPubkey).Build(),
		},
		blockhash,
		solana.TransactionPayer(owner),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	return s.confirmAndSubmit(ctx, chain, password, tx, submission{
		kind:    kindSendSOL,
		cluster: cluster,
		from:    owner.String(),
		to:      toAddress,
		amount:  amount,
		message: fmt.Sprintf("send %s SOL to %s", amount, toAddress),
	})
}

// SendToken composes, confirms and submits an SPL token transfer for
// the given mint, creating the destination ATA when it does not exist.
// password must be []byte for security (caller should zero it after use)
func (s *Service) SendToken(ctx context.Context, password []byte, cluster model.Cluster, mint, toAddress, amount string) (string, error) {
	chain, owner, err := s.sendPreconditions(cluster, toAddress)
	if err != nil {
		return "", err
	}

	mintPubkey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return "", fmt.Errorf("invalid mint: %w", err)
	}

	sourceAccount, _, err := solana.FindAssociatedTokenAddress(owner, mintPubkey)
	if err != nil {
		return "", fmt.Errorf("failed to find source token account address: %w", err)
	}

	balance, decimals, err := chain.GetTokenBalance(ctx, sourceAccount)
	if err != nil {
		return "", fmt.Errorf("no token account for mint %s: %w", mint, err)
	}

	rawAmount, err := common.ParseUnits(amount, int(decimals))
	if err != nil {
		return "", fmt.Errorf("invalid amount: %w", err)
	}
	if cmp, err := common.CompareAmounts(amount, "0", int(decimals)); err != nil || cmp <= 0 {
		return "", errors.New("amount must be greater than zero")
	}
	if balance < rawAmount {
		return "", fmt.Errorf("insufficient token balance: have %s, want %s",
			common.FormatUnits(balance, int(decimals)), amount)
	}

	tx, err := s.buildTokenTransfer(ctx, chain, owner, mintPubkey, sourceAccount, toAddress, rawAmount, decimals)
	if err != nil {
		return "", err
	}

	return s.confirmAndSubmit(ctx, chain, password, tx, submission{
		kind:    kindSendToken,
		cluster: cluster,
		from:    owner.String(),
		to:      toAddress,
		amount:  amount,
		message: fmt.Sprintf("send %s of token %s to %s", amount, mint, toAddress),
	})
}

// SendCollectable composes, confirms and submits a collectable (NFT)
// transfer: an SPL transfer of amount 1 at 0 decimals, the mint being
// the collectable itself.
// password must be []byte for security (caller should zero it after use)
func (s *Service) SendCollectable(ctx context.Context, password []byte, cluster model.Cluster, mint, toAddress string) (string, error) {
	chain, owner, err := s.sendPreconditions(cluster, toAddress)
	if err != nil {
		return "", err
	}

	mintPubkey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return "", fmt.Errorf("invalid mint: %w", err)
	}

	sourceAccount, _, err := solana.FindAssociatedTokenAddress(owner, mintPubkey)
	if err != nil {
		return "", fmt.Errorf("failed to find source token account address: %w", err)
	}

	balance, _, err := chain.GetTokenBalance(ctx, sourceAccount)
	if err != nil {
		return "", fmt.Errorf("collectable %s is not owned by this wallet: %w", mint, err)
	}
	if balance < 1 {
		return "", fmt.Errorf("collectable %s is not owned by this wallet", mint)
	}

	tx, err := s.buildTokenTransfer(ctx, chain, owner, mintPubkey, sourceAccount, toAddress, 1, 0)
	if err != nil {
		return "", err
	}

	return s.confirmAndSubmit(ctx, chain, password, tx, submission{
		kind:    kindSendCollectable,
		cluster: cluster,
		from:    owner.String(),
		to:      toAddress,
		amount:  "1",
		message: fmt.Sprintf("send collectable %s to %s", mint, toAddress),
		warning: "sending a collectable transfers the whole item",
	})
}

// sendPreconditions checks everything the pipeline needs before any
// network or signing activity: a confirmation collaborator, an active
// account, a connection for the cluster and a valid recipient.
func (s *Service) sendPreconditions(cluster model.Cluster, toAddress string) (*client.ChainClient, solana.PublicKey, error) {
	if s.confirmer == nil {
		return nil, solana.PublicKey{}, errors.New("no confirmation collaborator configured")
	}

	address, err := s.activeAddress()
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("invalid active account address: %w", err)
	}

	chain, err := s.chain(cluster)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	if _, err := solana.PublicKeyFromBase58(toAddress); err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("invalid recipient address: %w", err)
	}

	if err := s.checkCooldown(); err != nil {
		return nil, solana.PublicKey{}, err
	}

	return chain, owner, nil
}

// buildTokenTransfer builds the unsigned SPL transfer transaction,
// prepending a create-ATA instruction when the destination has none
func (s *Service) buildTokenTransfer(
	ctx context.Context,
	chain *client.ChainClient,
	owner, mint, sourceAccount solana.PublicKey,
	toAddress string,
	rawAmount uint64,
	decimals uint8,
) (*solana.Transaction, error) {
	toPubkey, _ := solana.PublicKeyFromBase58(toAddress)

	destAccount, _, err := solana.FindAssociatedTokenAddress(toPubkey, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to find destination token account: %w", err)
	}

	destExists, err := chain.AccountExists(ctx, destAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to check destination account: %w", err)
	}

	blockhash, err := chain.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	transferInstruction := token.NewTransferCheckedInstruction(
		rawAmount,
		decimals,
		sourceAccount,
		mint,
		destAccount,
		owner,
		[]solana.PublicKey{},
	).Build()

	instructions := []solana.Instruction{transferInstruction}
	if !destExists {
		instructions = []solana.Instruction{
			associatedtokenaccount.NewCreateInstruction(
				owner,    // payer
				toPubkey, // owner
				mint,     // mint
			).Build(),
			transferInstruction,
		}
	}

	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(owner),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

type submission struct {
	kind    string
	cluster model.Cluster
	from    string
	to      string
	amount  string
	message string
	warning string
}

// confirmAndSubmit serializes the unsigned transaction, suspends on the
// confirmation collaborator, and only after approval signs and submits.
// Rejection returns ErrUserRejected with no state mutation and no
// dispatch.
func (s *Service) confirmAndSubmit(ctx context.Context, chain *client.ChainClient, password []byte, tx *solana.Transaction, sub submission) (string, error) {
	payload, err := tx.Message.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}

	approved, err := s.confirmer.Confirm(ctx, confirm.Request{
		Kind:    sub.kind,
		Payload: payload,
		Message: sub.message,
		Warning: sub.warning,
	})
	if err != nil {
		return "", fmt.Errorf("confirmation failed: %w", err)
	}
	if !approved {
		return "", ErrUserRejected
	}

	s.store.Begin(OpSubmitTx)

	sig, err := s.signAndSubmit(ctx, chain, password, tx, sub.from)
	if err != nil {
		s.store.Reject(OpSubmitTx, err)
		return "", err
	}

	s.store.Fulfill(OpSubmitTx)
	s.store.AppendSubmitted(model.SubmittedTransaction{
		Signature: sig,
		Cluster:   sub.cluster,
		Kind:      sub.kind,
		From:      sub.from,
		To:        sub.to,
		Amount:    sub.amount,
		Timestamp: time.Now(),
	})
	s.markPaid()

	return sig, nil
}

func (s *Service) signAndSubmit(ctx context.Context, chain *client.ChainClient, password []byte, tx *solana.Transaction, from string) (string, error) {
	_, walletData, err := keystore.DecryptKeyFile(s.filePath, password)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	// Always clear private key from memory
	defer clear(walletData.PrivateKey)

	// We store the full 64-byte key
	if len(walletData.PrivateKey) != 64 {
		return "", errors.New("invalid private key length")
	}

	signer := solana.PrivateKey(walletData.PrivateKey)

	fromPubkey, err := solana.PublicKeyFromBase58(from)
	if err != nil {
		return "", fmt.Errorf("invalid address: %w", err)
	}
	if !signer.PublicKey().Equals(fromPubkey) {
		return "", errors.New("private key does not match address")
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if signer.PublicKey().Equals(key) {
			return &signer
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := chain.SubmitTransaction(ctx, tx)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}
