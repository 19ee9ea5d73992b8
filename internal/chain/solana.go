package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wnt/guiverse/internal/metrics"
	"golang.org/x/time/rate"
)

// ErrNoEndpoints is returned when no RPC endpoint is configured
var ErrNoEndpoints = errors.New("no RPC endpoints configured")

// SolanaClient confirms game transactions against a Solana cluster. The $GUI balance
// itself stays off-chain; a confirmed transaction carries the blockhash and slot it
// was anchored to.
type SolanaClient struct {
	clients         []*rpc.Client
	endpoints       []string
	wallet          solana.PublicKey
	startingBalance int64
	limiter         *rate.Limiter
	logger          zerolog.Logger
	now             func() time.Time

	mu      sync.Mutex
	current int
}

// NewSolanaClient creates a client over one or more RPC endpoints, used round-robin
func NewSolanaClient(endpoints []string, walletAddress string, startingBalance int64, requestsPerSecond float64, logger zerolog.Logger) (*SolanaClient, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	wallet, err := solana.PublicKeyFromBase58(walletAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet address %q: %w", walletAddress, err)
	}

	clients := make([]*rpc.Client, len(endpoints))
	for i, endpoint := range endpoints {
		clients[i] = rpc.New(endpoint)
	}

	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &SolanaClient{
		clients:         clients,
		endpoints:       endpoints,
		wallet:          wallet,
		startingBalance: startingBalance,
		limiter:         rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:          logger.With().Str("component", "chain_solana").Logger(),
		now:             time.Now,
	}, nil
}

// next returns the next RPC client using round-robin
func (c *SolanaClient) next() (*rpc.Client, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.current
	c.current = (c.current + 1) % len(c.clients)
	return c.clients[i], c.endpoints[i]
}

// Connect checks that the configured wallet is reachable and opens it at the starting balance
func (c *SolanaClient) Connect(ctx context.Context) (Account, error) {
	lamports, err := c.lamports(ctx, c.wallet)
	if err != nil {
		return Account{}, fmt.Errorf("failed to connect wallet %s: %w", c.wallet, err)
	}

	c.logger.Info().
		Str("wallet", c.wallet.String()).
		Uint64("lamports", lamports).
		Msg("Wallet connected")

	return Account{Address: c.wallet.String(), Balance: c.startingBalance}, nil
}

// GetBalance returns the on-chain lamport balance of address
func (c *SolanaClient) GetBalance(ctx context.Context, address string) (int64, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", address, err)
	}

	lamports, err := c.lamports(ctx, pubkey)
	if err != nil {
		return 0, err
	}
	return int64(lamports), nil
}

// Submit anchors the call to the latest finalized blockhash
func (c *SolanaClient) Submit(ctx context.Context, call Call) (Receipt, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Receipt{}, err
	}

	client, endpoint := c.next()
	result, err := client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	metrics.RecordChainRequest("submit", metrics.Status(err))
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to get latest blockhash from %s: %w", endpoint, err)
	}
	if result == nil || result.Value == nil {
		return Receipt{}, fmt.Errorf("empty blockhash response from %s: %w", endpoint, ErrRejected)
	}

	receipt := Receipt{
		ID:          uuid.NewString(),
		Kind:        call.Kind,
		Ref:         result.Value.Blockhash.String(),
		Slot:        result.Context.Slot,
		SubmittedAt: c.now().UTC(),
	}

	c.logger.Debug().
		Str("kind", string(call.Kind)).
		Str("receipt", receipt.ID).
		Str("blockhash", receipt.Ref).
		Uint64("slot", receipt.Slot).
		Str("rpc_endpoint", endpoint).
		Msg("Transaction confirmed")

	return receipt, nil
}

func (c *SolanaClient) lamports(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	client, endpoint := c.next()
	result, err := client.GetBalance(ctx, pubkey, rpc.CommitmentFinalized)
	metrics.RecordChainRequest("get_balance", metrics.Status(err))
	if err != nil {
		return 0, fmt.Errorf("failed to get balance from %s: %w", endpoint, err)
	}
	return result.Value, nil
}
