package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wnt/guiverse/internal/chain"
	"github.com/wnt/guiverse/internal/logger"
	"github.com/wnt/guiverse/internal/metrics"
)

// Wallet reports the connected account, if any
type Wallet interface {
	Account() (string, bool)
}

// BalanceMonitor periodically reads the connected wallet's balance from the chain
type BalanceMonitor struct {
	wallet   Wallet
	chain    chain.Client
	interval time.Duration
	logger   zerolog.Logger
}

// NewBalanceMonitor creates a monitor polling every interval
func NewBalanceMonitor(wallet Wallet, client chain.Client, interval time.Duration, baseLogger zerolog.Logger) *BalanceMonitor {
	return &BalanceMonitor{
		wallet:   wallet,
		chain:    client,
		interval: interval,
		logger:   baseLogger.With().Str("component", "balance_monitor").Logger(),
	}
}

// Run polls until ctx is done. Failed reads are logged and retried next tick.
func (m *BalanceMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, _, err := m.Check(ctx); err != nil {
				m.logger.Warn().Err(err).Msg("Failed to read chain balance")
			}
		}
	}
}

// Check reads the balance once. ok is false when no wallet is connected.
func (m *BalanceMonitor) Check(ctx context.Context) (balance int64, ok bool, err error) {
	account, connected := m.wallet.Account()
	if !connected {
		return 0, false, nil
	}

	balance, err = m.chain.GetBalance(ctx, account)
	if err != nil {
		return 0, true, err
	}

	metrics.SetChainBalance(balance)
	log := logger.WithAccount(m.logger, account)
	log.Debug().Int64("chain_balance", balance).Msg("Chain balance")
	return balance, true, nil
}
