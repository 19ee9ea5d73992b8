// Package ledger owns the $GUI balance. A single goroutine applies every credit and
// debit in arrival order, so funds are checked when a command is processed rather than
// when it was requested.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wnt/guiverse/internal/metrics"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds the balance at processing time
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountClosed is returned for every command but open and close while no wallet is open
	ErrAccountClosed = errors.New("account is closed")
	// ErrInvalidAmount is returned for non-positive credits and debits
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrStopped is returned once the ledger loop has exited
	ErrStopped = errors.New("ledger is not running")
)

// Store persists the balance after every settled command
type Store interface {
	SaveBalance(ctx context.Context, balance int64) error
	ClearBalance(ctx context.Context) error
}

type op int

const (
	opOpen op = iota
	opClose
	opCredit
	opDebit
	opBalance
)

func (o op) String() string {
	switch o {
	case opOpen:
		return "open"
	case opClose:
		return "close"
	case opCredit:
		return "credit"
	case opDebit:
		return "debit"
	case opBalance:
		return "balance"
	default:
		return "unknown"
	}
}

type command struct {
	ctx    context.Context
	op     op
	amount int64
	reply  chan reply
}

type reply struct {
	balance int64
	err     error
}

// Ledger is the single authoritative owner of the wallet balance
type Ledger struct {
	cmds   chan command
	done   chan struct{}
	store  Store
	logger zerolog.Logger

	// owned by the Run goroutine
	open    bool
	balance int64
}

// New creates a ledger. Nothing is processed until Run is called.
func New(store Store, logger zerolog.Logger) *Ledger {
	if store == nil {
		store = nopStore{}
	}
	return &Ledger{
		cmds:   make(chan command),
		done:   make(chan struct{}),
		store:  store,
		logger: logger.With().Str("component", "ledger").Logger(),
	}
}

// Run processes commands until ctx is cancelled. It must be called exactly once.
func (l *Ledger) Run(ctx context.Context) error {
	defer close(l.done)

	l.logger.Info().Msg("Ledger started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info().Msg("Ledger stopped")
			return ctx.Err()
		case cmd := <-l.cmds:
			balance, err := l.apply(cmd)
			metrics.RecordLedgerCommand(cmd.op.String(), metrics.Status(err))
			cmd.reply <- reply{balance: balance, err: err}
		}
	}
}

// Done is closed when Run returns
func (l *Ledger) Done() <-chan struct{} {
	return l.done
}

// Open starts a wallet session at the given balance, replacing any previous one
func (l *Ledger) Open(ctx context.Context, balance int64) (int64, error) {
	if balance < 0 {
		return 0, fmt.Errorf("open with balance %d: %w", balance, ErrInvalidAmount)
	}
	return l.send(ctx, opOpen, balance)
}

// Close ends the wallet session, zeroing and clearing the persisted balance
func (l *Ledger) Close(ctx context.Context) error {
	_, err := l.send(ctx, opClose, 0)
	return err
}

// Credit adds amount and returns the new balance
func (l *Ledger) Credit(ctx context.Context, amount int64) (int64, error) {
	return l.send(ctx, opCredit, amount)
}

// Debit removes amount if the balance covers it and returns the new balance
func (l *Ledger) Debit(ctx context.Context, amount int64) (int64, error) {
	return l.send(ctx, opDebit, amount)
}

// Balance returns the balance as of every command received before it.
// It fails with ErrAccountClosed while no wallet is open.
func (l *Ledger) Balance(ctx context.Context) (int64, error) {
	return l.send(ctx, opBalance, 0)
}

func (l *Ledger) send(ctx context.Context, o op, amount int64) (int64, error) {
	cmd := command{ctx: ctx, op: o, amount: amount, reply: make(chan reply, 1)}

	select {
	case l.cmds <- cmd:
	case <-l.done:
		return 0, ErrStopped
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	// Run replies right after receiving, the buffered channel never blocks it
	r := <-cmd.reply
	return r.balance, r.err
}

func (l *Ledger) apply(cmd command) (int64, error) {
	// A caller that gave up before its turn settles nothing
	if err := cmd.ctx.Err(); err != nil {
		return l.balance, err
	}

	switch cmd.op {
	case opOpen:
		l.open = true
		l.balance = cmd.amount
		l.persist(cmd.ctx)
		l.logger.Debug().Int64("balance", l.balance).Msg("Wallet opened")

	case opClose:
		l.open = false
		l.balance = 0
		metrics.SetBalance(0)
		if err := l.store.ClearBalance(cmd.ctx); err != nil {
			l.logger.Warn().Err(err).Msg("Failed to clear persisted balance")
		}
		l.logger.Debug().Msg("Wallet closed")

	case opCredit:
		if !l.open {
			return l.balance, ErrAccountClosed
		}
		if cmd.amount <= 0 {
			return l.balance, fmt.Errorf("credit %d: %w", cmd.amount, ErrInvalidAmount)
		}
		l.balance += cmd.amount
		l.persist(cmd.ctx)
		l.logger.Debug().Int64("amount", cmd.amount).Int64("balance", l.balance).Msg("Credited")

	case opDebit:
		if !l.open {
			return l.balance, ErrAccountClosed
		}
		if cmd.amount <= 0 {
			return l.balance, fmt.Errorf("debit %d: %w", cmd.amount, ErrInvalidAmount)
		}
		if l.balance < cmd.amount {
			return l.balance, fmt.Errorf("debit %d from %d: %w", cmd.amount, l.balance, ErrInsufficientFunds)
		}
		l.balance -= cmd.amount
		l.persist(cmd.ctx)
		l.logger.Debug().Int64("amount", cmd.amount).Int64("balance", l.balance).Msg("Debited")

	case opBalance:
		if !l.open {
			return 0, ErrAccountClosed
		}
	}

	return l.balance, nil
}

// persist writes the balance. Storage mirrors the ledger, a failed write is not fatal.
func (l *Ledger) persist(ctx context.Context) {
	metrics.SetBalance(l.balance)
	if err := l.store.SaveBalance(ctx, l.balance); err != nil {
		l.logger.Warn().Err(err).Int64("balance", l.balance).Msg("Failed to persist balance")
	}
}

type nopStore struct{}

func (nopStore) SaveBalance(context.Context, int64) error { return nil }
func (nopStore) ClearBalance(context.Context) error       { return nil }
