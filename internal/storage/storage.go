// Package storage keeps the wallet session as two string entries, the way the browser
// client kept them in local storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/wnt/guiverse/internal/metrics"
)

// Wallet entry keys
const (
	AccountKey = "walletAccount"
	BalanceKey = "walletBalance"
)

// ErrNotFound is returned by Get when the key has no value
var ErrNotFound = errors.New("key not found")

// Store is a string key-value store
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Memory is an in-process Store
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// Session reads and writes the wallet entries on top of a Store
type Session struct {
	store Store
}

// NewSession wraps a store
func NewSession(store Store) *Session {
	return &Session{store: store}
}

// SaveBalance writes the balance as a decimal string
func (s *Session) SaveBalance(ctx context.Context, balance int64) error {
	err := s.store.Set(ctx, BalanceKey, strconv.FormatInt(balance, 10))
	metrics.RecordStorageOperation("save_balance", metrics.Status(err))
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	return nil
}

// ClearBalance removes the balance entry
func (s *Session) ClearBalance(ctx context.Context) error {
	err := s.store.Delete(ctx, BalanceKey)
	metrics.RecordStorageOperation("clear_balance", metrics.Status(err))
	if err != nil {
		return fmt.Errorf("failed to clear balance: %w", err)
	}
	return nil
}

// SaveAccount writes the account entry
func (s *Session) SaveAccount(ctx context.Context, account string) error {
	err := s.store.Set(ctx, AccountKey, account)
	metrics.RecordStorageOperation("save_account", metrics.Status(err))
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// ClearAccount removes the account entry
func (s *Session) ClearAccount(ctx context.Context) error {
	err := s.store.Delete(ctx, AccountKey)
	metrics.RecordStorageOperation("clear_account", metrics.Status(err))
	if err != nil {
		return fmt.Errorf("failed to clear account: %w", err)
	}
	return nil
}

// Load returns the saved session. ok is false unless both entries exist and the balance parses.
func (s *Session) Load(ctx context.Context) (account string, balance int64, ok bool, err error) {
	account, err = s.store.Get(ctx, AccountKey)
	if errors.Is(err, ErrNotFound) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("failed to load account: %w", err)
	}

	raw, err := s.store.Get(ctx, BalanceKey)
	if errors.Is(err, ErrNotFound) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("failed to load balance: %w", err)
	}

	balance, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || balance < 0 || account == "" {
		return "", 0, false, nil
	}

	return account, balance, true, nil
}
