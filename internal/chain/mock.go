package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wnt/guiverse/internal/metrics"
)

// Mock wallet returned by MockClient.Connect
const (
	MockAccount = "0x1234567890abcdef1234567890abcdef12345678"
	MockBalance = 12847
)

// DefaultConnectLatency is the connect delay of the browser client
const DefaultConnectLatency = time.Second

// per-kind delays of the browser client
var defaultLatency = map[Kind]time.Duration{
	KindMint:     3 * time.Second,
	KindTrain:    2 * time.Second,
	KindBattle:   4 * time.Second,
	KindPurchase: 2 * time.Second,
	KindTip:      2 * time.Second,
	KindClaim:    2 * time.Second,
}

// MockClient simulates the wallet with fixed latencies and injectable failures
type MockClient struct {
	account        Account
	connectLatency time.Duration
	latency        map[Kind]time.Duration
	logger         zerolog.Logger
	now            func() time.Time

	mu         sync.Mutex
	connectErr error
	failures   map[Kind][]error
	submitted  []Call
}

// MockOption configures a MockClient
type MockOption func(*MockClient)

// WithMockAccount overrides the connected account
func WithMockAccount(address string, balance int64) MockOption {
	return func(c *MockClient) {
		c.account = Account{Address: address, Balance: balance}
	}
}

// WithLatency sets the latency of one transaction kind
func WithLatency(kind Kind, d time.Duration) MockOption {
	return func(c *MockClient) {
		c.latency[kind] = d
	}
}

// WithoutLatency makes every call return immediately
func WithoutLatency() MockOption {
	return func(c *MockClient) {
		c.connectLatency = 0
		for kind := range c.latency {
			c.latency[kind] = 0
		}
	}
}

// WithMockLogger sets the logger
func WithMockLogger(logger zerolog.Logger) MockOption {
	return func(c *MockClient) {
		c.logger = logger.With().Str("component", "chain_mock").Logger()
	}
}

// NewMockClient creates a mock client with the browser client's account and latencies
func NewMockClient(options ...MockOption) *MockClient {
	latency := make(map[Kind]time.Duration, len(defaultLatency))
	for kind, d := range defaultLatency {
		latency[kind] = d
	}

	c := &MockClient{
		account:        Account{Address: MockAccount, Balance: MockBalance},
		connectLatency: DefaultConnectLatency,
		latency:        latency,
		logger:         zerolog.Nop(),
		now:            time.Now,
		failures:       make(map[Kind][]error),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// FailConnect makes every Connect fail with err until cleared with nil
func (c *MockClient) FailConnect(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connectErr = err
}

// FailNext makes the next Submit of kind fail with err
func (c *MockClient) FailNext(kind Kind, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[kind] = append(c.failures[kind], err)
}

// Submitted returns the calls that were confirmed
func (c *MockClient) Submitted() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.submitted...)
}

func (c *MockClient) Connect(ctx context.Context) (Account, error) {
	if err := wait(ctx, c.connectLatency); err != nil {
		metrics.RecordChainRequest("connect", "failed")
		return Account{}, err
	}

	c.mu.Lock()
	err := c.connectErr
	c.mu.Unlock()

	metrics.RecordChainRequest("connect", metrics.Status(err))
	if err != nil {
		return Account{}, fmt.Errorf("mock connect: %w", err)
	}

	c.logger.Debug().Str("account", c.account.Address).Msg("Mock wallet connected")
	return c.account, nil
}

func (c *MockClient) GetBalance(_ context.Context, address string) (int64, error) {
	metrics.RecordChainRequest("get_balance", "success")
	if address != c.account.Address {
		return 0, nil
	}
	return c.account.Balance, nil
}

func (c *MockClient) Submit(ctx context.Context, call Call) (Receipt, error) {
	if err := wait(ctx, c.latency[call.Kind]); err != nil {
		metrics.RecordChainRequest("submit", "failed")
		return Receipt{}, err
	}

	c.mu.Lock()
	var err error
	if queued := c.failures[call.Kind]; len(queued) > 0 {
		err = queued[0]
		c.failures[call.Kind] = queued[1:]
	} else {
		c.submitted = append(c.submitted, call)
	}
	c.mu.Unlock()

	metrics.RecordChainRequest("submit", metrics.Status(err))
	if err != nil {
		return Receipt{}, fmt.Errorf("mock %s: %w", call.Kind, err)
	}

	receipt := Receipt{
		ID:          uuid.NewString(),
		Kind:        call.Kind,
		SubmittedAt: c.now().UTC(),
	}

	c.logger.Debug().
		Str("kind", string(call.Kind)).
		Str("receipt", receipt.ID).
		Msg("Mock transaction confirmed")

	return receipt, nil
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
