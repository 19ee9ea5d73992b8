package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wnt/guiverse/internal/chain"
	"github.com/wnt/guiverse/internal/ledger"
	"github.com/wnt/guiverse/internal/logger"
	"github.com/wnt/guiverse/internal/metrics"
	"github.com/wnt/guiverse/internal/models"
	"github.com/wnt/guiverse/internal/storage"
)

// Deps are the collaborators of a Game
type Deps struct {
	Chain   chain.Client
	Ledger  *ledger.Ledger
	Session *storage.Session
	Pets    Collection
	Rand    Rand
	Logger  zerolog.Logger
}

// Game is the wallet and pet state store. The ledger owns the balance; Game
// owns the connection state and sequences chain calls with settlement.
type Game struct {
	chain   chain.Client
	ledger  *ledger.Ledger
	session *storage.Session
	pets    Collection
	logger  zerolog.Logger

	rngMu sync.Mutex
	rng   Rand

	mu      sync.RWMutex
	state   State
	account string
	pending map[Action]int
}

// New creates a disconnected Game. Missing session, collection and rng get
// in-memory defaults.
func New(deps Deps) *Game {
	if deps.Session == nil {
		deps.Session = storage.NewSession(storage.NewMemory())
	}
	if deps.Pets == nil {
		deps.Pets = NewMemoryCollection(models.SeedPets())
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Game{
		chain:   deps.Chain,
		ledger:  deps.Ledger,
		session: deps.Session,
		pets:    deps.Pets,
		rng:     deps.Rand,
		logger:  deps.Logger.With().Str("component", "game").Logger(),
		state:   StateDisconnected,
		pending: make(map[Action]int),
	}
}

// Restore reconnects from a persisted session without contacting the wallet.
// It reports whether a session was found.
func (g *Game) Restore(ctx context.Context) (bool, error) {
	account, balance, ok, err := g.session.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		g.logger.Info().Msg("No stored wallet session")
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.ledger.Open(ctx, balance); err != nil {
		return false, fmt.Errorf("open ledger: %w", err)
	}
	g.state = StateConnected
	g.account = account

	log := logger.WithAccount(g.logger, account)
	log.Info().
		Int64("balance", balance).
		Msg("Wallet session restored")
	return true, nil
}

// Snapshot returns the current observable state
func (g *Game) Snapshot(ctx context.Context) (Snapshot, error) {
	g.mu.RLock()
	snap := Snapshot{
		State:     g.state,
		Connected: g.state == StateConnected,
		Account:   g.account,
		Pending:   make(map[Action]int, len(g.pending)),
	}
	for action, n := range g.pending {
		if n > 0 {
			snap.Pending[action] = n
		}
	}
	g.mu.RUnlock()

	snap.Loading = len(snap.Pending) > 0 || snap.State == StateConnecting

	if snap.Connected {
		balance, err := g.ledger.Balance(ctx)
		if err != nil && !errors.Is(err, ledger.ErrAccountClosed) {
			return Snapshot{}, fmt.Errorf("read balance: %w", err)
		}
		snap.Balance = balance
	}

	pets, err := g.pets.Pets(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list pets: %w", err)
	}
	items, err := g.pets.Inventory(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list inventory: %w", err)
	}
	snap.Pets = pets
	snap.Inventory = items
	return snap, nil
}

// Connect requests the wallet. Connecting an already connected wallet returns
// the current account.
func (g *Game) Connect(ctx context.Context) (Result, error) {
	start := time.Now()

	g.mu.Lock()
	switch g.state {
	case StateConnected:
		account := g.account
		g.mu.Unlock()
		balance, err := g.ledger.Balance(ctx)
		if err != nil {
			return Result{Action: ActionConnect}, g.settleErr(err)
		}
		return Result{Action: ActionConnect, Account: account, Balance: balance}, nil
	case StateConnecting:
		g.mu.Unlock()
		g.record(ActionConnect, start, ErrConnectInProgress)
		return Result{Action: ActionConnect}, ErrConnectInProgress
	}
	g.state = StateConnecting
	g.pending[ActionConnect]++
	metrics.SetPending(string(ActionConnect), g.pending[ActionConnect])
	g.mu.Unlock()

	result, err := g.connect(ctx)

	g.mu.Lock()
	g.pending[ActionConnect]--
	metrics.SetPending(string(ActionConnect), g.pending[ActionConnect])
	g.mu.Unlock()

	g.record(ActionConnect, start, err)
	return result, err
}

func (g *Game) connect(ctx context.Context) (Result, error) {
	fail := func(err error) (Result, error) {
		g.mu.Lock()
		if g.state == StateConnecting {
			g.state = StateDisconnected
		}
		g.mu.Unlock()
		g.logger.Error().Err(err).Msg("Wallet connection failed")
		return Result{Action: ActionConnect}, err
	}

	account, err := g.chain.Connect(ctx)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrOperationFailed, err))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Disconnect won the race
	if g.state != StateConnecting {
		return Result{Action: ActionConnect}, fmt.Errorf("%w: connection abandoned", ErrOperationFailed)
	}

	balance, err := g.ledger.Open(ctx, account.Balance)
	if err != nil {
		g.state = StateDisconnected
		return Result{Action: ActionConnect}, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
	if err := g.session.SaveAccount(ctx, account.Address); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to persist account")
	}
	g.state = StateConnected
	g.account = account.Address

	log := logger.WithAccount(g.logger, account.Address)
	log.Info().
		Int64("balance", balance).
		Msg("Wallet connected")

	return Result{Action: ActionConnect, Account: account.Address, Balance: balance}, nil
}

// Disconnect clears the account, closes the ledger and removes the stored
// session. It always succeeds; cleanup failures are logged. Pets and
// inventory are kept.
func (g *Game) Disconnect(ctx context.Context) (Result, error) {
	start := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	account := g.account
	wasOpen := g.state == StateConnected
	g.state = StateDisconnected
	g.account = ""

	// cleanup runs even when the caller has given up
	cleanupCtx := context.WithoutCancel(ctx)

	var err error
	if wasOpen {
		if cerr := g.ledger.Close(cleanupCtx); cerr != nil && !errors.Is(cerr, ledger.ErrAccountClosed) {
			err = fmt.Errorf("close ledger: %w", cerr)
		}
	}
	if cerr := g.session.ClearAccount(cleanupCtx); cerr != nil {
		err = errors.Join(err, fmt.Errorf("clear account: %w", cerr))
	}
	if cerr := g.session.ClearBalance(cleanupCtx); cerr != nil {
		err = errors.Join(err, fmt.Errorf("clear balance: %w", cerr))
	}

	// the wallet is disconnected even when cleanup fails
	log := logger.WithAccount(g.logger, account)
	if err != nil {
		log.Warn().Err(err).Msg("Wallet session cleanup incomplete")
	}
	g.record(ActionDisconnect, start, nil)

	log.Info().Msg("Wallet disconnected")
	return Result{Action: ActionDisconnect, Account: account}, nil
}

// Account returns the account when a wallet is connected
func (g *Game) Account() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.account, g.state == StateConnected
}

func (g *Game) begin(action Action) {
	g.mu.Lock()
	g.pending[action]++
	metrics.SetPending(string(action), g.pending[action])
	g.mu.Unlock()
}

func (g *Game) end(action Action) {
	g.mu.Lock()
	g.pending[action]--
	metrics.SetPending(string(action), g.pending[action])
	g.mu.Unlock()
}

func (g *Game) record(action Action, start time.Time, err error) {
	metrics.RecordAction(string(action), status(err), time.Since(start).Seconds())
}

func (g *Game) roll() BattleOutcome {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return RollBattle(g.rng)
}

// settleErr maps ledger errors to store errors
func (g *Game) settleErr(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
	case errors.Is(err, ledger.ErrAccountClosed):
		return fmt.Errorf("%w: %w", ErrNotConnected, err)
	default:
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
}
