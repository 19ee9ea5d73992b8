package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wnt/guiverse/internal/chain"
	"github.com/wnt/guiverse/internal/ledger"
	"github.com/wnt/guiverse/internal/models"
	"github.com/wnt/guiverse/internal/storage"
)

// fixedRand replays Float64 and Intn values
type fixedRand struct {
	float float64
	intn  int
}

func (r fixedRand) Float64() float64 { return r.float }
func (r fixedRand) Intn(n int) int {
	if r.intn >= n {
		return n - 1
	}
	return r.intn
}

type harness struct {
	game    *Game
	chain   *chain.MockClient
	store   *storage.Memory
	session *storage.Session
	ledger  *ledger.Ledger
	pets    *MemoryCollection
}

func newHarness(t *testing.T, balance int64, rng Rand, options ...chain.MockOption) *harness {
	t.Helper()

	store := storage.NewMemory()
	session := storage.NewSession(store)
	l := ledger.New(session, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})

	options = append([]chain.MockOption{chain.WithoutLatency(), chain.WithMockAccount(chain.MockAccount, balance)}, options...)
	client := chain.NewMockClient(options...)
	pets := NewMemoryCollection(models.SeedPets())

	return &harness{
		game: New(Deps{
			Chain:   client,
			Ledger:  l,
			Session: session,
			Pets:    pets,
			Rand:    rng,
			Logger:  zerolog.Nop(),
		}),
		chain:   client,
		store:   store,
		session: session,
		ledger:  l,
		pets:    pets,
	}
}

func (h *harness) connect(t *testing.T) {
	t.Helper()
	_, err := h.game.Connect(context.Background())
	require.NoError(t, err)
}

func (h *harness) balance(t *testing.T) int64 {
	t.Helper()
	snap, err := h.game.Snapshot(context.Background())
	require.NoError(t, err)
	return snap.Balance
}

func TestConnect(t *testing.T) {
	h := newHarness(t, chain.MockBalance, nil)
	ctx := context.Background()

	snap, err := h.game.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateDisconnected, snap.State)
	assert.False(t, snap.Connected)
	assert.Len(t, snap.Pets, 2)

	result, err := h.game.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, ActionConnect, result.Action)
	assert.Equal(t, chain.MockAccount, result.Account)
	assert.Equal(t, int64(chain.MockBalance), result.Balance)

	account, err := h.store.Get(ctx, storage.AccountKey)
	require.NoError(t, err)
	assert.Equal(t, chain.MockAccount, account)
	stored, err := h.store.Get(ctx, storage.BalanceKey)
	require.NoError(t, err)
	assert.Equal(t, "12847", stored)

	// connecting again keeps the session
	result, err = h.game.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, chain.MockAccount, result.Account)
}

func TestConnectFailure(t *testing.T) {
	h := newHarness(t, 100, nil)
	h.chain.FailConnect(errors.New("user rejected"))

	_, err := h.game.Connect(context.Background())
	assert.ErrorIs(t, err, ErrOperationFailed)

	snap, err := h.game.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDisconnected, snap.State)
	assert.False(t, snap.Loading)
}

func TestDisconnectClearsSession(t *testing.T) {
	h := newHarness(t, 500, nil)
	ctx := context.Background()
	h.connect(t)

	result, err := h.game.Disconnect(ctx)
	require.NoError(t, err)
	assert.Equal(t, chain.MockAccount, result.Account)

	_, err = h.store.Get(ctx, storage.AccountKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = h.store.Get(ctx, storage.BalanceKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	snap, err := h.game.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Connected)
	assert.Empty(t, snap.Account)
	assert.Zero(t, snap.Balance)
	assert.Len(t, snap.Pets, 2)

	_, err = h.game.ClaimRewards(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRestore(t *testing.T) {
	h := newHarness(t, 0, nil)
	ctx := context.Background()

	ok, err := h.game.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, h.session.SaveAccount(ctx, "0xabc"))
	require.NoError(t, h.session.SaveBalance(ctx, 321))

	ok, err = h.game.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	snap, err := h.game.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Connected)
	assert.Equal(t, "0xabc", snap.Account)
	assert.Equal(t, int64(321), snap.Balance)
	assert.Empty(t, h.chain.Submitted())
}

func TestActionsRequireConnection(t *testing.T) {
	h := newHarness(t, 1000, nil)
	ctx := context.Background()

	calls := map[Action]func() (Result, error){
		ActionMint:     func() (Result, error) { return h.game.MintPet(ctx, "Rex", "Dragon") },
		ActionTrain:    func() (Result, error) { return h.game.TrainPet(ctx, 1, "Strength") },
		ActionBattle:   func() (Result, error) { return h.game.BattlePet(ctx, 1) },
		ActionPurchase: func() (Result, error) { return h.game.PurchaseItem(ctx, "Potion", 10) },
		ActionTip:      func() (Result, error) { return h.game.TipUser(ctx, "0xfriend", 10, "hi") },
		ActionClaim:    func() (Result, error) { return h.game.ClaimRewards(ctx) },
	}

	for action, call := range calls {
		t.Run(string(action), func(t *testing.T) {
			result, err := call()
			assert.ErrorIs(t, err, ErrNotConnected)
			assert.Equal(t, action, result.Action)
		})
	}
	assert.Empty(t, h.chain.Submitted())
}

func TestMintPet(t *testing.T) {
	h := newHarness(t, 250, nil)
	ctx := context.Background()
	h.connect(t)

	result, err := h.game.MintPet(ctx, "Rex", "Dragon")
	require.NoError(t, err)
	assert.Equal(t, int64(150), result.Balance)
	require.NotNil(t, result.Pet)
	assert.Equal(t, 3, result.Pet.ID)
	assert.Equal(t, 1, result.Pet.Level)
	assert.Equal(t, models.RarityCommon, result.Pet.Rarity)
	assert.Equal(t, []string{"Newborn", "Fresh"}, result.Pet.Traits)
	assert.Equal(t, 100, result.Pet.Health)
	require.NotNil(t, result.Receipt)

	stored, err := h.store.Get(ctx, storage.BalanceKey)
	require.NoError(t, err)
	assert.Equal(t, "150", stored)

	_, err = h.game.MintPet(ctx, " ", "Dragon")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMintPetInsufficientBalance(t *testing.T) {
	h := newHarness(t, 40, nil)
	ctx := context.Background()
	h.connect(t)

	_, err := h.game.MintPet(ctx, "Rex", "Dragon")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	snap, err := h.game.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(40), snap.Balance)
	assert.Len(t, snap.Pets, 2)
	assert.Empty(t, h.chain.Submitted())
}

func TestMintPetChainFailure(t *testing.T) {
	h := newHarness(t, 500, nil)
	ctx := context.Background()
	h.connect(t)
	h.chain.FailNext(chain.KindMint, errors.New("reverted"))

	_, err := h.game.MintPet(ctx, "Rex", "Dragon")
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Equal(t, int64(500), h.balance(t))

	pets, err := h.pets.Pets(ctx)
	require.NoError(t, err)
	assert.Len(t, pets, 2)
}

func TestTrainPet(t *testing.T) {
	h := newHarness(t, 60, nil)
	ctx := context.Background()
	h.connect(t)

	result, err := h.game.TrainPet(ctx, 1, "Strength Training")
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.Balance)
	assert.Equal(t, "Strength Training", result.Training)
	require.NotNil(t, result.Pet)
	assert.Equal(t, 13, result.Pet.Level)
	assert.Equal(t, 90, result.Pet.Health)
	assert.Equal(t, 97, result.Pet.Energy)
	assert.Equal(t, 83, result.Pet.Happiness)

	_, err = h.game.TrainPet(ctx, 1, "Strength Training")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(10), h.balance(t))
}

func TestTrainPetCapsStats(t *testing.T) {
	h := newHarness(t, 1000, nil)
	ctx := context.Background()
	h.connect(t)

	for i := 0; i < 5; i++ {
		_, err := h.game.TrainPet(ctx, 2, "Speed")
		require.NoError(t, err)
	}

	pet, err := h.pets.Pet(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 13, pet.Level)
	assert.Equal(t, 100, pet.Health)
	assert.Equal(t, 92, pet.Energy)
	assert.Equal(t, 100, pet.Happiness)
}

func TestPetNotFound(t *testing.T) {
	h := newHarness(t, 1000, nil)
	ctx := context.Background()
	h.connect(t)

	_, err := h.game.TrainPet(ctx, 99, "Speed")
	assert.ErrorIs(t, err, ErrPetNotFound)
	_, err = h.game.BattlePet(ctx, 99)
	assert.ErrorIs(t, err, ErrPetNotFound)

	assert.Equal(t, int64(1000), h.balance(t))
	assert.Empty(t, h.chain.Submitted())
}

func TestBattlePet(t *testing.T) {
	t.Run("win", func(t *testing.T) {
		h := newHarness(t, 100, fixedRand{float: 0.9, intn: 70})
		h.connect(t)

		result, err := h.game.BattlePet(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, result.Battle)
		assert.True(t, result.Battle.Win)
		assert.Equal(t, int64(120), result.Battle.Reward)
		assert.Equal(t, int64(220), result.Balance)
		assert.Equal(t, 24, result.Pet.Wins)
		assert.Equal(t, 72, result.Pet.Energy)
	})

	t.Run("loss", func(t *testing.T) {
		h := newHarness(t, 100, fixedRand{float: 0.4})
		h.connect(t)

		result, err := h.game.BattlePet(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, result.Battle.Win)
		assert.Equal(t, int64(100), result.Balance)
		assert.Equal(t, 6, result.Pet.Losses)
		assert.Equal(t, 23, result.Pet.Wins)
	})

	t.Run("energy floors at zero", func(t *testing.T) {
		h := newHarness(t, 100, fixedRand{float: 0.1})
		h.connect(t)

		for i := 0; i < 6; i++ {
			_, err := h.game.BattlePet(context.Background(), 2)
			require.NoError(t, err)
		}
		pet, err := h.pets.Pet(context.Background(), 2)
		require.NoError(t, err)
		assert.Zero(t, pet.Energy)
		assert.Equal(t, 9, pet.Losses)
	})
}

func TestPurchaseAndTip(t *testing.T) {
	h := newHarness(t, 500, nil)
	ctx := context.Background()
	h.connect(t)

	result, err := h.game.PurchaseItem(ctx, "Energy Potion", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(475), result.Balance)
	assert.Equal(t, "Energy Potion", result.Item)

	result, err = h.game.TipUser(ctx, "0xfriend", 75, "gg")
	require.NoError(t, err)
	assert.Equal(t, int64(400), result.Balance)
	assert.Equal(t, "0xfriend", result.Recipient)

	_, err = h.game.TipUser(ctx, "", 10, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = h.game.PurchaseItem(ctx, "Free", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = h.game.TipUser(ctx, "0xfriend", 401, "")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	snap, err := h.game.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy Potion"}, snap.Inventory)
	assert.Equal(t, int64(400), snap.Balance)

	submitted := h.chain.Submitted()
	require.Len(t, submitted, 2)
	assert.Equal(t, chain.KindTip, submitted[1].Kind)
	assert.Equal(t, int64(75), submitted[1].Amount)
}

func TestClaimRewards(t *testing.T) {
	h := newHarness(t, 0, nil)
	h.connect(t)

	result, err := h.game.ClaimRewards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(DailyReward), result.Amount)
	assert.Equal(t, int64(247), result.Balance)
}

func TestConcurrentPurchasesNeverOverdraw(t *testing.T) {
	h := newHarness(t, 100, nil)
	ctx := context.Background()
	h.connect(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.game.PurchaseItem(ctx, "Armor", 80)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrInsufficientBalance)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	snap, err := h.game.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), snap.Balance)
	assert.Len(t, snap.Inventory, 1)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Pending)
}

func TestStatsStayInRange(t *testing.T) {
	h := newHarness(t, 100000, nil)
	ctx := context.Background()
	h.connect(t)

	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			_, err := h.game.TrainPet(ctx, 1, "Speed")
			require.NoError(t, err)
			continue
		}
		result, err := h.game.BattlePet(ctx, 1)
		require.NoError(t, err)
		if result.Battle.Win {
			assert.GreaterOrEqual(t, result.Battle.Reward, int64(50))
			assert.LessOrEqual(t, result.Battle.Reward, int64(199))
		}
	}

	pet, err := h.pets.Pet(ctx, 1)
	require.NoError(t, err)
	for _, v := range []int{pet.Health, pet.Energy, pet.Happiness} {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
}

func TestDisconnectWithCancelledContextClosesLedger(t *testing.T) {
	h := newHarness(t, 500, nil)
	h.connect(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.game.Disconnect(ctx)
	require.NoError(t, err)

	_, err = h.ledger.Credit(context.Background(), 10)
	assert.ErrorIs(t, err, ledger.ErrAccountClosed)
	_, err = h.store.Get(context.Background(), storage.BalanceKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDisconnectDuringPendingAction(t *testing.T) {
	const latency = 200 * time.Millisecond

	cases := []struct {
		action Action
		kind   chain.Kind
		rng    Rand
		call   func(ctx context.Context, g *Game) (Result, error)
	}{
		{ActionMint, chain.KindMint, nil, func(ctx context.Context, g *Game) (Result, error) {
			return g.MintPet(ctx, "Rex", "Neon Dragon")
		}},
		{ActionTrain, chain.KindTrain, nil, func(ctx context.Context, g *Game) (Result, error) {
			return g.TrainPet(ctx, 1, "Strength Training")
		}},
		{ActionBattle + "_win", chain.KindBattle, fixedRand{float: 0.9, intn: 70}, func(ctx context.Context, g *Game) (Result, error) {
			return g.BattlePet(ctx, 1)
		}},
		{ActionBattle + "_loss", chain.KindBattle, fixedRand{float: 0.1}, func(ctx context.Context, g *Game) (Result, error) {
			return g.BattlePet(ctx, 1)
		}},
		{ActionPurchase, chain.KindPurchase, nil, func(ctx context.Context, g *Game) (Result, error) {
			return g.PurchaseItem(ctx, "Power Potion", 25)
		}},
		{ActionTip, chain.KindTip, nil, func(ctx context.Context, g *Game) (Result, error) {
			return g.TipUser(ctx, "0xfriend", 10, "gg")
		}},
		{ActionClaim, chain.KindClaim, nil, func(ctx context.Context, g *Game) (Result, error) {
			return g.ClaimRewards(ctx)
		}},
	}

	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			h := newHarness(t, 1000, tc.rng, chain.WithLatency(tc.kind, latency))
			ctx := context.Background()
			h.connect(t)

			type outcome struct {
				result Result
				err    error
			}
			done := make(chan outcome, 1)
			go func() {
				result, err := tc.call(ctx, h.game)
				done <- outcome{result, err}
			}()

			require.Eventually(t, func() bool {
				snap, err := h.game.Snapshot(ctx)
				return err == nil && snap.Loading
			}, time.Second, time.Millisecond)
			_, err := h.game.Disconnect(ctx)
			require.NoError(t, err)

			var got outcome
			select {
			case got = <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("action did not finish")
			}
			assert.ErrorIs(t, got.err, ErrNotConnected)

			pets, err := h.pets.Pets(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.SeedPets(), pets)
			items, err := h.pets.Inventory(ctx)
			require.NoError(t, err)
			assert.Empty(t, items)

			_, err = h.store.Get(ctx, storage.BalanceKey)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

// brokenPets fails every pet update
type brokenPets struct {
	*MemoryCollection
}

func (brokenPets) UpdatePet(context.Context, int, func(*models.Pet)) (models.Pet, error) {
	return models.Pet{}, errors.New("disk full")
}

func TestBattleWinReclaimedWhenPetUpdateFails(t *testing.T) {
	h := newHarness(t, 100, nil)
	g := New(Deps{
		Chain:   h.chain,
		Ledger:  h.ledger,
		Session: h.session,
		Pets:    brokenPets{h.pets},
		Rand:    fixedRand{float: 0.9, intn: 70},
		Logger:  zerolog.Nop(),
	})
	ctx := context.Background()
	_, err := g.Connect(ctx)
	require.NoError(t, err)

	_, err = g.BattlePet(ctx, 1)
	assert.ErrorIs(t, err, ErrOperationFailed)

	balance, err := h.ledger.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}
