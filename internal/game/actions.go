package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wnt/guiverse/internal/chain"
	"github.com/wnt/guiverse/internal/ledger"
	"github.com/wnt/guiverse/internal/logger"
	"github.com/wnt/guiverse/internal/models"
)

// run guards an action on a connected wallet and records its outcome
func (g *Game) run(ctx context.Context, action Action, fn func(account string, log zerolog.Logger) (Result, error)) (Result, error) {
	start := time.Now()

	account, ok := g.Account()
	if !ok {
		g.record(action, start, ErrNotConnected)
		return Result{Action: action}, ErrNotConnected
	}

	g.begin(action)
	defer g.end(action)

	log := logger.WithAction(logger.WithAccount(g.logger, account), string(action))
	result, err := fn(account, log)
	result.Action = action
	result.Account = account

	g.record(action, start, err)
	switch {
	case err == nil:
		log.Info().Int64("balance", result.Balance).Msg("Action settled")
	case Rejected(err):
		log.Warn().Err(err).Msg("Action rejected")
	default:
		log.Error().Err(err).Msg("Action failed")
	}
	return result, err
}

// afford rejects the action up front when the balance cannot cover cost
func (g *Game) afford(ctx context.Context, cost int64) error {
	balance, err := g.ledger.Balance(ctx)
	if err != nil {
		return g.settleErr(err)
	}
	if balance < cost {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientBalance, cost, balance)
	}
	return nil
}

func (g *Game) submit(ctx context.Context, call chain.Call) (*chain.Receipt, error) {
	receipt, err := g.chain.Submit(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
	return &receipt, nil
}

// refund returns a debit whose follow-up mutation failed
func (g *Game) refund(ctx context.Context, amount int64, log zerolog.Logger) {
	if _, err := g.ledger.Credit(context.WithoutCancel(ctx), amount); err != nil {
		log.Error().Err(err).Int64("amount", amount).Msg("Refund failed")
	}
}

// reclaim takes back a credit whose follow-up mutation failed. A closed
// wallet has nothing left to reclaim.
func (g *Game) reclaim(ctx context.Context, amount int64, log zerolog.Logger) {
	_, err := g.ledger.Debit(context.WithoutCancel(ctx), amount)
	if err != nil && !errors.Is(err, ledger.ErrAccountClosed) {
		log.Error().Err(err).Int64("amount", amount).Msg("Reclaim failed")
	}
}

// MintPet debits MintCost and adds a level-1 pet
func (g *Game) MintPet(ctx context.Context, name, petType string) (Result, error) {
	return g.run(ctx, ActionMint, func(account string, log zerolog.Logger) (Result, error) {
		name, petType = strings.TrimSpace(name), strings.TrimSpace(petType)
		if name == "" || petType == "" {
			return Result{}, fmt.Errorf("%w: pet name and type are required", ErrInvalidInput)
		}
		if err := g.afford(ctx, MintCost); err != nil {
			return Result{}, err
		}

		receipt, err := g.submit(ctx, chain.Call{Kind: chain.KindMint, Account: account, Amount: MintCost, Item: name})
		if err != nil {
			return Result{}, err
		}
		balance, err := g.ledger.Debit(ctx, MintCost)
		if err != nil {
			return Result{}, g.settleErr(err)
		}

		pet, err := g.pets.AddPet(ctx, func(id int) models.Pet { return NewPet(id, name, petType) })
		if err != nil {
			g.refund(ctx, MintCost, log)
			return Result{}, fmt.Errorf("%w: store pet: %w", ErrOperationFailed, err)
		}

		petLog := logger.WithPet(log, pet.ID)
		petLog.Debug().Str("type", pet.Type).Msg("Pet minted")
		return Result{Balance: balance, Amount: MintCost, Pet: &pet, Receipt: receipt}, nil
	})
}

// TrainPet debits TrainingCost, raises the level and restores stats
func (g *Game) TrainPet(ctx context.Context, petID int, training string) (Result, error) {
	return g.run(ctx, ActionTrain, func(account string, log zerolog.Logger) (Result, error) {
		if _, err := g.pets.Pet(ctx, petID); err != nil {
			return Result{}, err
		}
		if err := g.afford(ctx, TrainingCost); err != nil {
			return Result{}, err
		}

		receipt, err := g.submit(ctx, chain.Call{Kind: chain.KindTrain, Account: account, Amount: TrainingCost, PetID: petID, Item: training})
		if err != nil {
			return Result{}, err
		}
		balance, err := g.ledger.Debit(ctx, TrainingCost)
		if err != nil {
			return Result{}, g.settleErr(err)
		}

		pet, err := g.pets.UpdatePet(ctx, petID, ApplyTraining)
		if err != nil {
			g.refund(ctx, TrainingCost, log)
			if errors.Is(err, ErrPetNotFound) {
				return Result{}, err
			}
			return Result{}, fmt.Errorf("%w: update pet: %w", ErrOperationFailed, err)
		}

		petLog := logger.WithPet(log, pet.ID)
		petLog.Debug().Int("level", pet.Level).Str("training", training).Msg("Pet trained")
		return Result{Balance: balance, Amount: TrainingCost, Pet: &pet, Training: training, Receipt: receipt}, nil
	})
}

// BattlePet fights one battle. A win credits the reward.
func (g *Game) BattlePet(ctx context.Context, petID int) (Result, error) {
	return g.run(ctx, ActionBattle, func(account string, log zerolog.Logger) (Result, error) {
		if _, err := g.pets.Pet(ctx, petID); err != nil {
			return Result{}, err
		}

		receipt, err := g.submit(ctx, chain.Call{Kind: chain.KindBattle, Account: account, PetID: petID})
		if err != nil {
			return Result{}, err
		}

		// settle before touching the pet so a closed wallet changes nothing
		outcome := g.roll()
		var balance int64
		if outcome.Win {
			balance, err = g.ledger.Credit(ctx, outcome.Reward)
		} else {
			balance, err = g.ledger.Balance(ctx)
		}
		if err != nil {
			return Result{}, g.settleErr(err)
		}

		pet, err := g.pets.UpdatePet(ctx, petID, func(p *models.Pet) { ApplyBattle(p, outcome) })
		if err != nil {
			if outcome.Win {
				g.reclaim(ctx, outcome.Reward, log)
			}
			if errors.Is(err, ErrPetNotFound) {
				return Result{}, err
			}
			return Result{}, fmt.Errorf("%w: update pet: %w", ErrOperationFailed, err)
		}

		petLog := logger.WithPet(log, pet.ID)
		petLog.Debug().
			Bool("win", outcome.Win).
			Int64("reward", outcome.Reward).
			Msg("Battle finished")
		return Result{Balance: balance, Amount: outcome.Reward, Pet: &pet, Battle: &outcome, Receipt: receipt}, nil
	})
}

// PurchaseItem debits price and appends name to the inventory
func (g *Game) PurchaseItem(ctx context.Context, name string, price int64) (Result, error) {
	return g.run(ctx, ActionPurchase, func(account string, log zerolog.Logger) (Result, error) {
		if strings.TrimSpace(name) == "" || price <= 0 {
			return Result{}, fmt.Errorf("%w: item name and a positive price are required", ErrInvalidInput)
		}
		if err := g.afford(ctx, price); err != nil {
			return Result{}, err
		}

		receipt, err := g.submit(ctx, chain.Call{Kind: chain.KindPurchase, Account: account, Amount: price, Item: name})
		if err != nil {
			return Result{}, err
		}
		balance, err := g.ledger.Debit(ctx, price)
		if err != nil {
			return Result{}, g.settleErr(err)
		}

		if err := g.pets.AddItem(ctx, name); err != nil {
			g.refund(ctx, price, log)
			return Result{}, fmt.Errorf("%w: store item: %w", ErrOperationFailed, err)
		}

		return Result{Balance: balance, Amount: price, Item: name, Receipt: receipt}, nil
	})
}

// TipUser sends amount to recipient. The message is not transmitted.
func (g *Game) TipUser(ctx context.Context, recipient string, amount int64, message string) (Result, error) {
	return g.run(ctx, ActionTip, func(account string, log zerolog.Logger) (Result, error) {
		if strings.TrimSpace(recipient) == "" || amount <= 0 {
			return Result{}, fmt.Errorf("%w: recipient and a positive amount are required", ErrInvalidInput)
		}
		if err := g.afford(ctx, amount); err != nil {
			return Result{}, err
		}

		receipt, err := g.submit(ctx, chain.Call{Kind: chain.KindTip, Account: account, Amount: amount, Recipient: recipient})
		if err != nil {
			return Result{}, err
		}
		balance, err := g.ledger.Debit(ctx, amount)
		if err != nil {
			return Result{}, g.settleErr(err)
		}

		log.Debug().Str("recipient", recipient).Str("message", message).Msg("Tip sent")
		return Result{Balance: balance, Amount: amount, Recipient: recipient, Receipt: receipt}, nil
	})
}

// ClaimRewards credits the daily reward
func (g *Game) ClaimRewards(ctx context.Context) (Result, error) {
	return g.run(ctx, ActionClaim, func(account string, _ zerolog.Logger) (Result, error) {
		receipt, err := g.submit(ctx, chain.Call{Kind: chain.KindClaim, Account: account, Amount: DailyReward})
		if err != nil {
			return Result{}, err
		}
		balance, err := g.ledger.Credit(ctx, DailyReward)
		if err != nil {
			return Result{}, g.settleErr(err)
		}
		return Result{Balance: balance, Amount: DailyReward, Receipt: receipt}, nil
	})
}
