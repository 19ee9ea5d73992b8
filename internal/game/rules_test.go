package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wnt/guiverse/internal/models"
)

func TestRollBattle(t *testing.T) {
	tests := []struct {
		name   string
		rng    fixedRand
		win    bool
		reward int64
	}{
		{"at threshold loses", fixedRand{float: 0.4}, false, 0},
		{"below threshold loses", fixedRand{float: 0.0}, false, 0},
		{"min reward", fixedRand{float: 0.41, intn: 0}, true, 50},
		{"max reward", fixedRand{float: 0.99, intn: 149}, true, 199},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := RollBattle(tt.rng)
			assert.Equal(t, tt.win, outcome.Win)
			assert.Equal(t, tt.reward, outcome.Reward)
		})
	}
}

func TestRollBattleRewardRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		outcome := RollBattle(rng)
		if !outcome.Win {
			assert.Zero(t, outcome.Reward)
			continue
		}
		assert.GreaterOrEqual(t, outcome.Reward, int64(MinReward))
		assert.Less(t, outcome.Reward, int64(MinReward+RewardSpread))
	}
}

func TestApplyTraining(t *testing.T) {
	pet := models.Pet{Level: 3, Health: 97, Energy: 10, Happiness: 100}
	ApplyTraining(&pet)

	assert.Equal(t, 4, pet.Level)
	assert.Equal(t, 100, pet.Health)
	assert.Equal(t, 15, pet.Energy)
	assert.Equal(t, 100, pet.Happiness)
}

func TestApplyBattle(t *testing.T) {
	pet := models.Pet{Energy: 15}
	ApplyBattle(&pet, BattleOutcome{Win: true, Reward: 60})
	assert.Equal(t, 1, pet.Wins)
	assert.Zero(t, pet.Energy)

	ApplyBattle(&pet, BattleOutcome{})
	assert.Equal(t, 1, pet.Losses)
	assert.Zero(t, pet.Energy)
}

func TestMemoryCollectionIDs(t *testing.T) {
	c := NewMemoryCollection(models.SeedPets())

	pet, err := c.AddPet(context.Background(), func(id int) models.Pet { return NewPet(id, "Bit", "Byte") })
	assert.NoError(t, err)
	assert.Equal(t, 3, pet.ID)

	pets, _ := c.Pets(context.Background())
	pets[0].Traits[0] = "mutated"
	again, _ := c.Pet(context.Background(), 1)
	assert.Equal(t, "Meme Lord", again.Traits[0])
}
