package game

import (
	"github.com/wnt/guiverse/internal/models"
)

const (
	MintCost         = 100
	TrainingCost     = 50
	TrainingGain     = 5
	BattleEnergyCost = 20
	DailyReward      = 247

	// a battle is won when Float64() > WinThreshold
	WinThreshold = 0.4
	MinReward    = 50
	// rewards are MinReward + Intn(RewardSpread), so [50,199]
	RewardSpread = 150
)

// Rand is the randomness battles draw from. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// BattleOutcome is the result of one battle roll
type BattleOutcome struct {
	Win    bool  `json:"win"`
	Reward int64 `json:"reward"`
}

// RollBattle draws a battle outcome
func RollBattle(r Rand) BattleOutcome {
	if r.Float64() <= WinThreshold {
		return BattleOutcome{}
	}
	return BattleOutcome{Win: true, Reward: int64(MinReward + r.Intn(RewardSpread))}
}

// NewPet builds a freshly minted pet
func NewPet(id int, name, petType string) models.Pet {
	return models.Pet{
		ID:        id,
		Name:      name,
		Type:      petType,
		Level:     1,
		Health:    models.MaxStat,
		Energy:    models.MaxStat,
		Happiness: models.MaxStat,
		Rarity:    models.RarityCommon,
		Traits:    []string{"Newborn", "Fresh"},
	}
}

// ApplyTraining levels the pet up and restores its stats
func ApplyTraining(p *models.Pet) {
	p.Level++
	p.Health = clamp(p.Health + TrainingGain)
	p.Energy = clamp(p.Energy + TrainingGain)
	p.Happiness = clamp(p.Happiness + TrainingGain)
}

// ApplyBattle records the outcome and spends energy
func ApplyBattle(p *models.Pet, outcome BattleOutcome) {
	if outcome.Win {
		p.Wins++
	} else {
		p.Losses++
	}
	p.Energy = clamp(p.Energy - BattleEnergyCost)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > models.MaxStat {
		return models.MaxStat
	}
	return v
}
