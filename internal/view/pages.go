package view

import (
	"fmt"
	"math"

	"github.com/wnt/guiverse/internal/game"
	"github.com/wnt/guiverse/internal/models"
	"github.com/wnt/guiverse/internal/utils"
)

// Header is the wallet summary every page shows
type Header struct {
	Connected    bool   `json:"connected"`
	Account      string `json:"account,omitempty"`
	ShortAccount string `json:"shortAccount,omitempty"`
	Balance      int64  `json:"balance"`
	Loading      bool   `json:"loading"`
}

func newHeader(snap game.Snapshot) Header {
	return Header{
		Connected:    snap.Connected,
		Account:      snap.Account,
		ShortAccount: FormatAddress(snap.Account),
		Balance:      snap.Balance,
		Loading:      snap.Loading,
	}
}

// Nav is the navigation bar
type Nav struct {
	Header
	Items        []NavItem `json:"items"`
	ConnectLabel string    `json:"connectLabel"`
}

// NewNav builds the navigation bar
func NewNav(snap game.Snapshot) Nav {
	label := "Connect Wallet"
	if snap.State == game.StateConnecting {
		label = "Connecting..."
	}
	return Nav{Header: newHeader(snap), Items: NavItems(), ConnectLabel: label}
}

// PetCard is a pet with its rendered avatar and stats
type PetCard struct {
	Pet         models.Pet `json:"pet"`
	Avatar      Avatar     `json:"avatar"`
	RarityStyle string     `json:"rarityStyle"`
	Stats       []StatBar  `json:"stats"`
	// CanAct is false when the pet is too tired to battle or train
	CanAct bool `json:"canAct"`
}

// NewPetCard renders a pet
func NewPetCard(p models.Pet) PetCard {
	return PetCard{
		Pet:         p,
		Avatar:      NewAvatar(p.Type, SizeLarge),
		RarityStyle: RarityStyle(p.Rarity),
		Stats: []StatBar{
			NewStatBar("Health", p.Health, models.MaxStat, ColorRed),
			NewStatBar("Energy", p.Energy, models.MaxStat, ColorYellow),
			NewStatBar("Happiness", p.Happiness, models.MaxStat, ColorPink),
		},
		CanAct: p.Energy >= game.BattleEnergyCost,
	}
}

func petCards(pets []models.Pet) []PetCard {
	cards := make([]PetCard, len(pets))
	for i, p := range pets {
		cards[i] = NewPetCard(p)
	}
	return cards
}

// Dashboard is the pet collection overview
type Dashboard struct {
	Header
	Pets        []PetCard `json:"pets"`
	Ready       int       `json:"ready"`
	TotalWins   int       `json:"totalWins"`
	TotalLosses int       `json:"totalLosses"`
	WinRate     int       `json:"winRate"`
	DailyReward int64     `json:"dailyReward"`
}

// NewDashboard builds the dashboard
func NewDashboard(snap game.Snapshot) Dashboard {
	d := Dashboard{
		Header:      newHeader(snap),
		Pets:        petCards(snap.Pets),
		DailyReward: game.DailyReward,
	}
	for _, p := range snap.Pets {
		d.TotalWins += p.Wins
		d.TotalLosses += p.Losses
	}
	d.WinRate = WinRate(d.TotalWins, d.TotalLosses)
	d.Ready = utils.Count(d.Pets, func(c PetCard) bool { return c.CanAct })
	return d
}

// WinRate is the rounded win percentage, 0 when no games were played
func WinRate(wins, losses int) int {
	if wins+losses == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(wins+losses) * 100))
}

// Arena is the battle page
type Arena struct {
	Header
	BattleTypes []models.BattleType       `json:"battleTypes"`
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	Pets        []PetCard                 `json:"pets"`
}

// NewArena builds the battle page
func NewArena(snap game.Snapshot) Arena {
	return Arena{
		Header:      newHeader(snap),
		BattleTypes: models.BattleTypes(),
		Leaderboard: models.Leaderboard(),
		Pets:        petCards(snap.Pets),
	}
}

// ShopEntry is a catalog item as seen by the current player
type ShopEntry struct {
	models.ShopItem
	RarityStyle string `json:"rarityStyle"`
	Owned       bool   `json:"owned"`
	Affordable  bool   `json:"affordable"`
}

// SpecialDeal is the mystery box offer
type SpecialDeal struct {
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Affordable bool   `json:"affordable"`
}

// Shop is the shop page for one category
type Shop struct {
	Header
	Category    string                `json:"category"`
	Categories  []models.ShopCategory `json:"categories"`
	Items       []ShopEntry           `json:"items"`
	Inventory   []string              `json:"inventory"`
	SpecialDeal SpecialDeal           `json:"specialDeal"`
}

// NewShop builds the shop page. An empty category selects items.
func NewShop(snap game.Snapshot, category string) (Shop, error) {
	if category == "" {
		category = models.CategoryItems
	}

	catalog := models.ShopItems()
	categories := models.ShopCategories()
	if utils.Count(categories, func(c models.ShopCategory) bool { return c.ID == category }) == 0 {
		return Shop{}, fmt.Errorf("%w: unknown shop category %q", game.ErrInvalidInput, category)
	}

	items := utils.Filter(catalog, func(it models.ShopItem) bool { return it.Category == category })
	entries := make([]ShopEntry, len(items))
	for i, it := range items {
		entries[i] = ShopEntry{
			ShopItem:    it,
			RarityStyle: RarityStyle(it.Rarity),
			Owned:       utils.Contains(snap.Inventory, it.Name),
			Affordable:  snap.Balance >= it.Price,
		}
	}

	return Shop{
		Header:     newHeader(snap),
		Category:   category,
		Categories: categories,
		Items:      entries,
		Inventory:  snap.Inventory,
		SpecialDeal: SpecialDeal{
			Name:       models.MysteryBoxName,
			Price:      models.MysteryBoxPrice,
			Affordable: snap.Balance >= models.MysteryBoxPrice,
		},
	}, nil
}

// TrainingEntry is a training program with what it will actually cost
type TrainingEntry struct {
	models.TrainingProgram
	// Charge is what the store debits, independent of the listed Cost
	Charge     int64 `json:"charge"`
	Affordable bool  `json:"affordable"`
}

// Training is the training center page
type Training struct {
	Header
	Programs []TrainingEntry `json:"programs"`
	Pets     []PetCard       `json:"pets"`
}

// NewTraining builds the training center page
func NewTraining(snap game.Snapshot) Training {
	programs := models.TrainingPrograms()
	entries := make([]TrainingEntry, len(programs))
	for i, p := range programs {
		entries[i] = TrainingEntry{
			TrainingProgram: p,
			Charge:          game.TrainingCost,
			Affordable:      snap.Balance >= game.TrainingCost,
		}
	}
	return Training{
		Header:   newHeader(snap),
		Programs: entries,
		Pets:     petCards(snap.Pets),
	}
}
