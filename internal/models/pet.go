package models

import (
	"errors"
	"time"
)

// Rarity is the pet and item rarity tier
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
)

// MaxStat is the ceiling for health, energy and happiness
const MaxStat = 100

// Pet represents a battle pet in the player's collection
type Pet struct {
	ID        int      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string   `gorm:"size:64;not null" json:"name"`
	Type      string   `gorm:"size:64;index;not null" json:"type"`
	Level     int      `gorm:"default:1" json:"level"`
	Health    int      `json:"health"`
	Energy    int      `json:"energy"`
	Happiness int      `json:"happiness"`
	Rarity    Rarity   `gorm:"size:16;index" json:"rarity"`
	Traits    []string `gorm:"serializer:json" json:"traits"`
	Wins      int      `gorm:"default:0" json:"wins"`
	Losses    int      `gorm:"default:0" json:"losses"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Clone returns a copy that shares no slices with p
func (p Pet) Clone() Pet {
	p.Traits = append([]string(nil), p.Traits...)
	return p
}

// InventoryItem is one purchased item. Position keeps purchase order.
type InventoryItem struct {
	ID        uint      `gorm:"primaryKey"`
	Position  int       `gorm:"index;not null"`
	Name      string    `gorm:"size:128;index;not null"`
	CreatedAt time.Time
}

// SeedPets returns the starter collection every new player begins with
func SeedPets() []Pet {
	return []Pet{
		{
			ID:        1,
			Name:      "CryptoKitty",
			Type:      "Cyber Cat",
			Level:     12,
			Health:    85,
			Energy:    92,
			Happiness: 78,
			Rarity:    RarityEpic,
			Traits:    []string{"Meme Lord", "DeFi Genius", "Battle Ready"},
			Wins:      23,
			Losses:    5,
		},
		{
			ID:        2,
			Name:      "DiamondDoge",
			Type:      "Shiba Warrior",
			Level:     8,
			Health:    95,
			Energy:    67,
			Happiness: 88,
			Rarity:    RarityRare,
			Traits:    []string{"Diamond Hands", "Hodler", "Meme Machine"},
			Wins:      15,
			Losses:    3,
		},
	}
}

// ErrPetNotFound is returned when no pet has the requested id
var ErrPetNotFound = errors.New("pet not found")
