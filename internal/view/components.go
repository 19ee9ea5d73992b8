// Package view turns store snapshots and results into what the pages render.
// Everything here is a pure function of its inputs except Feed.
package view

import (
	"math"

	"github.com/wnt/guiverse/internal/models"
)

var petEmoji = map[string]string{
	"Cyber Cat":     "🐱",
	"Shiba Warrior": "🐕",
	"Mystic Dragon": "🐲",
	"Cyber Wolf":    "🐺",
	"Neon Dragon":   "🦄",
	"Moon Wolf":     "🌙",
	"Pixel Phoenix": "🔥",
	"Rainbow Cat":   "🌈",
}

var petGradient = map[string]string{
	"Cyber Cat":     "from-cyan-500 to-blue-500",
	"Shiba Warrior": "from-orange-500 to-red-500",
	"Mystic Dragon": "from-red-500 to-purple-500",
	"Cyber Wolf":    "from-gray-500 to-blue-500",
	"Neon Dragon":   "from-purple-500 to-pink-500",
	"Moon Wolf":     "from-indigo-500 to-purple-500",
	"Pixel Phoenix": "from-orange-500 to-yellow-500",
	"Rainbow Cat":   "from-pink-500 to-cyan-500",
}

const (
	fallbackEmoji    = "🐾"
	fallbackGradient = "from-purple-500 to-pink-500"
)

// Avatar sizes
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Avatar is the rendered pet portrait
type Avatar struct {
	Emoji    string `json:"emoji"`
	Gradient string `json:"gradient"`
	Size     string `json:"size"`
}

// PetEmoji maps a pet type to its emoji
func PetEmoji(petType string) string {
	if e, ok := petEmoji[petType]; ok {
		return e
	}
	return fallbackEmoji
}

// PetGradient maps a pet type to its background gradient
func PetGradient(petType string) string {
	if g, ok := petGradient[petType]; ok {
		return g
	}
	return fallbackGradient
}

// SizeClasses maps an avatar size to its classes; unknown sizes are medium
func SizeClasses(size string) string {
	switch size {
	case SizeSmall:
		return "w-12 h-12 text-2xl"
	case SizeLarge:
		return "w-24 h-24 text-6xl"
	default:
		return "w-16 h-16 text-4xl"
	}
}

// NewAvatar builds the avatar of a pet type
func NewAvatar(petType, size string) Avatar {
	return Avatar{
		Emoji:    PetEmoji(petType),
		Gradient: PetGradient(petType),
		Size:     SizeClasses(size),
	}
}

var rarityStyle = map[models.Rarity]string{
	models.RarityCommon:    "bg-gray-500/20 text-gray-300 border-gray-400/30",
	models.RarityRare:      "bg-blue-500/20 text-blue-300 border-blue-400/30",
	models.RarityEpic:      "bg-purple-500/20 text-purple-300 border-purple-400/30",
	models.RarityLegendary: "bg-orange-500/20 text-orange-300 border-orange-400/30",
	models.RarityMythic:    "bg-gradient-to-r from-purple-500/20 to-pink-500/20 text-pink-300 border-pink-400/30",
}

// RarityStyle maps a rarity to its badge classes, Common when unknown
func RarityStyle(r models.Rarity) string {
	if s, ok := rarityStyle[r]; ok {
		return s
	}
	return rarityStyle[models.RarityCommon]
}

// StatBar colours
const (
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorPink   = "pink"
	ColorBlue   = "blue"
	ColorGreen  = "green"
)

// ColorClasses are the classes of one stat bar colour
type ColorClasses struct {
	Text     string `json:"text"`
	Bg       string `json:"bg"`
	Gradient string `json:"gradient"`
}

var statColors = map[string]ColorClasses{
	ColorRed:    {Text: "text-red-400", Bg: "bg-red-500", Gradient: "from-red-500 to-red-600"},
	ColorYellow: {Text: "text-yellow-400", Bg: "bg-yellow-500", Gradient: "from-yellow-500 to-orange-500"},
	ColorPink:   {Text: "text-pink-400", Bg: "bg-pink-500", Gradient: "from-pink-500 to-purple-500"},
	ColorBlue:   {Text: "text-blue-400", Bg: "bg-blue-500", Gradient: "from-blue-500 to-cyan-500"},
	ColorGreen:  {Text: "text-green-400", Bg: "bg-green-500", Gradient: "from-green-500 to-emerald-500"},
}

// StatColor maps a colour name to its classes, pink when unknown
func StatColor(color string) ColorClasses {
	if c, ok := statColors[color]; ok {
		return c
	}
	return statColors[ColorPink]
}

// StatBar is a labelled proportional bar
type StatBar struct {
	Label   string       `json:"label"`
	Value   int          `json:"value"`
	Max     int          `json:"max"`
	Percent float64      `json:"percent"`
	Color   ColorClasses `json:"color"`
}

// NewStatBar caps the fill at 100%. Negative values are passed through.
func NewStatBar(label string, value, max int, color string) StatBar {
	if max <= 0 {
		max = models.MaxStat
	}
	return StatBar{
		Label:   label,
		Value:   value,
		Max:     max,
		Percent: math.Min(float64(value)/float64(max)*100, 100),
		Color:   StatColor(color),
	}
}

// NavItem is one navigation link
type NavItem struct {
	To    string `json:"to"`
	Label string `json:"label"`
}

// NavItems returns the navigation links in display order
func NavItems() []NavItem {
	return []NavItem{
		{To: "/", Label: "Dashboard"},
		{To: "/battle", Label: "Battle Arena"},
		{To: "/training", Label: "Training"},
		{To: "/shop", Label: "Shop"},
		{To: "/social", Label: "Social"},
	}
}

// FormatAddress shortens an address to its first 6 and last 4 characters
func FormatAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
