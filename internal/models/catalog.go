package models

// ShopCategory groups shop items
type ShopCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ShopItem is an entry of the shop catalog
type ShopItem struct {
	ID          int    `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Rarity      Rarity `json:"rarity"`
	Emoji       string `json:"emoji"`
	Gradient    string `json:"gradient"`
	Limited     bool   `json:"limited,omitempty"`
}

// BattleType is a selectable arena mode
type BattleType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Reward      string `json:"reward"`
	Icon        string `json:"icon"`
	Gradient    string `json:"gradient"`
}

// LeaderboardEntry is a ranked arena player
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Pet    string `json:"pet"`
	Wins   int    `json:"wins"`
	Avatar string `json:"avatar"`
}

// TrainingProgram is a training center offer
type TrainingProgram struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cost        int64    `json:"cost"`
	Duration    string   `json:"duration"`
	Benefits    []string `json:"benefits"`
	Gradient    string   `json:"gradient"`
	Emoji       string   `json:"emoji"`
}

// FeedPost is a social feed entry
type FeedPost struct {
	ID          int    `json:"id"`
	User        string `json:"user"`
	UserAvatar  string `json:"userAvatar"`
	Timestamp   string `json:"timestamp"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	Pet         string `json:"pet"`
	Achievement string `json:"achievement"`
	Likes       int    `json:"likes"`
	Comments    int    `json:"comments"`
	Shares      int    `json:"shares"`
	Image       string `json:"image"`
	Address     string `json:"address"`
}

// TrendingTopic is a hashtag with its post count label
type TrendingTopic struct {
	Tag   string `json:"tag"`
	Posts string `json:"posts"`
}

// TopPlayer is a featured player of the social page
type TopPlayer struct {
	Name   string `json:"name"`
	Pet    string `json:"pet"`
	Wins   int    `json:"wins"`
	Avatar string `json:"avatar"`
}

// Shop category ids
const (
	CategoryItems     = "items"
	CategoryCosmetics = "cosmetics"
	CategoryPets      = "pets"
	CategorySpecial   = "special"
)

// Mystery box special deal
const (
	MysteryBoxName  = "Mystery Box"
	MysteryBoxPrice = 299
)

// ShopCategories returns the shop categories in display order
func ShopCategories() []ShopCategory {
	return []ShopCategory{
		{ID: CategoryItems, Name: "Power Items", Count: 24},
		{ID: CategoryCosmetics, Name: "Cosmetics", Count: 18},
		{ID: CategoryPets, Name: "New Pets", Count: 8},
		{ID: CategorySpecial, Name: "Limited Edition", Count: 5},
	}
}

// ShopItems returns the full shop catalog ordered by id
func ShopItems() []ShopItem {
	return []ShopItem{
		{ID: 1, Category: CategoryItems, Name: "Power Potion", Description: "Instantly restore 50 energy", Price: 25, Rarity: RarityCommon, Emoji: "⚡", Gradient: "from-yellow-500 to-orange-500"},
		{ID: 2, Category: CategoryItems, Name: "Meme Enhancer", Description: "+20% meme battle damage for 24h", Price: 75, Rarity: RarityRare, Emoji: "🎭", Gradient: "from-purple-500 to-pink-500"},
		{ID: 3, Category: CategoryItems, Name: "XP Booster", Description: "Double XP gain for 2 hours", Price: 100, Rarity: RarityEpic, Emoji: "📈", Gradient: "from-green-500 to-emerald-500"},
		{ID: 4, Category: CategoryItems, Name: "Legendary Treat", Description: "Permanently boost all stats by 5", Price: 500, Rarity: RarityLegendary, Emoji: "🍖", Gradient: "from-orange-500 to-red-500"},
		{ID: 5, Category: CategoryCosmetics, Name: "Diamond Collar", Description: "Bling for your battle pet", Price: 150, Rarity: RarityEpic, Emoji: "💎", Gradient: "from-cyan-500 to-blue-500"},
		{ID: 6, Category: CategoryCosmetics, Name: "Neon Wings", Description: "Glowing wings cosmetic", Price: 200, Rarity: RarityEpic, Emoji: "🦋", Gradient: "from-pink-500 to-purple-500"},
		{ID: 7, Category: CategoryCosmetics, Name: "Crypto Crown", Description: "Show off your wealth", Price: 300, Rarity: RarityLegendary, Emoji: "👑", Gradient: "from-yellow-500 to-orange-500"},
		{ID: 8, Category: CategoryPets, Name: "Mystic Dragon", Description: "Rare fire-breathing companion", Price: 1000, Rarity: RarityLegendary, Emoji: "🐲", Gradient: "from-red-500 to-orange-500"},
		{ID: 9, Category: CategoryPets, Name: "Cyber Wolf", Description: "High-tech pack hunter", Price: 750, Rarity: RarityEpic, Emoji: "🤖", Gradient: "from-cyan-500 to-blue-500"},
		{ID: 10, Category: CategorySpecial, Name: "Genesis Pet Egg", Description: "Hatch a unique legendary pet", Price: 2000, Rarity: RarityMythic, Emoji: "🥚", Gradient: "from-purple-500 via-pink-500 to-orange-500", Limited: true},
	}
}

// FindShopItem looks up a catalog item by id
func FindShopItem(id int) (ShopItem, bool) {
	for _, item := range ShopItems() {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}

// BattleTypes returns the arena modes
func BattleTypes() []BattleType {
	return []BattleType{
		{ID: "meme", Name: "Meme Battle", Description: "Battle with memes and jokes", Reward: "50-200 $GUI", Icon: "😂", Gradient: "from-pink-500 to-purple-500"},
		{ID: "ranked", Name: "Ranked Battle", Description: "Competitive battles for glory", Reward: "100-500 $GUI", Icon: "🏆", Gradient: "from-orange-500 to-red-500"},
	}
}

// Leaderboard returns the arena leaderboard
func Leaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{Rank: 1, Name: "MemeKing2023", Pet: "Cyber Cat", Wins: 247, Avatar: "🐱"},
		{Rank: 2, Name: "DiamondHands", Pet: "Shiba Warrior", Wins: 234, Avatar: "🐕"},
		{Rank: 3, Name: "CryptoPunk", Pet: "Neon Dragon", Wins: 198, Avatar: "🐲"},
		{Rank: 4, Name: "DeFiMaster", Pet: "Moon Wolf", Wins: 187, Avatar: "🐺"},
		{Rank: 5, Name: "NFTLegend", Pet: "Pixel Phoenix", Wins: 156, Avatar: "🔥"},
	}
}

// TrainingPrograms returns the training center offers
func TrainingPrograms() []TrainingProgram {
	return []TrainingProgram{
		{ID: "strength", Name: "Strength Training", Description: "Boost your pet's attack power", Cost: 50, Duration: "2 hours", Benefits: []string{"+5 Attack", "+2 Defense", "Unlock: Power Strike"}, Gradient: "from-red-500 to-orange-500", Emoji: "💪"},
		{ID: "intelligence", Name: "AI Enhancement", Description: "Improve meme generation abilities", Cost: 75, Duration: "3 hours", Benefits: []string{"+8 Intelligence", "+3 Creativity", "Unlock: Meme Master"}, Gradient: "from-purple-500 to-pink-500", Emoji: "🧠"},
		{ID: "speed", Name: "Agility Boost", Description: "Increase battle reaction time", Cost: 60, Duration: "1.5 hours", Benefits: []string{"+6 Speed", "+4 Evasion", "Unlock: Lightning Strike"}, Gradient: "from-yellow-500 to-orange-500", Emoji: "⚡"},
		{ID: "special", Name: "Legendary Training", Description: "Unlock rare abilities and traits", Cost: 200, Duration: "8 hours", Benefits: []string{"+10 All Stats", "Random Legendary Trait", "Prestige Points"}, Gradient: "from-cyan-500 to-blue-500", Emoji: "⭐"},
	}
}

// FindTrainingProgram looks up a training program by id
func FindTrainingProgram(id string) (TrainingProgram, bool) {
	for _, program := range TrainingPrograms() {
		if program.ID == id {
			return program, true
		}
	}
	return TrainingProgram{}, false
}

// FeedPosts returns the social feed posts, newest first
func FeedPosts() []FeedPost {
	return []FeedPost{
		{ID: 1, User: "MemeKing2023", UserAvatar: "👑", Timestamp: "2 hours ago", Type: "battle_win", Content: "Just dominated the meme arena with my CryptoKitty! 🔥", Pet: "Cyber Cat", Achievement: "Won 5 battles in a row!", Likes: 147, Comments: 23, Shares: 12, Image: "🏆", Address: "0x1234567890abcdef"},
		{ID: 2, User: "DiamondHands", UserAvatar: "💎", Timestamp: "4 hours ago", Type: "new_pet", Content: "Meet my new legendary dragon! Spent 2000 $GUI but totally worth it 🐲", Pet: "Mystic Dragon", Achievement: "New Pet Acquired!", Likes: 89, Comments: 34, Shares: 8, Image: "🐲", Address: "0x2345678901bcdef1"},
		{ID: 3, User: "NFTLegend", UserAvatar: "🚀", Timestamp: "6 hours ago", Type: "training", Content: "My pet just completed legendary training! Stats are through the roof! 📈", Pet: "Cyber Wolf", Achievement: "Training Complete!", Likes: 203, Comments: 45, Shares: 19, Image: "💪", Address: "0x3456789012cdef12"},
		{ID: 4, User: "MemeLord", UserAvatar: "😂", Timestamp: "8 hours ago", Type: "meme", Content: "When your pet wins but you're out of $GUI tokens 😭", Pet: "Shiba Warrior", Achievement: "Meme Master!", Likes: 512, Comments: 87, Shares: 156, Image: "😭", Address: "0x456789123def1234"},
	}
}

// FindFeedPost looks up a feed post by id
func FindFeedPost(id int) (FeedPost, bool) {
	for _, post := range FeedPosts() {
		if post.ID == id {
			return post, true
		}
	}
	return FeedPost{}, false
}

// TrendingTopics returns the trending hashtags
func TrendingTopics() []TrendingTopic {
	return []TrendingTopic{
		{Tag: "#MemeMonday", Posts: "2.3k"},
		{Tag: "#DragonBreeding", Posts: "1.8k"},
		{Tag: "#GUIToken", Posts: "4.2k"},
		{Tag: "#LegendaryPets", Posts: "892"},
		{Tag: "#BattleArena", Posts: "3.1k"},
	}
}

// TopPlayers returns the featured players
func TopPlayers() []TopPlayer {
	return []TopPlayer{
		{Name: "CryptoMaster", Pet: "Cyber Dragon", Wins: 2847, Avatar: "🐲"},
		{Name: "MemeQueen", Pet: "Rainbow Cat", Wins: 2156, Avatar: "🐱"},
		{Name: "TokenKing", Pet: "Golden Wolf", Wins: 1923, Avatar: "🐺"},
	}
}
