package view

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wnt/guiverse/internal/game"
	"github.com/wnt/guiverse/internal/models"
)

// TipAmount is what tipping a post author sends
const TipAmount = 10

// ErrPostNotFound is returned for unknown feed post ids
var ErrPostNotFound = errors.New("post not found")

var postColor = map[string]string{
	"battle_win": "from-yellow-500 to-orange-500",
	"new_pet":    "from-pink-500 to-purple-500",
	"training":   "from-blue-500 to-cyan-500",
	"meme":       "from-green-500 to-emerald-500",
}

// PostColor maps a post type to its accent gradient
func PostColor(postType string) string {
	if c, ok := postColor[postType]; ok {
		return c
	}
	return "from-gray-500 to-gray-600"
}

// PostEntry is a feed post with the local like state applied
type PostEntry struct {
	models.FeedPost
	Liked bool   `json:"liked"`
	Color string `json:"color"`
}

// Social is the social feed page
type Social struct {
	Header
	Posts      []PostEntry            `json:"posts"`
	Trending   []models.TrendingTopic `json:"trending"`
	TopPlayers []models.TopPlayer     `json:"topPlayers"`
	CanTip     bool                   `json:"canTip"`
}

// Feed keeps the process-local like toggles. Nothing is persisted or reconciled.
type Feed struct {
	logger zerolog.Logger

	mu    sync.Mutex
	delta map[int]int
	liked map[int]bool
}

// NewFeed creates an empty like state
func NewFeed(logger zerolog.Logger) *Feed {
	return &Feed{
		logger: logger.With().Str("component", "feed").Logger(),
		delta:  make(map[int]int),
		liked:  make(map[int]bool),
	}
}

// Page builds the social feed page
func (f *Feed) Page(snap game.Snapshot) Social {
	posts := models.FeedPosts()
	entries := make([]PostEntry, len(posts))

	f.mu.Lock()
	for i, p := range posts {
		p.Likes += f.delta[p.ID]
		entries[i] = PostEntry{FeedPost: p, Liked: f.liked[p.ID], Color: PostColor(p.Type)}
	}
	f.mu.Unlock()

	return Social{
		Header:     newHeader(snap),
		Posts:      entries,
		Trending:   models.TrendingTopics(),
		TopPlayers: models.TopPlayers(),
		CanTip:     snap.Connected && snap.Balance >= TipAmount,
	}
}

// ToggleLike likes or unlikes a post and returns the new state
func (f *Feed) ToggleLike(connected bool, postID int) (liked bool, likes int, err error) {
	if !connected {
		return false, 0, game.ErrNotConnected
	}
	post, ok := models.FindFeedPost(postID)
	if !ok {
		return false, 0, ErrPostNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.liked[postID] {
		delete(f.liked, postID)
		f.delta[postID]--
	} else {
		f.liked[postID] = true
		f.delta[postID]++
	}
	return f.liked[postID], post.Likes + f.delta[postID], nil
}

// Tip returns the recipient, amount and message of a tip to a post author
func (f *Feed) Tip(postID int) (address string, amount int64, message string, err error) {
	post, ok := models.FindFeedPost(postID)
	if !ok {
		return "", 0, "", ErrPostNotFound
	}
	return post.Address, TipAmount, fmt.Sprintf("Great post from %s!", post.User), nil
}

// Post accepts a draft. There is no backend, the content is only logged.
func (f *Feed) Post(connected bool, content string) error {
	if !connected {
		return game.ErrNotConnected
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("%w: post content is empty", game.ErrInvalidInput)
	}
	f.logger.Info().Str("content", content).Msg("Posting")
	return nil
}

// Share returns the share text of a post
func (f *Feed) Share(connected bool, postID int) (string, error) {
	if !connected {
		return "", game.ErrNotConnected
	}
	if _, ok := models.FindFeedPost(postID); !ok {
		return "", ErrPostNotFound
	}
	return fmt.Sprintf("Check out this amazing post from GUIverse Pets! Post ID: %d", postID), nil
}
