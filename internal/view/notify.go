package view

import (
	"errors"
	"fmt"

	"github.com/wnt/guiverse/internal/game"
)

// VariantDestructive marks failure notifications
const VariantDestructive = "destructive"

// Notification is a transient user-facing message
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

var failures = map[game.Action]Notification{
	game.ActionConnect:  {Title: "❌ Connection Failed", Description: "Failed to connect wallet. Please try again."},
	game.ActionMint:     {Title: "❌ Mint Failed", Description: "Failed to mint pet. Please try again."},
	game.ActionTrain:    {Title: "❌ Training Failed", Description: "Failed to train pet. Please try again."},
	game.ActionBattle:   {Title: "❌ Battle Failed", Description: "Failed to start battle. Please try again."},
	game.ActionPurchase: {Title: "❌ Purchase Failed", Description: "Failed to purchase item. Please try again."},
	game.ActionTip:      {Title: "❌ Tip Failed", Description: "Failed to send tip. Please try again."},
	game.ActionClaim:    {Title: "❌ Claim Failed", Description: "Failed to claim rewards. Please try again."},
}

var shortfalls = map[game.Action]string{
	game.ActionMint:     "Not enough $GUI tokens to mint.",
	game.ActionTrain:    "Not enough $GUI tokens for training.",
	game.ActionPurchase: "Not enough $GUI tokens for this purchase.",
	game.ActionTip:      "Not enough $GUI tokens for this tip.",
}

// Notify translates the outcome of an action into a notification
func Notify(action game.Action, result game.Result, err error) Notification {
	if err != nil {
		return notifyError(action, err)
	}

	switch action {
	case game.ActionConnect:
		return Notification{Title: "🔗 Wallet Connected", Description: "Successfully connected to your wallet!"}
	case game.ActionDisconnect:
		return Notification{Title: "🔌 Wallet Disconnected", Description: "Your wallet has been disconnected."}
	case game.ActionMint:
		name := ""
		if result.Pet != nil {
			name = result.Pet.Name
		}
		return Notification{Title: "🎉 Pet Minted!", Description: fmt.Sprintf("%s has been minted successfully!", name)}
	case game.ActionTrain:
		return Notification{Title: "✅ Training Complete!", Description: fmt.Sprintf("Your pet completed %s training!", result.Training)}
	case game.ActionBattle:
		if result.Battle != nil && result.Battle.Win {
			return Notification{Title: "🎉 Victory!", Description: fmt.Sprintf("You won %d $GUI!", result.Battle.Reward)}
		}
		return Notification{Title: "😔 Defeat", Description: "Better luck next time!"}
	case game.ActionPurchase:
		return Notification{Title: "🛍️ Purchase Complete!", Description: fmt.Sprintf("%s added to your inventory!", result.Item)}
	case game.ActionTip:
		return Notification{Title: "💝 Tip Sent!", Description: fmt.Sprintf("Sent %d $GUI with your message!", result.Amount)}
	case game.ActionClaim:
		return Notification{Title: "🎉 Rewards Claimed!", Description: fmt.Sprintf("You received %d $GUI tokens!", result.Amount)}
	}
	return Notification{Title: "✅ Done", Description: string(action)}
}

func notifyError(action game.Action, err error) Notification {
	n := Notification{Variant: VariantDestructive}

	switch {
	case errors.Is(err, game.ErrNotConnected):
		n.Title, n.Description = "❌ Wallet Not Connected", "Please connect your wallet first."
	case errors.Is(err, game.ErrInsufficientBalance):
		n.Title = "❌ Insufficient Balance"
		n.Description = shortfalls[action]
		if n.Description == "" {
			n.Description = "Not enough $GUI tokens."
		}
	case errors.Is(err, game.ErrConnectInProgress):
		n.Title, n.Description = "⏳ Connecting...", "A wallet connection is already in progress."
	case errors.Is(err, game.ErrPetNotFound):
		n.Title, n.Description = "❌ Pet Not Found", "That pet is not in your collection."
	case errors.Is(err, game.ErrInvalidInput):
		n.Title, n.Description = "❌ Invalid Request", err.Error()
	default:
		f, ok := failures[action]
		if !ok {
			f = Notification{Title: "❌ Operation Failed", Description: "Something went wrong. Please try again."}
		}
		n.Title, n.Description = f.Title, f.Description
	}
	return n
}

// Tournament is shown after registering for the weekly championship
func Tournament() Notification {
	return Notification{Title: "🏆 Tournament Registration", Description: "You've been registered for the weekly championship!"}
}
