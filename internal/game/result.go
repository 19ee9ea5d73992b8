package game

import (
	"errors"

	"github.com/wnt/guiverse/internal/chain"
	"github.com/wnt/guiverse/internal/models"
)

var (
	ErrNotConnected        = errors.New("wallet not connected")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrOperationFailed     = errors.New("operation failed")
	ErrPetNotFound         = models.ErrPetNotFound
	ErrInvalidInput        = errors.New("invalid input")
	ErrConnectInProgress   = errors.New("wallet connection already in progress")
)

// Action names a store operation
type Action string

const (
	ActionConnect    Action = "connect"
	ActionDisconnect Action = "disconnect"
	ActionMint       Action = "mint"
	ActionTrain      Action = "train"
	ActionBattle     Action = "battle"
	ActionPurchase   Action = "purchase"
	ActionTip        Action = "tip"
	ActionClaim      Action = "claim"
)

// State is the wallet connection state
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Result is what a settled action changed. Failed actions return a Result naming
// the action alongside the error.
type Result struct {
	Action    Action         `json:"action"`
	Account   string         `json:"account,omitempty"`
	Balance   int64          `json:"balance"`
	Amount    int64          `json:"amount,omitempty"`
	Pet       *models.Pet    `json:"pet,omitempty"`
	Item      string         `json:"item,omitempty"`
	Training  string         `json:"training,omitempty"`
	Recipient string         `json:"recipient,omitempty"`
	Battle    *BattleOutcome `json:"battle,omitempty"`
	Receipt   *chain.Receipt `json:"receipt,omitempty"`
}

// Snapshot is the observable store state
type Snapshot struct {
	State     State          `json:"state"`
	Connected bool           `json:"connected"`
	Account   string         `json:"account,omitempty"`
	Balance   int64          `json:"balance"`
	Loading   bool           `json:"loading"`
	Pending   map[Action]int `json:"pending"`
	Pets      []models.Pet   `json:"pets"`
	Inventory []string       `json:"inventory"`
}

// Rejected reports whether err is a precondition failure rather than a fault
func Rejected(err error) bool {
	return errors.Is(err, ErrNotConnected) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrPetNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrConnectInProgress)
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case Rejected(err):
		return "rejected"
	default:
		return "failed"
	}
}
