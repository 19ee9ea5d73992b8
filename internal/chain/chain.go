// Package chain is the boundary to the wallet and token contract. Game logic only
// talks to Client; the mock and the Solana RPC implementation are interchangeable.
package chain

import (
	"context"
	"errors"
	"time"
)

// Kind names the game transaction being submitted
type Kind string

const (
	KindMint     Kind = "mint"
	KindTrain    Kind = "train"
	KindBattle   Kind = "battle"
	KindPurchase Kind = "purchase"
	KindTip      Kind = "tip"
	KindClaim    Kind = "claim"
)

// ErrRejected is returned when the chain refuses a transaction
var ErrRejected = errors.New("transaction rejected")

// Account is the wallet returned by a successful connection
type Account struct {
	Address string
	Balance int64
}

// Call describes a game transaction
type Call struct {
	Kind      Kind
	Account   string
	Amount    int64
	Recipient string
	PetID     int
	Item      string
}

// Receipt confirms a submitted transaction
type Receipt struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Ref         string    `json:"ref,omitempty"`
	Slot        uint64    `json:"slot,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Client is the wallet/contract collaborator
type Client interface {
	Connect(ctx context.Context) (Account, error)
	GetBalance(ctx context.Context, address string) (int64, error)
	Submit(ctx context.Context, call Call) (Receipt, error)
}
