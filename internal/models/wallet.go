package models

// Wallet is the player's wallet as reported by the chain
type Wallet struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
	Balance   int64  `json:"balance"`
}
