package model

import "time"

// Card is the access credential bound to exactly one account and one user.
// The PIN is stored only as a bcrypt hash; CVV and hash are never serialized.
type Card struct {
	ID          int          `json:"id"`
	UserID      int          `json:"user_id"`
	AccountID   int          `json:"account_id"`
	CardNumber  string       `json:"card_number"`
	CVV2        string       `json:"-"`
	ExpireMonth int16        `json:"expire_month"`
	ExpireYear  int16        `json:"expire_year"`
	Status      EntityStatus `json:"status"`
	HashedPIN   string       `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CardSummary is the card-listing row joined with its account.
type CardSummary struct {
	CardNumber    string `json:"card_number"`
	AccountNumber string `json:"account_number"`
	Balance       int64  `json:"balance"`
}
