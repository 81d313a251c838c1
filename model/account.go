package model

import "time"

// EntityStatus is the persisted smallint status of accounts and cards.
type EntityStatus int16

const (
	StatusBlocked EntityStatus = 0
	StatusActive  EntityStatus = 1
)

// Account holds a balance in the minor currency unit. Balances are mutated
// only by the transaction engine while the row is locked, and never go
// negative after a committed operation.
type Account struct {
	ID        int          `json:"id"`
	UserID    int          `json:"user_id"`
	IBAN      string       `json:"iban"`
	Balance   int64        `json:"balance"`
	Status    EntityStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}
