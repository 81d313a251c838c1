package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TransactionType is stored as a smallint and exposed as a closed set of
// string values at the API boundary.
type TransactionType int16

const (
	TypeWithdraw   TransactionType = 1
	TypeCardToCard TransactionType = 2
)

func (t TransactionType) String() string {
	switch t {
	case TypeWithdraw:
		return "WITHDRAW"
	case TypeCardToCard:
		return "CARD_TO_CARD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int16(t))
	}
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "WITHDRAW":
		*t = TypeWithdraw
	case "CARD_TO_CARD":
		*t = TypeCardToCard
	default:
		return fmt.Errorf("unknown transaction type %q", s)
	}
	return nil
}

// TransactionStatus is stored as a smallint and exposed as a string.
type TransactionStatus int16

const (
	StatusPending TransactionStatus = 0
	StatusSuccess TransactionStatus = 1
	StatusFailed  TransactionStatus = 2
)

func (s TransactionStatus) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int16(s))
	}
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v {
	case "PENDING":
		*s = StatusPending
	case "SUCCESS":
		*s = StatusSuccess
	case "FAILED":
		*s = StatusFailed
	default:
		return fmt.Errorf("unknown transaction status %q", v)
	}
	return nil
}

// Transaction is the append-only audit record of one money movement, written
// inside the same database transaction as the balance mutation and never
// updated afterward. TotalAmount always equals Amount+FeeAmount.
type Transaction struct {
	ID           int               `json:"id"`
	SourceCardID *int              `json:"source_card_id,omitempty"`
	DestCardID   *int              `json:"dest_card_id,omitempty"`
	Amount       int64             `json:"amount"`
	FeeAmount    int64             `json:"fee_amount"`
	TotalAmount  int64             `json:"total_amount"`
	Type         TransactionType   `json:"type"`
	Status       TransactionStatus `json:"status"`
	RefNumber    string            `json:"ref_number"`
	Description  string            `json:"description,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}
