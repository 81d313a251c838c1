package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeMapping(t *testing.T) {
	// The persisted smallint codes are part of the storage contract.
	assert.Equal(t, TransactionType(1), TypeWithdraw)
	assert.Equal(t, TransactionType(2), TypeCardToCard)

	assert.Equal(t, "WITHDRAW", TypeWithdraw.String())
	assert.Equal(t, "CARD_TO_CARD", TypeCardToCard.String())
	assert.Equal(t, "UNKNOWN(9)", TransactionType(9).String())
}

func TestTransactionStatusMapping(t *testing.T) {
	assert.Equal(t, TransactionStatus(0), StatusPending)
	assert.Equal(t, TransactionStatus(1), StatusSuccess)
	assert.Equal(t, TransactionStatus(2), StatusFailed)

	assert.Equal(t, "PENDING", StatusPending.String())
	assert.Equal(t, "SUCCESS", StatusSuccess.String())
	assert.Equal(t, "FAILED", StatusFailed.String())
}

func TestTransactionJSONUsesStringForms(t *testing.T) {
	srcID := 1
	dstID := 2
	tx := Transaction{
		ID:           7,
		SourceCardID: &srcID,
		DestCardID:   &dstID,
		Amount:       1_000_000,
		FeeAmount:    100_000,
		TotalAmount:  1_100_000,
		Type:         TypeCardToCard,
		Status:       StatusSuccess,
		RefNumber:    "TRX-1-abcd1234",
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(tx)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"type":"CARD_TO_CARD"`)
	assert.Contains(t, string(data), `"status":"SUCCESS"`)
	assert.NotContains(t, string(data), `"type":2`)

	var decoded Transaction
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeCardToCard, decoded.Type)
	assert.Equal(t, StatusSuccess, decoded.Status)

	var bad Transaction
	assert.Error(t, json.Unmarshal([]byte(`{"type":"REFUND"}`), &bad))
}
