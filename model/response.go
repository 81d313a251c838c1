// file: model/response.go

package model

import "time"

// TransactionResult is the external view of one completed money movement.
type TransactionResult struct {
	RefNumber   string            `json:"ref_number"`
	Amount      int64             `json:"amount"`
	Fee         int64             `json:"fee"`
	Status      TransactionStatus `json:"status"`
	Date        time.Time         `json:"date"`
	Type        TransactionType   `json:"type"`
	Source      string            `json:"source,omitempty"`
	Destination string            `json:"destination,omitempty"`
}

// FeeReport echoes the applied filters alongside the aggregated fee income.
type FeeReport struct {
	TotalFeeIncome int64  `json:"total_fee_income"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	TransactionID  string `json:"transaction_id,omitempty"`
}
