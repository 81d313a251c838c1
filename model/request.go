// file: model/request.go

package model

// TransferRequest defines the payload for a card-to-card transfer.
// Card numbers must be exactly 16 digits; the amount bounds configured in
// limits are re-checked by the engine.
type TransferRequest struct {
	SourceCardNumber string `json:"source_card_number" validate:"required,len=16,numeric"`
	DestCardNumber   string `json:"dest_card_number" validate:"required,len=16,numeric"`
	Amount           int64  `json:"amount" validate:"required,gt=0"`
	PIN              string `json:"pin" validate:"required,min=4,max=12"`
}

// WithdrawRequest defines the payload for a cash withdrawal.
type WithdrawRequest struct {
	CardNumber string `json:"card_number" validate:"required,len=16,numeric"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	PIN        string `json:"pin" validate:"required,min=4,max=12"`
}
