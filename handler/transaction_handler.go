package handler

import (
	"encoding/json"
	"net/http"

	"card-bank-api/common"
	"card-bank-api/model"
	"card-bank-api/service"
)

// TransactionHandler holds dependencies for transaction-related handlers.
type TransactionHandler struct {
	transactions *service.TransactionService
	reports      *service.ReportService
}

func NewTransactionHandler(transactions *service.TransactionService, reports *service.ReportService) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		reports:      reports,
	}
}

// CreateTransfer godoc
// @Summary      Transfer money between cards
// @Description  Moves the amount from the source card's account to the destination card's account, charging the configured fee to the source.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        x-api-key header string true "API key"
// @Param        transfer body model.TransferRequest true "Details of the transfer"
// @Success      201  {object}  model.TransactionResult
// @Failure      400  {object}  common.AppError "Bad request (bounds, same card, insufficient balance, daily limit, blocked)"
// @Failure      403  {object}  common.AppError "Invalid PIN or API key"
// @Failure      404  {object}  common.AppError "Source or destination card not found"
// @Failure      409  {object}  common.AppError "Reference number conflict"
// @Failure      503  {object}  common.AppError "Account rows are locked by another operation"
// @Router       /transactions/transfer [post]
func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	result, err := h.transactions.TransferMoney(r.Context(), req)
	if err != nil {
		return mapEngineError(err, "Could not process transfer")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
	return nil
}

// CreateWithdrawal godoc
// @Summary      Withdraw cash from a card's account
// @Description  Debits the card's account by the amount plus the configured withdrawal fee.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        x-api-key header string true "API key"
// @Param        withdrawal body model.WithdrawRequest true "Details of the withdrawal"
// @Success      201  {object}  model.TransactionResult
// @Failure      400  {object}  common.AppError "Bad request (bounds, insufficient balance, blocked)"
// @Failure      403  {object}  common.AppError "Invalid PIN or API key"
// @Failure      404  {object}  common.AppError "Card not found"
// @Failure      409  {object}  common.AppError "Reference number conflict"
// @Failure      503  {object}  common.AppError "Account row is locked by another operation"
// @Router       /transactions/withdraw [post]
func (h *TransactionHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.WithdrawRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	result, err := h.transactions.Withdraw(r.Context(), req)
	if err != nil {
		return mapEngineError(err, "Could not process withdrawal")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
	return nil
}

// GetHistory godoc
// @Summary      List recent transactions of a card
// @Description  Returns up to 10 most recent transactions where the card is the source, newest first.
// @Tags         transactions
// @Produce      json
// @Param        card_number path string true "16-digit card number"
// @Success      200  {array}   model.TransactionResult
// @Failure      400  {object}  common.AppError "Malformed card number"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /transactions/history/{card_number} [get]
func (h *TransactionHandler) GetHistory(w http.ResponseWriter, r *http.Request) *common.AppError {
	cardNumber := r.PathValue("card_number")
	if len(cardNumber) != 16 {
		return common.NewAppError(http.StatusBadRequest, "Card number must be exactly 16 digits", nil)
	}

	results, err := h.reports.History(r.Context(), cardNumber)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve history", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(results)
	return nil
}

// GetFeesReport godoc
// @Summary      Report total fee income
// @Description  Sums fee income over optional created-at range and transaction id filters. Dates accept RFC 3339 or YYYY-MM-DD.
// @Tags         transactions
// @Produce      json
// @Param        start_date query string false "Start of the range"
// @Param        end_date query string false "End of the range (a plain date is inclusive through end of day)"
// @Param        transaction_id query int false "Restrict to one transaction"
// @Success      200  {object}  model.FeeReport
// @Failure      400  {object}  common.AppError "Malformed filter"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /transactions/fees-report [get]
func (h *TransactionHandler) GetFeesReport(w http.ResponseWriter, r *http.Request) *common.AppError {
	q := r.URL.Query()

	report, err := h.reports.FeeReport(r.Context(), q.Get("start_date"), q.Get("end_date"), q.Get("transaction_id"))
	if err != nil {
		switch err {
		case service.ErrInvalidDateFilter, service.ErrInvalidTransactionID:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not compute fee report", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(report)
	return nil
}

// mapEngineError maps engine errors to stable HTTP statuses with user-safe
// messages.
func mapEngineError(err error, fallback string) *common.AppError {
	switch err {
	case service.ErrSourceCardNotFound, service.ErrDestCardNotFound, service.ErrCardNotFound:
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case service.ErrInvalidPIN:
		return common.NewAppError(http.StatusForbidden, err.Error(), err)
	case service.ErrSameCard, service.ErrAmountOutOfBounds, service.ErrInsufficientBalance,
		service.ErrDailyLimitExceeded, service.ErrCardBlocked, service.ErrAccountBlocked:
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case service.ErrReferenceCollision:
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	case service.ErrAccountBusy:
		return common.NewAppError(http.StatusServiceUnavailable, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}
