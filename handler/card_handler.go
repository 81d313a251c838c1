package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"card-bank-api/common"
	"card-bank-api/logger"
	"card-bank-api/service"
)

// CardHandler holds dependencies for card-related handlers.
type CardHandler struct {
	service *service.CardService
}

func NewCardHandler(s *service.CardService) *CardHandler {
	return &CardHandler{service: s}
}

// GetMyCards godoc
// @Summary      List a user's cards
// @Description  Returns every card of the user with its account number and current balance.
// @Tags         cards
// @Produce      json
// @Param        user_id query int true "ID of the user"
// @Success      200  {array}   model.CardSummary
// @Failure      400  {object}  common.AppError "Missing or malformed user_id"
// @Failure      404  {object}  common.AppError "User has no cards"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /cards/my-cards [get]
func (h *CardHandler) GetMyCards(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil || userID <= 0 {
		return common.NewAppError(http.StatusBadRequest, "Invalid user_id query parameter", err)
	}

	logger.Log.WithField("user_id", userID).Info("List cards request received")

	summaries, err := h.service.ListCardsForUser(r.Context(), userID)
	if err != nil {
		if err == service.ErrNoCards {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve cards", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summaries)
	return nil
}
