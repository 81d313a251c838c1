package router

import (
	"net/http"

	"card-bank-api/handler"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "card-bank-api/docs"
)

// NewRouter builds the route table. Only the state-changing transaction
// routes sit behind the API-key check; the read paths are open.
func NewRouter(apiKey string, cardHandler *handler.CardHandler, transactionHandler *handler.TransactionHandler) http.Handler {
	mux := http.NewServeMux()

	protected := handler.APIKeyMiddleware(apiKey)

	mux.HandleFunc("GET /health", handler.HealthCheck)

	if cardHandler != nil {
		mux.Handle("GET /cards/my-cards", handler.ErrorHandlingMiddleware(cardHandler.GetMyCards))
	}

	if transactionHandler != nil {
		mux.Handle("POST /transactions/transfer",
			protected(handler.ErrorHandlingMiddleware(transactionHandler.CreateTransfer)))
		mux.Handle("POST /transactions/withdraw",
			protected(handler.ErrorHandlingMiddleware(transactionHandler.CreateWithdrawal)))
		mux.Handle("GET /transactions/history/{card_number}",
			handler.ErrorHandlingMiddleware(transactionHandler.GetHistory))
		mux.Handle("GET /transactions/fees-report",
			handler.ErrorHandlingMiddleware(transactionHandler.GetFeesReport))
	}

	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}
