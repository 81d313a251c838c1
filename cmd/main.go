// cmd/main.go
package main

import (
	"card-bank-api/app"
)

// @title           Card-Bank API
// @version         1.0
// @description     Banking ledger API for card lookup, transfers, withdrawals and fee reporting.

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
func main() {
	app.Run()
}
