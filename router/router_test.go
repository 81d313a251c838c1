// file: router/router_test.go

package router_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"card-bank-api/app"
	"card-bank-api/config"
	"card-bank-api/logger"
	"card-bank-api/model"
	"card-bank-api/service"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testApp *app.TestApp

const testAPIKey = "test-secret-key"
const testPIN = "1234"

func TestMain(m *testing.M) {
	logger.Init()

	cfg, err := config.LoadConfig("..")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	cfg.API.Key = testAPIKey

	testDbConnStr := fmt.Sprintf("postgres://%s:%s@localhost:5434/%s_test?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
	)

	db, err := sql.Open("postgres", testDbConnStr)
	if err != nil {
		log.Fatalf("could not connect to test database: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		log.Fatalf("database not ready: %v", err)
	}

	runMigrations(testDbConnStr)

	testApp = app.NewTestApp(db, nil, cfg)

	exitCode := m.Run()

	db.Close()
	os.Exit(exitCode)
}

func runMigrations(connStr string) {
	migrationPath := "file://../db/migrations"
	mig, err := migrate.New(migrationPath, connStr)
	if err != nil {
		log.Fatalf("cannot create migrate instance: %v", err)
	}
	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("failed to run migrate up: %v", err)
	}
}

// --- Test Helper Functions ---

func clearTables(t *testing.T) {
	_, err := testApp.DB.Exec(`TRUNCATE transactions, cards, accounts, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

type fixtureCard struct {
	UserID     int
	AccountID  int
	CardID     int
	CardNumber string
}

// createCardForTest inserts a user with one account and one card and returns
// their ids.
func createCardForTest(t *testing.T, seq int, balance int64) fixtureCard {
	hashedPIN, err := service.HashPIN(testPIN)
	require.NoError(t, err)

	fc := fixtureCard{CardNumber: fmt.Sprintf("603799119911%04d", seq)}

	err = testApp.DB.QueryRow(
		`INSERT INTO users (full_name, mobile, national_id) VALUES ($1, $2, $3) RETURNING id`,
		fmt.Sprintf("Test User %d", seq), fmt.Sprintf("0912%07d", seq), fmt.Sprintf("%010d", seq),
	).Scan(&fc.UserID)
	require.NoError(t, err)

	err = testApp.DB.QueryRow(
		`INSERT INTO accounts (user_id, iban, balance, status) VALUES ($1, $2, $3, 1) RETURNING id`,
		fc.UserID, fmt.Sprintf("IR0000000000000000000000%02d", seq), balance,
	).Scan(&fc.AccountID)
	require.NoError(t, err)

	err = testApp.DB.QueryRow(
		`INSERT INTO cards (user_id, account_id, card_number, cvv2, expire_month, expire_year, status, hashed_pin)
		 VALUES ($1, $2, $3, '1234', 12, 1405, 1, $4) RETURNING id`,
		fc.UserID, fc.AccountID, fc.CardNumber, hashedPIN,
	).Scan(&fc.CardID)
	require.NoError(t, err)

	return fc
}

func accountBalance(t *testing.T, accountID int) int64 {
	var balance int64
	err := testApp.DB.QueryRow(`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	require.NoError(t, err)
	return balance
}

func transactionCount(t *testing.T) int {
	var count int
	err := testApp.DB.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count)
	require.NoError(t, err)
	return count
}

func doTransfer(t *testing.T, source, dest string, amount int64, pin string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{
		"source_card_number": source,
		"dest_card_number":   dest,
		"amount":             amount,
		"pin":                pin,
	})
	req, _ := http.NewRequest("POST", "/transactions/transfer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", testAPIKey)
	rr := httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)
	return rr
}

func doWithdraw(t *testing.T, cardNumber string, amount int64, pin string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{
		"card_number": cardNumber,
		"amount":      amount,
		"pin":         pin,
	})
	req, _ := http.NewRequest("POST", "/transactions/withdraw", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", testAPIKey)
	rr := httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestTransfer_EndToEnd(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 100_000_000)
	b := createCardForTest(t, 2, 100_000_000)

	rr := doTransfer(t, a.CardNumber, b.CardNumber, 1_000_000, testPIN)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var result model.TransactionResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(1_000_000), result.Amount)
	assert.Equal(t, int64(100_000), result.Fee)
	assert.NotEmpty(t, result.RefNumber)

	assert.Equal(t, int64(98_900_000), accountBalance(t, a.AccountID))
	assert.Equal(t, int64(101_000_000), accountBalance(t, b.AccountID))

	var total int64
	var status, txType int16
	err := testApp.DB.QueryRow(
		`SELECT total_amount, status, type FROM transactions WHERE ref_number = $1`, result.RefNumber,
	).Scan(&total, &status, &txType)
	require.NoError(t, err)
	assert.Equal(t, int64(1_100_000), total)
	assert.Equal(t, int16(model.StatusSuccess), status)
	assert.Equal(t, int16(model.TypeCardToCard), txType)
}

func TestTransfer_SameCardRejected(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 100_000_000)

	rr := doTransfer(t, a.CardNumber, a.CardNumber, 1_000_000, testPIN)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, transactionCount(t))
	assert.Equal(t, int64(100_000_000), accountBalance(t, a.AccountID))
}

func TestTransfer_WrongPIN(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 100_000_000)
	b := createCardForTest(t, 2, 0)

	rr := doTransfer(t, a.CardNumber, b.CardNumber, 1_000_000, "9999")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, 0, transactionCount(t))
}

func TestTransfer_MissingAPIKey(t *testing.T) {
	clearTables(t)

	body, _ := json.Marshal(map[string]interface{}{
		"source_card_number": "6037991199110001",
		"dest_card_number":   "6037991199110002",
		"amount":             1_000_000,
		"pin":                testPIN,
	})
	req, _ := http.NewRequest("POST", "/transactions/transfer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, 0, transactionCount(t))
}

func TestTransfer_DailyLimit(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 200_000_000)
	b := createCardForTest(t, 2, 0)

	// Prior successful transfers today already sum to 49,500,000.
	_, err := testApp.DB.Exec(
		`INSERT INTO transactions (source_card_id, dest_card_id, amount, fee_amount, total_amount, type, status, ref_number)
		 VALUES ($1, $2, 49500000, 100000, 49600000, $3, $4, 'TRX-prior')`,
		a.CardID, b.CardID, model.TypeCardToCard, model.StatusSuccess,
	)
	require.NoError(t, err)

	rr := doTransfer(t, a.CardNumber, b.CardNumber, 1_000_000, testPIN)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, int64(200_000_000), accountBalance(t, a.AccountID))

	// 500,000 more lands exactly on the limit and passes.
	rr = doTransfer(t, a.CardNumber, b.CardNumber, 500_000, testPIN)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestWithdraw_EndToEnd(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 5_000_000)

	rr := doWithdraw(t, a.CardNumber, 1_000_000, testPIN)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var result model.TransactionResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(0), result.Fee)
	assert.Equal(t, int64(4_000_000), accountBalance(t, a.AccountID))
}

func TestWithdraw_OverBalanceRejected(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 500_000)

	rr := doWithdraw(t, a.CardNumber, 1_000_000, testPIN)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, int64(500_000), accountBalance(t, a.AccountID))
	assert.Equal(t, 0, transactionCount(t))
}

// TestTransfer_ConcurrentSerialization issues concurrent transfers over the
// same pair of accounts, in both directions, and checks that no update is
// lost: the final balances must equal the analytically applied deltas.
func TestTransfer_ConcurrentSerialization(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 100_000_000)
	b := createCardForTest(t, 2, 100_000_000)

	const perDirection = 5
	const amount = 1_000_000
	const fee = 100_000

	var wg sync.WaitGroup
	codes := make(chan int, perDirection*2)
	for i := 0; i < perDirection; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			codes <- doTransfer(t, a.CardNumber, b.CardNumber, amount, testPIN).Code
		}()
		go func() {
			defer wg.Done()
			codes <- doTransfer(t, b.CardNumber, a.CardNumber, amount, testPIN).Code
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}

	// Each account sent and received perDirection transfers: the amounts
	// cancel out and only the fees remain debited.
	expected := int64(100_000_000 - perDirection*fee)
	assert.Equal(t, expected, accountBalance(t, a.AccountID))
	assert.Equal(t, expected, accountBalance(t, b.AccountID))
	assert.Equal(t, perDirection*2, transactionCount(t))
}

func TestHistory_ReturnsNewestFirstCapped(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 100_000_000)
	b := createCardForTest(t, 2, 0)

	for i := 0; i < 12; i++ {
		_, err := testApp.DB.Exec(
			`INSERT INTO transactions (source_card_id, dest_card_id, amount, fee_amount, total_amount, type, status, ref_number, created_at)
			 VALUES ($1, $2, 1000, 100, 1100, $3, $4, $5, now() - ($6 || ' minutes')::interval)`,
			a.CardID, b.CardID, model.TypeCardToCard, model.StatusSuccess, fmt.Sprintf("TRX-h-%d", i), i,
		)
		require.NoError(t, err)
	}

	req, _ := http.NewRequest("GET", "/transactions/history/"+a.CardNumber, nil)
	rr := httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var results []model.TransactionResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &results))
	assert.Len(t, results, 10)
	assert.Equal(t, "TRX-h-0", results[0].RefNumber)
	for i := 1; i < len(results); i++ {
		assert.False(t, results[i].Date.After(results[i-1].Date))
	}
}

func TestFeesReport_SumsAndFilters(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 100_000_000)
	b := createCardForTest(t, 2, 0)

	_, err := testApp.DB.Exec(
		`INSERT INTO transactions (source_card_id, dest_card_id, amount, fee_amount, total_amount, type, status, ref_number, created_at)
		 VALUES
		 ($1, $2, 1000000, 100000, 1100000, $3, $4, 'TRX-f-1', '2025-06-01T10:00:00Z'),
		 ($1, $2, 2000000, 100000, 2100000, $3, $4, 'TRX-f-2', '2025-06-15T10:00:00Z'),
		 ($1, $2, 3000000, 100000, 3100000, $3, $4, 'TRX-f-3', '2025-07-01T10:00:00Z')`,
		a.CardID, b.CardID, model.TypeCardToCard, model.StatusSuccess,
	)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/transactions/fees-report", nil)
	rr := httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var report model.FeeReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, int64(300_000), report.TotalFeeIncome)

	req, _ = http.NewRequest("GET", "/transactions/fees-report?start_date=2025-06-01&end_date=2025-06-30", nil)
	rr = httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, int64(200_000), report.TotalFeeIncome)

	req, _ = http.NewRequest("GET", "/transactions/fees-report?start_date=bogus", nil)
	rr = httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMyCards(t *testing.T) {
	clearTables(t)
	a := createCardForTest(t, 1, 100_000_000)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/cards/my-cards?user_id=%d", a.UserID), nil)
	rr := httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var summaries []model.CardSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, a.CardNumber, summaries[0].CardNumber)
	assert.Equal(t, int64(100_000_000), summaries[0].Balance)

	req, _ = http.NewRequest("GET", "/cards/my-cards?user_id=9999", nil)
	rr = httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
