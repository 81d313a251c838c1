package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"card-bank-api/config"
	"card-bank-api/logger"
	"card-bank-api/model"
	"card-bank-api/policy"
	"card-bank-api/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrSourceCardNotFound  = errors.New("source card not found")
	ErrDestCardNotFound    = errors.New("destination card not found")
	ErrCardNotFound        = errors.New("card not found")
	ErrSameCard            = errors.New("source and destination cards cannot be the same")
	ErrInvalidPIN          = errors.New("invalid PIN")
	ErrCardBlocked         = errors.New("card is blocked")
	ErrAccountBlocked      = errors.New("account is blocked")
	ErrAmountOutOfBounds   = errors.New("amount is outside the allowed transaction bounds")
	ErrInsufficientBalance = errors.New("insufficient account balance")
	ErrDailyLimitExceeded  = errors.New("daily transfer limit has been reached")
	ErrReferenceCollision  = errors.New("could not allocate a unique reference number")
	ErrAccountBusy         = errors.New("account is busy, try again")
)

// TransactionService is the money-movement engine. Every mutating operation
// runs inside a single database transaction that locks the involved account
// rows, so a committed operation is all-or-nothing and concurrent operations
// on the same accounts serialize.
type TransactionService struct {
	db              *sql.DB
	limits          *config.Limits
	cardRepo        repository.ICardRepository
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
}

func NewTransactionService(
	db *sql.DB,
	limits *config.Limits,
	cardRepo repository.ICardRepository,
	accountRepo repository.IAccountRepository,
	transactionRepo repository.ITransactionRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		limits:          limits,
		cardRepo:        cardRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// TransferMoney moves amount from the source card's account to the
// destination card's account, charging the configured fee to the source.
// The fee is retained by the system and is visible only through the fee
// report.
func (s *TransactionService) TransferMoney(ctx context.Context, req model.TransferRequest) (*model.TransactionResult, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"amount": req.Amount,
	})
	log.Info("Starting card-to-card transfer")

	if req.SourceCardNumber == req.DestCardNumber {
		return nil, ErrSameCard
	}
	// The schema layer validates bounds too; the engine re-checks so it stays
	// safe against any other caller.
	if !policy.WithinBounds(req.Amount, s.limits.MinTransactionAmount, s.limits.MaxTransactionAmount) {
		return nil, ErrAmountOutOfBounds
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	srcCard, err := s.cardRepo.GetCardByNumber(tx, req.SourceCardNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSourceCardNotFound
		}
		return nil, err
	}

	if !CheckPIN(req.PIN, srcCard.HashedPIN) {
		return nil, ErrInvalidPIN
	}

	dstCard, err := s.cardRepo.GetCardByNumber(tx, req.DestCardNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDestCardNotFound
		}
		return nil, err
	}

	if srcCard.Status != model.StatusActive || dstCard.Status != model.StatusActive {
		return nil, ErrCardBlocked
	}

	srcAccount, dstAccount, err := s.lockAccountPair(tx, srcCard.AccountID, dstCard.AccountID)
	if err != nil {
		return nil, err
	}

	if srcAccount.Status != model.StatusActive || dstAccount.Status != model.StatusActive {
		return nil, ErrAccountBlocked
	}

	fee := policy.Fee(req.Amount, s.limits.FeePercentage, s.limits.FeeCap)
	totalDebit := req.Amount + fee

	if srcAccount.Balance < totalDebit {
		return nil, ErrInsufficientBalance
	}

	dayStart := startOfDay(time.Now())
	dailySum, err := s.transactionRepo.GetDailyTransferTotal(tx, srcCard.ID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("could not compute daily transfer total: %w", err)
	}
	if !policy.DailyLimitOK(dailySum, req.Amount, s.limits.DailyTransferLimit) {
		return nil, ErrDailyLimitExceeded
	}

	if srcAccount.ID == dstAccount.ID {
		// Two cards on one account: a single balance update, net of the fee.
		if err := s.accountRepo.UpdateAccountBalance(tx, srcAccount.ID, srcAccount.Balance-fee); err != nil {
			return nil, fmt.Errorf("could not update account balance: %w", err)
		}
	} else {
		if err := s.accountRepo.UpdateAccountBalance(tx, srcAccount.ID, srcAccount.Balance-totalDebit); err != nil {
			return nil, fmt.Errorf("could not update source balance: %w", err)
		}
		if err := s.accountRepo.UpdateAccountBalance(tx, dstAccount.ID, dstAccount.Balance+req.Amount); err != nil {
			return nil, fmt.Errorf("could not update destination balance: %w", err)
		}
	}

	now := time.Now()
	transaction := &model.Transaction{
		SourceCardID: &srcCard.ID,
		DestCardID:   &dstCard.ID,
		Amount:       req.Amount,
		FeeAmount:    fee,
		TotalAmount:  totalDebit,
		Type:         model.TypeCardToCard,
		Status:       model.StatusSuccess,
		RefNumber:    newRefNumber("TRX"),
		Description:  "Card-to-card transfer",
		CompletedAt:  &now,
	}

	if err := s.createWithRetry(tx, transaction, "TRX"); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithField("ref_number", transaction.RefNumber).Info("Transfer completed successfully")
	return &model.TransactionResult{
		RefNumber:   transaction.RefNumber,
		Amount:      transaction.Amount,
		Fee:         transaction.FeeAmount,
		Status:      transaction.Status,
		Date:        transaction.CreatedAt,
		Type:        transaction.Type,
		Source:      srcCard.CardNumber,
		Destination: dstCard.CardNumber,
	}, nil
}

// Withdraw debits a single account for a cash withdrawal. The daily transfer
// limit does not apply; the withdrawal fee rate defaults to zero but runs
// through the same policy function as transfers.
func (s *TransactionService) Withdraw(ctx context.Context, req model.WithdrawRequest) (*model.TransactionResult, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"amount": req.Amount,
	})
	log.Info("Starting cash withdrawal")

	if !policy.WithinBounds(req.Amount, s.limits.MinTransactionAmount, s.limits.MaxTransactionAmount) {
		return nil, ErrAmountOutOfBounds
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	card, err := s.cardRepo.GetCardByNumber(tx, req.CardNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	if !CheckPIN(req.PIN, card.HashedPIN) {
		return nil, ErrInvalidPIN
	}
	if card.Status != model.StatusActive {
		return nil, ErrCardBlocked
	}

	account, err := s.accountRepo.GetAccountForUpdate(tx, card.AccountID)
	if err != nil {
		return nil, s.translateLockErr(err)
	}
	if account.Status != model.StatusActive {
		return nil, ErrAccountBlocked
	}

	fee := policy.Fee(req.Amount, s.limits.WithdrawFeePercentage, s.limits.FeeCap)
	totalDebit := req.Amount + fee

	if account.Balance < totalDebit {
		return nil, ErrInsufficientBalance
	}

	if err := s.accountRepo.UpdateAccountBalance(tx, account.ID, account.Balance-totalDebit); err != nil {
		return nil, fmt.Errorf("could not update account balance: %w", err)
	}

	now := time.Now()
	transaction := &model.Transaction{
		SourceCardID: &card.ID,
		Amount:       req.Amount,
		FeeAmount:    fee,
		TotalAmount:  totalDebit,
		Type:         model.TypeWithdraw,
		Status:       model.StatusSuccess,
		RefNumber:    newRefNumber("WD"),
		Description:  "Cash withdrawal",
		CompletedAt:  &now,
	}

	if err := s.createWithRetry(tx, transaction, "WD"); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithField("ref_number", transaction.RefNumber).Info("Withdrawal completed successfully")
	return &model.TransactionResult{
		RefNumber: transaction.RefNumber,
		Amount:    transaction.Amount,
		Fee:       transaction.FeeAmount,
		Status:    transaction.Status,
		Date:      transaction.CreatedAt,
		Type:      transaction.Type,
		Source:    card.CardNumber,
	}, nil
}

// lockAccountPair acquires exclusive locks on both account rows, always in
// ascending account-id order regardless of transfer direction. Two opposing
// transfers over the same pair therefore queue on the same first lock
// instead of deadlocking. A pair sharing one account locks it once.
func (s *TransactionService) lockAccountPair(tx *sql.Tx, srcID, dstID int) (*model.Account, *model.Account, error) {
	if srcID == dstID {
		account, err := s.accountRepo.GetAccountForUpdate(tx, srcID)
		if err != nil {
			return nil, nil, s.translateLockErr(err)
		}
		return account, account, nil
	}

	firstID, secondID := srcID, dstID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.accountRepo.GetAccountForUpdate(tx, firstID)
	if err != nil {
		return nil, nil, s.translateLockErr(err)
	}
	second, err := s.accountRepo.GetAccountForUpdate(tx, secondID)
	if err != nil {
		return nil, nil, s.translateLockErr(err)
	}

	if first.ID == srcID {
		return first, second, nil
	}
	return second, first, nil
}

// createWithRetry inserts the audit record, regenerating the reference
// number and retrying exactly once if it collides with an existing one.
func (s *TransactionService) createWithRetry(tx *sql.Tx, transaction *model.Transaction, prefix string) error {
	err := s.transactionRepo.CreateTransaction(tx, transaction)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrDuplicateReference) {
		return fmt.Errorf("could not create transaction record: %w", err)
	}

	logger.Log.WithField("ref_number", transaction.RefNumber).Warn("Reference number collision, retrying once")
	transaction.RefNumber = newRefNumber(prefix)
	if err := s.transactionRepo.CreateTransaction(tx, transaction); err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			return ErrReferenceCollision
		}
		return fmt.Errorf("could not create transaction record: %w", err)
	}
	return nil
}

func (s *TransactionService) translateLockErr(err error) error {
	if err == sql.ErrNoRows {
		return ErrCardNotFound
	}
	if repository.IsLockTimeout(err) {
		return ErrAccountBusy
	}
	return err
}

// newRefNumber builds a time-derived reference with a random suffix so two
// transactions created in the same millisecond still differ.
func newRefNumber(prefix string) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
