package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"card-bank-api/logger"
	"card-bank-api/model"

	"github.com/sirupsen/logrus"
)

// ErrDuplicateReference is returned when a transaction insert hits the
// unique constraint on ref_number. The engine regenerates the reference and
// retries once before giving up.
var ErrDuplicateReference = errors.New("transaction reference number already exists")

// ITransactionRepository defines the contract for transaction database operations.
type ITransactionRepository interface {
	CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error
	GetDailyTransferTotal(tx *sql.Tx, sourceCardID int, since time.Time) (int64, error)
	GetHistoryByCardNumber(cardNumber string, limit int) ([]*model.Transaction, error)
	GetFeeTotal(start, end *time.Time, transactionID *int) (int64, error)
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// CreateTransaction inserts the audit record inside the same database
// transaction as the balance mutation.
func (r *TransactionRepository) CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"type":       transaction.Type.String(),
		"amount":     transaction.Amount,
		"ref_number": transaction.RefNumber,
	})
	log.Info("Executing query to create a new transaction")

	query := `INSERT INTO transactions
		(source_card_id, dest_card_id, amount, fee_amount, total_amount, type, status, ref_number, description, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err := tx.QueryRow(query,
		transaction.SourceCardID, transaction.DestCardID,
		transaction.Amount, transaction.FeeAmount, transaction.TotalAmount,
		transaction.Type, transaction.Status,
		transaction.RefNumber, transaction.Description, transaction.CompletedAt,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("Transaction reference number collided")
			return ErrDuplicateReference
		}
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// GetDailyTransferTotal sums today's successful card-to-card amounts
// originating from the given card. It runs inside the engine's transaction
// so the total is consistent with the locked account rows.
func (r *TransactionRepository) GetDailyTransferTotal(tx *sql.Tx, sourceCardID int, since time.Time) (int64, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"source_card_id": sourceCardID,
		"since":          since,
	})
	log.Info("Executing query to get daily transfer total")

	var total sql.NullInt64
	query := `SELECT SUM(amount) FROM transactions
		WHERE source_card_id = $1 AND created_at >= $2 AND status = $3 AND type = $4`
	err := tx.QueryRow(query, sourceCardID, since, model.StatusSuccess, model.TypeCardToCard).Scan(&total)
	if err != nil {
		log.WithError(err).Error("Failed to execute daily transfer total query")
		return 0, err
	}
	return total.Int64, nil
}

// GetHistoryByCardNumber retrieves the most recent transactions where the
// card is the source, newest first.
func (r *TransactionRepository) GetHistoryByCardNumber(cardNumber string, limit int) ([]*model.Transaction, error) {
	log := logger.Log.WithField("card_number", maskCardNumber(cardNumber))
	log.Info("Executing query to get transaction history by card number")

	query := `SELECT t.id, t.source_card_id, t.dest_card_id, t.amount, t.fee_amount, t.total_amount,
			t.type, t.status, COALESCE(t.ref_number, ''), COALESCE(t.description, ''), t.created_at, t.completed_at
		FROM transactions t
		JOIN cards c ON c.id = t.source_card_id
		WHERE c.card_number = $1
		ORDER BY t.created_at DESC
		LIMIT $2`
	rows, err := r.DB.Query(query, cardNumber, limit)
	if err != nil {
		log.WithError(err).Error("Failed to execute transaction history query")
		return nil, err
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.SourceCardID, &t.DestCardID, &t.Amount, &t.FeeAmount, &t.TotalAmount,
			&t.Type, &t.Status, &t.RefNumber, &t.Description, &t.CreatedAt, &t.CompletedAt); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}

// GetFeeTotal sums fee_amount over the optional created_at range and
// transaction id filters.
func (r *TransactionRepository) GetFeeTotal(start, end *time.Time, transactionID *int) (int64, error) {
	log := logger.Log
	log.Info("Executing query to get fee total")

	query := `SELECT SUM(fee_amount) FROM transactions WHERE 1=1`
	args := []interface{}{}
	if start != nil {
		args = append(args, *start)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	if transactionID != nil {
		args = append(args, *transactionID)
		query += ` AND id = $` + strconv.Itoa(len(args))
	}

	var total sql.NullInt64
	if err := r.DB.QueryRow(query, args...).Scan(&total); err != nil {
		log.WithError(err).Error("Failed to execute fee total query")
		return 0, err
	}
	return total.Int64, nil
}
